// Package bus implements the named broadcast channel shared by the tabs of
// an origin. Every tab owns one port: it publishes through it and receives,
// through a single handler, what the other ports publish.
package bus

import (
	"encoding/json"

	"tab-mirror/domain/event"

	"github.com/vmihailenco/msgpack/v5"
)

// Frame is what travels on a transport: the {type, payload} envelope plus
// the id of the publishing port, so that a port can skip its own frames on
// transports that echo back to the sender.
type Frame struct {
	Origin         string `json:"origin" msgpack:"origin"`
	event.BusEvent `msgpack:",inline"`
}

type Codec interface {
	Marshal(f Frame) ([]byte, error)
	Unmarshal(data []byte) (Frame, error)
}

type JSONCodec struct{}

func (JSONCodec) Marshal(f Frame) ([]byte, error) {
	return json.Marshal(f)
}

func (JSONCodec) Unmarshal(data []byte) (Frame, error) {
	var f Frame
	err := json.Unmarshal(data, &f)
	return f, err
}

type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(f Frame) ([]byte, error) {
	return msgpack.Marshal(f)
}

func (MsgpackCodec) Unmarshal(data []byte) (Frame, error) {
	var f Frame
	err := msgpack.Unmarshal(data, &f)
	return f, err
}
