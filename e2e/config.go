package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// REDIS_URL enables the redis scenarios, e.g. redis://localhost:6379/15
	RedisURL string `envconfig:"REDIS_URL"`
	// ZMQ endpoints of a running broker enable the zmq scenarios
	ZMQPubEndpoint string `envconfig:"ZMQ_PUB_ENDPOINT"`
	ZMQSubEndpoint string `envconfig:"ZMQ_SUB_ENDPOINT"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
