package main

type Config struct {
	XSubBind string `env:"ZMQ_XSUB_BIND,default=tcp://*:5557"`
	XPubBind string `env:"ZMQ_XPUB_BIND,default=tcp://*:5558"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`
}
