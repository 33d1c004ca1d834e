package main

type Config struct {
	StorageKey     string `env:"STORAGE_KEY,default=chat_app_history"`
	StoreBackend   string `env:"STORE_BACKEND,default=redis"`
	BadgerFilepath string `env:"BADGER_FILEPATH,default=./data/history"`
	RedisURL       string `env:"REDIS_URL,default=redis://localhost:6379/0"`
	RedisPrefix    string `env:"REDIS_PREFIX,default=tab-mirror:"`
	LogLevel       string `env:"LOG_LEVEL,default=WARN"`
	Colours        bool   `env:"INSPECT_COLOURS,default=true"`
}
