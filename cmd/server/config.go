package main

import (
	"fmt"
	"time"
)

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=8080"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH,required=true"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	MaxContentLength  int           `env:"MAX_CONTENT_LENGTH,default=2000"`
	CharReplacement   string        `env:"CHARACTER_REPLACEMENT,default=*"`
	AppendTimeout     time.Duration `env:"APPEND_TIMEOUT,default=5s"`
	SinkTimeout       time.Duration `env:"SINK_TIMEOUT,default=2s"`
	DeliveryTimeout   time.Duration `env:"DELIVERY_TIMEOUT,default=1s"`
	GCInterval        time.Duration `env:"GC_INTERVAL,default=5m"`
	MetricInterval    time.Duration `env:"METRIC_INTERVAL,default=30s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
