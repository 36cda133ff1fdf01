package main

import "time"

type Config struct {
	LogLevel           string        `env:"LOG_LEVEL,default=INFO"`
	Host               string        `env:"HOST,default=localhost"`
	Port               int           `env:"PORT,default=8080"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH"`
	SessionGatewayAddr string        `env:"SESSION_GATEWAY_ADDR,required=true"`
	SelfJID            string        `env:"SELF_JID,required=true"`
	SelfName           string        `env:"SELF_NAME"`
	ProbeBaseURL       string        `env:"PROBE_BASE_URL,default=https://wa.me"`
	ProbeTimeout       time.Duration `env:"PROBE_TIMEOUT,default=10s"`
	SinkTimeout        time.Duration `env:"SINK_TIMEOUT,default=2s"`
	GatewayWakeTimeout time.Duration `env:"GATEWAY_WAKE_TIMEOUT,default=2s"`
	EventBufferSize    int           `env:"EVENT_BUFFER_SIZE,default=64"`
	AuthSecret         string        `env:"AUTH_SECRET,required=true"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=1s"`
	HealthInterval     time.Duration `env:"HEALTH_INTERVAL,default=30s"`
}
