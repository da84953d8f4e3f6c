package main

import "time"

type Config struct {
	Host                string        `env:"HOST,default=0.0.0.0"`
	Port                int           `env:"PORT,default=8080"`
	LogLevel            string        `env:"LOG_LEVEL,default=info"`
	CustomerTimeout     time.Duration `env:"CUSTOMER_TIMEOUT,default=60s"`
	SendBufferSize      int           `env:"SEND_BUFFER_SIZE,default=16"`
	TelemetryBufferSize int           `env:"TELEMETRY_BUFFER_SIZE,default=256"`
	TelemetryInterval   time.Duration `env:"TELEMETRY_INTERVAL,default=30s"`
	RestartInterval     time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}
