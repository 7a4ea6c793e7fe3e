package config

import (
	"log/slog"
	"os"
)

func Load() App {
	cfg := App{
		Port:               getenv("APP_PORT", "8090"),
		DatabaseURL:        must("DATABASE_URL"),
		ServiceTokenSecret: os.Getenv("SERVICE_TOKEN_SECRET"),
		Env:                getenv("APP_ENV", "dev"),
	}
	return cfg
}

func LoadGateway() Gateway {
	cfg := Gateway{
		Port:               getenv("GATEWAY_PORT", "8080"),
		ServerURL:          getenv("SHAREIT_SERVER_URL", "http://localhost:8090"),
		ServiceTokenSecret: os.Getenv("SERVICE_TOKEN_SECRET"),
		Env:                getenv("APP_ENV", "dev"),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
