package config

type App struct {
	Port               string `env:"APP_PORT" default:"8090"`
	DatabaseURL        string `env:"DATABASE_URL,required"`
	ServiceTokenSecret string `env:"SERVICE_TOKEN_SECRET"`
	Env                string `env:"APP_ENV" default:"dev"`
}

type Gateway struct {
	Port               string `env:"GATEWAY_PORT" default:"8080"`
	ServerURL          string `env:"SHAREIT_SERVER_URL" default:"http://localhost:8090"`
	ServiceTokenSecret string `env:"SERVICE_TOKEN_SECRET"`
	Env                string `env:"APP_ENV" default:"dev"`
}
