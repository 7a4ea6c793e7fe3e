package main

import (
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
	"shareit/app/echoServer/validation"
	"shareit/app/gateway"
	"shareit/config"
)

func main() {
	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cl := gateway.NewClient(cfg.ServerURL, cfg.ServiceTokenSecret)
	gw := &gateway.Controller{Client: cl, V: validator.New(), Log: log}

	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()
	e.JSONSerializer = echoServer.JSONSerializer{}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	gateway.Register(e, gw)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting gateway", "port", port, "server_url", cfg.ServerURL, "env", cfg.Env)
	e.Logger.Fatal(e.Start(":" + port))
}
