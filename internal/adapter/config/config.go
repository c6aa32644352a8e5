package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Broker   *Broker
	Admin    *Admin
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Broker struct {
	URL string `env:"AMQP_URL"`
}

type Admin struct {
	Login    string `env:"ADMIN_LOGIN"`
	Password string `env:"ADMIN_PASSWORD"`
}

func NewConfig() (*Config, error) {
	var db Database
	var http HTTP
	var broker Broker
	var admin Admin
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&broker.URL, "b", "", "AMQP broker URL (empty disables notifications)")
	flag.StringVar(&admin.Login, "u", `admin`, "Bootstrap admin login")
	flag.StringVar(&admin.Password, "p", "", "Bootstrap admin password")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&broker)
	if err != nil {
		return nil, fmt.Errorf("error parsing broker config: %w", err)
	}
	err = env.Parse(&admin)
	if err != nil {
		return nil, fmt.Errorf("error parsing admin config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Broker:   &broker,
		Admin:    &admin,
		App:      &app,
	}

	return &config, nil
}
