// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Configuration is declared as struct fields with caarlos0/env tags:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
//
// Values are parsed once per type and cached for the lifetime of the
// process, so independent packages can load the same config struct without
// coordinating.
package config
