// Package config defines the process's runtime settings and the CLI flags
// (urfave/cli) that populate them, mirroring the upstream provider's
// AppConfig shape.
package config

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Config is every setting the pipeline needs at startup.
type Config struct {
	ListenOn        string
	WebhookEndpoint string
	RedisURL        string
}

// Flags are the urfave/cli flags main.go registers on its *cli.App.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "listen-on",
			Usage:   "host:port the inbound webhook server binds to",
			Value:   "0.0.0.0:8080",
			EnvVars: []string{"LISTEN_ON"},
		},
		&cli.StringFlag{
			Name:     "webhook-endpoint",
			Usage:    "URL the egress worker POSTs normalized event batches to",
			EnvVars:  []string{"WEBHOOK_ENDPOINT"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "Redis connection URL backing the shared KV store",
			Value:   "redis://127.0.0.1:6379/0",
			EnvVars: []string{"REDIS_URL"},
		},
	}
}

// FromCLI builds a Config from a populated *cli.Context.
func FromCLI(c *cli.Context) (Config, error) {
	cfg := Config{
		ListenOn:        c.String("listen-on"),
		WebhookEndpoint: c.String("webhook-endpoint"),
		RedisURL:        c.String("redis-url"),
	}
	if cfg.WebhookEndpoint == "" {
		return Config{}, fmt.Errorf("config: webhook-endpoint is required")
	}
	return cfg, nil
}
