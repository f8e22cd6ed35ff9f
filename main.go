package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/linzigeer/sol-dex-datahub-go/config"
	"github.com/linzigeer/sol-dex-datahub-go/httpapi"
	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
	"github.com/linzigeer/sol-dex-datahub-go/pipeline"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
	"github.com/linzigeer/sol-dex-datahub-go/wsfanout"
)

// supervisorBackoff is how long a failed loop sleeps before restarting,
// matching the upstream's tokio::spawn retry wrapper.
const supervisorBackoff = 100 * time.Millisecond

func main() {
	app := &cli.App{
		Name:  "sol-dex-datahub",
		Usage: "ingests Solana DEX webhook events, normalizes them, and fans them out",
		Flags: config.Flags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.FromCLI(c)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("sol-dex-datahub: exiting")
	}
}

func run(cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := kvstore.NewRedisStore(cfg.RedisURL)
	if err != nil {
		return err
	}
	cache := poolcache.New(store)
	fanout := wsfanout.New(store)
	e := httpapi.New(store, fanout)
	client := pipeline.NewOutboundHTTPClient()

	supervise(ctx, "http", func() error {
		return httpapi.Run(ctx, e, cfg.ListenOn)
	})
	supervise(ctx, "batch-worker", func() error {
		return pipeline.RunBatchWorker(ctx, store, cache)
	})
	supervise(ctx, "egress-worker", func() error {
		return pipeline.RunEgressWorker(ctx, store, client, cfg.WebhookEndpoint)
	})

	<-ctx.Done()
	logrus.Info("sol-dex-datahub: shutting down")
	return nil
}

// supervise runs fn in a goroutine that restarts it after supervisorBackoff
// whenever it returns a non-nil error, until ctx is cancelled.
func supervise(ctx context.Context, name string, fn func() error) {
	go func() {
		for {
			if ctx.Err() != nil {
				return
			}
			if err := fn(); err != nil {
				if ctx.Err() != nil {
					return
				}
				logrus.WithError(err).WithField("loop", name).Warn("sol-dex-datahub: loop exited, restarting")
				time.Sleep(supervisorBackoff)
				continue
			}
			return
		}
	}()
}
