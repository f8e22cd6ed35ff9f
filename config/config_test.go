package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, args map[string]string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range Flags() {
		require.NoError(t, f.Apply(set))
	}
	c := cli.NewContext(cli.NewApp(), set, nil)
	for k, v := range args {
		require.NoError(t, set.Set(k, v))
	}
	return c
}

func TestFromCLIDefaults(t *testing.T) {
	c := newContext(t, map[string]string{"webhook-endpoint": "https://example.com/hook"})
	cfg, err := FromCLI(c)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.ListenOn)
	require.Equal(t, "https://example.com/hook", cfg.WebhookEndpoint)
	require.Equal(t, "redis://127.0.0.1:6379/0", cfg.RedisURL)
}

func TestFromCLIRequiresWebhookEndpoint(t *testing.T) {
	c := newContext(t, nil)
	_, err := FromCLI(c)
	require.Error(t, err)
}

func TestFromCLIOverrides(t *testing.T) {
	c := newContext(t, map[string]string{
		"webhook-endpoint": "https://example.com/hook",
		"listen-on":        "127.0.0.1:9090",
		"redis-url":        "redis://cache:6380/1",
	})
	cfg, err := FromCLI(c)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", cfg.ListenOn)
	require.Equal(t, "redis://cache:6380/1", cfg.RedisURL)
}
