// Package pipeline implements the three queue-coordinated stages between
// the inbound webhook and the outbound fan-out: intake bounding (ingress),
// batch normalization (batch), and outbound delivery (egress).
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
)

const (
	qnRequestListKey = "list:qn_requests"
	maxQNRequestLen  = 50
)

// ErrQueueFull is returned when the intake queue is at its bound; the HTTP
// handler turns this into a soft error so the upstream retries.
var ErrQueueFull = fmt.Errorf("pipeline: intake queue full")

// Ingest accepts one raw webhook body. Bodies that don't look like a real
// batch (no "metadata" token — upstream connectivity probes) are silently
// accepted and dropped. Otherwise it atomically checks the bound and
// rpushes, returning ErrQueueFull past the bound.
func Ingest(ctx context.Context, store kvstore.Store, body string) error {
	if !strings.Contains(body, "metadata") {
		return nil
	}
	n, err := store.LLen(ctx, qnRequestListKey)
	if err != nil {
		return fmt.Errorf("pipeline: ingress llen: %w", err)
	}
	if n >= maxQNRequestLen {
		return ErrQueueFull
	}
	if err := store.RPush(ctx, qnRequestListKey, body); err != nil {
		return fmt.Errorf("pipeline: ingress rpush: %w", err)
	}
	return nil
}
