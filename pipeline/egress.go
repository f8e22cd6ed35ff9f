package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
)

const egressLoopInterval = 500 * time.Millisecond

// NewOutboundHTTPClient builds the single shared client the egress worker
// posts with: 200ms connect timeout, 1s total timeout.
func NewOutboundHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: 200 * time.Millisecond}
	return &http.Client{
		Timeout: time.Second,
		Transport: &http.Transport{
			DialContext: dialer.DialContext,
		},
	}
}

// RunEgressWorker loops forever, snapshotting list:dex_events, bucketing
// it, and POSTing the bucketed body to endpoint. On any error other than a
// clean 200 response the list is left intact and retried next iteration.
func RunEgressWorker(ctx context.Context, store kvstore.Store, client *http.Client, endpoint string) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runEgressOnce(ctx, store, client, endpoint); err != nil {
			return err
		}
		time.Sleep(egressLoopInterval)
	}
}

func runEgressOnce(ctx context.Context, store kvstore.Store, client *http.Client, endpoint string) error {
	n, err := store.LLen(ctx, dexEventListKey)
	if err != nil {
		return fmt.Errorf("pipeline: egress llen: %w", err)
	}
	if n == 0 {
		return nil
	}

	raw, err := store.LRange(ctx, dexEventListKey, 0, n-1)
	if err != nil {
		return fmt.Errorf("pipeline: egress lrange: %w", err)
	}

	evts := make([]events.Event, 0, len(raw))
	for _, r := range raw {
		var e events.Event
		if err := json.Unmarshal([]byte(r), &e); err != nil {
			logrus.WithError(err).Warn("pipeline: dropping unparseable queued event")
			continue
		}
		evts = append(evts, e)
	}

	body, err := json.Marshal(events.Bucket(evts))
	if err != nil {
		return fmt.Errorf("pipeline: egress marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("pipeline: egress build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		logrus.WithError(err).Warn("pipeline: egress post failed, will retry")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("pipeline: egress non-200, will retry")
		return nil
	}

	if err := store.LTrim(ctx, dexEventListKey, n, -1); err != nil {
		return fmt.Errorf("pipeline: egress ltrim: %w", err)
	}
	return nil
}
