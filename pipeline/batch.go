package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
	"github.com/linzigeer/sol-dex-datahub-go/normalize"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
)

const (
	dexEventListKey   = "list:dex_events"
	maxDexEventLen    = 50_000
	batchLoopInterval = 300 * time.Millisecond
	parseConcurrency  = 5
)

// ErrEventQueueFull is a hard error: the caller (the supervised loop in
// main.go) treats it as a restart signal, shedding whatever is in flight.
var ErrEventQueueFull = fmt.Errorf("pipeline: event queue full")

// RunBatchWorker loops forever, snapshotting the intake queue, normalizing
// every (log, instruction) pair, and pushing the results onto the event
// queue. It returns only on a non-recoverable error; the caller is expected
// to restart it after a short sleep.
func RunBatchWorker(ctx context.Context, store kvstore.Store, cache *poolcache.Cache) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := runBatchOnce(ctx, store, cache); err != nil {
			return err
		}
		time.Sleep(batchLoopInterval)
	}
}

func runBatchOnce(ctx context.Context, store kvstore.Store, cache *poolcache.Cache) error {
	n, err := store.LLen(ctx, qnRequestListKey)
	if err != nil {
		return fmt.Errorf("pipeline: batch llen: %w", err)
	}
	if n == 0 {
		return nil
	}

	bodies, err := store.LRange(ctx, qnRequestListKey, 0, n-1)
	if err != nil {
		return fmt.Errorf("pipeline: batch lrange: %w", err)
	}

	batches := make([]*ingest.RawBatch, len(bodies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for i, body := range bodies {
		i, body := i, body
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			var rb ingest.RawBatch
			if err := json.Unmarshal([]byte(body), &rb); err != nil {
				logrus.WithError(err).Warn("pipeline: dropping unparseable batch body")
				return nil
			}
			batches[i] = &rb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("pipeline: batch parse: %w", err)
	}

	var evts []events.Event
	for _, rb := range batches {
		if rb == nil {
			continue
		}
		for _, tx := range rb.Txs {
			meta := normalize.TxMeta{BlkTs: tx.BlkTs, Slot: tx.Slot, Txid: tx.Signature}
			for i, inv := range tx.Ixs {
				if i >= len(tx.Logs) {
					break
				}
				meta.Idx = inv.Instruction.Index
				evt, err := normalize.Normalize(ctx, cache, inv.ProgramID, tx.Logs[i], inv.Instruction.Data, inv.Instruction.Accounts, meta)
				if err != nil {
					return fmt.Errorf("pipeline: normalize: %w", err)
				}
				if evt != nil {
					evts = append(evts, *evt)
				}
			}
		}
	}

	if len(evts) > 0 {
		qlen, err := store.LLen(ctx, dexEventListKey)
		if err != nil {
			return fmt.Errorf("pipeline: batch dex-event llen: %w", err)
		}
		if qlen+int64(len(evts)) > maxDexEventLen {
			return ErrEventQueueFull
		}
		raw := make([]string, len(evts))
		for i, e := range evts {
			b, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("pipeline: marshal event: %w", err)
			}
			raw[i] = string(b)
		}
		if err := store.RPush(ctx, dexEventListKey, raw...); err != nil {
			return fmt.Errorf("pipeline: batch rpush events: %w", err)
		}
	}

	if err := store.LTrim(ctx, qnRequestListKey, n, -1); err != nil {
		return fmt.Errorf("pipeline: batch ltrim intake: %w", err)
	}
	return nil
}
