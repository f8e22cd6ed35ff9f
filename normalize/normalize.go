// Package normalize dispatches a decoded (programId, log, accounts) triple
// to the matching per-DEX classifier and produces the normalized event
// schema the pipeline forwards downstream. Any decode or shape error is
// logged and the triple is dropped; it never fails the surrounding batch.
package normalize

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
)

// TxMeta carries the transaction-level fields every normalized record is
// stamped with.
type TxMeta struct {
	BlkTs int64
	Slot  uint64
	Txid  string
	Idx   uint64
}

// Normalize dispatches on programID to the matching per-DEX classifier. A
// nil, nil return means the triple produced no event (unknown program,
// non-WSOL pool, zero-amount trade, or a recoverable decode/shape error
// already logged by the callee).
func Normalize(ctx context.Context, cache *poolcache.Cache, programID, log, instructionData string, accounts []ingest.IxAccount, meta TxMeta) (*events.Event, error) {
	d, ok := dex.ProgramIDFor(programID)
	if !ok {
		return nil, nil
	}
	switch d {
	case dex.RaydiumAmm:
		return normalizeRaydium(ctx, cache, log, accounts, meta)
	case dex.Pumpfun:
		return normalizePumpfun(ctx, cache, log, accounts, meta)
	case dex.PumpAmm:
		return normalizePumpAmm(ctx, cache, log, accounts, meta)
	case dex.MeteoraDlmm:
		return normalizeMeteoraDlmm(ctx, cache, log, instructionData, accounts, meta)
	case dex.MeteoraDamm:
		return normalizeMeteoraDamm(ctx, cache, log, accounts, meta)
	default:
		return nil, nil
	}
}

func warnDecode(dexName, reason string, err error) {
	logrus.WithError(err).WithField("dex", dexName).Warn(reason)
}

func mintAt(accounts []ingest.IxAccount, idx int) (string, bool) {
	if idx < 0 || idx >= len(accounts) {
		return "", false
	}
	acc := accounts[idx]
	if acc.PostAmt.Token != nil {
		return acc.PostAmt.Token.Mint, true
	}
	if acc.PreAmt.Token != nil {
		return acc.PreAmt.Token.Mint, true
	}
	return "", false
}

func tokenAmtAt(accounts []ingest.IxAccount, idx int) (*ingest.TokenAmt, bool) {
	if idx < 0 || idx >= len(accounts) {
		return nil, false
	}
	acc := accounts[idx]
	if acc.PostAmt.Token == nil {
		return nil, false
	}
	return acc.PostAmt.Token, true
}

func pubkeyAt(accounts []ingest.IxAccount, idx int) (string, bool) {
	if idx < 0 || idx >= len(accounts) {
		return "", false
	}
	return accounts[idx].Pubkey, true
}

// tradeEvent assembles the final TradeRecord once every DEX-specific
// classifier has resolved (solAmt, tokenAmt, isBuy) against a WSOL pool
// record. It drops zero-amount trades per spec invariant 2.
func tradeEvent(rec poolcache.Record, pool string, isBuy bool, solAmt, tokenAmt uint64, poolSolAmt, poolTokenAmt uint64, trader string, meta TxMeta) *events.Event {
	if solAmt == 0 || tokenAmt == 0 {
		return nil
	}
	priceSol := dex.CalcPriceSol(solAmt, tokenAmt, rec.TokenDecimals())
	return &events.Event{
		Kind: events.KindTrade,
		Trade: &events.TradeRecord{
			BlkTs:        events.NewEpochSeconds(meta.BlkTs),
			Slot:         meta.Slot,
			Txid:         meta.Txid,
			Idx:          meta.Idx,
			Mint:         rec.TokenMint(),
			Decimals:     rec.TokenDecimals(),
			Trader:       trader,
			Dex:          rec.Dex,
			Pool:         pool,
			PoolSolAmt:   poolSolAmt,
			PoolTokenAmt: poolTokenAmt,
			IsBuy:        isBuy,
			SolAmt:       solAmt,
			TokenAmt:     tokenAmt,
			PriceSol:     priceSol,
		},
	}
}

func poolCreatedEvent(rec poolcache.Record, creator string, meta TxMeta) *events.Event {
	return &events.Event{
		Kind: events.KindPoolCreated,
		PoolCreated: &events.PoolCreatedRecord{
			BlkTs:     events.NewEpochSeconds(meta.BlkTs),
			Slot:      meta.Slot,
			Txid:      meta.Txid,
			Idx:       meta.Idx,
			Creator:   creator,
			Addr:      rec.Addr,
			Dex:       rec.Dex,
			MintA:     rec.MintA,
			MintB:     rec.MintB,
			DecimalsA: rec.DecimalsA,
			DecimalsB: rec.DecimalsB,
		},
	}
}

// poolVaultAmounts orders (solAmt, tokenAmt) from a pool's two post-balances
// according to which side is WSOL.
func poolVaultAmounts(rec poolcache.Record, aAmt, bAmt uint64) (solAmt, tokenAmt uint64) {
	if rec.MintA == dex.WSOLMint.String() {
		return aAmt, bAmt
	}
	return bAmt, aAmt
}
