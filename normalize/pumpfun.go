package normalize

import (
	"context"

	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
	"github.com/linzigeer/sol-dex-datahub-go/pumpfun"
)

func normalizePumpfun(ctx context.Context, cache *poolcache.Cache, log string, accounts []ingest.IxAccount, meta TxMeta) (*events.Event, error) {
	evt, err := pumpfun.FromCPILog(log)
	if err != nil {
		warnDecode("pumpfun", "decode cpi log", err)
		return nil, nil
	}

	switch {
	case evt.Create != nil:
		c := evt.Create
		rec := poolcache.DerivePumpfunCreateOrTrade(c.BondingCurve.String(), c.Mint.String(), false)
		if err := cache.Touch(ctx, rec); err != nil {
			return nil, err
		}
		return poolCreatedEvent(rec, c.User.String(), meta), nil

	case evt.Trade != nil:
		t := evt.Trade
		curve, mint, trader, ok := pumpfunTradeAccounts(accounts)
		if !ok {
			warnDecode("pumpfun", "trade missing curve/mint/trader accounts", nil)
			return nil, nil
		}
		rec, err := cache.GetOrDerive(ctx, curve, func() (poolcache.Record, error) {
			return poolcache.DerivePumpfunCreateOrTrade(curve, mint, false), nil
		})
		if err != nil {
			return nil, err
		}
		if err := cache.Touch(ctx, rec); err != nil {
			return nil, err
		}
		return tradeEvent(rec, curve, t.IsBuy, t.SolAmount, t.TokenAmount, t.RealSolReserves, t.RealTokenReserves, trader, meta), nil

	case evt.Complete != nil:
		c := evt.Complete
		rec, err := cache.GetOrDerive(ctx, c.BondingCurve.String(), func() (poolcache.Record, error) {
			return poolcache.DerivePumpfunCreateOrTrade(c.BondingCurve.String(), c.Mint.String(), true), nil
		})
		if err != nil {
			return nil, err
		}
		rec.IsComplete = true
		if err := cache.Touch(ctx, rec); err != nil {
			return nil, err
		}
		return &events.Event{
			Kind: events.KindPumpfunComplete,
			PumpfunComplete: &events.PumpfunCompleteRecord{
				BlkTs:        events.NewEpochSeconds(meta.BlkTs),
				Slot:         meta.Slot,
				Txid:         meta.Txid,
				Idx:          meta.Idx,
				User:         c.User.String(),
				Mint:         c.Mint.String(),
				BondingCurve: c.BondingCurve.String(),
			},
		}, nil

	default:
		return nil, nil
	}
}

func pumpfunTradeAccounts(accounts []ingest.IxAccount) (curve, mint, trader string, ok bool) {
	curve, mint, trader, err := poolcache.DerivePumpfunTradeAccounts(accounts)
	if err != nil {
		return "", "", "", false
	}
	return curve, mint, trader, true
}
