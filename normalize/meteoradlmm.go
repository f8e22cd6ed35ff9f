package normalize

import (
	"context"

	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/meteoradlmm"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
)

func normalizeMeteoraDlmm(ctx context.Context, cache *poolcache.Cache, log, instructionData string, accounts []ingest.IxAccount, meta TxMeta) (*events.Event, error) {
	if meteoradlmm.IsInitBinArray(instructionData) {
		return nil, nil
	}

	evt, err := meteoradlmm.FromCPILog(log)
	if err != nil {
		warnDecode("meteoradlmm", "decode cpi log", err)
		return nil, nil
	}

	switch {
	case evt.LbPairCreate != nil:
		c := evt.LbPairCreate
		rec, creator, err := poolcache.DeriveMeteoraDlmmCreate(c.LbPair.String(), c.TokenX.String(), c.TokenY.String(), accounts)
		if err != nil {
			warnDecode("meteoradlmm", "derive lb-pair-create pool", err)
			return nil, nil
		}
		if err := cache.Touch(ctx, rec); err != nil {
			return nil, err
		}
		if !rec.IsWSOLPool() {
			return nil, nil
		}
		return poolCreatedEvent(rec, creator, meta), nil

	case evt.Swap != nil:
		s := evt.Swap
		poolAddr := s.LbPair.String()
		var deriveErr error
		rec, err := cache.GetOrDerive(ctx, poolAddr, func() (poolcache.Record, error) {
			r, err := poolcache.DeriveMeteoraDlmmSwap(accounts)
			deriveErr = err
			return r, err
		})
		if deriveErr != nil {
			warnDecode("meteoradlmm", "derive swap pool", deriveErr)
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if err := cache.Touch(ctx, rec); err != nil {
			return nil, err
		}
		if !rec.IsWSOLPool() {
			return nil, nil
		}

		isBuy := rec.IsMeteoraDlmmBuy(s.SwapForY)
		var solAmt, tokenAmt uint64
		if isBuy {
			solAmt, tokenAmt = s.AmountIn, s.AmountOut
		} else {
			solAmt, tokenAmt = s.AmountOut, s.AmountIn
		}

		xVault, _ := tokenAmtAt(accounts, 2)
		yVault, _ := tokenAmtAt(accounts, 3)
		var poolSolAmt, poolTokenAmt uint64
		if xVault != nil && yVault != nil {
			poolSolAmt, poolTokenAmt = poolVaultAmounts(rec, xVault.Amt, yVault.Amt)
		}

		trader, err := poolcache.MeteoraDlmmSwapTrader(accounts)
		if err != nil {
			trader = s.From.String()
		}
		return tradeEvent(rec, poolAddr, isBuy, solAmt, tokenAmt, poolSolAmt, poolTokenAmt, trader, meta), nil

	default:
		return nil, nil
	}
}
