package normalize

import (
	"context"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
	"github.com/linzigeer/sol-dex-datahub-go/pumpamm"
)

func normalizePumpAmm(ctx context.Context, cache *poolcache.Cache, log string, accounts []ingest.IxAccount, meta TxMeta) (*events.Event, error) {
	evt, err := pumpamm.FromCPILog(log)
	if err != nil {
		warnDecode("pumpamm", "decode cpi log", err)
		return nil, nil
	}

	switch {
	case evt.CreatePool != nil:
		rec, creator := poolcache.DerivePumpAmmCreate(evt.CreatePool)
		if err := cache.Touch(ctx, rec); err != nil {
			return nil, err
		}
		if !rec.IsWSOLPool() {
			return nil, nil
		}
		return poolCreatedEvent(rec, creator, meta), nil

	case evt.Buy != nil:
		b := evt.Buy
		poolAddr := b.Pool.String()
		var deriveErr error
		rec, err := cache.GetOrDerive(ctx, poolAddr, func() (poolcache.Record, error) {
			r, err := poolcache.DerivePumpAmmSwap(poolAddr, accounts)
			deriveErr = err
			return r, err
		})
		if deriveErr != nil {
			warnDecode("pumpamm", "derive buy pool", deriveErr)
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

		baseIsWsol := rec.MintA == dex.WSOLMint.String()
		var solAmt, tokenAmt uint64
		isBuy := !baseIsWsol
		if baseIsWsol {
			solAmt, tokenAmt = b.BaseAmountOut, b.QuoteAmountInWithLpFee
		} else {
			solAmt, tokenAmt = b.QuoteAmountInWithLpFee, b.BaseAmountOut
		}

		poolSolAmt, poolTokenAmt := pumpAmmVaultAmounts(rec, accounts)
		return tradeEvent(rec, poolAddr, isBuy, solAmt, tokenAmt, poolSolAmt, poolTokenAmt, b.User.String(), meta), nil

	case evt.Sell != nil:
		s := evt.Sell
		poolAddr := s.Pool.String()
		var deriveErr error
		rec, err := cache.GetOrDerive(ctx, poolAddr, func() (poolcache.Record, error) {
			r, err := poolcache.DerivePumpAmmSwap(poolAddr, accounts)
			deriveErr = err
			return r, err
		})
		if deriveErr != nil {
			warnDecode("pumpamm", "derive sell pool", deriveErr)
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

		baseIsWsol := rec.MintA == dex.WSOLMint.String()
		var solAmt, tokenAmt uint64
		isBuy := baseIsWsol
		if baseIsWsol {
			solAmt, tokenAmt = s.BaseAmountIn, s.UserQuoteAmountOut
		} else {
			solAmt, tokenAmt = s.UserQuoteAmountOut, s.BaseAmountIn
		}

		poolSolAmt, poolTokenAmt := pumpAmmVaultAmounts(rec, accounts)
		return tradeEvent(rec, poolAddr, isBuy, solAmt, tokenAmt, poolSolAmt, poolTokenAmt, s.User.String(), meta), nil

	default:
		return nil, nil
	}
}

// pumpAmmVaultAmounts reads the base/quote vault post-balances (mintA/mintB
// respectively, per DerivePumpAmmCreate/Swap's field assignment) and orders
// them as (solAmt, tokenAmt) by WSOL side.
func pumpAmmVaultAmounts(rec poolcache.Record, accounts []ingest.IxAccount) (solAmt, tokenAmt uint64) {
	base, ok1 := tokenAmtAt(accounts, 7)
	quote, ok2 := tokenAmtAt(accounts, 8)
	if !ok1 || !ok2 {
		return 0, 0
	}
	return poolVaultAmounts(rec, base.Amt, quote.Amt)
}
