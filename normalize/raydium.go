package normalize

import (
	"context"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
	"github.com/linzigeer/sol-dex-datahub-go/raydium"
)

func normalizeRaydium(ctx context.Context, cache *poolcache.Cache, log string, accounts []ingest.IxAccount, meta TxMeta) (*events.Event, error) {
	evt, err := raydium.Decode(log)
	if err != nil {
		warnDecode("raydium", "decode ray_log", err)
		return nil, nil
	}

	switch evt.Kind {
	case raydium.LogInit:
		rec, creator, err := poolcache.DeriveRaydiumInit(evt.Init, accounts)
		if err != nil {
			warnDecode("raydium", "derive init pool", err)
			return nil, nil
		}
		if err := cache.Touch(ctx, rec); err != nil {
			return nil, err
		}
		if !rec.IsWSOLPool() {
			return nil, nil
		}
		return poolCreatedEvent(rec, creator, meta), nil

	case raydium.LogSwapBaseIn, raydium.LogSwapBaseOut:
		poolAddr, ok := pubkeyAt(accounts, 1)
		if !ok {
			warnDecode("raydium", "swap missing pool account", nil)
			return nil, nil
		}
		var deriveErr error
		rec, err := cache.GetOrDerive(ctx, poolAddr, func() (poolcache.Record, error) {
			r, err := poolcache.DeriveRaydiumSwap(accounts)
			deriveErr = err
			return r, err
		})
		if deriveErr != nil {
			warnDecode("raydium", "derive swap pool", deriveErr)
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

		var direction uint64
		var actualIn, actualOut uint64
		if evt.Kind == raydium.LogSwapBaseIn {
			direction = evt.SwapBaseIn.Direction
			actualIn = evt.SwapBaseIn.AmountIn
			actualOut = evt.SwapBaseIn.OutAmount
		} else {
			direction = evt.SwapBaseOut.Direction
			actualIn = evt.SwapBaseOut.DeductIn
			actualOut = evt.SwapBaseOut.AmountOut
		}

		pc2coin := direction == 1
		var pcAmt, coinAmt uint64
		if pc2coin {
			pcAmt, coinAmt = actualIn, actualOut
		} else {
			pcAmt, coinAmt = actualOut, actualIn
		}

		bIsWsol := rec.MintB == dex.WSOLMint.String()
		var solAmt, tokenAmt uint64
		if bIsWsol {
			solAmt, tokenAmt = pcAmt, coinAmt
		} else {
			solAmt, tokenAmt = coinAmt, pcAmt
		}
		isBuy := rec.IsRaydiumBuy(direction)

		coinIdx, pcIdx := poolcache.RaydiumSwapVaultIdx(len(accounts))
		coinVault, _ := tokenAmtAt(accounts, coinIdx)
		pcVault, _ := tokenAmtAt(accounts, pcIdx)
		var poolSolAmt, poolTokenAmt uint64
		if coinVault != nil && pcVault != nil {
			if bIsWsol {
				poolSolAmt, poolTokenAmt = pcVault.Amt, coinVault.Amt
			} else {
				poolSolAmt, poolTokenAmt = coinVault.Amt, pcVault.Amt
			}
		}

		trader, _ := pubkeyAt(accounts, len(accounts)-1)
		return tradeEvent(rec, poolAddr, isBuy, solAmt, tokenAmt, poolSolAmt, poolTokenAmt, trader, meta), nil

	default:
		return nil, nil
	}
}
