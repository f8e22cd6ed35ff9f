package normalize

import (
	"context"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/meteoradamm"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
)

func normalizeMeteoraDamm(ctx context.Context, cache *poolcache.Cache, log string, accounts []ingest.IxAccount, meta TxMeta) (*events.Event, error) {
	evt, err := meteoradamm.Decode(log)
	if err != nil {
		warnDecode("meteoradamm", "decode pool-data log", err)
		return nil, nil
	}

	switch {
	case evt.PoolCreated != nil:
		p := evt.PoolCreated
		variant := meteoraDammCreateVariant(accounts)
		rec, creator, err := poolcache.DeriveMeteoraDammCreate(p, variant, accounts)
		if err != nil {
			warnDecode("meteoradamm", "derive pool-created pool", err)
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
		poolAddr, ok := pubkeyAt(accounts, 0)
		if !ok {
			warnDecode("meteoradamm", "swap missing pool account", nil)
			return nil, nil
		}
		var deriveErr error
		rec, err := cache.GetOrDerive(ctx, poolAddr, func() (poolcache.Record, error) {
			r, err := poolcache.DeriveMeteoraDammSwap(accounts)
			deriveErr = err
			return r, err
		})
		if deriveErr != nil {
			warnDecode("meteoradamm", "derive swap pool", deriveErr)
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

		isBuy := meteoraDammIsBuy(accounts)
		var solAmt, tokenAmt uint64
		if isBuy {
			solAmt, tokenAmt = s.InAmount-s.ProtocolFee, s.OutAmount
		} else {
			solAmt, tokenAmt = s.OutAmount-s.ProtocolFee, s.InAmount
		}

		aVault, _ := tokenAmtAt(accounts, 5)
		bVault, _ := tokenAmtAt(accounts, 6)
		var poolSolAmt, poolTokenAmt uint64
		if aVault != nil && bVault != nil {
			poolSolAmt, poolTokenAmt = poolVaultAmounts(rec, aVault.Amt, bVault.Amt)
		}

		trader, err := poolcache.MeteoraDammSwapTrader(accounts)
		if err != nil {
			warnDecode("meteoradamm", "swap missing trader account", err)
			return nil, nil
		}
		return tradeEvent(rec, poolAddr, isBuy, solAmt, tokenAmt, poolSolAmt, poolTokenAmt, trader, meta), nil

	default:
		return nil, nil
	}
}

// meteoraDammIsBuy infers trade direction from the balance-change side:
// if accounts[1]'s token mint is WSOL the user paid SOL (buy); otherwise
// accounts[2]'s mint resolves it.
func meteoraDammIsBuy(accounts []ingest.IxAccount) bool {
	if m, ok := mintAt(accounts, 1); ok && m == dex.WSOLMint.String() {
		return true
	}
	if m, ok := mintAt(accounts, 2); ok {
		return m != dex.WSOLMint.String()
	}
	return false
}

// meteoraDammCreateVariant picks the pool-created account layout by account
// count, a heuristic stand-in for a discriminator check (see DESIGN.md).
func meteoraDammCreateVariant(accounts []ingest.IxAccount) poolcache.MeteoraDammCreateVariant {
	if len(accounts) >= 19 {
		return poolcache.MeteoraDammWithConfig2
	}
	return poolcache.MeteoraDammWithConfig
}
