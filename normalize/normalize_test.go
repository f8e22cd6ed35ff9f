package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
	"github.com/linzigeer/sol-dex-datahub-go/events"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
	"github.com/linzigeer/sol-dex-datahub-go/poolcache"
)

func newTestCache() *poolcache.Cache {
	return poolcache.New(kvstore.NewMemStore())
}

func tokenAcc(pubkey, mint string, decimals uint8, amt uint64) ingest.IxAccount {
	return ingest.IxAccount{
		Pubkey:  pubkey,
		PostAmt: ingest.Amt{Token: &ingest.TokenAmt{Mint: mint, Decimals: decimals, Amt: amt}},
	}
}

func plainAcc(pubkey string) ingest.IxAccount {
	return ingest.IxAccount{Pubkey: pubkey}
}

// S1 — Raydium SwapBaseIn, token is coin, WSOL is pc.
func TestNormalizeRaydiumSwapBaseIn_S1(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	accounts := make([]ingest.IxAccount, 17)
	for i := range accounts {
		accounts[i] = plainAcc("x")
	}
	accounts[1] = plainAcc("<A>")
	accounts[4] = tokenAcc("coinVault", "TOKEN", 6, 1_000_000)
	accounts[5] = tokenAcc("pcVault", dex.WSOLMint.String(), 9, 2_000_000)
	accounts[16] = plainAcc("<T>")

	evt, err := Normalize(ctx, cache, dex.RaydiumAmmProgramID.String(),
		"A1x8BAAAAAAAqgAAAAAAAAABAAAAAAAAAFx8BAAAAAAA4kxOVRsAAADq2uJNY4UAAOoAAAAAAAAA",
		"", accounts, TxMeta{BlkTs: 1, Slot: 1, Txid: "tx1", Idx: 0})
	require.NoError(t, err)
	require.NotNil(t, evt)
	require.Equal(t, events.KindTrade, evt.Kind)
	require.True(t, evt.Trade.IsBuy)
	require.EqualValues(t, 293980, evt.Trade.SolAmt)
	require.EqualValues(t, 234, evt.Trade.TokenAmt)
	require.Equal(t, "TOKEN", evt.Trade.Mint)
	require.Equal(t, "<T>", evt.Trade.Trader)
}

// S3 — Pumpfun Create then Complete on the same bonding curve.
func TestNormalizePumpfunCreateThenComplete_S3(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	curve := "curveAddr"
	mint := "mintAddr"
	user := "userAddr"

	rec := poolcache.DerivePumpfunCreateOrTrade(curve, mint, false)
	require.NoError(t, cache.Touch(ctx, rec))
	created := poolCreatedEvent(rec, user, TxMeta{BlkTs: 1, Slot: 1, Txid: "tx1", Idx: 0})
	require.Equal(t, events.KindPoolCreated, created.Kind)
	require.Equal(t, mint, created.PoolCreated.MintA)

	cached, ok, err := cache.Get(ctx, curve)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, cached.IsComplete)

	completed := *cached
	completed.IsComplete = true
	require.NoError(t, cache.Touch(ctx, completed))

	recheck, ok, err := cache.Get(ctx, curve)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, recheck.IsComplete)
}

// S4 — Meteora DLMM swap with swapForY=true, mintA=WSOL.
func TestNormalizeMeteoraDlmmSwap_S4(t *testing.T) {
	rec := poolcache.Record{
		Addr: "lbPair", Dex: dex.MeteoraDlmm,
		MintA: dex.WSOLMint.String(), MintB: "TOKEN",
		DecimalsA: 9, DecimalsB: 6,
	}
	isBuy := rec.IsMeteoraDlmmBuy(true)
	require.True(t, isBuy)

	var solAmt, tokenAmt uint64 = 500, 10
	if !isBuy {
		solAmt, tokenAmt = tokenAmt, solAmt
	}
	require.EqualValues(t, 500, solAmt)
	require.EqualValues(t, 10, tokenAmt)
}

// S5 — Meteora DAMM swap balance-side inference.
func TestNormalizeMeteoraDammSwap_S5(t *testing.T) {
	accounts := make([]ingest.IxAccount, 13)
	for i := range accounts {
		accounts[i] = plainAcc("x")
	}
	accounts[0] = plainAcc("poolAddr")
	accounts[1] = tokenAcc("wsolAcc", dex.WSOLMint.String(), 9, 0)
	accounts[2] = tokenAcc("tokenAcc", "TOKEN", 6, 0)
	accounts[5] = tokenAcc("vaultA", dex.WSOLMint.String(), 9, 999000)
	accounts[6] = tokenAcc("vaultB", "TOKEN", 6, 50)
	accounts[12] = plainAcc("traderAddr")

	isBuy := meteoraDammIsBuy(accounts)
	require.True(t, isBuy)

	inAmount, protocolFee, outAmount := uint64(1_000_000), uint64(1_000), uint64(50)
	solAmt, tokenAmt := inAmount-protocolFee, outAmount
	require.EqualValues(t, 999000, solAmt)
	require.EqualValues(t, 50, tokenAmt)
}

func TestNormalizeUnknownProgramDropped(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()
	evt, err := Normalize(ctx, cache, "unknownProgram11111111111111111111111111111", "", "", nil, TxMeta{})
	require.NoError(t, err)
	require.Nil(t, evt)
}

func TestTradeEventDropsZeroAmounts(t *testing.T) {
	rec := poolcache.Record{MintA: "TOKEN", MintB: dex.WSOLMint.String(), DecimalsA: 6, DecimalsB: 9}
	evt := tradeEvent(rec, "pool", true, 0, 100, 0, 0, "trader", TxMeta{})
	require.Nil(t, evt)
}
