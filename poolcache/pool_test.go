package poolcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/kvstore"
	"github.com/linzigeer/sol-dex-datahub-go/meteoradamm"
	"github.com/linzigeer/sol-dex-datahub-go/pumpamm"
	"github.com/linzigeer/sol-dex-datahub-go/raydium"
	"github.com/gagliardetto/solana-go"
)

func tokenAccount(pubkey, mint string, decimals uint8, amt uint64) ingest.IxAccount {
	return ingest.IxAccount{
		Pubkey: pubkey,
		PostAmt: ingest.Amt{
			Token: &ingest.TokenAmt{Mint: mint, Decimals: decimals, Amt: amt},
		},
	}
}

func plainAccount(pubkey string) ingest.IxAccount {
	return ingest.IxAccount{Pubkey: pubkey}
}

func TestDeriveRaydiumInit(t *testing.T) {
	accounts := make([]ingest.IxAccount, 18)
	for i := range accounts {
		accounts[i] = plainAccount("acct" + string(rune('A'+i)))
	}
	accounts[4] = plainAccount("poolAddr")
	accounts[8] = plainAccount("coinMint")
	accounts[9] = plainAccount("pcMint")
	accounts[17] = plainAccount("creatorAddr")

	log := &raydium.InitLog{CoinDecimals: 9, PcDecimals: 6}
	rec, creator, err := DeriveRaydiumInit(log, accounts)
	require.NoError(t, err)
	require.Equal(t, "poolAddr", rec.Addr)
	require.Equal(t, dex.RaydiumAmm, rec.Dex)
	require.Equal(t, "coinMint", rec.MintA)
	require.Equal(t, "pcMint", rec.MintB)
	require.Equal(t, uint8(9), rec.DecimalsA)
	require.Equal(t, uint8(6), rec.DecimalsB)
	require.Equal(t, "creatorAddr", creator)
}

func TestDeriveRaydiumSwap17Accounts(t *testing.T) {
	accounts := make([]ingest.IxAccount, 17)
	for i := range accounts {
		accounts[i] = plainAccount("x")
	}
	accounts[1] = plainAccount("pool17")
	accounts[4] = tokenAccount("coinVault", "coinMint", 9, 1000)
	accounts[5] = tokenAccount("pcVault", "pcMint", 6, 2000)

	rec, err := DeriveRaydiumSwap(accounts)
	require.NoError(t, err)
	require.Equal(t, "pool17", rec.Addr)
	require.Equal(t, "coinMint", rec.MintA)
	require.Equal(t, "pcMint", rec.MintB)
}

func TestDeriveRaydiumSwap18Accounts(t *testing.T) {
	accounts := make([]ingest.IxAccount, 18)
	for i := range accounts {
		accounts[i] = plainAccount("x")
	}
	accounts[1] = plainAccount("pool18")
	accounts[5] = tokenAccount("coinVault", "coinMint", 9, 1000)
	accounts[6] = tokenAccount("pcVault", "pcMint", 6, 2000)

	rec, err := DeriveRaydiumSwap(accounts)
	require.NoError(t, err)
	require.Equal(t, "pool18", rec.Addr)
	require.Equal(t, "coinMint", rec.MintA)
	require.Equal(t, "pcMint", rec.MintB)
}

func TestDerivePumpfunTradeAccounts(t *testing.T) {
	accounts := make([]ingest.IxAccount, 10)
	for i := range accounts {
		accounts[i] = plainAccount("x")
	}
	accounts[2] = plainAccount("mintAddr")
	accounts[3] = plainAccount("curveAddr")
	accounts[6] = plainAccount("traderAddr")

	curve, mint, trader, err := DerivePumpfunTradeAccounts(accounts)
	require.NoError(t, err)
	require.Equal(t, "curveAddr", curve)
	require.Equal(t, "mintAddr", mint)
	require.Equal(t, "traderAddr", trader)

	rec := DerivePumpfunCreateOrTrade(curve, mint, false)
	require.Equal(t, dex.Pumpfun, rec.Dex)
	require.Equal(t, dex.WSOLMint.String(), rec.MintB)
	require.Equal(t, uint8(6), rec.DecimalsA)
	require.Equal(t, uint8(9), rec.DecimalsB)
}

func TestDerivePumpAmmCreateAndSwap(t *testing.T) {
	pool := solana.NewWallet().PublicKey()
	base := solana.NewWallet().PublicKey()
	quote := solana.NewWallet().PublicKey()
	creator := solana.NewWallet().PublicKey()

	evt := &pumpamm.CreatePoolEvent{
		Pool:              pool,
		BaseMint:          base,
		QuoteMint:         quote,
		BaseMintDecimals:  6,
		QuoteMintDecimals: 9,
		Creator:           creator,
	}
	rec, creatorStr := DerivePumpAmmCreate(evt)
	require.Equal(t, pool.String(), rec.Addr)
	require.Equal(t, base.String(), rec.MintA)
	require.Equal(t, quote.String(), rec.MintB)
	require.Equal(t, creator.String(), creatorStr)

	accounts := make([]ingest.IxAccount, 9)
	for i := range accounts {
		accounts[i] = plainAccount("x")
	}
	accounts[7] = tokenAccount("baseVault", base.String(), 6, 100)
	accounts[8] = tokenAccount("quoteVault", quote.String(), 9, 200)

	swapRec, err := DerivePumpAmmSwap(pool.String(), accounts)
	require.NoError(t, err)
	require.Equal(t, pool.String(), swapRec.Addr)
	require.Equal(t, base.String(), swapRec.MintA)
	require.Equal(t, quote.String(), swapRec.MintB)
}

func TestDeriveMeteoraDlmmCreateAndSwap(t *testing.T) {
	accounts := make([]ingest.IxAccount, 9)
	for i := range accounts {
		accounts[i] = plainAccount("x")
	}
	accounts[4] = tokenAccount("vaultX", "tokenXMint", 9, 1)
	accounts[5] = tokenAccount("vaultY", "tokenYMint", 6, 2)
	accounts[8] = plainAccount("creatorAddr")

	rec, creator, err := DeriveMeteoraDlmmCreate("lbPairAddr", "tokenXMint", "tokenYMint", accounts)
	require.NoError(t, err)
	require.Equal(t, "lbPairAddr", rec.Addr)
	require.Equal(t, uint8(9), rec.DecimalsA)
	require.Equal(t, uint8(6), rec.DecimalsB)
	require.Equal(t, "creatorAddr", creator)

	swapAccounts := make([]ingest.IxAccount, 11)
	for i := range swapAccounts {
		swapAccounts[i] = plainAccount("x")
	}
	swapAccounts[0] = plainAccount("lbPairAddr")
	swapAccounts[2] = tokenAccount("vaultX", "tokenXMint", 9, 1)
	swapAccounts[3] = tokenAccount("vaultY", "tokenYMint", 6, 2)
	swapAccounts[10] = plainAccount("traderAddr")

	swapRec, err := DeriveMeteoraDlmmSwap(swapAccounts)
	require.NoError(t, err)
	require.Equal(t, "lbPairAddr", swapRec.Addr)
	trader, err := MeteoraDlmmSwapTrader(swapAccounts)
	require.NoError(t, err)
	require.Equal(t, "traderAddr", trader)
}

func TestDeriveMeteoraDammCreateVariants(t *testing.T) {
	pool := solana.NewWallet().PublicKey()

	withConfig := make([]ingest.IxAccount, 18)
	for i := range withConfig {
		withConfig[i] = plainAccount("x")
	}
	withConfig[6] = tokenAccount("vaultA", "mintA", 9, 1)
	withConfig[7] = tokenAccount("vaultB", "mintB", 6, 2)
	withConfig[17] = plainAccount("creator1")

	evt := &meteoradamm.PoolCreatedEvent{Pool: pool}
	rec, creator, err := DeriveMeteoraDammCreate(evt, MeteoraDammWithConfig, withConfig)
	require.NoError(t, err)
	require.Equal(t, pool.String(), rec.Addr)
	require.Equal(t, "mintA", rec.MintA)
	require.Equal(t, "creator1", creator)

	withConfig2 := make([]ingest.IxAccount, 19)
	for i := range withConfig2 {
		withConfig2[i] = plainAccount("x")
	}
	withConfig2[7] = tokenAccount("vaultA", "mintA2", 9, 1)
	withConfig2[8] = tokenAccount("vaultB", "mintB2", 6, 2)
	withConfig2[18] = plainAccount("creator2")

	rec2, creator2, err := DeriveMeteoraDammCreate(evt, MeteoraDammWithConfig2, withConfig2)
	require.NoError(t, err)
	require.Equal(t, "mintA2", rec2.MintA)
	require.Equal(t, "creator2", creator2)
}

func TestDeriveMeteoraDammSwap(t *testing.T) {
	accounts := make([]ingest.IxAccount, 13)
	for i := range accounts {
		accounts[i] = plainAccount("x")
	}
	accounts[0] = plainAccount("poolAddr")
	accounts[5] = tokenAccount("vaultA", "mintA", 9, 1)
	accounts[6] = tokenAccount("vaultB", "mintB", 6, 2)
	accounts[12] = plainAccount("traderAddr")

	rec, err := DeriveMeteoraDammSwap(accounts)
	require.NoError(t, err)
	require.Equal(t, "poolAddr", rec.Addr)
	trader, err := MeteoraDammSwapTrader(accounts)
	require.NoError(t, err)
	require.Equal(t, "traderAddr", trader)
}

func TestRecordIsWSOLPoolAndDirection(t *testing.T) {
	wsol := dex.WSOLMint.String()
	rec := Record{MintA: "tokenMint", MintB: wsol, DecimalsA: 6, DecimalsB: 9}
	require.True(t, rec.IsWSOLPool())
	require.Equal(t, "tokenMint", rec.TokenMint())
	require.Equal(t, uint8(6), rec.TokenDecimals())

	require.True(t, rec.IsRaydiumBuy(1))
	require.False(t, rec.IsRaydiumBuy(2))

	aIsWsolRec := Record{MintA: wsol, MintB: "tokenMint"}
	require.True(t, aIsWsolRec.IsMeteoraDlmmBuy(true))
	require.False(t, aIsWsolRec.IsMeteoraDlmmBuy(false))
}

func TestCacheGetOrDerive(t *testing.T) {
	store := kvstore.NewMemStore()
	c := New(store)
	ctx := context.Background()

	calls := 0
	derive := func() (Record, error) {
		calls++
		return Record{Addr: "addr1", Dex: dex.Pumpfun, MintA: "m", MintB: dex.WSOLMint.String()}, nil
	}

	rec1, err := c.GetOrDerive(ctx, "addr1", derive)
	require.NoError(t, err)
	require.Equal(t, "addr1", rec1.Addr)
	require.Equal(t, 1, calls)

	rec2, err := c.GetOrDerive(ctx, "addr1", derive)
	require.NoError(t, err)
	require.Equal(t, "addr1", rec2.Addr)
	require.Equal(t, 1, calls, "second call should hit cache, not invoke derive again")
}
