package poolcache

import (
	"fmt"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
	"github.com/linzigeer/sol-dex-datahub-go/ingest"
	"github.com/linzigeer/sol-dex-datahub-go/meteoradamm"
	"github.com/linzigeer/sol-dex-datahub-go/pumpamm"
	"github.com/linzigeer/sol-dex-datahub-go/raydium"
)

// Derivation helpers are pure functions over the instruction's accounts:
// they never touch the KV store. Callers decide whether to look the pool
// up in the cache first.

// DeriveRaydiumInit derives a pool record from a Raydium AMM Init log.
// Pool addr = accounts[4]; coin mint = accounts[8] (decimals from the
// log); pc mint = accounts[9]; creator = accounts[17].
func DeriveRaydiumInit(log *raydium.InitLog, accounts []ingest.IxAccount) (Record, string, error) {
	poolAddr, err := pubkeyAt(accounts, 4)
	if err != nil {
		return Record{}, "", err
	}
	coinMint, err := pubkeyAt(accounts, 8)
	if err != nil {
		return Record{}, "", err
	}
	pcMint, err := pubkeyAt(accounts, 9)
	if err != nil {
		return Record{}, "", err
	}
	creator, err := pubkeyAt(accounts, 17)
	if err != nil {
		return Record{}, "", err
	}
	return Record{
		Addr:      poolAddr,
		Dex:       dex.RaydiumAmm,
		MintA:     coinMint,
		MintB:     pcMint,
		DecimalsA: log.CoinDecimals,
		DecimalsB: log.PcDecimals,
	}, creator, nil
}

// RaydiumSwapVaultIdx returns the (coin, pc) vault account indices for a
// Raydium AMM swap, which shift by one when the upstream provider
// includes the extra 18th account.
func RaydiumSwapVaultIdx(accountsLen int) (coinIdx, pcIdx int) {
	if accountsLen == 18 {
		return 5, 6
	}
	return 4, 5
}

// DeriveRaydiumSwap derives a pool record from a Raydium AMM swap's
// accounts. Pool addr = accounts[1]; coin/pc vaults per
// RaydiumSwapVaultIdx.
func DeriveRaydiumSwap(accounts []ingest.IxAccount) (Record, error) {
	poolAddr, err := pubkeyAt(accounts, 1)
	if err != nil {
		return Record{}, err
	}
	coinIdx, pcIdx := RaydiumSwapVaultIdx(len(accounts))
	coinAmt, _, err := tokenAmtAt(accounts, coinIdx)
	if err != nil {
		return Record{}, fmt.Errorf("raydium swap coin vault: %w", err)
	}
	pcAmt, _, err := tokenAmtAt(accounts, pcIdx)
	if err != nil {
		return Record{}, fmt.Errorf("raydium swap pc vault: %w", err)
	}
	return Record{
		Addr:      poolAddr,
		Dex:       dex.RaydiumAmm,
		MintA:     coinAmt.Mint,
		MintB:     pcAmt.Mint,
		DecimalsA: coinAmt.Decimals,
		DecimalsB: pcAmt.Decimals,
	}, nil
}

// DerivePumpfunCreateOrTrade builds the pool record for a bonding curve
// given its address and mint; used for both create and trade paths since
// Pumpfun pools are always token/WSOL with fixed decimals.
func DerivePumpfunCreateOrTrade(curve, mint string, isComplete bool) Record {
	return Record{
		Addr:       curve,
		Dex:        dex.Pumpfun,
		MintA:      mint,
		MintB:      dex.WSOLMint.String(),
		DecimalsA:  6,
		DecimalsB:  9,
		IsComplete: isComplete,
	}
}

// DerivePumpfunTradeAccounts resolves the bonding curve and mint pubkeys
// from a Pumpfun trade's accounts: curve = accounts[3], mint =
// accounts[2], trader = accounts[6].
func DerivePumpfunTradeAccounts(accounts []ingest.IxAccount) (curve, mint, trader string, err error) {
	curve, err = pubkeyAt(accounts, 3)
	if err != nil {
		return "", "", "", err
	}
	mint, err = pubkeyAt(accounts, 2)
	if err != nil {
		return "", "", "", err
	}
	trader, err = pubkeyAt(accounts, 6)
	if err != nil {
		return "", "", "", err
	}
	return curve, mint, trader, nil
}

// DerivePumpAmmCreate derives a pool record from a Pump-AMM CreatePool
// event; all fields come from the event itself.
func DerivePumpAmmCreate(evt *pumpamm.CreatePoolEvent) (Record, string) {
	return Record{
		Addr:      evt.Pool.String(),
		Dex:       dex.PumpAmm,
		MintA:     evt.BaseMint.String(),
		MintB:     evt.QuoteMint.String(),
		DecimalsA: evt.BaseMintDecimals,
		DecimalsB: evt.QuoteMintDecimals,
	}, evt.Creator.String()
}

// DerivePumpAmmSwap derives a pool record from a Pump-AMM swap's
// accounts: base vault = accounts[7], quote vault = accounts[8].
func DerivePumpAmmSwap(poolAddr string, accounts []ingest.IxAccount) (Record, error) {
	baseAmt, _, err := tokenAmtAt(accounts, 7)
	if err != nil {
		return Record{}, fmt.Errorf("pumpamm swap base vault: %w", err)
	}
	quoteAmt, _, err := tokenAmtAt(accounts, 8)
	if err != nil {
		return Record{}, fmt.Errorf("pumpamm swap quote vault: %w", err)
	}
	return Record{
		Addr:      poolAddr,
		Dex:       dex.PumpAmm,
		MintA:     baseAmt.Mint,
		MintB:     quoteAmt.Mint,
		DecimalsA: baseAmt.Decimals,
		DecimalsB: quoteAmt.Decimals,
	}, nil
}

// DeriveMeteoraDlmmCreate derives a pool record from a Meteora DLMM
// LbPairCreate event plus its accounts: token X vault = accounts[4],
// token Y vault = accounts[5], creator = accounts[8].
func DeriveMeteoraDlmmCreate(lbPair, tokenX, tokenY string, accounts []ingest.IxAccount) (Record, string, error) {
	xAmt, _, err := tokenAmtAt(accounts, 4)
	if err != nil {
		return Record{}, "", fmt.Errorf("meteora dlmm create token x vault: %w", err)
	}
	yAmt, _, err := tokenAmtAt(accounts, 5)
	if err != nil {
		return Record{}, "", fmt.Errorf("meteora dlmm create token y vault: %w", err)
	}
	creator, err := pubkeyAt(accounts, 8)
	if err != nil {
		return Record{}, "", err
	}
	return Record{
		Addr:      lbPair,
		Dex:       dex.MeteoraDlmm,
		MintA:     tokenX,
		MintB:     tokenY,
		DecimalsA: xAmt.Decimals,
		DecimalsB: yAmt.Decimals,
	}, creator, nil
}

// DeriveMeteoraDlmmSwap derives a pool record from a Meteora DLMM swap's
// accounts: lbPair = accounts[0], vault X = accounts[2], vault Y =
// accounts[3]. The trader (accounts[10]) is read by MeteoraDlmmSwapTrader.
func DeriveMeteoraDlmmSwap(accounts []ingest.IxAccount) (Record, error) {
	poolAddr, err := pubkeyAt(accounts, 0)
	if err != nil {
		return Record{}, err
	}
	xAmt, _, err := tokenAmtAt(accounts, 2)
	if err != nil {
		return Record{}, fmt.Errorf("meteora dlmm swap vault x: %w", err)
	}
	yAmt, _, err := tokenAmtAt(accounts, 3)
	if err != nil {
		return Record{}, fmt.Errorf("meteora dlmm swap vault y: %w", err)
	}
	return Record{
		Addr:      poolAddr,
		Dex:       dex.MeteoraDlmm,
		MintA:     xAmt.Mint,
		MintB:     yAmt.Mint,
		DecimalsA: xAmt.Decimals,
		DecimalsB: yAmt.Decimals,
	}, nil
}

// MeteoraDlmmSwapTrader resolves the trader pubkey from a swap's
// accounts: accounts[10].
func MeteoraDlmmSwapTrader(accounts []ingest.IxAccount) (string, error) {
	return pubkeyAt(accounts, 10)
}

// MeteoraDammCreateVariant distinguishes the "with-config" from the
// "with-config-2" instruction, which shifts every subsequent account
// index by one. See DESIGN.md for the Open Question this resolves.
type MeteoraDammCreateVariant int

const (
	MeteoraDammWithConfig MeteoraDammCreateVariant = iota
	MeteoraDammWithConfig2
)

// DeriveMeteoraDammCreate derives a pool record from a Meteora DAMM
// PoolCreated event plus its accounts. Vault A/B and creator indices
// depend on the create variant: with-config uses 6/7 and creator 17;
// with-config-2 uses 7/8 and creator 18.
func DeriveMeteoraDammCreate(evt *meteoradamm.PoolCreatedEvent, variant MeteoraDammCreateVariant, accounts []ingest.IxAccount) (Record, string, error) {
	vaultAIdx, vaultBIdx, creatorIdx := 6, 7, 17
	if variant == MeteoraDammWithConfig2 {
		vaultAIdx, vaultBIdx, creatorIdx = 7, 8, 18
	}
	aAmt, _, err := tokenAmtAt(accounts, vaultAIdx)
	if err != nil {
		return Record{}, "", fmt.Errorf("meteora damm create vault a: %w", err)
	}
	bAmt, _, err := tokenAmtAt(accounts, vaultBIdx)
	if err != nil {
		return Record{}, "", fmt.Errorf("meteora damm create vault b: %w", err)
	}
	creator, err := pubkeyAt(accounts, creatorIdx)
	if err != nil {
		return Record{}, "", err
	}
	return Record{
		Addr:      evt.Pool.String(),
		Dex:       dex.MeteoraDamm,
		MintA:     aAmt.Mint,
		MintB:     bAmt.Mint,
		DecimalsA: aAmt.Decimals,
		DecimalsB: bAmt.Decimals,
	}, creator, nil
}

// DeriveMeteoraDammSwap derives a pool record from a Meteora DAMM swap's
// accounts: pool = accounts[0], vault A = accounts[5], vault B =
// accounts[6]. The trader (accounts[12]) is read by MeteoraDammSwapTrader.
func DeriveMeteoraDammSwap(accounts []ingest.IxAccount) (Record, error) {
	poolAddr, err := pubkeyAt(accounts, 0)
	if err != nil {
		return Record{}, err
	}
	aAmt, _, err := tokenAmtAt(accounts, 5)
	if err != nil {
		return Record{}, fmt.Errorf("meteora damm swap vault a: %w", err)
	}
	bAmt, _, err := tokenAmtAt(accounts, 6)
	if err != nil {
		return Record{}, fmt.Errorf("meteora damm swap vault b: %w", err)
	}
	return Record{
		Addr:      poolAddr,
		Dex:       dex.MeteoraDamm,
		MintA:     aAmt.Mint,
		MintB:     bAmt.Mint,
		DecimalsA: aAmt.Decimals,
		DecimalsB: bAmt.Decimals,
	}, nil
}

// MeteoraDammSwapTrader resolves the trader pubkey from a swap's
// accounts: accounts[12].
func MeteoraDammSwapTrader(accounts []ingest.IxAccount) (string, error) {
	return pubkeyAt(accounts, 12)
}
