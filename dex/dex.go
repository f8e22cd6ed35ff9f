// Package dex holds the identifiers and small shared vocabulary every
// decoder, cache, and normalizer in this module is keyed on: program ids,
// the canonical WSOL mint, and the Dex enum used to tag every record that
// flows through the pipeline.
package dex

import "github.com/gagliardetto/solana-go"

// Dex identifies which on-chain program produced a record.
type Dex string

const (
	RaydiumAmm  Dex = "RaydiumAmm"
	Pumpfun     Dex = "Pumpfun"
	PumpAmm     Dex = "PumpAmm"
	MeteoraDlmm Dex = "MeteoraDlmm"
	MeteoraDamm Dex = "MeteoraDamm"
)

// Known program ids, copied verbatim from the upstream provider's stream
// configuration.
var (
	RaydiumAmmProgramID  = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	PumpfunProgramID     = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	PumpAmmProgramID     = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")
	MeteoraDlmmProgramID = solana.MustPublicKeyFromBase58("LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo")
	MeteoraDammProgramID = solana.MustPublicKeyFromBase58("Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB")

	// WSOLMint is the canonical wrapped-SOL mint used as the quote asset
	// across all five DEXs.
	WSOLMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
)

// ProgramIDFor resolves a base58 program id string to a Dex, or ("", false)
// if it isn't one of the five known programs.
func ProgramIDFor(programID string) (Dex, bool) {
	switch programID {
	case RaydiumAmmProgramID.String():
		return RaydiumAmm, true
	case PumpfunProgramID.String():
		return Pumpfun, true
	case PumpAmmProgramID.String():
		return PumpAmm, true
	case MeteoraDlmmProgramID.String():
		return MeteoraDlmm, true
	case MeteoraDammProgramID.String():
		return MeteoraDamm, true
	default:
		return "", false
	}
}

// CalcPriceSol computes the SOL-denominated price of a trade, matching the
// upstream convention of lamports (9 decimals) over the token's own decimals.
func CalcPriceSol(solAmt, tokenAmt uint64, tokenDecimals uint8) float64 {
	sol := float64(solAmt) / 1_000_000_000.0
	tok := float64(tokenAmt) / pow10(tokenDecimals)
	return sol / tok
}

func pow10(n uint8) float64 {
	v := 1.0
	for i := uint8(0); i < n; i++ {
		v *= 10
	}
	return v
}
