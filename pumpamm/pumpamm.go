// Package pumpamm decodes Pump-AMM CPI log events. Wire shape matches
// pumpfun's (base58, 8-byte CPI tag + 8-byte discriminator prefix), but
// unlike pumpfun's events the Borsh record itself does not carry the
// discriminator as a leading field.
package pumpamm

import (
	"bytes"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

var (
	CreatePoolDiscriminator = [8]byte{177, 49, 12, 210, 160, 118, 167, 116}
	BuyDiscriminator        = [8]byte{103, 244, 82, 31, 44, 245, 119, 119}
	SellDiscriminator       = [8]byte{62, 47, 55, 10, 165, 3, 220, 42}
)

type CreatePoolEvent struct {
	Timestamp               int64
	Index                   uint16
	Creator                 solana.PublicKey
	BaseMint                solana.PublicKey
	QuoteMint                solana.PublicKey
	BaseMintDecimals         uint8
	QuoteMintDecimals        uint8
	BaseAmountIn             uint64
	QuoteAmountIn            uint64
	PoolBaseAmount           uint64
	PoolQuoteAmount          uint64
	MinimumLiquidity         uint64
	InitialLiquidity         uint64
	LpTokenAmountOut         uint64
	PoolBump                 uint8
	Pool                     solana.PublicKey
	LpMint                   solana.PublicKey
	UserBaseTokenAccount     solana.PublicKey
	UserQuoteTokenAccount    solana.PublicKey
}

type BuyEvent struct {
	Timestamp                        int64
	BaseAmountOut                    uint64
	MaxQuoteAmountIn                 uint64
	UserBaseTokenReserves            uint64
	UserQuoteTokenReserves           uint64
	PoolBaseTokenReserves            uint64
	PoolQuoteTokenReserves            uint64
	QuoteAmountIn                    uint64
	LpFeeBasisPoints                 uint64
	LpFee                            uint64
	ProtocolFeeBasisPoints           uint64
	ProtocolFee                      uint64
	QuoteAmountInWithLpFee           uint64
	UserQuoteAmountIn                uint64
	Pool                             solana.PublicKey
	User                             solana.PublicKey
	UserBaseTokenAccount             solana.PublicKey
	UserQuoteTokenAccount            solana.PublicKey
	ProtocolFeeRecipient             solana.PublicKey
	ProtocolFeeRecipientTokenAccount solana.PublicKey
}

type SellEvent struct {
	Timestamp                        int64
	BaseAmountIn                     uint64
	MinQuoteAmountOut                uint64
	UserBaseTokenReserves            uint64
	UserQuoteTokenReserves           uint64
	PoolBaseTokenReserves            uint64
	PoolQuoteTokenReserves           uint64
	QuoteAmountOut                   uint64
	LpFeeBasisPoints                 uint64
	LpFee                            uint64
	ProtocolFeeBasisPoints           uint64
	ProtocolFee                      uint64
	QuoteAmountOutWithoutLpFee       uint64
	UserQuoteAmountOut               uint64
	Pool                             solana.PublicKey
	User                             solana.PublicKey
	UserBaseTokenAccount             solana.PublicKey
	UserQuoteTokenAccount            solana.PublicKey
	ProtocolFeeRecipient             solana.PublicKey
	ProtocolFeeRecipientTokenAccount solana.PublicKey
}

// Event is the decoded sum type returned by FromCPILog.
type Event struct {
	CreatePool *CreatePoolEvent
	Buy        *BuyEvent
	Sell       *SellEvent
}

// FromCPILog decodes a base58 Pump-AMM CPI log entry.
func FromCPILog(log string) (*Event, error) {
	raw, err := base58.Decode(log)
	if err != nil {
		return nil, fmt.Errorf("pumpamm: decode base58: %w", err)
	}
	if len(raw) < 16 {
		return nil, fmt.Errorf("pumpamm: log too short")
	}
	body := raw[8:]
	disc := body[:8]
	rest := body[8:]

	switch {
	case bytes.Equal(disc, CreatePoolDiscriminator[:]):
		var evt CreatePoolEvent
		if err := ag_binary.NewBorshDecoder(rest).Decode(&evt); err != nil {
			return nil, fmt.Errorf("pumpamm: decode create-pool event: %w", err)
		}
		return &Event{CreatePool: &evt}, nil
	case bytes.Equal(disc, BuyDiscriminator[:]):
		var evt BuyEvent
		if err := ag_binary.NewBorshDecoder(rest).Decode(&evt); err != nil {
			return nil, fmt.Errorf("pumpamm: decode buy event: %w", err)
		}
		return &Event{Buy: &evt}, nil
	case bytes.Equal(disc, SellDiscriminator[:]):
		var evt SellEvent
		if err := ag_binary.NewBorshDecoder(rest).Decode(&evt); err != nil {
			return nil, fmt.Errorf("pumpamm: decode sell event: %w", err)
		}
		return &Event{Sell: &evt}, nil
	default:
		return nil, fmt.Errorf("pumpamm: unrecognized discriminator")
	}
}
