// Package meteoradlmm decodes Meteora DLMM (liquidity-book) CPI log
// events, and recognizes the initBinArray instruction prefix that must be
// filtered out before it ever reaches the normalizer.
package meteoradlmm

import (
	"bytes"
	"fmt"
	"strings"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

var (
	SwapDiscriminator         = [8]byte{81, 108, 227, 190, 205, 208, 10, 196}
	LbPairCreateDiscriminator = [8]byte{185, 74, 252, 125, 27, 215, 188, 111}
)

// InitBinArrayPrefix is the base58 instruction-data prefix of an
// initBinArray instruction. Its accompanying log is not a trade log and
// must be dropped before normalization.
const InitBinArrayPrefix = "5N5iEh8c"

type SwapEvent struct {
	LbPair      solana.PublicKey
	From        solana.PublicKey
	StartBinID  int32
	EndBinID    int32
	AmountIn    uint64
	AmountOut   uint64
	SwapForY    bool
	Fee         uint64
	ProtocolFee uint64
	FeeBps      [16]byte // u128, unused by the normalizer
	HostFee     uint64
}

type LbPairCreateEvent struct {
	LbPair  solana.PublicKey
	BinStep uint16
	TokenX  solana.PublicKey
	TokenY  solana.PublicKey
}

// Event is the decoded sum type returned by FromCPILog.
type Event struct {
	Swap         *SwapEvent
	LbPairCreate *LbPairCreateEvent
}

// IsInitBinArray reports whether the given base58 instruction data belongs
// to an initBinArray instruction (whose logs must be skipped).
func IsInitBinArray(instructionData string) bool {
	return strings.HasPrefix(instructionData, InitBinArrayPrefix)
}

// FromCPILog decodes a base58 Meteora DLMM CPI log entry.
func FromCPILog(log string) (*Event, error) {
	raw, err := base58.Decode(log)
	if err != nil {
		return nil, fmt.Errorf("meteoradlmm: decode base58: %w", err)
	}
	if len(raw) < 16 {
		return nil, fmt.Errorf("meteoradlmm: log too short")
	}
	body := raw[8:]
	disc := body[:8]
	rest := body[8:]

	switch {
	case bytes.Equal(disc, SwapDiscriminator[:]):
		var evt SwapEvent
		if err := ag_binary.NewBorshDecoder(rest).Decode(&evt); err != nil {
			return nil, fmt.Errorf("meteoradlmm: decode swap event: %w", err)
		}
		return &Event{Swap: &evt}, nil
	case bytes.Equal(disc, LbPairCreateDiscriminator[:]):
		var evt LbPairCreateEvent
		if err := ag_binary.NewBorshDecoder(rest).Decode(&evt); err != nil {
			return nil, fmt.Errorf("meteoradlmm: decode lb-pair-create event: %w", err)
		}
		return &Event{LbPairCreate: &evt}, nil
	default:
		return nil, fmt.Errorf("meteoradlmm: unrecognized discriminator")
	}
}
