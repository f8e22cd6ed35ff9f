// Package meteoradamm decodes Meteora DAMM (dynamic AMM) "Program data:"
// log events: a base64 blob whose first 8 bytes are the discriminator
// (no separate CPI tag prefix, unlike the other Anchor-event DEXs), tail
// is a Borsh record.
package meteoradamm

import (
	"bytes"
	"encoding/base64"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	SwapDiscriminator        = [8]byte{81, 108, 227, 190, 205, 208, 10, 196}
	PoolCreatedDiscriminator = [8]byte{202, 44, 41, 88, 104, 220, 157, 82}
)

type SwapEvent struct {
	InAmount    uint64
	OutAmount   uint64
	TradeFee    uint64
	ProtocolFee uint64
	HostFee     uint64
}

// PoolType mirrors the on-chain Permissioned/Permissionless enum; Borsh
// encodes a tagless Rust enum as a single leading byte.
type PoolType uint8

const (
	PoolTypePermissioned PoolType = iota
	PoolTypePermissionless
)

type PoolCreatedEvent struct {
	LpMint     solana.PublicKey
	TokenAMint solana.PublicKey
	TokenBMint solana.PublicKey
	PoolType   PoolType
	Pool       solana.PublicKey
}

// Event is the decoded sum type returned by Decode.
type Event struct {
	Swap        *SwapEvent
	PoolCreated *PoolCreatedEvent
}

// Decode parses a base64 Meteora DAMM "Program data:" log entry (prefix
// already stripped by the caller).
func Decode(log string) (*Event, error) {
	raw, err := base64.StdEncoding.DecodeString(log)
	if err != nil {
		return nil, fmt.Errorf("meteoradamm: decode base64: %w", err)
	}
	if len(raw) < 8 {
		return nil, fmt.Errorf("meteoradamm: log too short")
	}
	disc := raw[:8]
	rest := raw[8:]

	switch {
	case bytes.Equal(disc, SwapDiscriminator[:]):
		var evt SwapEvent
		if err := ag_binary.NewBorshDecoder(rest).Decode(&evt); err != nil {
			return nil, fmt.Errorf("meteoradamm: decode swap event: %w", err)
		}
		return &Event{Swap: &evt}, nil
	case bytes.Equal(disc, PoolCreatedDiscriminator[:]):
		var evt PoolCreatedEvent
		if err := ag_binary.NewBorshDecoder(rest).Decode(&evt); err != nil {
			return nil, fmt.Errorf("meteoradamm: decode pool-created event: %w", err)
		}
		return &Event{PoolCreated: &evt}, nil
	default:
		return nil, fmt.Errorf("meteoradamm: unrecognized discriminator")
	}
}
