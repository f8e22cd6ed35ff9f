// Package pumpfun decodes Pumpfun bonding-curve CPI log events: a base58
// blob whose first 8 bytes are the Anchor "event:" CPI tag, next 8 bytes
// are the event discriminator, and the remainder is a Borsh record.
package pumpfun

import (
	"bytes"
	"fmt"

	ag_binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

var (
	TradeDiscriminator      = [8]byte{189, 219, 127, 211, 78, 230, 97, 238}
	CreateDiscriminator     = [8]byte{27, 114, 169, 77, 222, 235, 99, 118}
	CompleteDiscriminator   = [8]byte{95, 114, 97, 156, 212, 46, 152, 8}
	SetParamsDiscriminator  = [8]byte{223, 195, 159, 246, 62, 48, 143, 131}
)

type TradeEvent struct {
	Discriminator         uint64
	Mint                  solana.PublicKey
	SolAmount             uint64
	TokenAmount           uint64
	IsBuy                 bool
	User                  solana.PublicKey
	Timestamp             int64
	VirtualSolReserves    uint64
	VirtualTokenReserves  uint64
	RealSolReserves       uint64
	RealTokenReserves     uint64
}

type CreateEvent struct {
	Discriminator uint64
	Name          string
	Symbol        string
	URI           string
	Mint          solana.PublicKey
	BondingCurve  solana.PublicKey
	User          solana.PublicKey
}

type CompleteEvent struct {
	Discriminator uint64
	User          solana.PublicKey
	Mint          solana.PublicKey
	BondingCurve  solana.PublicKey
	Timestamp     int64
}

type SetParamsEvent struct {
	Discriminator                uint64
	FeeRecipient                 solana.PublicKey
	InitialVirtualTokenReserves  uint64
	InitialVirtualSolReserves    uint64
	InitialRealTokenReserves     uint64
	TokenTotalSupply             uint64
	FeeBasisPoints               uint64
}

// Event is the decoded sum type returned by FromCPILog.
type Event struct {
	Trade      *TradeEvent
	Create     *CreateEvent
	Complete   *CompleteEvent
	SetParams  *SetParamsEvent
}

// FromCPILog decodes a base58 Pumpfun CPI log entry (with any "pumpfun cpi
// log:" prefix already stripped by the caller).
func FromCPILog(log string) (*Event, error) {
	raw, err := base58.Decode(log)
	if err != nil {
		return nil, fmt.Errorf("pumpfun: decode base58: %w", err)
	}
	if len(raw) < 16 {
		return nil, fmt.Errorf("pumpfun: log too short")
	}
	body := raw[8:]
	disc := body[:8]

	switch {
	case bytes.Equal(disc, TradeDiscriminator[:]):
		var evt TradeEvent
		if err := ag_binary.NewBorshDecoder(body).Decode(&evt); err != nil {
			return nil, fmt.Errorf("pumpfun: decode trade event: %w", err)
		}
		return &Event{Trade: &evt}, nil
	case bytes.Equal(disc, CreateDiscriminator[:]):
		var evt CreateEvent
		if err := ag_binary.NewBorshDecoder(body).Decode(&evt); err != nil {
			return nil, fmt.Errorf("pumpfun: decode create event: %w", err)
		}
		return &Event{Create: &evt}, nil
	case bytes.Equal(disc, CompleteDiscriminator[:]):
		var evt CompleteEvent
		if err := ag_binary.NewBorshDecoder(body).Decode(&evt); err != nil {
			return nil, fmt.Errorf("pumpfun: decode complete event: %w", err)
		}
		return &Event{Complete: &evt}, nil
	case bytes.Equal(disc, SetParamsDiscriminator[:]):
		var evt SetParamsEvent
		if err := ag_binary.NewBorshDecoder(body).Decode(&evt); err != nil {
			return nil, fmt.Errorf("pumpfun: decode set-params event: %w", err)
		}
		return &Event{SetParams: &evt}, nil
	default:
		return nil, fmt.Errorf("pumpfun: unrecognized discriminator")
	}
}
