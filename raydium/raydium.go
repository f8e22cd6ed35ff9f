// Package raydium decodes Raydium AMM "ray_log:" entries: a base64 blob
// whose first byte is a log-type tag followed by a fixed, packed
// little-endian record (no Borsh framing, no field tags).
package raydium

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// LogType tags the shape of the record that follows the leading byte.
type LogType uint8

const (
	LogInit LogType = iota
	LogDeposit
	LogWithdraw
	LogSwapBaseIn
	LogSwapBaseOut
)

type InitLog struct {
	LogType      uint8
	Time         uint64
	PcDecimals   uint8
	CoinDecimals uint8
	PcLotSize    uint64
	CoinLotSize  uint64
	PcAmount     uint64
	CoinAmount   uint64
	Market       solana.PublicKey
}

type DepositLog struct {
	LogType    uint8
	MaxCoin    uint64
	MaxPc      uint64
	Base       uint64
	PoolCoin   uint64
	PoolPc     uint64
	PoolLp     uint64
	CalcPnlX   [16]byte // u128, unused by the normalizer
	CalcPnlY   [16]byte
	DeductCoin uint64
	DeductPc   uint64
	MintLp     uint64
}

type WithdrawLog struct {
	LogType    uint8
	WithdrawLp uint64
	UserLp     uint64
	PoolCoin   uint64
	PoolPc     uint64
	PoolLp     uint64
	CalcPnlX   [16]byte
	CalcPnlY   [16]byte
	OutCoin    uint64
	OutPc      uint64
}

type SwapBaseInLog struct {
	LogType    uint8
	AmountIn   uint64
	MinimumOut uint64
	Direction  uint64
	UserSource uint64
	PoolCoin   uint64
	PoolPc     uint64
	OutAmount  uint64
}

type SwapBaseOutLog struct {
	LogType    uint8
	MaxIn      uint64
	AmountOut  uint64
	Direction  uint64
	UserSource uint64
	PoolCoin   uint64
	PoolPc     uint64
	DeductIn   uint64
}

// Event is the decoded sum type returned by Decode.
type Event struct {
	Kind        LogType
	Init        *InitLog
	Deposit     *DepositLog
	Withdraw    *WithdrawLog
	SwapBaseIn  *SwapBaseInLog
	SwapBaseOut *SwapBaseOutLog
}

// Decode parses a base64 ray_log entry (with any "ray_log:" / log-message
// prefix already stripped by the caller).
func Decode(log string) (*Event, error) {
	raw, err := base64.StdEncoding.DecodeString(log)
	if err != nil {
		return nil, fmt.Errorf("raydium: decode base64: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("raydium: empty ray_log")
	}

	r := bytes.NewReader(raw)
	switch LogType(raw[0]) {
	case LogInit:
		var l InitLog
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("raydium: decode init log: %w", err)
		}
		return &Event{Kind: LogInit, Init: &l}, nil
	case LogDeposit:
		var l DepositLog
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("raydium: decode deposit log: %w", err)
		}
		return &Event{Kind: LogDeposit, Deposit: &l}, nil
	case LogWithdraw:
		var l WithdrawLog
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("raydium: decode withdraw log: %w", err)
		}
		return &Event{Kind: LogWithdraw, Withdraw: &l}, nil
	case LogSwapBaseIn:
		var l SwapBaseInLog
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("raydium: decode swap-base-in log: %w", err)
		}
		return &Event{Kind: LogSwapBaseIn, SwapBaseIn: &l}, nil
	case LogSwapBaseOut:
		var l SwapBaseOutLog
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, fmt.Errorf("raydium: decode swap-base-out log: %w", err)
		}
		return &Event{Kind: LogSwapBaseOut, SwapBaseOut: &l}, nil
	default:
		return nil, fmt.Errorf("raydium: unknown log type %d", raw[0])
	}
}
