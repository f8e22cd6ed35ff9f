// Package events holds the normalized event schema the pipeline produces
// and forwards to the downstream webhook: pool-created, trade, and
// Pumpfun bonding-curve-complete records.
package events

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/linzigeer/sol-dex-datahub-go/dex"
)

// EpochSeconds serializes as a bare integer (seconds since epoch) at JSON
// boundaries while behaving as a time.Time everywhere else.
type EpochSeconds time.Time

func NewEpochSeconds(sec int64) EpochSeconds {
	return EpochSeconds(time.Unix(sec, 0).UTC())
}

func (t EpochSeconds) Time() time.Time { return time.Time(t) }

func (t EpochSeconds) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(time.Time(t).Unix(), 10)), nil
}

func (t *EpochSeconds) UnmarshalJSON(b []byte) error {
	var sec int64
	if err := json.Unmarshal(b, &sec); err != nil {
		return err
	}
	*t = NewEpochSeconds(sec)
	return nil
}

// PoolCreatedRecord is a pool's birth event.
type PoolCreatedRecord struct {
	BlkTs     EpochSeconds `json:"blkTs"`
	Slot      uint64       `json:"slot"`
	Txid      string       `json:"txid"`
	Idx       uint64       `json:"idx"`
	Creator   string       `json:"creator"`
	Addr      string       `json:"addr"`
	Dex       dex.Dex      `json:"dex"`
	MintA     string       `json:"mintA"`
	MintB     string       `json:"mintB"`
	DecimalsA uint8        `json:"decimalsA"`
	DecimalsB uint8        `json:"decimalsB"`
}

// TradeRecord is a normalized swap.
type TradeRecord struct {
	BlkTs        EpochSeconds `json:"blkTs"`
	Slot         uint64       `json:"slot"`
	Txid         string       `json:"txid"`
	Idx          uint64       `json:"idx"`
	Mint         string       `json:"mint"`
	Decimals     uint8        `json:"decimals"`
	Trader       string       `json:"trader"`
	Dex          dex.Dex      `json:"dex"`
	Pool         string       `json:"pool"`
	PoolSolAmt   uint64       `json:"poolSolAmt"`
	PoolTokenAmt uint64       `json:"poolTokenAmt"`
	IsBuy        bool         `json:"isBuy"`
	SolAmt       uint64       `json:"solAmt"`
	TokenAmt     uint64       `json:"tokenAmt"`
	PriceSol     float64      `json:"priceSol"`
}

// PumpfunCompleteRecord is a Pumpfun bonding-curve completion.
type PumpfunCompleteRecord struct {
	BlkTs        EpochSeconds `json:"blkTs"`
	Slot         uint64       `json:"slot"`
	Txid         string       `json:"txid"`
	Idx          uint64       `json:"idx"`
	User         string       `json:"user"`
	Mint         string       `json:"mint"`
	BondingCurve string       `json:"bondingCurve"`
}

// Kind tags which of the three record types an Event wraps, so the event
// queue can hold a single slice of mixed records and the egress worker
// can bucket them cheaply.
type Kind string

const (
	KindPoolCreated      Kind = "PoolCreated"
	KindTrade            Kind = "Trade"
	KindPumpfunComplete  Kind = "PumpfunComplete"
)

// Event is the tagged envelope stored in list:dex_events.
type Event struct {
	Kind            Kind                   `json:"kind"`
	PoolCreated     *PoolCreatedRecord     `json:"poolCreated,omitempty"`
	Trade           *TradeRecord           `json:"trade,omitempty"`
	PumpfunComplete *PumpfunCompleteRecord `json:"pumpfunComplete,omitempty"`
}

// OutboundBatch is the bucketed body posted to the downstream webhook.
type OutboundBatch struct {
	PumpfunCompleteEvts []PumpfunCompleteRecord `json:"pumpfunCompleteEvts"`
	PoolCreatedEvts     []PoolCreatedRecord     `json:"poolCreatedEvts"`
	TradeEvts           []TradeRecord           `json:"tradeEvts"`
}

// Bucket splits a flat event slice into the three arrays the downstream
// webhook expects, preserving relative order within each bucket.
func Bucket(evts []Event) OutboundBatch {
	var out OutboundBatch
	for _, e := range evts {
		switch e.Kind {
		case KindPoolCreated:
			if e.PoolCreated != nil {
				out.PoolCreatedEvts = append(out.PoolCreatedEvts, *e.PoolCreated)
			}
		case KindTrade:
			if e.Trade != nil {
				out.TradeEvts = append(out.TradeEvts, *e.Trade)
			}
		case KindPumpfunComplete:
			if e.PumpfunComplete != nil {
				out.PumpfunCompleteEvts = append(out.PumpfunCompleteEvts, *e.PumpfunComplete)
			}
		}
	}
	return out
}
