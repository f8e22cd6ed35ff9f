// Package ingest defines the JSON wire shape posted by the upstream
// webhook, exactly as field-named in the provider's stream (camelCase).
package ingest

// RawBatch is one webhook request body: upstream metadata plus the
// transactions it carries.
type RawBatch struct {
	Metadata Metadata `json:"metadata"`
	Txs      []Tx     `json:"txs"`
}

type Metadata struct {
	BatchStartRange      uint64 `json:"batchStartRange"`
	BatchEndRange        uint64 `json:"batchEndRange"`
	Dataset              string `json:"dataset"`
	EndRange             int64  `json:"endRange"`
	KeepDistanceFromTip  uint64 `json:"keepDistanceFromTip"`
	Network              string `json:"network"`
	StartRange           uint64 `json:"startRange"`
	StreamID             string `json:"streamId"`
	StreamName           string `json:"streamName"`
	StreamRegion         string `json:"streamRegion"`
}

// Tx is one transaction within a batch. Logs and Ixs are positionally
// paired: logs[i] is the log emitted by ixs[i].
type Tx struct {
	BlkTs     int64               `json:"blkTs"`
	Slot      uint64              `json:"slot"`
	Signature string              `json:"signature"`
	Logs      []string            `json:"logs"`
	Ixs       []ProgramInvocation `json:"ixs"`
}

type ProgramInvocation struct {
	ProgramID   string      `json:"programId"`
	Instruction Instruction `json:"instruction"`
}

type Instruction struct {
	Accounts []IxAccount `json:"accounts"`
	Data     string      `json:"data"`
	Index    uint64      `json:"index"`
}

type IxAccount struct {
	Pubkey  string `json:"pubkey"`
	PreAmt  Amt    `json:"preAmt"`
	PostAmt Amt    `json:"postAmt"`
}

type Amt struct {
	Sol   uint64     `json:"sol"`
	Token *TokenAmt  `json:"token,omitempty"`
}

type TokenAmt struct {
	Mint     string `json:"mint"`
	Decimals uint8  `json:"decimals"`
	Amt      uint64 `json:"amt,string"`
}
