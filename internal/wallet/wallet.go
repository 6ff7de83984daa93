package wallet

import "context"

// Message is one outbound on-chain transfer: destination contract,
// attached native amount in nanotons, and a base64 BoC payload.
type Message struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Payload string `json:"payload"`
}

// Transaction is the multi-message request handed to the signing
// layer. ValidUntil is a unix deadline after which the wallet and the
// chain must reject it; expired requests are never retried here.
type Transaction struct {
	ValidUntil int64     `json:"validUntil"`
	Messages   []Message `json:"messages"`
}

// Ack is the signing layer's submission acknowledgment.
type Ack struct {
	BOC string `json:"boc"`
}

// Sender submits a transaction through the connected wallet. The
// implementation owns key material and user confirmation; rejections
// and cancellations surface verbatim.
type Sender interface {
	SendTransaction(ctx context.Context, tx Transaction) (Ack, error)
}
