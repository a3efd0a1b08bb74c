package ledger

import (
	"encoding/json"
)

// Transaction types submitted or inspected by the gateway
const (
	TxTypePayment            = "Payment"
	TxTypeEscrowCreate       = "EscrowCreate"
	TxTypeEscrowFinish       = "EscrowFinish"
	TxTypeNFTokenMint        = "NFTokenMint"
	TxTypeNFTokenCreateOffer = "NFTokenCreateOffer"
)

// NFToken flags
const (
	// FlagTransferable marks a minted token as freely transferable
	FlagTransferable uint32 = 8
	// FlagSellOffer marks an NFT offer as a sell offer
	FlagSellOffer uint32 = 1
)

// rpcRequest is the rippled JSON-RPC envelope
type rpcRequest struct {
	Method string        `json:"method"`
	Params []interface{} `json:"params"`
}

// rpcStatus carries the per-call status rippled embeds in every result object
type rpcStatus struct {
	Status       string `json:"status"`
	ErrorCode    string `json:"error"`
	ErrorMessage string `json:"error_message"`
}

// Memo is a single transaction memo. Fields are hex-encoded on the wire.
type Memo struct {
	MemoType   string `json:"MemoType,omitempty"`
	MemoData   string `json:"MemoData,omitempty"`
	MemoFormat string `json:"MemoFormat,omitempty"`
}

// MemoWrapper matches the ledger's {"Memo": {...}} array element shape
type MemoWrapper struct {
	Memo Memo `json:"Memo"`
}

// Transaction is a ledger transaction as returned by the tx method.
// Only the fields the verifier and orchestrator inspect are modeled.
type Transaction struct {
	rpcStatus

	Hash            string `json:"hash"`
	TransactionType string `json:"TransactionType"`
	Account         string `json:"Account"`
	Destination     string `json:"Destination"`
	// Amount is a bare drops string for XRP or an object for issued currencies
	Amount      json.RawMessage `json:"Amount"`
	Memos       []MemoWrapper   `json:"Memos"`
	Sequence    uint32          `json:"Sequence"`
	FinishAfter *int64          `json:"FinishAfter"`
	Validated   bool            `json:"validated"`
}

// DropsAmount returns the transaction amount as a bare drops string.
// ok is false when the amount is absent or a multi-asset (object) amount.
func (t *Transaction) DropsAmount() (string, bool) {
	if len(t.Amount) == 0 {
		return "", false
	}
	var drops string
	if err := json.Unmarshal(t.Amount, &drops); err != nil {
		return "", false
	}
	return drops, true
}

// submitResult is the result of the submit method in sign-and-submit mode
type submitResult struct {
	rpcStatus

	EngineResult        string `json:"engine_result"`
	EngineResultMessage string `json:"engine_result_message"`
	TxJSON              struct {
		Hash string `json:"hash"`
	} `json:"tx_json"`
}

// NFToken is one entry of an account_nfts listing
type NFToken struct {
	NFTokenID string `json:"NFTokenID"`
	URI       string `json:"URI"`
	Flags     uint32 `json:"Flags"`
	Issuer    string `json:"Issuer"`
}

// accountNFTsResult is the result of the account_nfts method
type accountNFTsResult struct {
	rpcStatus

	Account     string    `json:"account"`
	AccountNFTs []NFToken `json:"account_nfts"`
}

// NFTOffer is one entry of an nft_sell_offers listing
type NFTOffer struct {
	OfferID     string          `json:"nft_offer_index"`
	Amount      json.RawMessage `json:"amount"`
	Destination string          `json:"destination"`
	Owner       string          `json:"owner"`
	Flags       uint32          `json:"flags"`
}

// nftSellOffersResult is the result of the nft_sell_offers method
type nftSellOffersResult struct {
	rpcStatus

	NFTokenID string     `json:"nft_id"`
	Offers    []NFTOffer `json:"offers"`
}
