package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/hexearth/hexearth/internal/adapter"
	"github.com/hexearth/hexearth/internal/logger"
)

// errCodeTxNotFound is the rippled error code for an unknown transaction hash
const errCodeTxNotFound = "txnNotFound"

// Gateway is the service's single point of contact with the distributed ledger.
// It is explicitly constructed and injected wherever ledger access is needed;
// there is no ambient connection state. The merchant identity (the account that
// receives payments, finishes escrows and mints tokens) is owned by the gateway,
// and transaction sequence management is delegated to the ledger node.
//
//go:generate mockgen -source=client.go -destination=../mocks/ledger.go -package=mocks -mock_names=Gateway=MockGateway
type Gateway interface {
	// MerchantAddress returns the merchant account address
	MerchantAddress() string

	// GetTransaction fetches a transaction by hash. A not-yet-found hash is not
	// an error: the returned transaction simply has Validated=false.
	GetTransaction(ctx context.Context, txHash string) (*Transaction, error)

	// FinishEscrow submits an escrow-finish for the given escrow slot, signed by
	// the merchant identity, and waits for validation
	FinishEscrow(ctx context.Context, escrowOwner string, offerSequence uint32) (*Transaction, error)

	// MintNFT mints a transferable non-fungible token whose URI is the given
	// hex-encoded metadata endpoint, and waits for validation
	MintNFT(ctx context.Context, uriHex string) (*Transaction, error)

	// CreateSellOffer creates a zero-price sell offer for the token restricted
	// to destination, and waits for validation
	CreateSellOffer(ctx context.Context, nftokenID string, destination string) (*Transaction, error)

	// GetAccountNFTs lists the tokens held by an account
	GetAccountNFTs(ctx context.Context, account string) ([]NFToken, error)

	// GetNFTSellOffers lists the sell offers for a token. A token with no
	// offer objects yields an empty slice, not an error.
	GetNFTSellOffers(ctx context.Context, nftokenID string) ([]NFTOffer, error)
}

// Config holds gateway construction parameters
type Config struct {
	RPCURL            string
	MerchantAddress   string
	MerchantSeed      string
	SubmitWaitTimeout time.Duration
}

// client implements Gateway over the rippled JSON-RPC HTTP API
type client struct {
	cfg        Config
	httpClient adapter.HTTPClient
}

// NewGateway creates a ledger gateway talking to a rippled JSON-RPC endpoint
func NewGateway(cfg Config, httpClient adapter.HTTPClient) Gateway {
	return &client{
		cfg:        cfg,
		httpClient: httpClient,
	}
}

// MerchantAddress returns the merchant account address
func (c *client) MerchantAddress() string {
	return c.cfg.MerchantAddress
}

// call performs one JSON-RPC round trip, decoding the result object into out
func (c *client) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	payload, err := json.Marshal(rpcRequest{
		Method: method,
		Params: []interface{}{params},
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", method, err)
	}

	respBody, err := c.httpClient.Post(ctx, c.cfg.RPCURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s call failed: %w", method, err)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}

	return nil
}

// GetTransaction fetches a transaction by hash
func (c *client) GetTransaction(ctx context.Context, txHash string) (*Transaction, error) {
	var tx Transaction
	err := c.call(ctx, "tx", map[string]interface{}{
		"transaction": txHash,
		"binary":      false,
	}, &tx)
	if err != nil {
		return nil, err
	}

	if tx.Status == "error" {
		if tx.ErrorCode == errCodeTxNotFound {
			// Unknown hash behaves like an unvalidated transaction; the caller
			// decides whether to treat that as a verification failure
			return &Transaction{Hash: txHash}, nil
		}
		return nil, fmt.Errorf("tx lookup failed: %s (%s)", tx.ErrorCode, tx.ErrorMessage)
	}

	return &tx, nil
}

// FinishEscrow submits an escrow-finish signed by the merchant identity
func (c *client) FinishEscrow(ctx context.Context, escrowOwner string, offerSequence uint32) (*Transaction, error) {
	return c.submitAndWait(ctx, map[string]interface{}{
		"TransactionType": TxTypeEscrowFinish,
		"Account":         c.cfg.MerchantAddress,
		"Owner":           escrowOwner,
		"OfferSequence":   offerSequence,
	})
}

// MintNFT mints a transferable token pointing at the given hex-encoded URI
func (c *client) MintNFT(ctx context.Context, uriHex string) (*Transaction, error) {
	return c.submitAndWait(ctx, map[string]interface{}{
		"TransactionType": TxTypeNFTokenMint,
		"Account":         c.cfg.MerchantAddress,
		"URI":             uriHex,
		"Flags":           FlagTransferable,
		"NFTokenTaxon":    0,
	})
}

// CreateSellOffer creates a zero-price sell offer restricted to destination
func (c *client) CreateSellOffer(ctx context.Context, nftokenID string, destination string) (*Transaction, error) {
	return c.submitAndWait(ctx, map[string]interface{}{
		"TransactionType": TxTypeNFTokenCreateOffer,
		"Account":         c.cfg.MerchantAddress,
		"NFTokenID":       nftokenID,
		"Amount":          "0",
		"Destination":     destination,
		"Flags":           FlagSellOffer,
	})
}

// submitAndWait signs and submits a transaction through the ledger node, then polls
// until the transaction is validated or the wait budget is exhausted. Sequence
// numbers and fees are autofilled by the node.
func (c *client) submitAndWait(ctx context.Context, txJSON map[string]interface{}) (*Transaction, error) {
	var submitted submitResult
	err := c.call(ctx, "submit", map[string]interface{}{
		"secret":  c.cfg.MerchantSeed,
		"tx_json": txJSON,
	}, &submitted)
	if err != nil {
		return nil, err
	}

	if submitted.Status == "error" {
		return nil, fmt.Errorf("submit failed: %s (%s)", submitted.ErrorCode, submitted.ErrorMessage)
	}
	if submitted.EngineResult != "tesSUCCESS" {
		return nil, fmt.Errorf("transaction rejected: %s (%s)", submitted.EngineResult, submitted.EngineResultMessage)
	}

	txHash := submitted.TxJSON.Hash
	logger.DebugCtx(ctx, "transaction submitted, waiting for validation",
		zap.String("tx_hash", txHash),
		zap.String("tx_type", fmt.Sprint(txJSON["TransactionType"])),
	)

	// Poll tx until a validated ledger includes it. Consensus close times are a
	// few seconds, so the backoff starts short.
	waitTimeout := c.cfg.SubmitWaitTimeout
	if waitTimeout == 0 {
		waitTimeout = 20 * time.Second
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 4 * time.Second
	b.MaxElapsedTime = waitTimeout

	var validated *Transaction
	operation := func() error {
		tx, err := c.GetTransaction(ctx, txHash)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !tx.Validated {
			return fmt.Errorf("transaction %s not yet validated", txHash)
		}
		validated = tx
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("validation wait failed: %w", err)
	}

	return validated, nil
}

// GetAccountNFTs lists the tokens held by an account
func (c *client) GetAccountNFTs(ctx context.Context, account string) ([]NFToken, error) {
	var res accountNFTsResult
	err := c.call(ctx, "account_nfts", map[string]interface{}{
		"account":      account,
		"ledger_index": "validated",
	}, &res)
	if err != nil {
		return nil, err
	}

	if res.Status == "error" {
		return nil, fmt.Errorf("account_nfts failed: %s (%s)", res.ErrorCode, res.ErrorMessage)
	}

	return res.AccountNFTs, nil
}

// GetNFTSellOffers lists the sell offers for a token
func (c *client) GetNFTSellOffers(ctx context.Context, nftokenID string) ([]NFTOffer, error) {
	var res nftSellOffersResult
	err := c.call(ctx, "nft_sell_offers", map[string]interface{}{
		"nft_id": nftokenID,
	}, &res)
	if err != nil {
		return nil, err
	}

	if res.Status == "error" {
		// A token with no offer directory yields objectNotFound
		if res.ErrorCode == "objectNotFound" {
			return nil, nil
		}
		return nil, fmt.Errorf("nft_sell_offers failed: %s (%s)", res.ErrorCode, res.ErrorMessage)
	}

	return res.Offers, nil
}
