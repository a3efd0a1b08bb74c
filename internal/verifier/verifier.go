package verifier

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hexearth/hexearth/internal/ledger"
	"github.com/hexearth/hexearth/internal/logger"
)

// EscrowDetails describes a verified escrow-creation transaction
type EscrowDetails struct {
	// OfferSequence is the escrow-create transaction sequence, referenced by the finish
	OfferSequence uint32
	// OwnerAddress is the account that submitted the escrow create (the escrow slot owner)
	OwnerAddress string
	// FinishAfter is the escrow release instant
	FinishAfter time.Time
}

// Verifier decides whether a ledger transaction satisfies a
// (destination, amount, correlation-tag) contract
//
//go:generate mockgen -source=verifier.go -destination=../mocks/verifier.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	// VerifyPayment checks a direct payment. A false result is terminal for this
	// attempt; the caller decides whether to retry the whole confirm flow.
	VerifyPayment(ctx context.Context, txHash, destination, amountDrops, memoHex string) (bool, error)

	// VerifyEscrowCreate checks an escrow-creation transaction and, on success,
	// returns the details needed to finish the escrow later. A nil result with
	// nil error means the transaction does not match.
	VerifyEscrowCreate(ctx context.Context, txHash, destination, amountDrops, memoHex string) (*EscrowDetails, error)
}

type verifier struct {
	gateway ledger.Gateway
}

// New creates a payment verifier backed by the given ledger gateway
func New(gateway ledger.Gateway) Verifier {
	return &verifier{gateway: gateway}
}

// VerifyPayment checks that the referenced transaction is a validated plain payment
// to the expected destination with the exact expected drops amount and a memo whose
// data equals the expected correlation tag byte for byte
func (v *verifier) VerifyPayment(ctx context.Context, txHash, destination, amountDrops, memoHex string) (bool, error) {
	tx, err := v.gateway.GetTransaction(ctx, txHash)
	if err != nil {
		return false, fmt.Errorf("failed to fetch transaction: %w", err)
	}

	if !v.checkCommon(ctx, tx, ledger.TxTypePayment, destination, amountDrops, memoHex) {
		return false, nil
	}

	return true, nil
}

// VerifyEscrowCreate checks the same contract against an escrow-creation transaction
// and extracts the escrow slot details on success
func (v *verifier) VerifyEscrowCreate(ctx context.Context, txHash, destination, amountDrops, memoHex string) (*EscrowDetails, error) {
	tx, err := v.gateway.GetTransaction(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}

	if !v.checkCommon(ctx, tx, ledger.TxTypeEscrowCreate, destination, amountDrops, memoHex) {
		return nil, nil
	}

	if tx.FinishAfter == nil {
		logger.DebugCtx(ctx, "escrow has no release time", zap.String("tx_hash", txHash))
		return nil, nil
	}

	return &EscrowDetails{
		OfferSequence: tx.Sequence,
		OwnerAddress:  tx.Account,
		FinishAfter:   ledger.FromRippleTime(*tx.FinishAfter),
	}, nil
}

// checkCommon runs the shared validation sequence: finality, transaction type,
// exact destination, bare drops amount equality, and exact memo match. Every
// mismatch is terminal for this check; there is no partial credit.
func (v *verifier) checkCommon(ctx context.Context, tx *ledger.Transaction, txType, destination, amountDrops, memoHex string) bool {
	if !tx.Validated {
		logger.DebugCtx(ctx, "transaction not validated", zap.String("tx_hash", tx.Hash))
		return false
	}

	if tx.TransactionType != txType {
		logger.DebugCtx(ctx, "unexpected transaction type",
			zap.String("tx_hash", tx.Hash),
			zap.String("want", txType),
			zap.String("got", tx.TransactionType),
		)
		return false
	}

	if tx.Destination != destination {
		logger.DebugCtx(ctx, "wrong destination",
			zap.String("tx_hash", tx.Hash),
			zap.String("destination", tx.Destination),
		)
		return false
	}

	// Issued-currency (object) amounts never match; only bare drops count
	drops, ok := tx.DropsAmount()
	if !ok || drops != amountDrops {
		logger.DebugCtx(ctx, "wrong amount",
			zap.String("tx_hash", tx.Hash),
			zap.String("amount", drops),
		)
		return false
	}

	for _, m := range tx.Memos {
		if m.Memo.MemoData == memoHex {
			return true
		}
	}

	logger.DebugCtx(ctx, "memo mismatch",
		zap.String("tx_hash", tx.Hash),
		zap.String("expected_memo", memoHex),
	)
	return false
}
