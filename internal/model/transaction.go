package model

import (
	"fmt"
	"time"
)

// TransactionKind distinguishes money moving into or out of a campaign.
type TransactionKind string

// Transaction kind constants.
const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// Transaction represents a deposit or withdrawal against a campaign.
// Transactions are immutable once created; the backend exposes no
// update or delete for them.
type Transaction struct {
	CreatedAt  time.Time       `json:"created_at"`
	Kind       TransactionKind `json:"type"`
	ID         int64           `json:"id"`
	CampaignID int64           `json:"campaign_id"`
	Amount     float64         `json:"amount"`
}

// SignedAmount returns the amount with deposits positive and
// withdrawals negative, for balance walks and per-day aggregation.
func (t Transaction) SignedAmount() float64 {
	if t.Kind == KindWithdrawal {
		return -t.Amount
	}
	return t.Amount
}

// Validate checks a transaction before it is sent to the backend.
func (t *Transaction) Validate() error {
	switch t.Kind {
	case KindDeposit, KindWithdrawal:
	default:
		return fmt.Errorf("invalid transaction kind: %q", t.Kind)
	}
	if t.Amount <= 0 {
		return fmt.Errorf("amount must be positive, got %.2f", t.Amount)
	}
	return nil
}
