package model

import (
	"fmt"
	"time"
)

// BetResult is the tri-state outcome of a bet. A bet is created pending
// and transitions exactly once to win or loss.
type BetResult string

// Bet result constants.
const (
	ResultPending BetResult = "pending"
	ResultWin     BetResult = "win"
	ResultLoss    BetResult = "loss"
)

// Valid reports whether r is one of the known results.
func (r BetResult) Valid() bool {
	switch r {
	case ResultPending, ResultWin, ResultLoss:
		return true
	}
	return false
}

// Settled reports whether r is a terminal result.
func (r BetResult) Settled() bool {
	return r == ResultWin || r == ResultLoss
}

// Bet represents a single wager within a campaign. Stake and
// ProfitLoss are in base currency units.
type Bet struct {
	CreatedAt  time.Time `json:"created_at"`
	Sport      string    `json:"sport"`
	Result     BetResult `json:"result"`
	ID         int64     `json:"id"`
	CampaignID int64     `json:"campaign_id"`
	Stake      float64   `json:"stake"`
	Odds       float64   `json:"odds"`
	ProfitLoss float64   `json:"profit_loss"`
}

// SettlementProfit returns the profit_loss a bet carries once settled
// with the given result: stake*(odds-1) on a win, -stake on a loss,
// 0 while pending. This is the single authoritative settlement rule;
// settlement never accepts a free-entry profit figure.
func (b Bet) SettlementProfit(result BetResult) float64 {
	switch result {
	case ResultWin:
		return b.Stake * (b.Odds - 1)
	case ResultLoss:
		return -b.Stake
	default:
		return 0
	}
}

// PotentialReturn is the full payout of the bet if it wins.
func (b Bet) PotentialReturn() float64 {
	return b.Stake * b.Odds
}

// NewBet holds the fields for creating a bet. A nil Stake means the
// backend stakes the campaign's full current balance as of submission.
type NewBet struct {
	Stake      *float64 `json:"stake"`
	Sport      string   `json:"sport"`
	CampaignID int64    `json:"campaign_id"`
	Odds       float64  `json:"odds"`
}

// Validate checks a new bet before it is sent to the backend.
// Available is the campaign balance in base units; pass a negative
// value to skip the balance check.
func (n *NewBet) Validate(available float64) error {
	if n.Sport == "" {
		return fmt.Errorf("sport is required")
	}
	if n.Odds <= 1 {
		return fmt.Errorf("odds must be greater than 1, got %.2f", n.Odds)
	}
	if n.Stake != nil {
		if *n.Stake <= 0 {
			return fmt.Errorf("stake must be positive, got %.2f", *n.Stake)
		}
		if available >= 0 && *n.Stake > available {
			return fmt.Errorf("stake %.2f exceeds available balance %.2f", *n.Stake, available)
		}
	}
	return nil
}
