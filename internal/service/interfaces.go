// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/punterlabs/bankroll/internal/model"
)

// Backend defines the contract for the remote campaign-tracker API.
// This interface allows for easy mocking in tests and swapping transports.
type Backend interface {
	// Campaign operations
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	GetCampaign(ctx context.Context, id int64) (*model.Campaign, error)
	CreateCampaign(ctx context.Context, name string, startBalance float64) (*model.Campaign, error)

	// Transaction operations
	ListTransactions(ctx context.Context, campaignID int64) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error)

	// Bet operations
	ListBets(ctx context.Context, campaignID int64) ([]model.Bet, error)
	ListAllBets(ctx context.Context) ([]model.Bet, error)
	PlaceBet(ctx context.Context, bet model.NewBet) (*model.Bet, error)
	SettleBet(ctx context.Context, betID int64, result model.BetResult, profitLoss float64) (*model.Bet, error)

	// Goal operations
	ListGoals(ctx context.Context, campaignID int64) ([]model.Goal, error)
	CreateGoal(ctx context.Context, goal model.NewGoal) (*model.Goal, error)
	UpdateGoal(ctx context.Context, goalID int64, update model.GoalUpdate) (*model.Goal, error)
	UpdateGoalProgress(ctx context.Context, goalID int64) (*model.Goal, error)
	DeleteGoal(ctx context.Context, goalID int64) error

	// Keep-alive
	Ping(ctx context.Context, path string) error
}

// SnapshotStore defines the contract for the local cache of fetched
// campaign data, used for offline stats and dashboards.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot *Snapshot) error
	LoadSnapshot(ctx context.Context, campaignID int64) (*Snapshot, error)
	ListSnapshotCampaigns(ctx context.Context) ([]model.Campaign, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Snapshot is one campaign's records as of the last successful fetch.
type Snapshot struct {
	FetchedAt    time.Time
	Campaign     model.Campaign
	Transactions []model.Transaction
	Bets         []model.Bet
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
