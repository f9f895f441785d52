package api

import (
	"context"

	"github.com/punterlabs/bankroll/internal/model"
)

// MockBackend is a function-driven implementation of service.Backend
// for tests. Unset functions return empty values.
type MockBackend struct {
	ListCampaignsFn      func(ctx context.Context) ([]model.Campaign, error)
	GetCampaignFn        func(ctx context.Context, id int64) (*model.Campaign, error)
	CreateCampaignFn     func(ctx context.Context, name string, startBalance float64) (*model.Campaign, error)
	ListTransactionsFn   func(ctx context.Context, campaignID int64) ([]model.Transaction, error)
	CreateTransactionFn  func(ctx context.Context, txn model.Transaction) (*model.Transaction, error)
	ListBetsFn           func(ctx context.Context, campaignID int64) ([]model.Bet, error)
	ListAllBetsFn        func(ctx context.Context) ([]model.Bet, error)
	PlaceBetFn           func(ctx context.Context, bet model.NewBet) (*model.Bet, error)
	SettleBetFn          func(ctx context.Context, betID int64, result model.BetResult, profitLoss float64) (*model.Bet, error)
	ListGoalsFn          func(ctx context.Context, campaignID int64) ([]model.Goal, error)
	CreateGoalFn         func(ctx context.Context, goal model.NewGoal) (*model.Goal, error)
	UpdateGoalFn         func(ctx context.Context, goalID int64, update model.GoalUpdate) (*model.Goal, error)
	UpdateGoalProgressFn func(ctx context.Context, goalID int64) (*model.Goal, error)
	DeleteGoalFn         func(ctx context.Context, goalID int64) error
	PingFn               func(ctx context.Context, path string) error

	// Call tracking
	PingCalls []string
}

// NewMockBackend creates a mock backend with default empty behavior.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// ListCampaigns implements service.Backend.
func (m *MockBackend) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	if m.ListCampaignsFn != nil {
		return m.ListCampaignsFn(ctx)
	}
	return []model.Campaign{}, nil
}

// GetCampaign implements service.Backend.
func (m *MockBackend) GetCampaign(ctx context.Context, id int64) (*model.Campaign, error) {
	if m.GetCampaignFn != nil {
		return m.GetCampaignFn(ctx, id)
	}
	return &model.Campaign{ID: id}, nil
}

// CreateCampaign implements service.Backend.
func (m *MockBackend) CreateCampaign(ctx context.Context, name string, startBalance float64) (*model.Campaign, error) {
	if m.CreateCampaignFn != nil {
		return m.CreateCampaignFn(ctx, name, startBalance)
	}
	return &model.Campaign{Name: name, StartBalance: startBalance, CurrentBalance: startBalance}, nil
}

// ListTransactions implements service.Backend.
func (m *MockBackend) ListTransactions(ctx context.Context, campaignID int64) ([]model.Transaction, error) {
	if m.ListTransactionsFn != nil {
		return m.ListTransactionsFn(ctx, campaignID)
	}
	return []model.Transaction{}, nil
}

// CreateTransaction implements service.Backend.
func (m *MockBackend) CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, txn)
	}
	return &txn, nil
}

// ListBets implements service.Backend.
func (m *MockBackend) ListBets(ctx context.Context, campaignID int64) ([]model.Bet, error) {
	if m.ListBetsFn != nil {
		return m.ListBetsFn(ctx, campaignID)
	}
	return []model.Bet{}, nil
}

// ListAllBets implements service.Backend.
func (m *MockBackend) ListAllBets(ctx context.Context) ([]model.Bet, error) {
	if m.ListAllBetsFn != nil {
		return m.ListAllBetsFn(ctx)
	}
	return []model.Bet{}, nil
}

// PlaceBet implements service.Backend.
func (m *MockBackend) PlaceBet(ctx context.Context, bet model.NewBet) (*model.Bet, error) {
	if m.PlaceBetFn != nil {
		return m.PlaceBetFn(ctx, bet)
	}
	placed := model.Bet{
		CampaignID: bet.CampaignID,
		Sport:      bet.Sport,
		Odds:       bet.Odds,
		Result:     model.ResultPending,
	}
	if bet.Stake != nil {
		placed.Stake = *bet.Stake
	}
	return &placed, nil
}

// SettleBet implements service.Backend.
func (m *MockBackend) SettleBet(ctx context.Context, betID int64, result model.BetResult, profitLoss float64) (*model.Bet, error) {
	if m.SettleBetFn != nil {
		return m.SettleBetFn(ctx, betID, result, profitLoss)
	}
	return &model.Bet{ID: betID, Result: result, ProfitLoss: profitLoss}, nil
}

// ListGoals implements service.Backend.
func (m *MockBackend) ListGoals(ctx context.Context, campaignID int64) ([]model.Goal, error) {
	if m.ListGoalsFn != nil {
		return m.ListGoalsFn(ctx, campaignID)
	}
	return []model.Goal{}, nil
}

// CreateGoal implements service.Backend.
func (m *MockBackend) CreateGoal(ctx context.Context, goal model.NewGoal) (*model.Goal, error) {
	if m.CreateGoalFn != nil {
		return m.CreateGoalFn(ctx, goal)
	}
	return &model.Goal{Title: goal.Title, TargetAmount: goal.TargetAmount, Status: model.GoalActive}, nil
}

// UpdateGoal implements service.Backend.
func (m *MockBackend) UpdateGoal(ctx context.Context, goalID int64, update model.GoalUpdate) (*model.Goal, error) {
	if m.UpdateGoalFn != nil {
		return m.UpdateGoalFn(ctx, goalID, update)
	}
	return &model.Goal{ID: goalID}, nil
}

// UpdateGoalProgress implements service.Backend.
func (m *MockBackend) UpdateGoalProgress(ctx context.Context, goalID int64) (*model.Goal, error) {
	if m.UpdateGoalProgressFn != nil {
		return m.UpdateGoalProgressFn(ctx, goalID)
	}
	return &model.Goal{ID: goalID}, nil
}

// DeleteGoal implements service.Backend.
func (m *MockBackend) DeleteGoal(ctx context.Context, goalID int64) error {
	if m.DeleteGoalFn != nil {
		return m.DeleteGoalFn(ctx, goalID)
	}
	return nil
}

// Ping implements service.Backend.
func (m *MockBackend) Ping(ctx context.Context, path string) error {
	m.PingCalls = append(m.PingCalls, path)
	if m.PingFn != nil {
		return m.PingFn(ctx, path)
	}
	return nil
}
