// Package api provides the JSON/HTTPS client for the remote
// campaign-tracker backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/model"
)

const defaultTimeout = 30 * time.Second

// Client talks to the campaign-tracker REST backend. All amounts cross
// this boundary in base currency units (USD).
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListCampaigns fetches every campaign.
func (c *Client) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := c.get(ctx, "/campaigns", &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// GetCampaign fetches a single campaign by id.
func (c *Client) GetCampaign(ctx context.Context, id int64) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := c.get(ctx, fmt.Sprintf("/campaigns/%d", id), &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// CreateCampaign creates a campaign with the given name and starting balance.
func (c *Client) CreateCampaign(ctx context.Context, name string, startBalance float64) (*model.Campaign, error) {
	body := map[string]any{
		"name":          name,
		"start_balance": startBalance,
	}
	var campaign model.Campaign
	if err := c.do(ctx, http.MethodPost, "/campaigns", body, &campaign); err != nil {
		return nil, common.NewUserError("Error creating campaign", err)
	}
	return &campaign, nil
}

// ListTransactions fetches all transactions for a campaign.
func (c *Client) ListTransactions(ctx context.Context, campaignID int64) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := c.get(ctx, fmt.Sprintf("/transactions/campaign/%d", campaignID), &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// CreateTransaction records a deposit or withdrawal.
func (c *Client) CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	if err := txn.Validate(); err != nil {
		return nil, common.NewUserError(err.Error(), common.ErrInvalidInput)
	}
	body := map[string]any{
		"campaign_id": txn.CampaignID,
		"type":        txn.Kind,
		"amount":      txn.Amount,
	}
	var created model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", body, &created); err != nil {
		return nil, common.NewUserError("Error recording transaction", err)
	}
	return &created, nil
}

// ListBets fetches all bets for a campaign.
func (c *Client) ListBets(ctx context.Context, campaignID int64) ([]model.Bet, error) {
	var bets []model.Bet
	if err := c.get(ctx, fmt.Sprintf("/bets/campaign/%d", campaignID), &bets); err != nil {
		return nil, err
	}
	return bets, nil
}

// ListAllBets fetches every bet across all campaigns.
func (c *Client) ListAllBets(ctx context.Context) ([]model.Bet, error) {
	var bets []model.Bet
	if err := c.get(ctx, "/bets/all", &bets); err != nil {
		return nil, err
	}
	return bets, nil
}

// PlaceBet creates a new pending bet. A nil stake asks the backend to
// stake the campaign's full current balance as of this submission.
func (c *Client) PlaceBet(ctx context.Context, bet model.NewBet) (*model.Bet, error) {
	body := map[string]any{
		"campaign_id": bet.CampaignID,
		"sport":       bet.Sport,
		"odds":        bet.Odds,
		"stake":       bet.Stake,
	}
	var created model.Bet
	if err := c.do(ctx, http.MethodPost, "/bets", body, &created); err != nil {
		return nil, common.NewUserError("Error placing bet", err)
	}
	return &created, nil
}

// SettleBet records the terminal result of a pending bet.
func (c *Client) SettleBet(ctx context.Context, betID int64, result model.BetResult, profitLoss float64) (*model.Bet, error) {
	body := map[string]any{
		"result":      result,
		"profit_loss": profitLoss,
	}
	var updated model.Bet
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/bets/%d", betID), body, &updated); err != nil {
		return nil, common.NewUserError("Error updating bet result", err)
	}
	return &updated, nil
}

// ListGoals fetches all goals for a campaign.
func (c *Client) ListGoals(ctx context.Context, campaignID int64) ([]model.Goal, error) {
	var goals []model.Goal
	if err := c.get(ctx, fmt.Sprintf("/goals/campaign/%d", campaignID), &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateGoal creates a goal for a campaign.
func (c *Client) CreateGoal(ctx context.Context, goal model.NewGoal) (*model.Goal, error) {
	if err := goal.Validate(); err != nil {
		return nil, common.NewUserError(err.Error(), common.ErrInvalidInput)
	}
	var created model.Goal
	if err := c.do(ctx, http.MethodPost, "/goals", goal, &created); err != nil {
		return nil, common.NewUserError("Error creating goal", err)
	}
	return &created, nil
}

// UpdateGoal patches the given fields of a goal.
func (c *Client) UpdateGoal(ctx context.Context, goalID int64, update model.GoalUpdate) (*model.Goal, error) {
	var updated model.Goal
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/goals/%d", goalID), update, &updated); err != nil {
		return nil, common.NewUserError("Error updating goal", err)
	}
	return &updated, nil
}

// UpdateGoalProgress asks the backend to recompute a goal's derived
// progress fields.
func (c *Client) UpdateGoalProgress(ctx context.Context, goalID int64) (*model.Goal, error) {
	var updated model.Goal
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/goals/%d/update-progress", goalID), struct{}{}, &updated); err != nil {
		return nil, common.NewUserError("Error refreshing goal progress", err)
	}
	return &updated, nil
}

// DeleteGoal removes a goal.
func (c *Client) DeleteGoal(ctx context.Context, goalID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/goals/%d", goalID), nil, nil); err != nil {
		return common.NewUserError("Error deleting goal", err)
	}
	return nil
}

// Ping issues a best-effort GET against a keep-alive path. The caller
// decides what to do with failures; nothing here is surfaced to users.
func (c *Client) Ping(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Keep-Alive", "bankroll")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("keep-alive returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// do issues a request with a JSON body and decodes the JSON response
// into out when non-nil. Non-2xx responses become errors carrying the
// backend's detail message when one is present.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("backend request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFromResponse maps an error response to a sentinel where
// possible, preferring the backend's {"detail": ...} message.
func (c *Client) errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var payload struct {
		Detail string `json:"detail"`
	}
	detail := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		detail = payload.Detail
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if detail != "" {
			return fmt.Errorf("%w: %s", common.ErrNotFound, detail)
		}
		return common.ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return common.ErrRateLimit
	case detail != "":
		return fmt.Errorf("backend error %d: %s", resp.StatusCode, detail)
	default:
		return fmt.Errorf("backend error %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
}
