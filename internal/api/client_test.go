package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/model"
)

func TestClient_ListCampaigns(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/campaigns", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "March bankroll", "start_balance": 1000, "current_balance": 1250, "created_at": "2024-03-01T10:00:00Z"},
			{"id": 2, "name": "Side pot", "start_balance": 200, "current_balance": 180, "created_at": "2024-03-05T08:30:00Z"}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	campaigns, err := client.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "March bankroll", campaigns[0].Name)
	assert.InDelta(t, 1250.0, campaigns[0].CurrentBalance, 1e-9)
}

func TestClient_PlaceBet_NullStake(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bets", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// Omitted stake must reach the backend as an explicit null so it
		// stakes the full balance.
		stake, present := body["stake"]
		assert.True(t, present)
		assert.Nil(t, stake)
		assert.Equal(t, "football", body["sport"])

		_, _ = w.Write([]byte(`{"id": 7, "campaign_id": 1, "sport": "football", "stake": 1250, "odds": 2.5, "result": "pending", "profit_loss": 0, "created_at": "2024-03-10T12:00:00Z"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	bet, err := client.PlaceBet(context.Background(), model.NewBet{
		CampaignID: 1,
		Sport:      "football",
		Odds:       2.5,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ResultPending, bet.Result)
	assert.InDelta(t, 1250.0, bet.Stake, 1e-9)
}

func TestClient_SettleBet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/bets/7", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "win", body["result"])
		assert.InDelta(t, 450.0, body["profit_loss"].(float64), 1e-9)

		_, _ = w.Write([]byte(`{"id": 7, "result": "win", "profit_loss": 450}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	bet, err := client.SettleBet(context.Background(), 7, model.ResultWin, 450)
	require.NoError(t, err)
	assert.Equal(t, model.ResultWin, bet.Result)
}

func TestClient_ErrorDetailExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Insufficient balance"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CreateTransaction(context.Background(), model.Transaction{
		CampaignID: 1,
		Kind:       model.KindWithdrawal,
		Amount:     5000,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Insufficient balance")

	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "Error recording transaction", userErr.UserMessage)
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "campaign not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetCampaign(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestClient_ValidationBeforeNetwork(t *testing.T) {
	// Any request reaching the server fails the test: validation errors
	// must be detected before a request is sent.
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("request sent despite invalid input")
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.CreateTransaction(context.Background(), model.Transaction{
		CampaignID: 1,
		Kind:       model.KindDeposit,
		Amount:     -10,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))

	_, err = client.CreateGoal(context.Background(), model.NewGoal{CampaignID: 1, TargetAmount: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestClient_Ping(t *testing.T) {
	var gotPath, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get("X-Keep-Alive")
		_, _ = w.Write([]byte(`{"status": "awake"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.Ping(context.Background(), "/keep-alive/ping"))
	assert.Equal(t, "/keep-alive/ping", gotPath)
	assert.Equal(t, "bankroll", gotHeader)
}

func TestClient_PingNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	require.Error(t, client.Ping(context.Background(), "/keep-alive"))
}
