package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/model"
	"github.com/punterlabs/bankroll/internal/service"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bankroll.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func testSnapshot() *service.Snapshot {
	created := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	return &service.Snapshot{
		FetchedAt: time.Date(2024, time.March, 20, 8, 0, 0, 0, time.UTC),
		Campaign: model.Campaign{
			ID:             1,
			Name:           "March bankroll",
			StartBalance:   1000,
			CurrentBalance: 1250,
			TotalDeposits:  200,
			CreatedAt:      created,
		},
		Transactions: []model.Transaction{
			{ID: 10, CampaignID: 1, Kind: model.KindDeposit, Amount: 200, CreatedAt: created.AddDate(0, 0, 1)},
		},
		Bets: []model.Bet{
			{ID: 20, CampaignID: 1, Sport: "football", Stake: 300, Odds: 2.5, Result: model.ResultWin, ProfitLoss: 450, CreatedAt: created.AddDate(0, 0, 2)},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot()))

	loaded, err := store.LoadSnapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "March bankroll", loaded.Campaign.Name)
	assert.InDelta(t, 1250.0, loaded.Campaign.CurrentBalance, 1e-9)
	require.Len(t, loaded.Transactions, 1)
	assert.Equal(t, model.KindDeposit, loaded.Transactions[0].Kind)
	require.Len(t, loaded.Bets, 1)
	assert.Equal(t, model.ResultWin, loaded.Bets[0].Result)
	assert.InDelta(t, 450.0, loaded.Bets[0].ProfitLoss, 1e-9)
}

func TestSaveSnapshot_ReplacesRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testSnapshot()
	require.NoError(t, store.SaveSnapshot(ctx, first))

	// A refetch carries the settled state and a new bet; the old rows
	// must not linger.
	second := testSnapshot()
	second.Campaign.CurrentBalance = 1100
	second.Bets = append(second.Bets, model.Bet{
		ID: 21, CampaignID: 1, Sport: "tennis", Stake: 50, Odds: 1.9,
		Result: model.ResultPending, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, store.SaveSnapshot(ctx, second))

	loaded, err := store.LoadSnapshot(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1100.0, loaded.Campaign.CurrentBalance, 1e-9)
	assert.Len(t, loaded.Bets, 2)
	assert.Len(t, loaded.Transactions, 1)
}

func TestLoadSnapshot_MissingCampaign(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadSnapshot(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNoSnapshot))
}

func TestListSnapshotCampaigns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, testSnapshot()))

	other := testSnapshot()
	other.Campaign.ID = 2
	other.Campaign.Name = "Side pot"
	other.Campaign.CreatedAt = other.Campaign.CreatedAt.AddDate(0, 0, 5)
	other.Transactions = nil
	other.Bets = nil
	require.NoError(t, store.SaveSnapshot(ctx, other))

	campaigns, err := store.ListSnapshotCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)
	assert.Equal(t, "March bankroll", campaigns[0].Name)
	assert.Equal(t, "Side pot", campaigns[1].Name)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}
