package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/punterlabs/bankroll/internal/common"
	"github.com/punterlabs/bankroll/internal/model"
	"github.com/punterlabs/bankroll/internal/service"
)

// SaveSnapshot replaces the stored records for the snapshot's campaign
// with the given ones, atomically.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snapshot *service.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	campaign := snapshot.Campaign
	fetchedAt := snapshot.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO campaigns (id, name, start_balance, current_balance, total_deposits, total_withdrawals, created_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_balance = excluded.start_balance,
			current_balance = excluded.current_balance,
			total_deposits = excluded.total_deposits,
			total_withdrawals = excluded.total_withdrawals,
			created_at = excluded.created_at,
			fetched_at = excluded.fetched_at`,
		campaign.ID, campaign.Name, campaign.StartBalance, campaign.CurrentBalance,
		campaign.TotalDeposits, campaign.TotalWithdrawals, campaign.CreatedAt, fetchedAt); err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE campaign_id = ?`, campaign.ID); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	for _, txn := range snapshot.Transactions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, campaign_id, kind, amount, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			txn.ID, txn.CampaignID, txn.Kind, txn.Amount, txn.CreatedAt); err != nil {
			return fmt.Errorf("failed to save transaction %d: %w", txn.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bets WHERE campaign_id = ?`, campaign.ID); err != nil {
		return fmt.Errorf("failed to clear bets: %w", err)
	}
	for _, bet := range snapshot.Bets {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bets (id, campaign_id, sport, stake, odds, result, profit_loss, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			bet.ID, bet.CampaignID, bet.Sport, bet.Stake, bet.Odds, bet.Result, bet.ProfitLoss, bet.CreatedAt); err != nil {
			return fmt.Errorf("failed to save bet %d: %w", bet.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored records for a campaign, or
// common.ErrNoSnapshot when it has never been fetched.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context, campaignID int64) (*service.Snapshot, error) {
	snapshot := &service.Snapshot{}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, start_balance, current_balance, total_deposits, total_withdrawals, created_at, fetched_at
		FROM campaigns WHERE id = ?`, campaignID)
	err := row.Scan(
		&snapshot.Campaign.ID, &snapshot.Campaign.Name,
		&snapshot.Campaign.StartBalance, &snapshot.Campaign.CurrentBalance,
		&snapshot.Campaign.TotalDeposits, &snapshot.Campaign.TotalWithdrawals,
		&snapshot.Campaign.CreatedAt, &snapshot.FetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	snapshot.Transactions, err = s.loadTransactions(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	snapshot.Bets, err = s.loadBets(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshotCampaigns returns every cached campaign, oldest first.
func (s *SQLiteStore) ListSnapshotCampaigns(ctx context.Context) ([]model.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, start_balance, current_balance, total_deposits, total_withdrawals, created_at
		FROM campaigns ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var campaigns []model.Campaign
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.StartBalance, &c.CurrentBalance,
			&c.TotalDeposits, &c.TotalWithdrawals, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (s *SQLiteStore) loadTransactions(ctx context.Context, campaignID int64) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, campaign_id, kind, amount, created_at
		FROM transactions WHERE campaign_id = ? ORDER BY created_at`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(&txn.ID, &txn.CampaignID, &txn.Kind, &txn.Amount, &txn.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (s *SQLiteStore) loadBets(ctx context.Context, campaignID int64) ([]model.Bet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, campaign_id, sport, stake, odds, result, profit_loss, created_at
		FROM bets WHERE campaign_id = ? ORDER BY created_at`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bets []model.Bet
	for rows.Next() {
		var bet model.Bet
		if err := rows.Scan(&bet.ID, &bet.CampaignID, &bet.Sport, &bet.Stake,
			&bet.Odds, &bet.Result, &bet.ProfitLoss, &bet.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}
	return bets, rows.Err()
}
