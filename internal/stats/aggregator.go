// Package stats derives campaign statistics from filtered transaction
// and bet lists. Every ratio guards its denominator: a Summary never
// carries NaN or Inf since its fields render directly.
package stats

import (
	"github.com/punterlabs/bankroll/internal/model"
)

// Summary is the full set of derived metrics for one campaign and one
// date range. It is produced atomically; callers never observe a
// partially-computed value.
type Summary struct {
	BestBet  *model.Bet
	WorstBet *model.Bet

	// Balance
	StartBalance     float64
	EndBalance       float64
	NetChange        float64
	PercentageChange float64

	// Transactions
	TotalDeposits     float64
	TotalWithdrawals  float64
	NetTransactions   float64
	LargestDeposit    float64
	LargestWithdrawal float64
	DepositCount      int
	WithdrawalCount   int

	// Bets
	TotalBets       int
	WinningBets     int
	LosingBets      int
	PendingBets     int
	TotalStake      float64
	TotalProfitLoss float64
	TotalReturn     float64
	ROI             float64
	WinRate         float64

	// Performance
	AverageOdds  float64
	AverageStake float64
	BiggestWin   float64
	BiggestLoss  float64
}

// Compute aggregates the given records. Transactions and bets are
// expected to be pre-filtered to the active date range.
func Compute(campaign model.Campaign, transactions []model.Transaction, bets []model.Bet) Summary {
	s := Summary{
		StartBalance: campaign.StartBalance,
		EndBalance:   campaign.CurrentBalance,
	}

	for _, txn := range transactions {
		switch txn.Kind {
		case model.KindDeposit:
			s.TotalDeposits += txn.Amount
			s.DepositCount++
			if txn.Amount > s.LargestDeposit {
				s.LargestDeposit = txn.Amount
			}
		case model.KindWithdrawal:
			s.TotalWithdrawals += txn.Amount
			s.WithdrawalCount++
			if txn.Amount > s.LargestWithdrawal {
				s.LargestWithdrawal = txn.Amount
			}
		}
	}
	s.NetTransactions = s.TotalDeposits - s.TotalWithdrawals

	var totalOdds float64
	for i := range bets {
		bet := bets[i]
		s.TotalBets++
		s.TotalStake += bet.Stake
		totalOdds += bet.Odds

		switch bet.Result {
		case model.ResultWin:
			s.WinningBets++
			s.TotalProfitLoss += bet.ProfitLoss
			if bet.ProfitLoss > s.BiggestWin {
				s.BiggestWin = bet.ProfitLoss
			}
			if s.BestBet == nil || bet.ProfitLoss > s.BestBet.ProfitLoss {
				s.BestBet = &bets[i]
			}
		case model.ResultLoss:
			s.LosingBets++
			s.TotalProfitLoss += bet.ProfitLoss
			if bet.ProfitLoss < s.BiggestLoss {
				s.BiggestLoss = bet.ProfitLoss
			}
			if s.WorstBet == nil || bet.ProfitLoss < s.WorstBet.ProfitLoss {
				s.WorstBet = &bets[i]
			}
		case model.ResultPending:
			s.PendingBets++
		}
	}

	s.TotalReturn = s.TotalStake + s.TotalProfitLoss

	// Rates against settled bets only; a book full of pending bets has
	// a win rate of 0, not a divide-by-zero.
	settled := s.WinningBets + s.LosingBets
	if settled > 0 {
		s.WinRate = float64(s.WinningBets) / float64(settled) * 100
	}
	if s.TotalStake > 0 {
		s.ROI = s.TotalProfitLoss / s.TotalStake * 100
	}
	if s.TotalBets > 0 {
		s.AverageOdds = totalOdds / float64(s.TotalBets)
		s.AverageStake = s.TotalStake / float64(s.TotalBets)
	}

	s.NetChange = s.NetTransactions + s.TotalProfitLoss
	if s.StartBalance != 0 {
		s.PercentageChange = s.NetChange / s.StartBalance * 100
	}

	return s
}

// SettledBets returns how many bets in the summary reached a terminal
// result.
func (s Summary) SettledBets() int {
	return s.WinningBets + s.LosingBets
}
