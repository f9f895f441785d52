package tui

import "github.com/punterlabs/bankroll/internal/model"

// Every load carries the sequence number it was issued with. Responses
// whose sequence no longer matches the model's are dropped, so a slow
// fetch can never overwrite the result of a newer one.

type campaignsLoadedMsg struct {
	err       error
	campaigns []model.Campaign
	seq       int
}

type recordsLoadedMsg struct {
	err          error
	campaign     *model.Campaign
	transactions []model.Transaction
	bets         []model.Bet
	seq          int
}
