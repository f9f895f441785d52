package model

import (
	"strings"
	"testing"
)

func TestTransaction_SignedAmount(t *testing.T) {
	deposit := Transaction{Kind: KindDeposit, Amount: 200}
	if got := deposit.SignedAmount(); got != 200 {
		t.Errorf("deposit signed amount = %v, want 200", got)
	}

	withdrawal := Transaction{Kind: KindWithdrawal, Amount: 75}
	if got := withdrawal.SignedAmount(); got != -75 {
		t.Errorf("withdrawal signed amount = %v, want -75", got)
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		txn     Transaction
		wantErr bool
	}{
		{name: "valid deposit", txn: Transaction{Kind: KindDeposit, Amount: 100}},
		{name: "valid withdrawal", txn: Transaction{Kind: KindWithdrawal, Amount: 0.01}},
		{
			name:    "unknown kind",
			txn:     Transaction{Kind: "transfer", Amount: 10},
			wantErr: true,
			errMsg:  "invalid transaction kind",
		},
		{
			name:    "zero amount",
			txn:     Transaction{Kind: KindDeposit, Amount: 0},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
		{
			name:    "negative amount",
			txn:     Transaction{Kind: KindWithdrawal, Amount: -5},
			wantErr: true,
			errMsg:  "amount must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
