package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	t.Setenv("BANKROLL_TEST_DIR", "/var/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde prefix", in: "~/state/bankroll.db", want: filepath.Join(home, "state/bankroll.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "env var", in: "$BANKROLL_TEST_DIR/bankroll.db", want: "/var/data/bankroll.db"},
		{name: "plain path", in: "/tmp/bankroll.db", want: "/tmp/bankroll.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
