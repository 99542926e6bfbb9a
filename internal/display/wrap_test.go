package display

import (
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestGold(t *testing.T) {
	tests := map[string]struct {
		amount int64
		exp    string
	}{
		"zero":     {amount: 0, exp: "0"},
		"hundreds": {amount: 300, exp: "300"},
		"millions": {amount: 1250000, exp: "1,250,000"},
		"trillion": {amount: 40400000000000, exp: "40,400,000,000,000"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "gold", Gold(tt.amount), tt.exp)
		})
	}
}

func TestWrap(t *testing.T) {
	text := strings.Repeat("fish ", 40)

	for _, line := range strings.Split(Wrap(text), "\n") {
		if len(strings.TrimSpace(line)) > DefaultWidth {
			t.Errorf("line longer than %d: %q", DefaultWidth, line)
		}
	}
}
