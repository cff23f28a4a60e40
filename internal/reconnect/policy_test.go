package reconnect

import (
	"testing"
	"time"
)

func TestShouldReconnect_TerminalCodes(t *testing.T) {
	p := Default()

	for _, code := range []int{1000, 1003, 1008, 4401} {
		for _, attempts := range []int{0, 1, 4, 5, 100} {
			if p.ShouldReconnect(code, attempts) {
				t.Errorf("ShouldReconnect(%d, %d) = true, want false", code, attempts)
			}
		}
	}
}

func TestShouldReconnect_TransientCodes(t *testing.T) {
	p := Default()

	tests := []struct {
		code     int
		attempts int
		want     bool
	}{
		{1006, 0, true},
		{1006, 4, true},
		{1006, 5, false},
		{1006, 6, false},
		{1011, 0, true},
		{1001, 2, true},
		{4500, 0, true},
		{4500, 5, false},
	}

	for _, tt := range tests {
		if got := p.ShouldReconnect(tt.code, tt.attempts); got != tt.want {
			t.Errorf("ShouldReconnect(%d, %d) = %v, want %v", tt.code, tt.attempts, got, tt.want)
		}
	}
}

func TestNextDelay_Fixed(t *testing.T) {
	p := Default()

	for _, attempts := range []int{0, 1, 3, 5} {
		if got := p.NextDelay(attempts); got != 3*time.Second {
			t.Errorf("NextDelay(%d) = %v, want 3s", attempts, got)
		}
	}
}

func TestIsTerminalCode(t *testing.T) {
	for _, code := range []int{1000, 1003, 1008, 4401} {
		if !IsTerminalCode(code) {
			t.Errorf("IsTerminalCode(%d) = false, want true", code)
		}
	}
	for _, code := range []int{1001, 1006, 1011, 4400, 4402} {
		if IsTerminalCode(code) {
			t.Errorf("IsTerminalCode(%d) = true, want false", code)
		}
	}
}
