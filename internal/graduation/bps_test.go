package graduation

import (
	"math"
	"testing"
)

func TestApplyBps(t *testing.T) {
	tests := []struct {
		name   string
		amount uint64
		bps    uint16
		want   uint64
	}{
		{"zero amount", 0, 500, 0},
		{"zero bps", 75_900, 0, 0},
		{"five percent fee", 75_900, 500, 3_795},
		{"one percent", 600_000, 100, 6_000},
		{"rounds down", 999, 500, 49},
		{"full 10000 bps", 123_456, 10_000, 123_456},
		{"max uint64 no overflow", math.MaxUint64, 500, math.MaxUint64 / 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyBps(tt.amount, tt.bps)
			if got != tt.want {
				t.Errorf("ApplyBps(%d, %d) = %d, want %d", tt.amount, tt.bps, got, tt.want)
			}
		})
	}
}

func TestApplyBps_NeverExceedsAmount(t *testing.T) {
	amounts := []uint64{1, 999, 69_000_000_000, math.MaxUint64}
	for _, amount := range amounts {
		for bps := uint16(0); bps <= 10_000; bps += 2_500 {
			if got := ApplyBps(amount, bps); got > amount {
				t.Errorf("ApplyBps(%d, %d) = %d exceeds amount", amount, bps, got)
			}
		}
	}
}
