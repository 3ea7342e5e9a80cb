package graduation

import "math/bits"

// ApplyBps returns amount × bps / 10000 using 128-bit intermediate math so
// the multiplication cannot overflow. The result never exceeds amount for
// bps ≤ 10000.
func ApplyBps(amount uint64, bps uint16) uint64 {
	hi, lo := bits.Mul64(amount, uint64(bps))
	quo, _ := bits.Div64(hi, lo, 10000)
	return quo
}
