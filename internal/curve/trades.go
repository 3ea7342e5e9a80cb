package curve

import (
	"math"
	"math/bits"
)

// Trade accounting at data-model depth: the curve's pricing engine decides
// the amounts, the ledger records the movement and withholds the trade fee.

// tradeFee computes amount*feeBps/10000 through a 128-bit intermediate, so
// large amounts cannot overflow the product. feeBps never exceeds the
// denominator, so the fee never exceeds the amount.
func tradeFee(amount uint64, feeBps uint16) uint64 {
	hi, lo := bits.Mul64(amount, uint64(feeBps))
	fee, _ := bits.Div64(hi, lo, bpsDenominator)
	return fee
}

// RecordBuy records a buy: baseIn enters the pool (fee withheld), tokensOut
// leave the token reserve into circulation.
func (l *Ledger) RecordBuy(poolID string, baseIn, tokensOut uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if p.graduated {
		return ErrAlreadyGraduated
	}
	if p.paused {
		return ErrPoolPaused
	}
	if tokensOut > p.tokenReserve {
		return ErrReserveUnderflow
	}

	fee := tradeFee(baseIn, p.tradeFeeBps)
	net := baseIn - fee
	if net > math.MaxUint64-p.baseReserve {
		return ErrReserveOverflow
	}
	if fee > math.MaxUint64-p.feesAccrued {
		return ErrReserveOverflow
	}
	if tokensOut > math.MaxUint64-p.circulatingSupply {
		return ErrReserveOverflow
	}

	p.baseReserve += net
	p.feesAccrued += fee
	p.tokenReserve -= tokensOut
	p.circulatingSupply += tokensOut
	return nil
}

// RecordSell records a sell: tokensIn return to the token reserve, baseOut
// (fee already deducted by the pricing engine) leaves the base reserve.
func (l *Ledger) RecordSell(poolID string, tokensIn, baseOut uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.pools[poolID]
	if !ok {
		return ErrPoolNotFound
	}
	if p.graduated {
		return ErrAlreadyGraduated
	}
	if p.paused {
		return ErrPoolPaused
	}
	if baseOut > p.baseReserve {
		return ErrReserveUnderflow
	}
	if tokensIn > p.circulatingSupply {
		return ErrReserveUnderflow
	}
	if tokensIn > math.MaxUint64-p.tokenReserve {
		return ErrReserveOverflow
	}

	p.baseReserve -= baseOut
	p.tokenReserve += tokensIn
	p.circulatingSupply -= tokensIn
	return nil
}

// FeesAccrued returns the trade fees withheld for a pool.
func (l *Ledger) FeesAccrued(poolID string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, ok := l.pools[poolID]
	if !ok {
		return 0, ErrPoolNotFound
	}
	return p.feesAccrued, nil
}
