package bloom

import "math"

// CheckMBits validates a filter bit width.
func CheckMBits(mBits uint32) error {
	if mBits == 0 || mBits%8 != 0 {
		return ErrBadMBits
	}
	return nil
}

// CheckK validates the number of hash functions against the bit width. Each
// function must have room to land on a distinct bit.
func CheckK(mBits uint32, k uint8) error {
	if k == 0 || k > MaxK || uint32(k) >= mBits {
		return ErrBadK
	}
	return nil
}

// CheckWidth validates a declared item width.
func CheckWidth(width int) error {
	if width <= 0 || width > MaxWidth {
		return ErrBadWidth
	}
	return nil
}

// BytesForBits returns ceil(mBits/8).
func BytesForBits(mBits uint32) uint32 {
	return (mBits + 7) / 8
}

// FalsePositiveRate returns the expected false positive rate after n
// independent insertions:
//
//	(1 - e^(-k*n/m))^k
func FalsePositiveRate(mBits uint32, k uint8, n uint64) float64 {
	if mBits == 0 {
		return 1
	}
	kf := float64(k)
	return math.Pow(1-math.Exp(-kf*float64(n)/float64(mBits)), kf)
}

// OptimalK returns round(m/n * ln2) clamped to [1, MaxK].
func OptimalK(mBits uint32, n uint64) uint8 {
	if n == 0 {
		return 1
	}
	k := math.Round(float64(mBits) / float64(n) * math.Ln2)
	if k < 1 {
		return 1
	}
	if k > float64(MaxK) {
		return MaxK
	}
	return uint8(k)
}
