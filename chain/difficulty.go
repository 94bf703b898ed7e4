// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math/big"
)

// MaxBits is the highest (easiest) compact target allowed on mainnet:
// exponent 0x1D, mantissa 0x00FFFF.
const MaxBits uint32 = 0x1d00ffff

// RetargetBlocks is the number of blocks between difficulty
// retargets.
const RetargetBlocks = 2016

// targetTimespan is the intended span, in seconds, of RetargetBlocks
// blocks at 10 minutes each (two weeks).
const targetTimespan = int64(14 * 24 * 60 * 60)

// MaxTarget is the highest (easiest, difficulty 1) target, corresponding
// to MaxBits.
var MaxTarget = BitsToTarget(MaxBits)

// BitsToTarget expands the compact "bits" encoding into a 256-bit target:
// target = mantissa * 256^(exponent-3), where exponent is the high byte
// of bits and mantissa its low 23 bits. Values above MaxBits are clamped
// to MaxTarget, matching how an over-easy retarget is rejected.
func BitsToTarget(bits uint32) *big.Int {
	if bits > MaxBits {
		return new(big.Int).Set(bitsToTargetUnclamped(MaxBits))
	}
	return bitsToTargetUnclamped(bits)
}

func bitsToTargetUnclamped(bits uint32) *big.Int {
	exponent := bits >> 24
	mantissa := int64(bits & 0x007fffff)

	target := big.NewInt(mantissa)
	if exponent >= 3 {
		target.Lsh(target, uint(8*(exponent-3)))
	} else {
		target.Rsh(target, uint(8*(3-exponent)))
	}
	return target
}

// TargetToBits compresses a 256-bit target into the compact "bits"
// encoding: strip leading zero bytes from the big-endian form, prepend a
// zero byte (and bump the exponent) if the remaining top byte's high bit
// is set so the mantissa reads as positive, then take the first three
// bytes as the mantissa.
func TargetToBits(target *big.Int) uint32 {
	b := target.Bytes()
	exponent := len(b)

	if len(b) > 0 && b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
		exponent++
	}

	var mantissa uint32
	switch {
	case len(b) == 0:
		mantissa = 0
		exponent = 0
	case len(b) >= 3:
		mantissa = uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	case len(b) == 2:
		mantissa = uint32(b[0])<<16 | uint32(b[1])<<8
	case len(b) == 1:
		mantissa = uint32(b[0]) << 16
	}

	return uint32(exponent)<<24 | mantissa
}

// AdjustTarget computes the retarget applied every RetargetBlocks blocks:
// the elapsed time between first and last is clamped to
// [targetTimespan/4, targetTimespan*4], and the new target scales the
// last target by elapsed/targetTimespan.
func AdjustTarget(first, last *Header) *big.Int {
	elapsed := int64(last.Timestamp) - int64(first.Timestamp)

	min := targetTimespan / 4
	max := targetTimespan * 4
	switch {
	case elapsed < min:
		elapsed = min
	case elapsed > max:
		elapsed = max
	}

	lastTarget := BitsToTarget(last.Bits)
	newTarget := new(big.Int).Mul(lastTarget, big.NewInt(elapsed))
	newTarget.Div(newTarget, big.NewInt(targetTimespan))

	if newTarget.Cmp(MaxTarget) > 0 {
		return new(big.Int).Set(MaxTarget)
	}
	return newTarget
}

// CheckProofOfWork reports whether h's HASH256, interpreted as a
// little-endian 256-bit integer, is at most target.
func CheckProofOfWork(h *Header, target *big.Int) bool {
	return hashAsLittleEndianInt(h.idBytesLE()).Cmp(target) <= 0
}

func hashAsLittleEndianInt(leBytes []byte) *big.Int {
	be := make([]byte, len(leBytes))
	for i, b := range leBytes {
		be[len(leBytes)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}

// difficulty1Target is the target at the easiest allowed difficulty
// (bits = MaxBits); Difficulty expresses every other target relative to
// it.
var difficulty1Target = BitsToTarget(MaxBits)

// Difficulty renders a target as the familiar "difficulty" float:
// difficulty1Target / target. Comparisons against reference values
// should use a small epsilon (~4e-16), the tolerance the canonical
// implementation's own test suite uses for this float.
func Difficulty(target *big.Int) float64 {
	if target.Sign() == 0 {
		return 0
	}
	num := new(big.Float).SetInt(difficulty1Target)
	den := new(big.Float).SetInt(target)
	ratio := new(big.Float).Quo(num, den)
	f, _ := ratio.Float64()
	return f
}
