// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"math"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// nextPowerOfTwo returns the next highest power of two from n, or n
// itself if it is already one.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}

	exponent := uint(math.Log2(float64(n))) + 1
	return 1 << exponent
}

// HashMerkleBranches concatenates left and right and returns HASH256 of
// the result -- the node hash one level up the tree.
func HashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

// BuildMerkleTreeStore builds the full tree over leaves as a linear
// array, following the layout where the root is always the last
// element: [h1 h2 h3 h4 h12 h34 root]. A missing right sibling is
// covered by duplicating the left one.
//
// This node only ever validates headers, never assembles block bodies,
// so leaves is any ordered set of transaction hashes the caller already
// holds; there is no witness variant since SegWit transaction
// validation is out of scope.
func BuildMerkleTreeStore(leaves []chainhash.Hash) []*chainhash.Hash {
	if len(leaves) == 0 {
		return nil
	}

	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	merkles := make([]*chainhash.Hash, arraySize)

	for i := range leaves {
		h := leaves[i]
		merkles[i] = &h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case merkles[i] == nil:
			merkles[offset] = nil
		case merkles[i+1] == nil:
			newHash := HashMerkleBranches(merkles[i], merkles[i])
			merkles[offset] = &newHash
		default:
			newHash := HashMerkleBranches(merkles[i], merkles[i+1])
			merkles[offset] = &newHash
		}
		offset++
	}

	return merkles
}

// CalcMerkleRoot computes the merkle root over leaves without
// retaining the interior nodes.
func CalcMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}
	tree := BuildMerkleTreeStore(leaves)
	return *tree[len(tree)-1]
}
