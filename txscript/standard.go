// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "errors"

// errInvalidMultiSigParams is returned when MultiSigScript is asked to
// build an m-of-n script outside Script's OP_1..OP_16 range.
var errInvalidMultiSigParams = errors.New("txscript: invalid multisig parameters")

// ScriptClass classifies the shape of a scriptPubKey, recognizing the
// handful of standard output templates this node understands. Anything
// else -- including P2SH and SegWit's witness programs, both out of
// scope -- classifies as Unknown.
type ScriptClass int

const (
	UnknownTy ScriptClass = iota
	PubKeyTy
	PubKeyHashTy
	MultiSigTy
	NullDataTy
)

func (c ScriptClass) String() string {
	switch c {
	case PubKeyTy:
		return "pubkey"
	case PubKeyHashTy:
		return "pubkeyhash"
	case MultiSigTy:
		return "multisig"
	case NullDataTy:
		return "nulldata"
	default:
		return "nonstandard"
	}
}

// ClassifyScript inspects a scriptPubKey's token shape and reports its
// ScriptClass. This matches on the tokenized structure directly rather
// than re-deriving a textual representation and running it through a
// regular expression, the way the Rust original does.
func ClassifyScript(script []byte) ScriptClass {
	tokens, err := Tokenize(script)
	if err != nil {
		return UnknownTy
	}

	if isNullData(tokens) {
		return NullDataTy
	}
	if isPubKeyHash(tokens) {
		return PubKeyHashTy
	}
	if isPubKey(tokens) {
		return PubKeyTy
	}
	if isMultiSig(tokens) {
		return MultiSigTy
	}
	return UnknownTy
}

// isPubKey matches `<pubkey> OP_CHECKSIG`.
func isPubKey(tokens []Token) bool {
	return len(tokens) == 2 &&
		tokens[0].IsElement && isPubKeyLength(len(tokens[0].Element)) &&
		isCommand(tokens[1], OP_CHECKSIG)
}

// isPubKeyHash matches `OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG`.
func isPubKeyHash(tokens []Token) bool {
	return len(tokens) == 5 &&
		isCommand(tokens[0], OP_DUP) &&
		isCommand(tokens[1], OP_HASH160) &&
		tokens[2].IsElement && len(tokens[2].Element) == 20 &&
		isCommand(tokens[3], OP_EQUALVERIFY) &&
		isCommand(tokens[4], OP_CHECKSIG)
}

// isNullData matches `OP_RETURN <data>`, the convention this node uses
// to carry arbitrary application data without creating a spendable
// output.
func isNullData(tokens []Token) bool {
	return len(tokens) == 2 &&
		isCommand(tokens[0], OP_RETURN) &&
		tokens[1].IsElement
}

// isMultiSig matches `OP_<m> <pubkey>... OP_<n> OP_CHECKMULTISIG`.
func isMultiSig(tokens []Token) bool {
	if len(tokens) < 4 {
		return false
	}
	if !isCommand(tokens[len(tokens)-1], OP_CHECKMULTISIG) {
		return false
	}

	n, ok := smallIntValue(tokens[len(tokens)-2])
	if !ok {
		return false
	}

	keys := tokens[1 : len(tokens)-2]
	if len(keys) != n {
		return false
	}
	for _, k := range keys {
		if !k.IsElement || !isPubKeyLength(len(k.Element)) {
			return false
		}
	}

	_, ok = smallIntValue(tokens[0])
	return ok
}

func isCommand(t Token, op byte) bool { return !t.IsElement && t.Command == op }

func isPubKeyLength(n int) bool { return n == 33 || n == 65 }

// smallIntValue reports the integer value of an OP_1..OP_16 token.
func smallIntValue(t Token) (int, bool) {
	if t.IsElement || t.Command < OP_1 || t.Command > OP_16 {
		return 0, false
	}
	return int(t.Command) - OP_1 + 1, true
}

// smallIntOpcode is the inverse of smallIntValue, for n in [1,16].
func smallIntOpcode(n int) byte { return byte(OP_1 + n - 1) }

// PayToPubKeyScript builds a `<pubkey> OP_CHECKSIG` scriptPubKey.
func PayToPubKeyScript(pubKey []byte) ([]byte, error) {
	return Serialize([]Token{elementToken(pubKey), commandToken(OP_CHECKSIG)})
}

// PayToPubKeyHashScript builds a P2PKH scriptPubKey from a 20-byte
// HASH160 pubkey hash.
func PayToPubKeyHashScript(pkHash []byte) ([]byte, error) {
	return Serialize([]Token{
		commandToken(OP_DUP),
		commandToken(OP_HASH160),
		elementToken(pkHash),
		commandToken(OP_EQUALVERIFY),
		commandToken(OP_CHECKSIG),
	})
}

// NullDataScript builds an `OP_RETURN <data>` scriptPubKey.
func NullDataScript(data []byte) ([]byte, error) {
	return Serialize([]Token{commandToken(OP_RETURN), elementToken(data)})
}

// MultiSigScript builds an m-of-n bare multisig scriptPubKey:
// `OP_<m> <pubkey>... OP_<n> OP_CHECKMULTISIG`.
func MultiSigScript(m int, pubKeys [][]byte) ([]byte, error) {
	n := len(pubKeys)
	if m < 1 || m > 16 || n < m || n > 16 {
		return nil, errInvalidMultiSigParams
	}

	tokens := make([]Token, 0, n+3)
	tokens = append(tokens, commandToken(smallIntOpcode(m)))
	for _, pk := range pubKeys {
		tokens = append(tokens, elementToken(pk))
	}
	tokens = append(tokens, commandToken(smallIntOpcode(n)), commandToken(OP_CHECKMULTISIG))

	return Serialize(tokens)
}
