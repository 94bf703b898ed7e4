// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/sha1"
	"crypto/sha256"
	"errors"
	"math/big"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
	"github.com/nicolafiorillo/bitcoinrules/secp256k1"
)

// Maximum element size Script tolerates on the data stack, matching
// Bitcoin Core's MAX_SCRIPT_ELEMENT_SIZE.
const maxScriptElementSize = 520

var (
	// ErrStackUnderflow is returned when an opcode needs more elements
	// than the stack currently holds.
	ErrStackUnderflow = errors.New("txscript: stack underflow")
	// ErrVerifyFailed is returned by OP_VERIFY and its *VERIFY siblings
	// when the checked condition is false.
	ErrVerifyFailed = errors.New("txscript: VERIFY failed")
	// ErrReturn is returned by OP_RETURN; any script invoking it is
	// unconditionally invalid.
	ErrReturn = errors.New("txscript: OP_RETURN encountered")
	// ErrDisabledOpcode is returned for opcodes this engine refuses to
	// execute, mirroring Bitcoin Core disabling the legacy bitwise and
	// arithmetic-overflow-prone opcodes.
	ErrDisabledOpcode = errors.New("txscript: disabled or unimplemented opcode")
	// ErrUnbalancedConditional is returned when a script ends with an
	// OP_IF/OP_NOTIF that was never closed by OP_ENDIF.
	ErrUnbalancedConditional = errors.New("txscript: unbalanced conditional")
	// ErrElementTooBig is returned when a pushed element exceeds
	// maxScriptElementSize.
	ErrElementTooBig = errors.New("txscript: element exceeds maximum size")
)

// Engine executes a token sequence against a stack machine. z is the
// transaction's sighash integer, consulted by OP_CHECKSIG and
// OP_CHECKSIGVERIFY; this engine never looks at a subscript or
// CODESEPARATOR position, since signature-hash computation happens
// once, up front, in the tx package.
type Engine struct {
	tokens []Token
	pc     int

	stack    [][]byte
	altStack [][]byte
	cond     conditionStack

	z *big.Int
}

// NewEngine tokenizes script and readies an Engine to evaluate it
// against sighash integer z.
func NewEngine(script []byte, z *big.Int) (*Engine, error) {
	tokens, err := Tokenize(script)
	if err != nil {
		return nil, err
	}
	return &Engine{tokens: tokens, z: z}, nil
}

// Evaluate runs every token in order, honoring the condition stack, and
// returns the first error encountered.
func (e *Engine) Evaluate() error {
	for e.pc < len(e.tokens) {
		tok := e.tokens[e.pc]
		e.pc++

		if !e.cond.executing() && !tok.isBranchCondition() {
			continue
		}

		if tok.IsElement {
			if len(tok.Element) > maxScriptElementSize {
				return ErrElementTooBig
			}
			e.push(tok.Element)
			continue
		}

		info := opcodeArray[tok.Command]
		if err := info.exec(e); err != nil {
			return err
		}
	}

	if !e.cond.empty() {
		return ErrUnbalancedConditional
	}
	return nil
}

// IsValid reports whether the stack, after a successful Evaluate,
// holds exactly one truthy element -- Script's definition of a
// satisfied scriptSig/scriptPubKey pair.
func (e *Engine) IsValid() bool {
	return len(e.stack) == 1 && asBool(e.stack[0])
}

func (e *Engine) push(b []byte) { e.stack = append(e.stack, b) }

func (e *Engine) pop() ([]byte, error) {
	if len(e.stack) == 0 {
		return nil, ErrStackUnderflow
	}
	n := len(e.stack) - 1
	v := e.stack[n]
	e.stack = e.stack[:n]
	return v, nil
}

func (e *Engine) peek(fromTop int) ([]byte, error) {
	if fromTop >= len(e.stack) {
		return nil, ErrStackUnderflow
	}
	return e.stack[len(e.stack)-1-fromTop], nil
}

func (e *Engine) popInt() (int64, error) {
	v, err := e.pop()
	if err != nil {
		return 0, err
	}
	return scriptNumDecode(v), nil
}

func (e *Engine) pushInt(n int64) { e.push(scriptNumEncode(n)) }
func (e *Engine) pushBool(b bool) { e.push(boolElement(b)) }

// opUnimplemented backs every disabled or not-yet-specified opcode.
func opUnimplemented(e *Engine) error { return ErrDisabledOpcode }

func opFalse(e *Engine) error { e.push(nil); return nil }

func op1Negate(e *Engine) error { e.pushInt(-1); return nil }

func opReserved(e *Engine) error { return ErrDisabledOpcode }

// opN builds the handler for OP_1..OP_16, each pushing its own
// numeric value.
func opN(op int) func(*Engine) error {
	n := int64(op - OP_1 + 1)
	return func(e *Engine) error {
		e.pushInt(n)
		return nil
	}
}

func opNop(e *Engine) error { return nil }

func opIf(e *Engine) error {
	cond := false
	if e.cond.executing() {
		v, err := e.pop()
		if err != nil {
			return err
		}
		cond = asBool(v)
	}
	e.cond.push(cond)
	return nil
}

func opNotIf(e *Engine) error {
	cond := false
	if e.cond.executing() {
		v, err := e.pop()
		if err != nil {
			return err
		}
		cond = !asBool(v)
	}
	e.cond.push(cond)
	return nil
}

func opElse(e *Engine) error {
	if !e.cond.toggle() {
		return ErrUnbalancedConditional
	}
	return nil
}

func opEndIf(e *Engine) error {
	if !e.cond.pop() {
		return ErrUnbalancedConditional
	}
	return nil
}

func opVerify(e *Engine) error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	if !asBool(v) {
		return ErrVerifyFailed
	}
	return nil
}

func opReturn(e *Engine) error { return ErrReturn }

func opToAltStack(e *Engine) error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	e.altStack = append(e.altStack, v)
	return nil
}

func opFromAltStack(e *Engine) error {
	if len(e.altStack) == 0 {
		return ErrStackUnderflow
	}
	n := len(e.altStack) - 1
	v := e.altStack[n]
	e.altStack = e.altStack[:n]
	e.push(v)
	return nil
}

func op2Drop(e *Engine) error {
	if _, err := e.pop(); err != nil {
		return err
	}
	if _, err := e.pop(); err != nil {
		return err
	}
	return nil
}

func op2Dup(e *Engine) error {
	b, err := e.peek(0)
	if err != nil {
		return err
	}
	a, err := e.peek(1)
	if err != nil {
		return err
	}
	e.push(a)
	e.push(b)
	return nil
}

func op3Dup(e *Engine) error {
	c, err := e.peek(0)
	if err != nil {
		return err
	}
	b, err := e.peek(1)
	if err != nil {
		return err
	}
	a, err := e.peek(2)
	if err != nil {
		return err
	}
	e.push(a)
	e.push(b)
	e.push(c)
	return nil
}

func op2Over(e *Engine) error {
	b, err := e.peek(2)
	if err != nil {
		return err
	}
	a, err := e.peek(3)
	if err != nil {
		return err
	}
	e.push(a)
	e.push(b)
	return nil
}

func op2Swap(e *Engine) error {
	if len(e.stack) < 4 {
		return ErrStackUnderflow
	}
	n := len(e.stack)
	e.stack[n-4], e.stack[n-2] = e.stack[n-2], e.stack[n-4]
	e.stack[n-3], e.stack[n-1] = e.stack[n-1], e.stack[n-3]
	return nil
}

func op2Rot(e *Engine) error {
	if len(e.stack) < 6 {
		return ErrStackUnderflow
	}
	n := len(e.stack)
	v1, v2 := e.stack[n-6], e.stack[n-5]
	e.stack = append(e.stack[:n-6], e.stack[n-4:]...)
	e.push(v1)
	e.push(v2)
	return nil
}

func opIfDup(e *Engine) error {
	v, err := e.peek(0)
	if err != nil {
		return err
	}
	if asBool(v) {
		e.push(v)
	}
	return nil
}

func opDepth(e *Engine) error {
	e.pushInt(int64(len(e.stack)))
	return nil
}

func opDrop(e *Engine) error {
	_, err := e.pop()
	return err
}

func opDup(e *Engine) error {
	v, err := e.peek(0)
	if err != nil {
		return err
	}
	e.push(v)
	return nil
}

func opNip(e *Engine) error {
	if len(e.stack) < 2 {
		return ErrStackUnderflow
	}
	n := len(e.stack)
	e.stack = append(e.stack[:n-2], e.stack[n-1])
	return nil
}

func opOver(e *Engine) error {
	v, err := e.peek(1)
	if err != nil {
		return err
	}
	e.push(v)
	return nil
}

func opPick(e *Engine) error {
	n, err := e.popInt()
	if err != nil {
		return err
	}
	if n < 0 || int(n) >= len(e.stack) {
		return ErrStackUnderflow
	}
	v, err := e.peek(int(n))
	if err != nil {
		return err
	}
	e.push(v)
	return nil
}

func opRoll(e *Engine) error {
	n, err := e.popInt()
	if err != nil {
		return err
	}
	if n < 0 || int(n) >= len(e.stack) {
		return ErrStackUnderflow
	}
	idx := len(e.stack) - 1 - int(n)
	v := e.stack[idx]
	e.stack = append(e.stack[:idx], e.stack[idx+1:]...)
	e.push(v)
	return nil
}

func opRot(e *Engine) error {
	if len(e.stack) < 3 {
		return ErrStackUnderflow
	}
	n := len(e.stack)
	e.stack[n-3], e.stack[n-2], e.stack[n-1] = e.stack[n-2], e.stack[n-1], e.stack[n-3]
	return nil
}

func opSwap(e *Engine) error {
	if len(e.stack) < 2 {
		return ErrStackUnderflow
	}
	n := len(e.stack)
	e.stack[n-2], e.stack[n-1] = e.stack[n-1], e.stack[n-2]
	return nil
}

func opTuck(e *Engine) error {
	if len(e.stack) < 2 {
		return ErrStackUnderflow
	}
	n := len(e.stack)
	top := e.stack[n-1]
	e.stack = append(e.stack[:n-2], top, e.stack[n-2], top)
	return nil
}

func opSize(e *Engine) error {
	v, err := e.peek(0)
	if err != nil {
		return err
	}
	e.pushInt(int64(len(v)))
	return nil
}

func opEqual(e *Engine) error {
	b, err := e.pop()
	if err != nil {
		return err
	}
	a, err := e.pop()
	if err != nil {
		return err
	}
	e.pushBool(bytes.Equal(a, b))
	return nil
}

func opEqualVerify(e *Engine) error {
	if err := opEqual(e); err != nil {
		return err
	}
	return opVerify(e)
}

func binaryNumOp(e *Engine, f func(a, b int64) int64) error {
	b, err := e.popInt()
	if err != nil {
		return err
	}
	a, err := e.popInt()
	if err != nil {
		return err
	}
	e.pushInt(f(a, b))
	return nil
}

func binaryBoolOp(e *Engine, f func(a, b int64) bool) error {
	b, err := e.popInt()
	if err != nil {
		return err
	}
	a, err := e.popInt()
	if err != nil {
		return err
	}
	e.pushBool(f(a, b))
	return nil
}

func unaryNumOp(e *Engine, f func(a int64) int64) error {
	a, err := e.popInt()
	if err != nil {
		return err
	}
	e.pushInt(f(a))
	return nil
}

func op1Add(e *Engine) error   { return unaryNumOp(e, func(a int64) int64 { return a + 1 }) }
func op1Sub(e *Engine) error   { return unaryNumOp(e, func(a int64) int64 { return a - 1 }) }
func opNegate(e *Engine) error { return unaryNumOp(e, func(a int64) int64 { return -a }) }
func opAbs(e *Engine) error {
	return unaryNumOp(e, func(a int64) int64 {
		if a < 0 {
			return -a
		}
		return a
	})
}

func opNot(e *Engine) error {
	a, err := e.popInt()
	if err != nil {
		return err
	}
	e.pushBool(a == 0)
	return nil
}

func op0NotEqual(e *Engine) error {
	a, err := e.popInt()
	if err != nil {
		return err
	}
	e.pushBool(a != 0)
	return nil
}

func opAdd(e *Engine) error { return binaryNumOp(e, func(a, b int64) int64 { return a + b }) }
func opSub(e *Engine) error { return binaryNumOp(e, func(a, b int64) int64 { return a - b }) }

func opBoolAnd(e *Engine) error { return binaryBoolOp(e, func(a, b int64) bool { return a != 0 && b != 0 }) }
func opBoolOr(e *Engine) error  { return binaryBoolOp(e, func(a, b int64) bool { return a != 0 || b != 0 }) }
func opNumEqual(e *Engine) error    { return binaryBoolOp(e, func(a, b int64) bool { return a == b }) }
func opNumNotEqual(e *Engine) error { return binaryBoolOp(e, func(a, b int64) bool { return a != b }) }
func opLessThan(e *Engine) error    { return binaryBoolOp(e, func(a, b int64) bool { return a < b }) }
func opGreaterThan(e *Engine) error { return binaryBoolOp(e, func(a, b int64) bool { return a > b }) }
func opLessThanOrEqual(e *Engine) error {
	return binaryBoolOp(e, func(a, b int64) bool { return a <= b })
}
func opGreaterThanOrEqual(e *Engine) error {
	return binaryBoolOp(e, func(a, b int64) bool { return a >= b })
}

func opNumEqualVerify(e *Engine) error {
	if err := opNumEqual(e); err != nil {
		return err
	}
	return opVerify(e)
}

func opMin(e *Engine) error {
	return binaryNumOp(e, func(a, b int64) int64 {
		if a < b {
			return a
		}
		return b
	})
}

func opMax(e *Engine) error {
	return binaryNumOp(e, func(a, b int64) int64 {
		if a > b {
			return a
		}
		return b
	})
}

func opWithin(e *Engine) error {
	max, err := e.popInt()
	if err != nil {
		return err
	}
	min, err := e.popInt()
	if err != nil {
		return err
	}
	x, err := e.popInt()
	if err != nil {
		return err
	}
	e.pushBool(x >= min && x < max)
	return nil
}

func opRipemd160(e *Engine) error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	e.push(chainhash.Ripemd160(v))
	return nil
}

func opSha1(e *Engine) error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	sum := sha1.Sum(v)
	e.push(sum[:])
	return nil
}

func opSha256(e *Engine) error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	sum := sha256.Sum256(v)
	e.push(sum[:])
	return nil
}

func opHash160(e *Engine) error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	e.push(chainhash.Hash160(v))
	return nil
}

func opHash256(e *Engine) error {
	v, err := e.pop()
	if err != nil {
		return err
	}
	e.push(chainhash.DoubleHashB(v))
	return nil
}

// opCheckSig pops a pubkey then a signature, strips the signature's
// trailing sighash-type byte, and verifies the remaining DER signature
// against the engine's sighash integer and the parsed pubkey.
func opCheckSig(e *Engine) error {
	pubKeyBytes, err := e.pop()
	if err != nil {
		return err
	}
	sigBytes, err := e.pop()
	if err != nil {
		return err
	}

	ok := checkSig(sigBytes, pubKeyBytes, e.z)
	e.pushBool(ok)
	return nil
}

func opCheckSigVerify(e *Engine) error {
	if err := opCheckSig(e); err != nil {
		return err
	}
	return opVerify(e)
}

// checkSig implements the signature check shared by OP_CHECKSIG and
// OP_CHECKSIGVERIFY. A malformed pubkey or signature is not a script
// error: it simply fails the check, leaving the script free to take
// the false branch (as multisig-style scripts with extra, unused
// signature slots rely on).
func checkSig(sigBytes, pubKeyBytes []byte, z *big.Int) bool {
	if len(sigBytes) == 0 {
		return false
	}
	der := sigBytes[:len(sigBytes)-1]

	sig, err := secp256k1.ParseDERSignature(der)
	if err != nil {
		return false
	}
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}
	return secp256k1.Verify(pubKey, z, sig)
}
