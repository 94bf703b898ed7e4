// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// SendAddrV2Payload is empty: sendaddrv2 is a pure capability
// announcement with no address-manager implementation behind it in this
// node: it is never sent, the handshake rejects it as unexpected, and the
// main loop logs and ignores it.
func SendAddrV2Payload() []byte {
	return nil
}
