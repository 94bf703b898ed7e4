// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// VerAckPayload is empty: verack carries no data beyond its command
// name, acknowledging receipt of the peer's version message.
func VerAckPayload() []byte {
	return nil
}
