// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"net"
)

// NetAddressSize is the encoded size of the no-time NetAddress form used
// inside version/getheaders-adjacent payloads: services(8) + ip(16) +
// port(2).
const NetAddressSize = 8 + 16 + 2

// ipv4InIPv6Prefix is prepended to an IPv4 address to render it as an
// IPv4-mapped IPv6 address, the form the wire protocol always uses for
// the 16-byte IP field.
var ipv4InIPv6Prefix = []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff}

// NetAddress describes a peer's address and the services it advertises,
// in the no-timestamp form used within the version message.
type NetAddress struct {
	Services ServiceFlag
	IP       net.IP
	Port     uint16
}

// Encode serializes the address as services(8 LE) || ip(16,
// IPv4-mapped if the address is IPv4) || port(2 BE).
func (na *NetAddress) Encode() []byte {
	out := make([]byte, NetAddressSize)
	binary.LittleEndian.PutUint64(out[0:8], uint64(na.Services))

	ip4 := na.IP.To4()
	if ip4 != nil {
		copy(out[8:20], ipv4InIPv6Prefix)
		copy(out[20:24], ip4)
	} else {
		ip16 := na.IP.To16()
		if ip16 == nil {
			ip16 = make(net.IP, 16)
		}
		copy(out[8:24], ip16)
	}

	binary.BigEndian.PutUint16(out[24:26], na.Port)
	return out
}

// DecodeNetAddress decodes a NetAddress from buf[offset:offset+26].
func DecodeNetAddress(buf []byte, offset int) (*NetAddress, error) {
	if offset+NetAddressSize > len(buf) {
		return nil, fmt.Errorf("%w: truncated network address", ErrInvalidLength)
	}

	services := ServiceFlag(binary.LittleEndian.Uint64(buf[offset : offset+8]))

	ipBytes := make(net.IP, 16)
	copy(ipBytes, buf[offset+8:offset+24])

	port := binary.BigEndian.Uint16(buf[offset+24 : offset+26])

	return &NetAddress{Services: services, IP: ipBytes, Port: port}, nil
}
