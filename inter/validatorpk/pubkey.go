// Package validatorpk provides abstractions for handling validator consensus
// public keys. It defines a generic PubKey structure that supports multiple
// cryptographic schemes (currently Secp256k1) and provides utilities for
// serialization, deserialization, and hex string conversion. The genesis
// bootstrap additionally requires every roster entry to carry a proof of
// possession for its consensus key; the digest and verification logic for
// that proof lives in this package as well.

package validatorpk

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// PubKey represents a validator's consensus public key.
// It decouples the key type from the raw bytes, allowing support for different
// signature schemes (e.g., Secp256k1, BLS) in the future.
type PubKey struct {
	// Type identifies the cryptographic curve or algorithm used.
	Type uint8
	// Raw contains the actual public key bytes.
	Raw []byte
}

// Types defines the supported public key type constants.
var Types = struct {
	Secp256k1 uint8
}{
	// Secp256k1 is the identifier for the standard secp256k1 elliptic curve.
	Secp256k1: 0xc0,
}

// Empty checks if the public key is uninitialized or zeroed out.
func (pk PubKey) Empty() bool {
	return len(pk.Raw) == 0 && pk.Type == 0
}

// String returns the hexadecimal string representation of the public key,
// prefixed with "0x". It includes the Type byte followed by the Raw bytes.
func (pk PubKey) String() string {
	return "0x" + common.Bytes2Hex(pk.Bytes())
}

// Bytes returns the flat byte slice representation of the public key.
// The format is [Type byte] + [Raw bytes...].
func (pk PubKey) Bytes() []byte {
	return append([]byte{pk.Type}, pk.Raw...)
}

// Copy creates a deep copy of the PubKey. The Raw field is a slice, so a
// plain assignment would share the underlying memory.
func (pk PubKey) Copy() PubKey {
	return PubKey{
		Type: pk.Type,
		Raw:  common.CopyBytes(pk.Raw),
	}
}

// FromString parses a hex string (with or without "0x" prefix) into a PubKey.
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromBytes reconstructs a PubKey from a flat byte slice.
// It expects the first byte to be the Type and the rest to be the Raw key.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) == 0 {
		return PubKey{}, errors.New("empty pubkey")
	}
	return PubKey{b[0], b[1:]}, nil
}

// MarshalText implements the encoding.TextMarshaler interface, so the PubKey
// marshals into a JSON hex string in genesis documents.
func (pk *PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
