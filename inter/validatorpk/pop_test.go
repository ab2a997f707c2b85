package validatorpk

import (
	"crypto/ecdsa"
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func popTestKey(t *testing.T, seed int64) *ecdsa.PrivateKey {
	key, err := ecdsa.GenerateKey(crypto.S256(), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return key
}

// TestPossessionRoundtrip verifies that a proof produced by SignPossession
// passes VerifyPossession for the same owner and key.
func TestPossessionRoundtrip(t *testing.T) {
	require := require.New(t)

	key := popTestKey(t, 1)
	owner := crypto.PubkeyToAddress(key.PublicKey)

	pk, proof, err := SignPossession(owner, key)
	require.NoError(err)
	require.Equal(Types.Secp256k1, pk.Type)
	require.NoError(VerifyPossession(owner, pk, proof))
}

// TestPossessionWrongOwner verifies that a proof bound to one owner address
// does not verify for another. The owner address is part of the signed
// digest, so a proof cannot be replayed across accounts.
func TestPossessionWrongOwner(t *testing.T) {
	require := require.New(t)

	key := popTestKey(t, 1)
	owner := crypto.PubkeyToAddress(key.PublicKey)
	other := crypto.PubkeyToAddress(popTestKey(t, 2).PublicKey)
	require.NotEqual(owner, other)

	pk, proof, err := SignPossession(owner, key)
	require.NoError(err)

	err = VerifyPossession(other, pk, proof)
	require.ErrorIs(err, ErrInvalidProof)
}

// TestPossessionWrongKey verifies that a proof signed by a key other than the
// one being registered is rejected.
func TestPossessionWrongKey(t *testing.T) {
	require := require.New(t)

	key := popTestKey(t, 1)
	impostor := popTestKey(t, 2)
	owner := crypto.PubkeyToAddress(key.PublicKey)

	// Proof signed by the impostor, but claiming key's public key.
	pk := PubKey{Type: Types.Secp256k1, Raw: crypto.FromECDSAPub(&key.PublicKey)}
	digest := PossessionDigest(owner, pk)
	proof, err := crypto.Sign(digest, impostor)
	require.NoError(err)

	require.ErrorIs(VerifyPossession(owner, pk, proof), ErrInvalidProof)
}

// TestPossessionMalformedProof verifies that truncated or empty proofs are
// rejected rather than panicking.
func TestPossessionMalformedProof(t *testing.T) {
	require := require.New(t)

	key := popTestKey(t, 1)
	owner := crypto.PubkeyToAddress(key.PublicKey)

	pk, proof, err := SignPossession(owner, key)
	require.NoError(err)

	require.Error(VerifyPossession(owner, pk, nil))
	require.Error(VerifyPossession(owner, pk, proof[:len(proof)/2]))

	// Flipping a byte of the signature invalidates it.
	corrupted := append([]byte(nil), proof...)
	corrupted[0] ^= 0xff
	require.Error(VerifyPossession(owner, pk, corrupted))
}

// TestPossessionUnsupportedKeyType verifies that non-secp256k1 key types are
// refused during verification.
func TestPossessionUnsupportedKeyType(t *testing.T) {
	require := require.New(t)

	key := popTestKey(t, 1)
	owner := crypto.PubkeyToAddress(key.PublicKey)

	pk, proof, err := SignPossession(owner, key)
	require.NoError(err)

	pk.Type = 0x00
	require.ErrorIs(VerifyPossession(owner, pk, proof), ErrUnsupportedKeyType)
}
