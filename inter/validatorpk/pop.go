// Proof-of-possession handling for validator consensus keys.
//
// A roster entry is only accepted at genesis if its submitter proves control
// of the private key matching the claimed consensus public key. The proof is
// a secp256k1 signature over a domain-tagged digest binding the key to the
// stake pool's owner address, so a proof cannot be replayed for another owner.

package validatorpk

import (
	"crypto/ecdsa"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// popDomain separates possession-proof digests from any other signed payload.
var popDomain = []byte("aurum/pop/v1")

var (
	// ErrUnsupportedKeyType is returned when the key scheme has no registered
	// possession-proof verifier.
	ErrUnsupportedKeyType = errors.New("unsupported validator pubkey type")
	// ErrInvalidProof is returned when the proof does not verify against the
	// claimed key and owner.
	ErrInvalidProof = errors.New("invalid proof of possession")
)

// PossessionDigest computes the digest a validator must sign to prove control
// of its consensus key. The digest commits to the domain tag, the stake pool
// owner address, and the full serialized public key.
func PossessionDigest(owner common.Address, pk PubKey) []byte {
	return crypto.Keccak256(popDomain, owner.Bytes(), pk.Bytes())
}

// VerifyPossession checks that proof is a valid signature by pk's private key
// over the possession digest for owner. The proof may carry a trailing
// recovery byte (65 bytes) or not (64 bytes); only the R||S part is verified.
func VerifyPossession(owner common.Address, pk PubKey, proof []byte) error {
	if pk.Type != Types.Secp256k1 {
		return ErrUnsupportedKeyType
	}
	if len(proof) < crypto.SignatureLength-1 {
		return ErrInvalidProof
	}
	digest := PossessionDigest(owner, pk)
	if !crypto.VerifySignature(pk.Raw, digest, proof[:crypto.SignatureLength-1]) {
		return ErrInvalidProof
	}
	return nil
}

// SignPossession produces the consensus PubKey and possession proof for a
// secp256k1 private key. Used by the fakenet generator and by tooling that
// assembles genesis documents.
func SignPossession(owner common.Address, key *ecdsa.PrivateKey) (PubKey, []byte, error) {
	pk := PubKey{
		Type: Types.Secp256k1,
		Raw:  crypto.FromECDSAPub(&key.PublicKey),
	}
	proof, err := crypto.Sign(PossessionDigest(owner, pk), key)
	if err != nil {
		return PubKey{}, nil, err
	}
	return pk, proof, nil
}
