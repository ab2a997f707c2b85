// Fakenet genesis generation.
//
// Fake networks exist for testing and development: the generator derives a
// deterministic validator roster from seeded keys, so the same validator
// count always produces the same genesis document and therefore the same
// bootstrap fingerprint on every machine.

package genesis

import (
	"crypto/ecdsa"
	"math/rand"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/aurumchain/go-aurum/aurum"
	"github.com/aurumchain/go-aurum/inter"
	"github.com/aurumchain/go-aurum/inter/validatorpk"
)

// FakeGenesisTime is the timestamp used by fake genesis documents. A fixed
// reference point keeps fakenet bootstraps reproducible.
var FakeGenesisTime = inter.FromUnix(1608600000)

// FakeStakeAmount is the stake committed by every fakenet validator.
const FakeStakeAmount = uint64(5_000_000)

// FakeKey generates a deterministic fake private key. Given the same n it
// always produces the same key, which makes fakenet accounts and validators
// reproducible across runs and machines.
func FakeKey(n int) *ecdsa.PrivateKey {
	reader := rand.New(rand.NewSource(int64(n)))
	key, err := ecdsa.GenerateKey(crypto.S256(), reader)
	if err != nil {
		panic(err)
	}
	return key
}

// FakeGenesis assembles a deterministic fakenet genesis document with n
// validators. Each validator uses distinct deterministic keys for its
// consensus identity, with owner, operator, and voter all aliasing the owner
// account, matching how fakenet nodes are operated.
func FakeGenesis(n int) (*Genesis, error) {
	if n <= 0 {
		return nil, &aurum.ConfigurationError{Field: "validators", Reason: "validator count must be positive"}
	}
	g := &Genesis{
		Rules:       aurum.FakeNetRules(),
		GenesisTime: FakeGenesisTime,
	}
	for i := 1; i <= n; i++ {
		key := FakeKey(i)
		owner := crypto.PubkeyToAddress(key.PublicKey)
		pk, proof, err := validatorpk.SignPossession(owner, key)
		if err != nil {
			return nil, err
		}
		g.Validators = append(g.Validators, ValidatorConfiguration{
			OwnerAddress:             owner,
			OperatorAddress:          owner,
			VoterAddress:             owner,
			StakeAmount:              FakeStakeAmount,
			ConsensusPubKey:          pk,
			ProofOfPossession:        proof,
			NetworkAddresses:         fakeNetAddr(i, false),
			FullNodeNetworkAddresses: fakeNetAddr(i, true),
		})
	}
	return g, nil
}

// fakeNetAddr builds an opaque endpoint blob for fakenet validator i. The
// networking layer treats it as a serialized address list; the exact bytes
// only need to be deterministic.
func fakeNetAddr(i int, fullNode bool) []byte {
	tag := byte(0x00)
	if fullNode {
		tag = 0x01
	}
	return []byte{tag, byte(i >> 8), byte(i)}
}
