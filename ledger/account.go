// Ledger accounts and the account directory.
//
// Accounts are created exactly once per address; a duplicate creation is a
// fatal DuplicateAddressError, which is how the roster bootstrap detects
// address collisions between validators. The directory keeps a sorted view
// of its contents so fingerprints never depend on map iteration order.

package ledger

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/aurumchain/go-aurum/aurum"
)

// FrameworkAddress is the reserved framework account. It is the sole address
// permitted to hold system-parameter-writing authority.
var FrameworkAddress = common.HexToAddress("0x0000000000000000000000000000000000000001")

// CoreResourcesAddress is the privileged test account created only by the
// dev/test bootstrap path. It never exists on a production chain.
var CoreResourcesAddress = common.HexToAddress("0x0000000000000000000000000000000000A550C1")

// authKeyDomain tags the derivation of initial authentication credentials.
var authKeyDomain = []byte("aurum/authkey/v1")

// ModuleMarker records which subsystems have initialized their per-account
// state. An account may hold the native coin only after coin registration,
// and owns at most one stake pool.
type ModuleMarker struct {
	Coin  bool
	Stake bool
}

// Account is a ledger account, identified by address.
type Account struct {
	// Address identifies the account.
	Address common.Address

	// AuthKey is the account's initial authentication credential, derived
	// deterministically from the address at creation.
	AuthKey common.Hash

	// Balance is the native coin balance. Only mutated by the coin vault
	// through a live mint/burn capability.
	Balance uint64

	// Modules marks per-account subsystem initialization.
	Modules ModuleMarker
}

// Directory creates and indexes ledger accounts.
type Directory struct {
	accounts map[common.Address]*Account
}

// NewDirectory returns an empty account directory.
func NewDirectory() *Directory {
	return &Directory{
		accounts: make(map[common.Address]*Account),
	}
}

// Create creates the account at addr. An address may be created at most
// once; a second creation returns a DuplicateAddressError.
func (d *Directory) Create(addr common.Address) (*Account, error) {
	if _, ok := d.accounts[addr]; ok {
		return nil, &aurum.DuplicateAddressError{Address: addr}
	}
	acc := &Account{
		Address: addr,
		AuthKey: deriveAuthKey(addr),
	}
	d.accounts[addr] = acc
	return acc, nil
}

// Get returns the account at addr, or nil if it does not exist.
func (d *Directory) Get(addr common.Address) *Account {
	return d.accounts[addr]
}

// Exists reports whether an account was created at addr.
func (d *Directory) Exists(addr common.Address) bool {
	_, ok := d.accounts[addr]
	return ok
}

// Len returns the number of accounts in the directory.
func (d *Directory) Len() int {
	return len(d.accounts)
}

// SortedAddresses returns every account address in ascending byte order.
// This is the only iteration order the directory exposes.
func (d *Directory) SortedAddresses() []common.Address {
	addrs := make([]common.Address, 0, len(d.accounts))
	for addr := range d.accounts {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i].Bytes(), addrs[j].Bytes()) < 0
	})
	return addrs
}

// AccountRecord is the canonical projection of an account used by state
// fingerprints. All fields are RLP-encodable.
type AccountRecord struct {
	Address        common.Address
	AuthKey        common.Hash
	Balance        uint64
	CoinRegistered bool
	StakeOwner     bool
}

// SortedRecords projects every account into its canonical record, in
// ascending address order.
func (d *Directory) SortedRecords() []AccountRecord {
	addrs := d.SortedAddresses()
	records := make([]AccountRecord, len(addrs))
	for i, addr := range addrs {
		acc := d.accounts[addr]
		records[i] = AccountRecord{
			Address:        acc.Address,
			AuthKey:        acc.AuthKey,
			Balance:        acc.Balance,
			CoinRegistered: acc.Modules.Coin,
			StakeOwner:     acc.Modules.Stake,
		}
	}
	return records
}

// deriveAuthKey computes the initial authentication credential of an address.
// The derivation is a pure function of the address, so account creation is
// reproducible across nodes.
func deriveAuthKey(addr common.Address) common.Hash {
	return common.BytesToHash(crypto.Keccak256(authKeyDomain, addr.Bytes()))
}
