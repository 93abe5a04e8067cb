package token

import (
	"crypto/ed25519"

	"github.com/bhagyamudgal/governance-ui/pkg/solana/binary"
)

type AccountState byte

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L125
const AccountSize = 165

// Reference: https://github.com/solana-labs/solana-program-library/blob/11b1e3eefdd4e523768d63f7c70a7aa391ea0d02/token/program/src/state.rs#L37
const MintSize = 82

// Account is the state of an SPL token account.
type Account struct {
	Mint   ed25519.PublicKey
	Owner  ed25519.PublicKey
	Amount uint64
	// Delegate, when set, may move up to DelegatedAmount tokens.
	Delegate ed25519.PublicKey
	State    AccountState
	// IsNative holds the rent-exempt reserve for wrapped SOL accounts.
	IsNative        *uint64
	DelegatedAmount uint64
	CloseAuthority  ed25519.PublicKey
}

func (a *Account) Marshal() []byte {
	b := make([]byte, AccountSize)

	e := binary.NewEncoder(b)
	e.Key(a.Mint)
	e.Key(a.Owner)
	e.Uint64(a.Amount)
	e.OptionalKey(a.Delegate)
	e.Uint8(uint8(a.State))
	e.OptionalUint64(a.IsNative)
	e.Uint64(a.DelegatedAmount)
	e.OptionalKey(a.CloseAuthority)

	return b
}

func (a *Account) Unmarshal(b []byte) bool {
	if len(b) != AccountSize {
		return false
	}

	d := binary.NewDecoder(b)
	a.Mint = d.Key()
	a.Owner = d.Key()
	a.Amount = d.Uint64()
	a.Delegate = d.OptionalKey()
	a.State = AccountState(d.Uint8())
	a.IsNative = d.OptionalUint64()
	a.DelegatedAmount = d.Uint64()
	a.CloseAuthority = d.OptionalKey()

	return true
}

// Mint is the state of an SPL token mint. Authorities are nil when the
// corresponding COption is None.
type Mint struct {
	MintAuthority   ed25519.PublicKey
	Supply          uint64
	Decimals        uint8
	IsInitialized   bool
	FreezeAuthority ed25519.PublicKey
}

func (m *Mint) Marshal() []byte {
	b := make([]byte, MintSize)

	e := binary.NewEncoder(b)
	e.OptionalKey(m.MintAuthority)
	e.Uint64(m.Supply)
	e.Uint8(m.Decimals)
	e.Bool(m.IsInitialized)
	e.OptionalKey(m.FreezeAuthority)

	return b
}

func (m *Mint) Unmarshal(b []byte) bool {
	if len(b) != MintSize {
		return false
	}

	d := binary.NewDecoder(b)
	m.MintAuthority = d.OptionalKey()
	m.Supply = d.Uint64()
	m.Decimals = d.Uint8()
	m.IsInitialized = d.Bool()
	m.FreezeAuthority = d.OptionalKey()

	return true
}
