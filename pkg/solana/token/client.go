package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bhagyamudgal/governance-ui/pkg/cache"
	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

const (
	// mintCacheBudget bounds the number of decoded mints kept in memory.
	mintCacheBudget = 1024
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidTokenAccount indicates that a Solana account exists at the
	// given address, but it is either not initialized, or not configured correctly.
	ErrInvalidTokenAccount = errors.New("invalid token account")
	// ErrInvalidMint indicates the account at the given address is not a mint.
	ErrInvalidMint = errors.New("invalid mint")
)

// ProgramAccount is a decoded token program account along with its address.
type ProgramAccount[T any] struct {
	PublicKey ed25519.PublicKey
	Account   T
}

// Client reads token accounts and mints through a Solana RPC endpoint.
type Client struct {
	log        *logrus.Entry
	sc         solana.Client
	commitment solana.Commitment
	mints      cache.Cache
}

// NewClient creates a new Client.
func NewClient(sc solana.Client) *Client {
	return &Client{
		log:        logrus.StandardLogger().WithField("type", "solana/token/client"),
		sc:         sc,
		commitment: solana.CommitmentConfirmed,
		mints:      cache.New("mints", mintCacheBudget),
	}
}

// GetAccount returns the token account at accountID.
//
// If the account is not owned by the token program, or cannot be decoded,
// ErrInvalidTokenAccount is returned.
func (c *Client) GetAccount(accountID ed25519.PublicKey) (*Account, error) {
	accountInfo, err := c.sc.GetAccountInfo(accountID, c.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(accountInfo.Owner, ProgramKey) {
		return nil, ErrInvalidTokenAccount
	}

	var account Account
	if !account.Unmarshal(accountInfo.Data) {
		return nil, ErrInvalidTokenAccount
	}

	return &account, nil
}

// GetMint returns the mint at address, consulting the mint cache first.
func (c *Client) GetMint(address ed25519.PublicKey) (*Mint, error) {
	key := base58.Encode(address)
	if cached, ok := c.mints.Get(key); ok {
		mint := cached.(Mint)
		return &mint, nil
	}

	accountInfo, err := c.sc.GetAccountInfo(address, c.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	var mint Mint
	if !mint.Unmarshal(accountInfo.Data) {
		return nil, ErrInvalidMint
	}

	if err := c.mints.Set(key, mint, 1); err != nil {
		c.log.WithError(err).WithField("mint", key).Warn("failed to cache mint")
	}

	return &mint, nil
}

// TryGetMint returns the mint at address, or nil if it could not be fetched
// or decoded. Failures are logged.
func (c *Client) TryGetMint(address ed25519.PublicKey) *ProgramAccount[Mint] {
	mint, err := c.GetMint(address)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"mint":     base58.Encode(address),
			"endpoint": c.sc.Endpoint(),
		}).Warn("can't fetch mint")
		return nil
	}

	return &ProgramAccount[Mint]{PublicKey: address, Account: *mint}
}

// TryGetMints returns the mints at addresses in order, reading the ones not
// yet cached in a single batch. Entries are nil for addresses that hold no
// mint, and every entry is nil if the batch read fails. Failures are logged.
func (c *Client) TryGetMints(addresses ...ed25519.PublicKey) []*ProgramAccount[Mint] {
	result := make([]*ProgramAccount[Mint], len(addresses))

	var missing []ed25519.PublicKey
	var missingIndexes []int
	for i, address := range addresses {
		if cached, ok := c.mints.Get(base58.Encode(address)); ok {
			result[i] = &ProgramAccount[Mint]{PublicKey: address, Account: cached.(Mint)}
			continue
		}
		missing = append(missing, address)
		missingIndexes = append(missingIndexes, i)
	}
	if len(missing) == 0 {
		return result
	}

	infos, err := c.sc.GetMultipleAccounts(missing, c.commitment)
	if err != nil {
		c.log.WithError(err).WithField("endpoint", c.sc.Endpoint()).Warn("can't fetch mints")
		return result
	}

	for j, info := range infos {
		address := missing[j]
		key := base58.Encode(address)

		var mint Mint
		if info == nil || !mint.Unmarshal(info.Data) {
			c.log.WithField("mint", key).Warn("can't decode mint")
			continue
		}

		if err := c.mints.Set(key, mint, 1); err != nil {
			c.log.WithError(err).WithField("mint", key).Warn("failed to cache mint")
		}
		result[missingIndexes[j]] = &ProgramAccount[Mint]{PublicKey: address, Account: mint}
	}

	return result
}

// TryGetTokenAccount returns the token account at address, or nil if it does
// not exist, is not owned by the token program or cannot be decoded. Failing
// is expected here, so nothing is logged.
func (c *Client) TryGetTokenAccount(address ed25519.PublicKey) *ProgramAccount[Account] {
	account, err := c.GetAccount(address)
	if err != nil {
		return nil
	}

	return &ProgramAccount[Account]{PublicKey: address, Account: *account}
}

// TryGetTokenMint resolves the mint of the token account at address.
func (c *Client) TryGetTokenMint(address ed25519.PublicKey) *ProgramAccount[Mint] {
	account := c.TryGetTokenAccount(address)
	if account == nil {
		return nil
	}

	return c.TryGetMint(account.Account.Mint)
}

// GetOwnedTokenAccounts returns every token account owned by owner.
func (c *Client) GetOwnedTokenAccounts(owner ed25519.PublicKey) ([]ProgramAccount[Account], error) {
	raw, err := c.sc.GetTokenAccountsByOwner(owner, ProgramKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token accounts by owner")
	}

	return decodeTokenAccounts(raw)
}

// GetTokenAccountsByMint returns every token account holding mint.
func (c *Client) GetTokenAccountsByMint(mint ed25519.PublicKey) ([]ProgramAccount[Account], error) {
	raw, err := c.sc.GetProgramAccounts(
		ProgramKey,
		solana.ProgramAccountsFilter{DataSize: AccountSize},
		solana.ProgramAccountsFilter{MemcmpOffset: 0, MemcmpBytes: mint},
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token accounts by mint")
	}

	return decodeTokenAccounts(raw)
}

func decodeTokenAccounts(raw []solana.KeyedAccountInfo) ([]ProgramAccount[Account], error) {
	accounts := make([]ProgramAccount[Account], len(raw))
	for i, keyed := range raw {
		accounts[i].PublicKey = keyed.PublicKey
		if !accounts[i].Account.Unmarshal(keyed.Account.Data) {
			return nil, errors.Wrapf(ErrInvalidTokenAccount, "account %s", base58.Encode(keyed.PublicKey))
		}
	}
	return accounts, nil
}
