package testutil

import (
	"bytes"
	"crypto/ed25519"
	"sort"
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

func GenerateSolanaKeypair(t *testing.T) ed25519.PrivateKey {
	_, p, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return p
}

func GenerateSolanaKeys(t *testing.T, n int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, n)
	for i := 0; i < n; i++ {
		p, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		keys[i] = p
	}
	return keys
}

// FakeSolanaClient is an in-memory solana.Client backed by a map of accounts.
// Submitted transactions are recorded and immediately reported as finalized.
type FakeSolanaClient struct {
	sync.Mutex

	Accounts  map[string]solana.AccountInfo
	Submitted []solana.Transaction
	Blockhash solana.Blockhash
	Slot      uint64

	// SubmitErr, when set, is returned by SubmitTransaction after recording
	// the transaction.
	SubmitErr error
	// AccountErr, when set, is returned by every account read.
	AccountErr error

	Calls map[string]int
}

var _ solana.Client = (*FakeSolanaClient)(nil)

func NewFakeSolanaClient() *FakeSolanaClient {
	return &FakeSolanaClient{
		Accounts: make(map[string]solana.AccountInfo),
		Calls:    make(map[string]int),
		Slot:     1,
	}
}

// SetAccount stores data owned by owner at address.
func (c *FakeSolanaClient) SetAccount(address, owner ed25519.PublicKey, data []byte) {
	c.Lock()
	defer c.Unlock()

	c.Accounts[base58.Encode(address)] = solana.AccountInfo{
		Data:     data,
		Owner:    owner,
		Lamports: 1_000_000,
	}
}

func (c *FakeSolanaClient) CallCount(method string) int {
	c.Lock()
	defer c.Unlock()
	return c.Calls[method]
}

func (c *FakeSolanaClient) Endpoint() string {
	return "memory://solana"
}

func (c *FakeSolanaClient) GetAccountInfo(address ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["getAccountInfo"]++
	if c.AccountErr != nil {
		return solana.AccountInfo{}, c.AccountErr
	}

	info, ok := c.Accounts[base58.Encode(address)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (c *FakeSolanaClient) GetMultipleAccounts(addresses []ed25519.PublicKey, _ solana.Commitment) ([]*solana.AccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["getMultipleAccounts"]++
	if c.AccountErr != nil {
		return nil, c.AccountErr
	}

	result := make([]*solana.AccountInfo, len(addresses))
	for i, address := range addresses {
		if info, ok := c.Accounts[base58.Encode(address)]; ok {
			info := info
			result[i] = &info
		}
	}
	return result, nil
}

func (c *FakeSolanaClient) GetProgramAccounts(program ed25519.PublicKey, filters ...solana.ProgramAccountsFilter) ([]solana.KeyedAccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["getProgramAccounts"]++
	if c.AccountErr != nil {
		return nil, c.AccountErr
	}

	return c.matching(func(info solana.AccountInfo) bool {
		if !bytes.Equal(info.Owner, program) {
			return false
		}
		for _, f := range filters {
			if f.DataSize > 0 && uint64(len(info.Data)) != f.DataSize {
				return false
			}
			if len(f.MemcmpBytes) > 0 {
				end := int(f.MemcmpOffset) + len(f.MemcmpBytes)
				if end > len(info.Data) || !bytes.Equal(info.Data[f.MemcmpOffset:end], f.MemcmpBytes) {
					return false
				}
			}
		}
		return true
	}), nil
}

// GetTokenAccountsByOwner matches token accounts whose owner field, at
// offset 32 of the account data, equals owner.
func (c *FakeSolanaClient) GetTokenAccountsByOwner(owner, tokenProgram ed25519.PublicKey) ([]solana.KeyedAccountInfo, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["getTokenAccountsByOwner"]++
	if c.AccountErr != nil {
		return nil, c.AccountErr
	}

	return c.matching(func(info solana.AccountInfo) bool {
		return bytes.Equal(info.Owner, tokenProgram) &&
			len(info.Data) >= 64 &&
			bytes.Equal(info.Data[32:64], owner)
	}), nil
}

func (c *FakeSolanaClient) GetLatestBlockhash() (solana.Blockhash, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["getLatestBlockhash"]++
	return c.Blockhash, nil
}

func (c *FakeSolanaClient) GetSignatureStatus(sig solana.Signature, _ solana.Commitment) (*solana.SignatureStatus, error) {
	statuses, err := c.GetSignatureStatuses([]solana.Signature{sig})
	if err != nil {
		return nil, err
	}
	if statuses[0] == nil {
		return nil, solana.ErrSignatureNotFound
	}
	return statuses[0], nil
}

func (c *FakeSolanaClient) GetSignatureStatuses(sigs []solana.Signature) ([]*solana.SignatureStatus, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["getSignatureStatuses"]++

	statuses := make([]*solana.SignatureStatus, len(sigs))
	for i, sig := range sigs {
		for _, txn := range c.Submitted {
			if txn.Signatures[0] == sig {
				statuses[i] = &solana.SignatureStatus{
					Slot:               c.Slot,
					ConfirmationStatus: "finalized",
				}
			}
		}
	}
	return statuses, nil
}

func (c *FakeSolanaClient) GetSlot(_ solana.Commitment) (uint64, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["getSlot"]++
	return c.Slot, nil
}

func (c *FakeSolanaClient) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()

	c.Calls["sendTransaction"]++
	if c.SubmitErr != nil {
		return txn.Signatures[0], c.SubmitErr
	}

	c.Submitted = append(c.Submitted, txn)
	c.Slot++
	return txn.Signatures[0], nil
}

func (c *FakeSolanaClient) matching(predicate func(solana.AccountInfo) bool) []solana.KeyedAccountInfo {
	keys := make([]string, 0, len(c.Accounts))
	for key := range c.Accounts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []solana.KeyedAccountInfo
	for _, key := range keys {
		info := c.Accounts[key]
		if !predicate(info) {
			continue
		}

		address, _ := base58.Decode(key)
		result = append(result, solana.KeyedAccountInfo{PublicKey: address, Account: info})
	}
	return result
}
