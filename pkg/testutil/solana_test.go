package testutil

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

func TestFakeSolanaClient_Accounts(t *testing.T) {
	keys := GenerateSolanaKeys(t, 4)
	program := keys[3]

	c := NewFakeSolanaClient()
	c.SetAccount(keys[0], program, []byte{1, 2, 3})
	c.SetAccount(keys[1], program, []byte{1, 9})

	info, err := c.GetAccountInfo(keys[0], solana.CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, info.Data)

	_, err = c.GetAccountInfo(keys[2], solana.CommitmentConfirmed)
	assert.Equal(t, solana.ErrNoAccountInfo, err)

	multiple, err := c.GetMultipleAccounts([]ed25519.PublicKey{keys[2], keys[1]}, solana.CommitmentConfirmed)
	require.NoError(t, err)
	require.Len(t, multiple, 2)
	assert.Nil(t, multiple[0])
	assert.Equal(t, []byte{1, 9}, multiple[1].Data)

	matched, err := c.GetProgramAccounts(program, solana.ProgramAccountsFilter{DataSize: 3})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, keys[0], matched[0].PublicKey)

	matched, err = c.GetProgramAccounts(program, solana.ProgramAccountsFilter{MemcmpOffset: 1, MemcmpBytes: []byte{9}})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, keys[1], matched[0].PublicKey)

	assert.Equal(t, 2, c.CallCount("getAccountInfo"))
	assert.Equal(t, 2, c.CallCount("getProgramAccounts"))
}

func TestFakeSolanaClient_Submit(t *testing.T) {
	payer := GenerateSolanaKeypair(t)
	program := GenerateSolanaKeys(t, 1)[0]

	txn := solana.NewTransaction(payer.Public().(ed25519.PublicKey), solana.NewInstruction(program, []byte{1}))
	require.NoError(t, txn.Sign(payer))

	c := NewFakeSolanaClient()

	_, err := c.GetSignatureStatus(txn.Signatures[0], solana.CommitmentFinalized)
	assert.Equal(t, solana.ErrSignatureNotFound, err)

	sig, err := c.SubmitTransaction(txn, solana.CommitmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, txn.Signatures[0], sig)

	status, err := c.GetSignatureStatus(sig, solana.CommitmentFinalized)
	require.NoError(t, err)
	assert.True(t, status.Finalized())
	assert.True(t, status.Confirmed())
	require.Len(t, c.Submitted, 1)
}
