package governance

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
	"github.com/bhagyamudgal/governance-ui/pkg/testutil"
)

func TestSetGovernanceConfigInstruction(t *testing.T) {
	governance := testutil.GenerateSolanaKeys(t, 1)[0]
	config := testGovernanceConfig()

	ixn := NewSetGovernanceConfigInstruction(
		PROGRAM_ID,
		&SetGovernanceConfigInstructionAccounts{Governance: governance},
		&SetGovernanceConfigInstructionArgs{Config: config},
	)

	assert.Equal(t, PROGRAM_ID, ixn.Program)
	require.Len(t, ixn.Accounts, 1)
	assert.Equal(t, governance, ixn.Accounts[0].PublicKey)
	assert.True(t, ixn.Accounts[0].IsSigner)
	assert.True(t, ixn.Accounts[0].IsWritable)

	assert.EqualValues(t, InstructionTypeSetGovernanceConfig, ixn.Data[0])
	assert.Equal(t, config.Marshal(), ixn.Data[1:])

	decoded, err := DecodeSetGovernanceConfigInstructionArgs(ixn.Data)
	require.NoError(t, err)
	assert.Equal(t, config, decoded.Config)

	_, err = DecodeSetGovernanceConfigInstructionArgs(nil)
	assert.ErrorIs(t, err, ErrInvalidInstructionData)

	wrongType := append([]byte{}, ixn.Data...)
	wrongType[0] = uint8(InstructionTypeCastVote)
	_, err = DecodeSetGovernanceConfigInstructionArgs(wrongType)
	assert.ErrorIs(t, err, ErrInvalidInstructionData)

	_, err = DecodeSetGovernanceConfigInstructionArgs(ixn.Data[:10])
	assert.ErrorIs(t, err, ErrInvalidInstructionData)
}

func TestCreateProposalInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 10)

	accounts := &CreateProposalInstructionAccounts{
		Realm:               keys[0],
		Proposal:            keys[1],
		Governance:          keys[2],
		ProposalOwnerRecord: keys[3],
		GoverningTokenMint:  keys[4],
		GovernanceAuthority: keys[5],
		Payer:               keys[6],
		RealmConfig:         keys[7],
		ProposalDeposit:     keys[8],
	}
	args := &CreateProposalInstructionArgs{
		Name:            "Title",
		DescriptionLink: "",
		VoteType:        SingleChoiceVoteType(),
		Options:         []string{"Approve"},
		UseDenyOption:   true,
		ProposalSeed:    keys[9],
	}

	ixn := NewCreateProposalInstruction(PROGRAM_ID, accounts, args)

	var expected []byte
	expected = append(expected, uint8(InstructionTypeCreateProposal))
	expected = binary.LittleEndian.AppendUint32(expected, 5)
	expected = append(expected, "Title"...)
	expected = binary.LittleEndian.AppendUint32(expected, 0)
	expected = append(expected, 0) // single choice
	expected = binary.LittleEndian.AppendUint32(expected, 1)
	expected = binary.LittleEndian.AppendUint32(expected, 7)
	expected = append(expected, "Approve"...)
	expected = append(expected, 1)
	expected = append(expected, keys[9]...)
	assert.Equal(t, expected, ixn.Data)

	require.Len(t, ixn.Accounts, 10)
	assertAccount(t, ixn.Accounts[0], keys[0], false, false)
	assertAccount(t, ixn.Accounts[1], keys[1], false, true)
	assertAccount(t, ixn.Accounts[2], keys[2], false, true)
	assertAccount(t, ixn.Accounts[3], keys[3], false, true)
	assertAccount(t, ixn.Accounts[4], keys[4], false, false)
	assertAccount(t, ixn.Accounts[5], keys[5], true, false)
	assertAccount(t, ixn.Accounts[6], keys[6], true, true)
	assertAccount(t, ixn.Accounts[7], SYSTEM_PROGRAM_ID, false, false)
	assertAccount(t, ixn.Accounts[8], keys[7], false, false)
	assertAccount(t, ixn.Accounts[9], keys[8], false, true)

	// A voter weight record goes before the deposit.
	accounts.VoterWeightRecord = keys[9]
	ixn = NewCreateProposalInstruction(PROGRAM_ID, accounts, args)
	require.Len(t, ixn.Accounts, 11)
	assertAccount(t, ixn.Accounts[9], keys[9], false, false)
	assertAccount(t, ixn.Accounts[10], keys[8], false, true)
}

func TestInsertTransactionInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 7)

	inner := NewInstructionData(solana.NewInstruction(
		keys[6],
		[]byte{1, 2, 3},
		solana.NewAccountMeta(keys[0], true),
	))

	ixn := NewInsertTransactionInstruction(
		PROGRAM_ID,
		&InsertTransactionInstructionAccounts{
			Governance:          keys[0],
			Proposal:            keys[1],
			TokenOwnerRecord:    keys[2],
			GovernanceAuthority: keys[3],
			ProposalTransaction: keys[4],
			Payer:               keys[5],
		},
		&InsertTransactionInstructionArgs{
			OptionIndex:  0,
			Index:        3,
			HoldUpTime:   86400,
			Instructions: []InstructionData{inner},
		},
	)

	var expected []byte
	expected = append(expected, uint8(InstructionTypeInsertTransaction), 0)
	expected = binary.LittleEndian.AppendUint16(expected, 3)
	expected = binary.LittleEndian.AppendUint32(expected, 86400)
	expected = binary.LittleEndian.AppendUint32(expected, 1)
	expected = append(expected, keys[6]...)
	expected = binary.LittleEndian.AppendUint32(expected, 1)
	expected = append(expected, keys[0]...)
	expected = append(expected, 1, 1)
	expected = binary.LittleEndian.AppendUint32(expected, 3)
	expected = append(expected, 1, 2, 3)
	assert.Equal(t, expected, ixn.Data)

	require.Len(t, ixn.Accounts, 8)
	assertAccount(t, ixn.Accounts[0], keys[0], false, false)
	assertAccount(t, ixn.Accounts[1], keys[1], false, true)
	assertAccount(t, ixn.Accounts[2], keys[2], false, false)
	assertAccount(t, ixn.Accounts[3], keys[3], true, false)
	assertAccount(t, ixn.Accounts[4], keys[4], false, true)
	assertAccount(t, ixn.Accounts[5], keys[5], true, true)
	assertAccount(t, ixn.Accounts[6], SYSTEM_PROGRAM_ID, false, false)
	assertAccount(t, ixn.Accounts[7], SYSVAR_RENT_PUBKEY, false, false)
}

func TestSignOffProposalInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 5)

	ixn := NewSignOffProposalInstruction(PROGRAM_ID, &SignOffProposalInstructionAccounts{
		Realm:               keys[0],
		Governance:          keys[1],
		Proposal:            keys[2],
		Signatory:           keys[3],
		ProposalOwnerRecord: keys[4],
	})

	assert.Equal(t, []byte{uint8(InstructionTypeSignOffProposal)}, ixn.Data)
	require.Len(t, ixn.Accounts, 5)
	assertAccount(t, ixn.Accounts[0], keys[0], false, true)
	assertAccount(t, ixn.Accounts[1], keys[1], false, true)
	assertAccount(t, ixn.Accounts[2], keys[2], false, true)
	assertAccount(t, ixn.Accounts[3], keys[3], true, false)
	assertAccount(t, ixn.Accounts[4], keys[4], false, false)
}

func TestInstructionData_RoundTrip(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)

	ixn := solana.NewInstruction(
		keys[0],
		[]byte{9, 8, 7},
		solana.NewAccountMeta(keys[1], true),
		solana.NewReadonlyAccountMeta(keys[2], false),
	)

	data := NewInstructionData(ixn)
	assert.Len(t, data.Marshal(), data.Size())

	converted := data.ToInstruction()
	assert.Equal(t, ixn.Program, converted.Program)
	assert.Equal(t, ixn.Data, converted.Data)
	require.Len(t, converted.Accounts, 2)
	assertAccount(t, converted.Accounts[0], keys[1], true, true)
	assertAccount(t, converted.Accounts[1], keys[2], false, false)
}

func assertAccount(t *testing.T, actual solana.AccountMeta, key ed25519.PublicKey, signer, writable bool) {
	assert.Equal(t, key, actual.PublicKey)
	assert.Equal(t, signer, actual.IsSigner)
	assert.Equal(t, writable, actual.IsWritable)
}
