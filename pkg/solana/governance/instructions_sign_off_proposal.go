package governance

import (
	"crypto/ed25519"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

type SignOffProposalInstructionAccounts struct {
	Realm      ed25519.PublicKey
	Governance ed25519.PublicKey
	Proposal   ed25519.PublicKey
	Signatory  ed25519.PublicKey
	// ProposalOwnerRecord is used when the proposal owner signs off a
	// proposal without signatories.
	ProposalOwnerRecord ed25519.PublicKey
}

// NewSignOffProposalInstruction moves a draft proposal into voting.
func NewSignOffProposalInstruction(
	program ed25519.PublicKey,
	accounts *SignOffProposalInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeSignOffProposal, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Realm,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Governance,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Proposal,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Signatory,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.ProposalOwnerRecord,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
