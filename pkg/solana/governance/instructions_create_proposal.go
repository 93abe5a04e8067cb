package governance

import (
	"crypto/ed25519"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

type CreateProposalInstructionArgs struct {
	Name            string
	DescriptionLink string
	VoteType        VoteType
	Options         []string
	UseDenyOption   bool
	ProposalSeed    ed25519.PublicKey
}

func (args *CreateProposalInstructionArgs) Size() int {
	size := stringSize(args.Name) +
		stringSize(args.DescriptionLink) +
		args.VoteType.Size() +
		4 + // options length
		1 + // use_deny_option
		32 // proposal_seed
	for _, option := range args.Options {
		size += stringSize(option)
	}
	return size
}

type CreateProposalInstructionAccounts struct {
	Realm               ed25519.PublicKey
	Proposal            ed25519.PublicKey
	Governance          ed25519.PublicKey
	ProposalOwnerRecord ed25519.PublicKey
	GoverningTokenMint  ed25519.PublicKey
	GovernanceAuthority ed25519.PublicKey
	Payer               ed25519.PublicKey
	RealmConfig         ed25519.PublicKey
	// VoterWeightRecord is only set for realms using a voter weight plugin.
	VoterWeightRecord ed25519.PublicKey
	ProposalDeposit   ed25519.PublicKey
}

// NewCreateProposalInstruction creates a draft proposal. The account list
// follows program version 3.
func NewCreateProposalInstruction(
	program ed25519.PublicKey,
	accounts *CreateProposalInstructionAccounts,
	args *CreateProposalInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+args.Size())

	putInstructionType(data, InstructionTypeCreateProposal, &offset)
	putString(data, args.Name, &offset)
	putString(data, args.DescriptionLink, &offset)
	putVoteType(data, args.VoteType, &offset)
	putUint32(data, uint32(len(args.Options)), &offset)
	for _, option := range args.Options {
		putString(data, option, &offset)
	}
	putBool(data, args.UseDenyOption, &offset)
	putKey(data, args.ProposalSeed, &offset)

	instructionAccounts := []solana.AccountMeta{
		{
			PublicKey:  accounts.Realm,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Proposal,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Governance,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.ProposalOwnerRecord,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.GoverningTokenMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.GovernanceAuthority,
			IsWritable: false,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Payer,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.RealmConfig,
			IsWritable: false,
			IsSigner:   false,
		},
	}

	if len(accounts.VoterWeightRecord) > 0 {
		instructionAccounts = append(instructionAccounts, solana.AccountMeta{
			PublicKey:  accounts.VoterWeightRecord,
			IsWritable: false,
			IsSigner:   false,
		})
	}

	instructionAccounts = append(instructionAccounts, solana.AccountMeta{
		PublicKey:  accounts.ProposalDeposit,
		IsWritable: true,
		IsSigner:   false,
	})

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: instructionAccounts,
	}
}
