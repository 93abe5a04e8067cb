package governance

import (
	"crypto/ed25519"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

type InsertTransactionInstructionArgs struct {
	OptionIndex uint8
	Index       uint16
	// HoldUpTime is the delay in seconds between the proposal passing and the
	// transaction becoming executable.
	HoldUpTime   uint32
	Instructions []InstructionData
}

func (args *InsertTransactionInstructionArgs) Size() int {
	size := 1 + // option_index
		2 + // index
		4 + // hold_up_time
		4 // instructions length
	for _, instruction := range args.Instructions {
		size += instruction.Size()
	}
	return size
}

type InsertTransactionInstructionAccounts struct {
	Governance          ed25519.PublicKey
	Proposal            ed25519.PublicKey
	TokenOwnerRecord    ed25519.PublicKey
	GovernanceAuthority ed25519.PublicKey
	ProposalTransaction ed25519.PublicKey
	Payer               ed25519.PublicKey
}

func NewInsertTransactionInstruction(
	program ed25519.PublicKey,
	accounts *InsertTransactionInstructionAccounts,
	args *InsertTransactionInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+args.Size())

	putInstructionType(data, InstructionTypeInsertTransaction, &offset)
	putUint8(data, args.OptionIndex, &offset)
	putUint16(data, args.Index, &offset)
	putUint32(data, args.HoldUpTime, &offset)
	putUint32(data, uint32(len(args.Instructions)), &offset)
	for _, instruction := range args.Instructions {
		putInstructionData(data, instruction, &offset)
	}

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Governance,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Proposal,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.TokenOwnerRecord,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.GovernanceAuthority,
				IsWritable: false,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.ProposalTransaction,
				IsWritable: true,
				IsSigner:   false,
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
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}
