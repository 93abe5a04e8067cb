package governance

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

type SetGovernanceConfigInstructionArgs struct {
	Config GovernanceConfig
}

type SetGovernanceConfigInstructionAccounts struct {
	Governance ed25519.PublicKey
}

// NewSetGovernanceConfigInstruction replaces the config of a governance. The
// governance account signs, so the instruction can only run from one of its
// own proposals.
func NewSetGovernanceConfigInstruction(
	program ed25519.PublicKey,
	accounts *SetGovernanceConfigInstructionAccounts,
	args *SetGovernanceConfigInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+args.Config.Size())

	putInstructionType(data, InstructionTypeSetGovernanceConfig, &offset)
	putGovernanceConfig(data, &args.Config, &offset)

	return solana.Instruction{
		Program: program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Governance,
				IsWritable: true,
				IsSigner:   true,
			},
		},
	}
}

// DecodeSetGovernanceConfigInstructionArgs is the inverse of the data
// encoding in NewSetGovernanceConfigInstruction.
func DecodeSetGovernanceConfigInstructionArgs(data []byte) (*SetGovernanceConfigInstructionArgs, error) {
	if len(data) < 1 {
		return nil, ErrInvalidInstructionData
	}

	var offset int
	var instructionType InstructionType
	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeSetGovernanceConfig {
		return nil, errors.Wrapf(ErrInvalidInstructionData, "unexpected instruction type %d", instructionType)
	}

	var args SetGovernanceConfigInstructionArgs
	if err := args.Config.Unmarshal(data[offset:]); err != nil {
		return nil, errors.Wrap(ErrInvalidInstructionData, err.Error())
	}
	return &args, nil
}
