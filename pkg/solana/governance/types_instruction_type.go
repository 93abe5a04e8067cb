package governance

type InstructionType uint8

const (
	InstructionTypeCreateRealm InstructionType = iota
	InstructionTypeDepositGoverningTokens
	InstructionTypeWithdrawGoverningTokens
	InstructionTypeSetGovernanceDelegate
	InstructionTypeCreateGovernance
	InstructionTypeCreateProgramGovernance
	InstructionTypeCreateProposal
	InstructionTypeAddSignatory
	InstructionTypeRemoveSignatory
	InstructionTypeInsertTransaction
	InstructionTypeRemoveTransaction
	InstructionTypeCancelProposal
	InstructionTypeSignOffProposal
	InstructionTypeCastVote
	InstructionTypeFinalizeVote
	InstructionTypeRelinquishVote
	InstructionTypeExecuteTransaction
	InstructionTypeCreateMintGovernance
	InstructionTypeCreateTokenGovernance
	InstructionTypeSetGovernanceConfig
)

func putInstructionType(dst []byte, v InstructionType, offset *int) {
	dst[*offset] = uint8(v)
	*offset += 1
}

func getInstructionType(src []byte, dst *InstructionType, offset *int) {
	*dst = InstructionType(src[*offset])
	*offset += 1
}
