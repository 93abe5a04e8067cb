package proposal

import (
	"crypto/ed25519"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
)

// InstructionDataWithHoldUpTime is an instruction a proposal executes once it
// passes.
type InstructionDataWithHoldUpTime struct {
	Data governance.InstructionData

	// HoldUpTime is the delay in seconds between the proposal passing and the
	// instruction becoming executable.
	HoldUpTime uint32

	// PrerequisiteInstructions are run by the proposer before the proposal is
	// created, for example to create accounts the instruction needs.
	PrerequisiteInstructions []solana.Instruction
}

// Args describes a proposal to create.
type Args struct {
	Title       string
	Description string

	Realm      *governance.ProgramAccount[governance.RealmAccount]
	Governance ed25519.PublicKey

	// VoteByCouncil routes the vote to the council track of the realm instead
	// of the community track.
	VoteByCouncil bool

	Instructions []InstructionDataWithHoldUpTime
}
