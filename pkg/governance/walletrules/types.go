package walletrules

import (
	"crypto/ed25519"

	sdkmath "cosmossdk.io/math"

	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
)

type TokenType uint8

const (
	TokenTypeCommunity TokenType = iota
	TokenTypeCouncil
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeCommunity:
		return "Community"
	case TokenTypeCouncil:
		return "Council"
	}
	return "Unknown"
}

// ProposalVoteType selects which token track votes on the proposal.
type ProposalVoteType string

const (
	ProposalVoteTypeCommunity ProposalVoteType = "community"
	ProposalVoteTypeCouncil   ProposalVoteType = "council"
)

// Rules are the editable voting rules of one token track of a governance.
type Rules struct {
	CanCreateProposal bool
	CanVeto           bool
	CanVote           bool

	// QuorumPercent and VetoQuorumPercent range from 0 to 100.
	QuorumPercent     uint8
	VetoQuorumPercent uint8

	TokenType        TokenType
	TokenMintAddress ed25519.PublicKey

	// VotingPowerToCreateProposals is in whole tokens once the mint decimals
	// are known, and in natural units otherwise.
	VotingPowerToCreateProposals sdkmath.LegacyDec

	VoteTipping governance.VoteTipping
}

func (r Rules) Equal(other Rules) bool {
	return r.CanCreateProposal == other.CanCreateProposal &&
		r.CanVeto == other.CanVeto &&
		r.CanVote == other.CanVote &&
		r.QuorumPercent == other.QuorumPercent &&
		r.VetoQuorumPercent == other.VetoQuorumPercent &&
		r.TokenType == other.TokenType &&
		r.TokenMintAddress.Equal(other.TokenMintAddress) &&
		decEqual(r.VotingPowerToCreateProposals, other.VotingPowerToCreateProposals) &&
		r.VoteTipping == other.VoteTipping
}

func (r *Rules) clone() *Rules {
	if r == nil {
		return nil
	}
	cloned := *r
	return &cloned
}

func decEqual(a, b sdkmath.LegacyDec) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() == b.IsNil()
	}
	return a.Equal(b)
}
