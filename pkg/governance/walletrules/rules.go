package walletrules

import (
	"crypto/ed25519"

	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"

	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
)

const (
	secondsPerHour = 60 * 60
	secondsPerDay  = 24 * secondsPerHour

	// disabledQuorumPercent is shown for a track that cannot vote or veto,
	// so that enabling it starts from a sensible value.
	disabledQuorumPercent = 60
)

// GovernanceRules are the rules of a governance decoded from its on-chain
// config.
type GovernanceRules struct {
	GovernanceAddress ed25519.PublicKey
	WalletAddress     ed25519.PublicKey
	Version           uint8

	CommunityTokenRules Rules
	// CouncilTokenRules is nil when the realm has no council.
	CouncilTokenRules *Rules

	CoolOffHours               uint32
	DepositExemptProposalCount uint8
	// MaxVoteDays holds the base voting time, which is named max voting time
	// on chain. The true maximum adds the cool off time.
	MaxVoteDays              float64
	MinInstructionHoldupDays uint32
}

// GetGovernanceRules decodes the config of a governance of realm deployed at
// programID. Voting power thresholds are in natural units of their mint.
func GetGovernanceRules(
	programID ed25519.PublicKey,
	account *governance.ProgramAccount[governance.GovernanceAccount],
	realm *governance.ProgramAccount[governance.RealmAccount],
	version uint8,
) (*GovernanceRules, error) {
	wallet, _, err := governance.GetNativeTreasuryAddress(programID, &governance.GetNativeTreasuryAddressArgs{
		Governance: account.PublicKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive wallet address")
	}

	config := account.Account.Config

	rules := &GovernanceRules{
		GovernanceAddress: account.PublicKey,
		WalletAddress:     wallet,
		Version:           version,

		CommunityTokenRules: decodeRules(
			TokenTypeCommunity,
			realm.Account.CommunityMint,
			config.CommunityVoteThreshold,
			config.CommunityVetoVoteThreshold,
			config.MinCommunityWeightToCreateProposal,
			config.CommunityVoteTipping,
		),

		CoolOffHours:               config.VotingCoolOffTime / secondsPerHour,
		DepositExemptProposalCount: config.DepositExemptProposalCount,
		MaxVoteDays:                float64(config.VotingBaseTime) / secondsPerDay,
		MinInstructionHoldupDays:   config.MinTransactionHoldUpTime / secondsPerDay,
	}

	if realm.Account.HasCouncil() {
		council := decodeRules(
			TokenTypeCouncil,
			realm.Account.Config.CouncilMint,
			config.CouncilVoteThreshold,
			config.CouncilVetoVoteThreshold,
			config.MinCouncilWeightToCreateProposal,
			config.CouncilVoteTipping,
		)
		rules.CouncilTokenRules = &council
	}

	return rules, nil
}

func decodeRules(
	tokenType TokenType,
	mint ed25519.PublicKey,
	vote governance.VoteThreshold,
	veto governance.VoteThreshold,
	minWeight uint64,
	tipping governance.VoteTipping,
) Rules {
	return Rules{
		CanCreateProposal:            minWeight != governance.DisabledVoterWeight,
		CanVeto:                      !veto.IsDisabled(),
		CanVote:                      !vote.IsDisabled(),
		QuorumPercent:                thresholdPercent(vote),
		VetoQuorumPercent:            thresholdPercent(veto),
		TokenType:                    tokenType,
		TokenMintAddress:             mint,
		VotingPowerToCreateProposals: sdkmath.LegacyNewDecFromInt(sdkmath.NewIntFromUint64(minWeight)),
		VoteTipping:                  tipping,
	}
}

func thresholdPercent(threshold governance.VoteThreshold) uint8 {
	if threshold.IsDisabled() {
		return disabledQuorumPercent
	}
	return threshold.Value
}
