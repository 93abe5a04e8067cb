package walletrules

import (
	"context"
	"crypto/ed25519"
	"math"

	sdkmath "cosmossdk.io/math"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/token"
)

var (
	ErrInvalidVotingTime  = errors.New("base voting time must be positive")
	ErrInvalidHoldupTime  = errors.New("instruction holdup time overflows")
	ErrMissingMintDetails = errors.New("mint details unavailable")
)

// MintSource reads mints to convert voting power between whole tokens and
// natural units.
type MintSource interface {
	GetMint(address ed25519.PublicKey) (*token.Mint, error)
}

// TransactionParams is the edited rule set of a governance.
type TransactionParams struct {
	CoolOffHours               uint32
	DepositExemptProposalCount uint8
	// MaxVoteDays is the total voting time including the cool off time.
	MaxVoteDays              float64
	MinInstructionHoldupDays uint32

	CommunityTokenRules Rules
	CouncilTokenRules   *Rules

	GovernanceAddress ed25519.PublicKey
	Version           uint8
	WalletAddress     ed25519.PublicKey
}

// CreateTransaction builds the instruction that replaces the config of the
// governance with params. Voting power to create proposals is read in whole
// tokens of each track's mint.
func CreateTransaction(
	ctx context.Context,
	mints MintSource,
	programID ed25519.PublicKey,
	version uint8,
	governanceAddress ed25519.PublicKey,
	realm ed25519.PublicKey,
	params *TransactionParams,
) (solana.Instruction, error) {
	if version < governance.ProgramVersionV3 {
		return solana.Instruction{}, errors.Wrapf(governance.ErrUnsupportedVersion, "version %d", version)
	}

	if err := ctx.Err(); err != nil {
		return solana.Instruction{}, err
	}

	config, err := buildGovernanceConfig(mints, params)
	if err != nil {
		return solana.Instruction{}, errors.Wrapf(err, "invalid rules for governance %s of realm %s", base58.Encode(governanceAddress), base58.Encode(realm))
	}

	return governance.NewSetGovernanceConfigInstruction(
		programID,
		&governance.SetGovernanceConfigInstructionAccounts{
			Governance: governanceAddress,
		},
		&governance.SetGovernanceConfigInstructionArgs{
			Config: *config,
		},
	), nil
}

func buildGovernanceConfig(mints MintSource, params *TransactionParams) (*governance.GovernanceConfig, error) {
	coolOffSeconds := uint64(params.CoolOffHours) * secondsPerHour
	maxVotingSeconds := math.Round(params.MaxVoteDays * secondsPerDay)
	if maxVotingSeconds <= float64(coolOffSeconds) || maxVotingSeconds > math.MaxUint32 {
		return nil, ErrInvalidVotingTime
	}
	baseVotingSeconds := uint64(maxVotingSeconds) - coolOffSeconds

	holdupSeconds := uint64(params.MinInstructionHoldupDays) * secondsPerDay
	if holdupSeconds > math.MaxUint32 {
		return nil, ErrInvalidHoldupTime
	}
	if coolOffSeconds > math.MaxUint32 {
		return nil, ErrInvalidVotingTime
	}

	community := &params.CommunityTokenRules
	minCommunityWeight, err := minWeightToCreateProposal(mints, community)
	if err != nil {
		return nil, errors.Wrap(err, "community")
	}

	config := &governance.GovernanceConfig{
		CommunityVoteThreshold:             voteThreshold(community.CanVote, community.QuorumPercent),
		MinCommunityWeightToCreateProposal: minCommunityWeight,
		MinTransactionHoldUpTime:           uint32(holdupSeconds),
		VotingBaseTime:                     uint32(baseVotingSeconds),
		CommunityVoteTipping:               community.VoteTipping,
		CouncilVoteThreshold:               governance.NewDisabledVoteThreshold(),
		CouncilVetoVoteThreshold:           governance.NewDisabledVoteThreshold(),
		MinCouncilWeightToCreateProposal:   governance.DisabledVoterWeight,
		CouncilVoteTipping:                 governance.VoteTippingDisabled,
		CommunityVetoVoteThreshold:         voteThreshold(community.CanVeto, community.VetoQuorumPercent),
		VotingCoolOffTime:                  uint32(coolOffSeconds),
		DepositExemptProposalCount:         params.DepositExemptProposalCount,
	}

	if council := params.CouncilTokenRules; council != nil {
		minCouncilWeight, err := minWeightToCreateProposal(mints, council)
		if err != nil {
			return nil, errors.Wrap(err, "council")
		}

		config.CouncilVoteThreshold = voteThreshold(council.CanVote, council.QuorumPercent)
		config.CouncilVetoVoteThreshold = voteThreshold(council.CanVeto, council.VetoQuorumPercent)
		config.MinCouncilWeightToCreateProposal = minCouncilWeight
		config.CouncilVoteTipping = council.VoteTipping
	}

	return config, nil
}

func voteThreshold(enabled bool, percent uint8) governance.VoteThreshold {
	if !enabled {
		return governance.NewDisabledVoteThreshold()
	}
	return governance.NewYesVoteThreshold(percent)
}

func minWeightToCreateProposal(mints MintSource, rules *Rules) (uint64, error) {
	if !rules.CanCreateProposal {
		return governance.DisabledVoterWeight, nil
	}

	mint, err := mints.GetMint(rules.TokenMintAddress)
	if err != nil {
		return 0, errors.Wrapf(ErrMissingMintDetails, "%s: %v", base58.Encode(rules.TokenMintAddress), err)
	}

	power := rules.VotingPowerToCreateProposals
	if power.IsNil() {
		power = sdkmath.LegacyZeroDec()
	}
	return token.UnshiftDecimalsToUint64(power, mint.Decimals)
}
