package main

import (
	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/bhagyamudgal/governance-ui/pkg/governance/walletrules"
	"github.com/bhagyamudgal/governance-ui/pkg/pointer"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
)

const (
	flagCoolOffHours        = "cool-off-hours"
	flagMaxVoteDays         = "max-vote-days"
	flagMinHoldupDays       = "min-holdup-days"
	flagDepositExemptCount  = "deposit-exempt-count"
	flagRemoveCouncil       = "remove-council"
	flagSuffixCanVote       = "-can-vote"
	flagSuffixCanVeto       = "-can-veto"
	flagSuffixCanCreate     = "-can-create"
	flagSuffixQuorum        = "-quorum"
	flagSuffixVetoQuorum    = "-veto-quorum"
	flagSuffixTipping       = "-tipping"
	flagSuffixPower         = "-power"
	communityFlagPrefix     = "community"
	councilFlagPrefix       = "council"
	maxQuorumPercent        = 100
	tippingFlagValuesString = "strict, early or disabled"
)

var errNoCouncil = errors.New("the realm has no council")

// trackEdits are the requested changes to the rules of one token track. Nil
// fields are left as loaded.
type trackEdits struct {
	canVote    *bool
	canVeto    *bool
	canCreate  *bool
	quorum     *uint8
	vetoQuorum *uint8
	tipping    *governance.VoteTipping
	power      *sdkmath.LegacyDec
}

func (e *trackEdits) empty() bool {
	return e.canVote == nil && e.canVeto == nil && e.canCreate == nil &&
		e.quorum == nil && e.vetoQuorum == nil && e.tipping == nil && e.power == nil
}

func (e *trackEdits) apply(rules *walletrules.Rules) {
	if e.canVote != nil {
		rules.CanVote = *e.canVote
	}
	if e.canVeto != nil {
		rules.CanVeto = *e.canVeto
	}
	if e.canCreate != nil {
		rules.CanCreateProposal = *e.canCreate
	}
	if e.quorum != nil {
		rules.QuorumPercent = *e.quorum
	}
	if e.vetoQuorum != nil {
		rules.VetoQuorumPercent = *e.vetoQuorum
	}
	if e.tipping != nil {
		rules.VoteTipping = *e.tipping
	}
	if e.power != nil {
		rules.VotingPowerToCreateProposals = *e.power
	}
}

// ruleEdits are the requested changes to a governance.
type ruleEdits struct {
	coolOffHours       *uint32
	maxVoteDays        *float64
	minHoldupDays      *uint32
	depositExemptCount *uint8
	removeCouncil      bool

	community trackEdits
	council   trackEdits
}

func addEditFlags(flags *pflag.FlagSet) {
	flags.Uint32(flagCoolOffHours, 0, "Cool-off time in hours, during which only vetoes and withdrawals are accepted")
	flags.Float64(flagMaxVoteDays, 0, "Max voting time in days, including the cool-off time")
	flags.Uint32(flagMinHoldupDays, 0, "Minimum instruction holdup in days")
	flags.Uint8(flagDepositExemptCount, 0, "Number of proposals a member can create without a deposit")
	flags.Bool(flagRemoveCouncil, false, "Remove the council rules")

	for _, track := range []string{communityFlagPrefix, councilFlagPrefix} {
		flags.Bool(track+flagSuffixCanVote, false, "Whether "+track+" members can vote")
		flags.Bool(track+flagSuffixCanVeto, false, "Whether "+track+" members can veto")
		flags.Bool(track+flagSuffixCanCreate, false, "Whether "+track+" members can create proposals")
		flags.Uint8(track+flagSuffixQuorum, 0, "Approval quorum of "+track+" votes in percent")
		flags.Uint8(track+flagSuffixVetoQuorum, 0, "Veto quorum of "+track+" votes in percent")
		flags.String(track+flagSuffixTipping, "", "Vote tipping of "+track+" votes: "+tippingFlagValuesString)
		flags.String(track+flagSuffixPower, "", "Whole "+track+" tokens needed to create proposals")
	}
}

// readEdits collects the edit flags that were set explicitly.
func readEdits(flags *pflag.FlagSet) (*ruleEdits, error) {
	var edits ruleEdits
	var err error

	if edits.coolOffHours, err = uint32Flag(flags, flagCoolOffHours); err != nil {
		return nil, err
	}
	if edits.minHoldupDays, err = uint32Flag(flags, flagMinHoldupDays); err != nil {
		return nil, err
	}
	if flags.Changed(flagMaxVoteDays) {
		days, err := flags.GetFloat64(flagMaxVoteDays)
		if err != nil {
			return nil, err
		}
		if days <= 0 {
			return nil, errors.Errorf("--%s must be positive", flagMaxVoteDays)
		}
		edits.maxVoteDays = pointer.To(days)
	}
	if flags.Changed(flagDepositExemptCount) {
		count, err := flags.GetUint8(flagDepositExemptCount)
		if err != nil {
			return nil, err
		}
		edits.depositExemptCount = pointer.To(count)
	}
	if edits.removeCouncil, err = flags.GetBool(flagRemoveCouncil); err != nil {
		return nil, err
	}

	if edits.community, err = readTrackEdits(flags, communityFlagPrefix); err != nil {
		return nil, err
	}
	if edits.council, err = readTrackEdits(flags, councilFlagPrefix); err != nil {
		return nil, err
	}
	if edits.removeCouncil && !edits.council.empty() {
		return nil, errors.Errorf("--%s conflicts with council edits", flagRemoveCouncil)
	}

	return &edits, nil
}

func readTrackEdits(flags *pflag.FlagSet, track string) (trackEdits, error) {
	var edits trackEdits
	var err error

	if edits.canVote, err = boolFlag(flags, track+flagSuffixCanVote); err != nil {
		return edits, err
	}
	if edits.canVeto, err = boolFlag(flags, track+flagSuffixCanVeto); err != nil {
		return edits, err
	}
	if edits.canCreate, err = boolFlag(flags, track+flagSuffixCanCreate); err != nil {
		return edits, err
	}
	if edits.quorum, err = percentFlag(flags, track+flagSuffixQuorum); err != nil {
		return edits, err
	}
	if edits.vetoQuorum, err = percentFlag(flags, track+flagSuffixVetoQuorum); err != nil {
		return edits, err
	}

	if name := track + flagSuffixTipping; flags.Changed(name) {
		value, _ := flags.GetString(name)
		tipping, ok := governance.ParseVoteTipping(value)
		if !ok {
			return edits, errors.Errorf("--%s must be one of %s", name, tippingFlagValuesString)
		}
		edits.tipping = pointer.To(tipping)
	}

	if name := track + flagSuffixPower; flags.Changed(name) {
		value, _ := flags.GetString(name)
		power, err := sdkmath.LegacyNewDecFromStr(value)
		if err != nil || power.IsNegative() {
			return edits, errors.Errorf("--%s: invalid amount %q", name, value)
		}
		edits.power = pointer.To(power)
	}

	return edits, nil
}

func boolFlag(flags *pflag.FlagSet, name string) (*bool, error) {
	value, err := flags.GetBool(name)
	if err != nil {
		return nil, err
	}
	return pointer.IfValid(flags.Changed(name), value), nil
}

func uint32Flag(flags *pflag.FlagSet, name string) (*uint32, error) {
	value, err := flags.GetUint32(name)
	if err != nil {
		return nil, err
	}
	return pointer.IfValid(flags.Changed(name), value), nil
}

func percentFlag(flags *pflag.FlagSet, name string) (*uint8, error) {
	value, err := flags.GetUint8(name)
	if err != nil {
		return nil, err
	}
	if value > maxQuorumPercent {
		return nil, errors.Errorf("--%s must be at most %d", name, maxQuorumPercent)
	}
	return pointer.IfValid(flags.Changed(name), value), nil
}

// apply sends the edits through the editor, max voting time before cool-off
// so the base voting time follows both.
func (e *ruleEdits) apply(editor *walletrules.Editor) error {
	if e.maxVoteDays != nil {
		editor.SetMaxVoteDays(*e.maxVoteDays)
	}
	if e.coolOffHours != nil {
		editor.SetCoolOffHours(*e.coolOffHours)
	}
	if e.minHoldupDays != nil {
		editor.SetMinInstructionHoldupDays(*e.minHoldupDays)
	}
	if e.depositExemptCount != nil {
		editor.SetDepositExemptProposalCount(*e.depositExemptCount)
	}

	current := editor.Current()

	if !e.community.empty() {
		community := current.CommunityRules
		e.community.apply(&community)
		editor.SetCommunityRules(community)
	}

	switch {
	case e.removeCouncil:
		if current.CouncilRules == nil {
			return errNoCouncil
		}
		editor.SetCouncilRules(nil)
	case !e.council.empty():
		if current.CouncilRules == nil {
			return errNoCouncil
		}
		council := *current.CouncilRules
		e.council.apply(&council)
		editor.SetCouncilRules(&council)
	}

	return nil
}
