package walletrules

import (
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"

	"github.com/bhagyamudgal/governance-ui/pkg/solana/token"
)

// Step is a page of the wallet rules wizard.
type Step uint8

const (
	StepForm Step = iota
	StepSummary
)

// Number is the 1-based position of the step.
func (s Step) Number() int {
	switch s {
	case StepForm:
		return 1
	case StepSummary:
		return 2
	}
	return 0
}

func (s Step) Name() string {
	switch s {
	case StepForm:
		return "Edit Wallet Rules"
	case StepSummary:
		return "Create Proposal"
	}
	return "Unknown"
}

// StepCount is the number of steps of the wizard.
const StepCount = 2

func (e *Editor) Step() Step {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.step
}

// Continue moves from the form to the summary. It returns false if the
// editor already shows the summary.
func (e *Editor) Continue() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.step != StepForm {
		return false
	}
	e.step = StepSummary
	return true
}

// Back moves from the summary to the form. It returns false on the form,
// where leaving the wizard is up to the caller.
func (e *Editor) Back() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.step != StepSummary {
		return false
	}
	e.step = StepForm
	return true
}

// Change is a rule whose edited value differs from the loaded one.
type Change struct {
	Section string
	Field   string
	Initial string
	Current string
}

func (c Change) String() string {
	return fmt.Sprintf("%s / %s: %s -> %s", c.Section, c.Field, c.Initial, c.Current)
}

// Summary lists the edited rules that differ from the loaded ones.
func (e *Editor) Summary() []Change {
	e.mu.RLock()
	initial, current := e.initial.clone(), e.current.clone()
	e.mu.RUnlock()

	var changes []Change
	add := func(section, field, before, after string) {
		if before != after {
			changes = append(changes, Change{Section: section, Field: field, Initial: before, Current: after})
		}
	}

	add("Voting", "Base voting time", formatDays(initial.BaseVoteDays), formatDays(current.BaseVoteDays))
	add("Voting", "Cool-off time", formatHours(initial.CoolOffHours), formatHours(current.CoolOffHours))
	add("Voting", "Minimum instruction holdup", formatDays(float64(initial.MinInstructionHoldupDays)), formatDays(float64(current.MinInstructionHoldupDays)))
	add("Voting", "Deposit exempt proposal count", strconv.Itoa(int(initial.DepositExemptProposalCount)), strconv.Itoa(int(current.DepositExemptProposalCount)))

	addRules := func(section string, before, after *Rules) {
		switch {
		case before == nil && after == nil:
			return
		case before == nil:
			add(section, "Track", "None", "Enabled")
			return
		case after == nil:
			add(section, "Track", "Enabled", "None")
			return
		}

		add(section, "Can vote", formatBool(before.CanVote), formatBool(after.CanVote))
		add(section, "Approval quorum", formatPercent(before.QuorumPercent), formatPercent(after.QuorumPercent))
		add(section, "Vote tipping", before.VoteTipping.String(), after.VoteTipping.String())
		add(section, "Can veto", formatBool(before.CanVeto), formatBool(after.CanVeto))
		add(section, "Veto quorum", formatPercent(before.VetoQuorumPercent), formatPercent(after.VetoQuorumPercent))
		add(section, "Can create proposals", formatBool(before.CanCreateProposal), formatBool(after.CanCreateProposal))
		add(section, "Voting power to create proposals", formatPower(before.VotingPowerToCreateProposals), formatPower(after.VotingPowerToCreateProposals))
	}

	addRules("Community", &initial.CommunityRules, &current.CommunityRules)
	addRules("Council", initial.CouncilRules, current.CouncilRules)

	return changes
}

func formatDays(days float64) string {
	if days == 1 {
		return "1 day"
	}
	return strconv.FormatFloat(days, 'f', -1, 64) + " days"
}

func formatHours(hours uint32) string {
	if hours == 1 {
		return "1 hour"
	}
	return strconv.FormatUint(uint64(hours), 10) + " hours"
}

func formatPercent(percent uint8) string {
	return strconv.Itoa(int(percent)) + "%"
}

func formatBool(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func formatPower(value sdkmath.LegacyDec) string {
	if value.IsNil() {
		return "0"
	}
	return token.FormatDecimal(value, -1)
}
