package main

import (
	"fmt"
	"io"
	"strconv"

	sdkmath "cosmossdk.io/math"
	"github.com/mr-tron/base58"
	"github.com/olekukonko/tablewriter"

	"github.com/bhagyamudgal/governance-ui/pkg/governance/walletrules"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/token"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// printRules writes the edited rules of editor.
func printRules(w io.Writer, editor *walletrules.Editor) {
	current := editor.Current()

	fmt.Fprintf(w, "Wallet:     %s (%s)\n", editor.WalletName(), base58.Encode(editor.WalletAddress()))
	fmt.Fprintf(w, "Governance: %s (program version %d)\n\n", base58.Encode(editor.GovernanceAddress()), editor.ProgramVersion())

	timing := newTable(w, "Voting", "Value")
	timing.AppendBulk([][]string{
		{"Base voting time", formatDays(current.BaseVoteDays)},
		{"Cool-off time", strconv.FormatUint(uint64(current.CoolOffHours), 10) + " hours"},
		{"Max voting time", formatDays(current.MaxVoteDays)},
		{"Minimum instruction holdup", formatDays(float64(current.MinInstructionHoldupDays))},
		{"Deposit exempt proposal count", strconv.Itoa(int(current.DepositExemptProposalCount))},
	})
	timing.Render()

	header := []string{"Rule", "Community"}
	community := trackRows(&current.CommunityRules)
	rows := make([][]string, len(community))
	for i, row := range community {
		rows[i] = []string{row[0], row[1]}
	}
	if current.CouncilRules != nil {
		header = append(header, "Council")
		for i, row := range trackRows(current.CouncilRules) {
			rows[i] = append(rows[i], row[1])
		}
	}

	tracks := newTable(w, header...)
	tracks.AppendBulk(rows)
	tracks.Render()
}

func trackRows(rules *walletrules.Rules) [][]string {
	return [][]string{
		{"Mint", base58.Encode(rules.TokenMintAddress)},
		{"Can vote", yesNo(rules.CanVote)},
		{"Approval quorum", strconv.Itoa(int(rules.QuorumPercent)) + "%"},
		{"Vote tipping", rules.VoteTipping.String()},
		{"Can veto", yesNo(rules.CanVeto)},
		{"Veto quorum", strconv.Itoa(int(rules.VetoQuorumPercent)) + "%"},
		{"Can create proposals", yesNo(rules.CanCreateProposal)},
		{"Voting power to create proposals", formatPower(rules.VotingPowerToCreateProposals)},
	}
}

// printSummary writes the changes of editor, or a note when there are none.
func printSummary(w io.Writer, editor *walletrules.Editor) {
	changes := editor.Summary()
	if len(changes) == 0 {
		fmt.Fprintln(w, "No changes.")
		return
	}

	table := newTable(w, "Section", "Rule", "Current", "Proposed")
	for _, change := range changes {
		table.Append([]string{change.Section, change.Field, change.Initial, change.Current})
	}
	table.Render()
}

func formatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64) + " days"
}

func formatPower(value sdkmath.LegacyDec) string {
	if value.IsNil() {
		return "0"
	}
	return token.FormatDecimal(value, -1)
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}
