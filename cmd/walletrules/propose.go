package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bhagyamudgal/governance-ui/pkg/governance/proposal"
	"github.com/bhagyamudgal/governance-ui/pkg/governance/walletrules"
	"github.com/bhagyamudgal/governance-ui/pkg/metrics"
	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

const (
	flagKeypair      = "keypair"
	flagSymbol       = "symbol"
	flagTitle        = "title"
	flagDescription  = "description"
	flagVoteType     = "vote-type"
	flagDashboardURL = "dashboard-url"
	flagYes          = "yes"
	flagDryRun       = "dry-run"

	defaultDashboardURL = "https://governance.so"
)

func newProposeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Create a proposal changing the rules of a governance wallet",
		Long: `Loads the rules of a governance wallet, applies the edits given as flags and
creates a proposal replacing the governance config with the edited rules.`,
		Example: binaryName + " propose --realm <address> --governance <address> --symbol GRAPE --cool-off-hours 12",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.propose(cmd)
		},
	}

	var defaultKeypair string
	if home, err := os.UserHomeDir(); err == nil {
		defaultKeypair = filepath.Join(home, ".config", "solana", "id.json")
	}

	flags := cmd.Flags()
	flags.String(flagKeypair, defaultKeypair, "Keypair of the proposal owner")
	flags.String(flagSymbol, "", "Realm symbol used in dashboard links")
	flags.String(flagTitle, "", "Proposal title, defaults to one naming the wallet")
	flags.String(flagDescription, "", "Proposal description")
	flags.String(flagVoteType, "", "Token track voting on the proposal: community or council")
	flags.String(flagDashboardURL, defaultDashboardURL, "Base URL of proposal links")
	flags.Bool(flagYes, false, "Create the proposal without asking for confirmation")
	flags.Bool(flagDryRun, false, "Print the changes without creating a proposal")
	addEditFlags(flags)

	return cmd
}

func (a *app) propose(cmd *cobra.Command) error {
	edits, err := readEdits(cmd.Flags())
	if err != nil {
		return err
	}

	symbol := a.v.GetString(flagSymbol)
	if symbol == "" {
		return errors.Errorf("--%s is required", flagSymbol)
	}

	editor, fetcher, err := a.load(cmd)
	if err != nil {
		return err
	}
	if err := edits.apply(editor); err != nil {
		return err
	}

	if title := a.v.GetString(flagTitle); title != "" {
		editor.SetProposalTitle(title)
	}
	editor.SetProposalDescription(a.v.GetString(flagDescription))
	if voteType := a.v.GetString(flagVoteType); voteType != "" {
		if err := editor.SetProposalVoteType(walletrules.ProposalVoteType(strings.ToLower(voteType))); err != nil {
			return err
		}
	}

	editor.Continue()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Step %d of %d: %s\n\n", editor.Step().Number(), walletrules.StepCount, editor.Step().Name())
	fmt.Fprintf(out, "Title:     %s\n", editor.ProposalTitle())
	fmt.Fprintf(out, "Vote type: %s\n\n", editor.ProposalVoteType())
	printSummary(out, editor)

	if a.v.GetBool(flagDryRun) {
		return nil
	}

	if !a.v.GetBool(flagYes) {
		prompt := promptui.Prompt{
			Label:     "Create proposal",
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			if err == promptui.ErrAbort {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
			return err
		}
	}

	keypair, err := solana.LoadKeypairFile(a.v.GetString(flagKeypair))
	if err != nil {
		return err
	}

	submitter := walletrules.NewSubmitter(
		editor,
		fetcher.Tokens(),
		proposal.NewService(a.sc, keypair, proposal.WithFileConfigs(a.v)),
		&consoleNotifier{w: cmd.ErrOrStderr(), log: a.log},
		&consoleNavigator{w: out, baseURL: a.v.GetString(flagDashboardURL)},
		symbol,
		a.cluster,
		walletrules.WithFileConfigs(a.v),
	)

	ctx, end := metrics.StartTransaction(cmd.Context(), "walletrules propose")
	_, err = submitter.Submit(ctx)
	end(err)
	return err
}

type consoleNotifier struct {
	w   io.Writer
	log *logrus.Entry
}

func (n *consoleNotifier) Notify(notification walletrules.Notification) {
	n.log.WithField("notification", notification.Type).Debug(notification.Message)
	fmt.Fprintf(n.w, "%s: %s\n", notification.Type, notification.Message)
}

type consoleNavigator struct {
	w       io.Writer
	baseURL string
}

func (n *consoleNavigator) Navigate(path string) {
	fmt.Fprintf(n.w, "Proposal created: %s%s\n", strings.TrimRight(n.baseURL, "/"), path)
}
