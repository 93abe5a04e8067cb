package walletrules

import (
	"context"
	"crypto/ed25519"
	"path"
	"strings"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bhagyamudgal/governance-ui/pkg/governance/proposal"
	"github.com/bhagyamudgal/governance-ui/pkg/solana"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
)

var (
	// ErrSubmissionInProgress indicates Submit was called while a previous
	// submission is still running.
	ErrSubmissionInProgress = errors.New("submission already in progress")
)

// Proposer creates governance proposals.
type Proposer interface {
	Propose(ctx context.Context, args *proposal.Args) (ed25519.PublicKey, error)
}

type NotificationType string

const (
	NotificationTypeError   NotificationType = "error"
	NotificationTypeSuccess NotificationType = "success"
)

type Notification struct {
	Type    NotificationType
	Message string
}

// Notifier shows non-blocking messages to the user.
type Notifier interface {
	Notify(Notification)
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// Submitter turns the draft of an Editor into a proposal.
type Submitter struct {
	log  *logrus.Entry
	conf *conf

	editor    *Editor
	mints     MintSource
	proposer  Proposer
	notifier  Notifier
	navigator Navigator

	symbol  string
	cluster solana.Cluster

	mu         sync.Mutex
	submitting bool
}

func NewSubmitter(
	editor *Editor,
	mints MintSource,
	proposer Proposer,
	notifier Notifier,
	navigator Navigator,
	symbol string,
	cluster solana.Cluster,
	configProvider ConfigProvider,
) *Submitter {
	return &Submitter{
		log:       logrus.StandardLogger().WithField("type", "governance/walletrules/submitter"),
		conf:      configProvider(),
		editor:    editor,
		mints:     mints,
		proposer:  proposer,
		notifier:  notifier,
		navigator: navigator,
		symbol:    symbol,
		cluster:   cluster,
	}
}

// Submitting reports whether a submission is running.
func (s *Submitter) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Submit proposes the edited rules and navigates to the new proposal. Errors
// are also reported through the notifier, and the editor is left as is so
// the user can retry.
//
// The instruction holdup of the proposal is the holdup of the rules as
// loaded, since those rules govern the proposal itself.
//
// Submit panics if the editor was never loaded.
func (s *Submitter) Submit(ctx context.Context) (ed25519.PublicKey, error) {
	d := s.editor.draft()
	if d.realm == nil {
		panic("walletrules: submit before the realm was loaded")
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	governanceAddress := s.editor.GovernanceAddress()

	log := s.log.WithFields(logrus.Fields{
		"method":     "Submit",
		"governance": base58.Encode(governanceAddress),
		"vote_type":  d.voteType,
	})

	instruction, err := CreateTransaction(
		ctx,
		s.mints,
		d.realm.Owner,
		d.programVersion,
		governanceAddress,
		d.realm.PublicKey,
		&TransactionParams{
			CoolOffHours:               d.current.CoolOffHours,
			DepositExemptProposalCount: d.current.DepositExemptProposalCount,
			MaxVoteDays:                d.current.MaxVoteDays,
			MinInstructionHoldupDays:   d.current.MinInstructionHoldupDays,
			CommunityTokenRules:        d.current.CommunityRules,
			CouncilTokenRules:          d.current.CouncilRules,
			GovernanceAddress:          governanceAddress,
			Version:                    d.programVersion,
			WalletAddress:              d.wallet,
		},
	)
	if err != nil {
		return nil, s.fail(log, err)
	}

	address, err := s.proposer.Propose(ctx, &proposal.Args{
		Title:         d.title,
		Description:   d.description,
		Realm:         d.realm,
		Governance:    governanceAddress,
		VoteByCouncil: d.voteType == ProposalVoteTypeCouncil,
		Instructions: []proposal.InstructionDataWithHoldUpTime{
			{
				Data:       governance.NewInstructionData(instruction),
				HoldUpTime: secondsPerDay * d.initial.MinInstructionHoldupDays,
			},
		},
	})
	if err != nil {
		return nil, s.fail(log, err)
	}

	if address != nil {
		proposalPath := path.Join(s.conf.daoPathPrefix.Get(ctx), s.symbol, "proposal", base58.Encode(address))
		s.navigator.Navigate(FormatURLWithCluster(proposalPath, s.cluster))
	}

	log.WithField("proposal", base58.Encode(address)).Info("wallet rules proposal created")
	return address, nil
}

func (s *Submitter) fail(log *logrus.Entry, err error) error {
	log.WithError(err).Warn("failed to create wallet rules proposal")
	s.notifier.Notify(Notification{
		Type:    NotificationTypeError,
		Message: "Could not create proposal: " + err.Error(),
	})
	return err
}

// FormatURLWithCluster adds the cluster to a dashboard path unless it is
// mainnet, the dashboard default.
func FormatURLWithCluster(url string, cluster solana.Cluster) string {
	if cluster == "" || cluster.IsMainnet() {
		return url
	}

	separator := "?"
	if strings.Contains(url, "?") {
		separator = "&"
	}
	return url + separator + "cluster=" + string(cluster)
}
