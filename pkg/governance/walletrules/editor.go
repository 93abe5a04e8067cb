package walletrules

import (
	"crypto/ed25519"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/token"
)

var (
	ErrInvalidProposalVoteType = errors.New("invalid proposal vote type")
)

// NameLookup resolves display names of accounts.
type NameLookup interface {
	Get(address ed25519.PublicKey) (string, bool)
}

// Snapshot is the rule set of a governance at one point of an edit.
type Snapshot struct {
	CommunityRules Rules
	CouncilRules   *Rules

	CoolOffHours               uint32
	BaseVoteDays               float64
	MaxVoteDays                float64
	DepositExemptProposalCount uint8
	MinInstructionHoldupDays   uint32
}

func (s Snapshot) clone() Snapshot {
	s.CouncilRules = s.CouncilRules.clone()
	return s
}

// Editor holds the draft of a wallet rules change from load to submission.
// The initial snapshot is only written by Load and is used to show what
// changed.
type Editor struct {
	log   *logrus.Entry
	names NameLookup

	mu sync.RWMutex

	governanceAddress ed25519.PublicKey
	step              Step

	proposalVoteType    ProposalVoteType
	proposalTitle       string
	proposalDescription string
	walletName          string
	walletAddress       ed25519.PublicKey

	current Snapshot
	initial Snapshot

	realm          *governance.ProgramAccount[governance.RealmAccount]
	programVersion uint8
}

// NewEditor returns an editor for the governance at governanceAddress seeded
// with default rules until Load is called.
func NewEditor(governanceAddress ed25519.PublicKey, names NameLookup) *Editor {
	defaults := Rules{
		CanCreateProposal: true,
		QuorumPercent:     1,
		TokenType:         TokenTypeCommunity,
		// Placeholder until the realm is loaded.
		TokenMintAddress:             governanceAddress,
		VetoQuorumPercent:            100,
		VoteTipping:                  governance.VoteTippingDisabled,
		VotingPowerToCreateProposals: sdkmath.LegacyOneDec(),
	}

	return &Editor{
		log:               logrus.StandardLogger().WithField("type", "governance/walletrules/editor"),
		names:             names,
		governanceAddress: governanceAddress,
		step:              StepForm,
		proposalVoteType:  ProposalVoteTypeCommunity,
		walletAddress:     make(ed25519.PublicKey, ed25519.PublicKeySize),
		current: Snapshot{
			CommunityRules: defaults,
			BaseVoteDays:   3,
			MaxVoteDays:    3,
		},
		initial: Snapshot{
			CommunityRules: defaults,
		},
		programVersion: governance.DefaultProgramVersion,
	}
}

// Load replaces both snapshots with the rules of the fetched governance. It
// does nothing and returns false until the governance and realm are both
// available. Mint decimals are applied when the mints are available.
func (e *Editor) Load(input *LoaderInput) (bool, error) {
	if input == nil || input.Governance == nil || input.Realm == nil {
		return false, nil
	}

	version := input.ProgramVersion
	if version == 0 {
		version = governance.DefaultProgramVersion
	}

	data, err := GetGovernanceRules(input.Realm.Owner, input.Governance, input.Realm, version)
	if err != nil {
		return false, err
	}

	if input.CommunityMint != nil {
		if err := shiftDecimals(&data.CommunityTokenRules, input.CommunityMint); err != nil {
			return false, err
		}
	}
	if data.CouncilTokenRules != nil && input.CouncilMint != nil {
		if err := shiftDecimals(data.CouncilTokenRules, input.CouncilMint); err != nil {
			return false, err
		}
	}

	if coolOff := input.Governance.Account.Config.VotingCoolOffTime; coolOff%secondsPerHour != 0 {
		e.log.WithFields(logrus.Fields{
			"governance":     base58.Encode(input.Governance.PublicKey),
			"cool_off_secs":  coolOff,
			"cool_off_hours": data.CoolOffHours,
		}).Warn("cool off time is not a whole number of hours, proposals will round it down")
	}

	baseVotingSeconds := float64(input.Governance.Account.Config.VotingBaseTime)
	coolOffSeconds := float64(data.CoolOffHours) * secondsPerHour
	maxVotingSeconds := baseVotingSeconds + coolOffSeconds

	loaded := Snapshot{
		CommunityRules:             data.CommunityTokenRules,
		CouncilRules:               data.CouncilTokenRules,
		CoolOffHours:               data.CoolOffHours,
		BaseVoteDays:               data.MaxVoteDays,
		MaxVoteDays:                maxVotingSeconds / secondsPerDay,
		DepositExemptProposalCount: data.DepositExemptProposalCount,
		MinInstructionHoldupDays:   data.MinInstructionHoldupDays,
	}

	voteType := ProposalVoteTypeCommunity
	if data.CouncilTokenRules != nil && !data.CommunityTokenRules.CanVote {
		voteType = ProposalVoteTypeCouncil
	}

	walletName := e.walletDisplayName(data.WalletAddress, data.GovernanceAddress)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = loaded
	e.initial = loaded.clone()
	e.proposalVoteType = voteType
	e.walletAddress = data.WalletAddress
	e.walletName = walletName
	e.proposalTitle = ProposalTitle(walletName)
	e.realm = input.Realm
	e.programVersion = version

	e.log.WithFields(logrus.Fields{
		"governance": base58.Encode(data.GovernanceAddress),
		"wallet":     base58.Encode(data.WalletAddress),
		"vote_type":  voteType,
	}).Debug("loaded wallet rules")

	return true, nil
}

func (e *Editor) walletDisplayName(wallet, governanceAddress ed25519.PublicKey) string {
	if e.names != nil {
		if name, ok := e.names.Get(wallet); ok {
			return name
		}
		if name, ok := e.names.Get(governanceAddress); ok {
			return name
		}
	}
	return base58.Encode(wallet)
}

// ProposalTitle is the default title of a proposal changing the rules of the
// named wallet.
func ProposalTitle(walletName string) string {
	return fmt.Sprintf("Update Wallet Rules for “%s”", walletName)
}

// shiftDecimals converts the voting power threshold of rules into whole
// units of mint.
func shiftDecimals(rules *Rules, mint *token.ProgramAccount[token.Mint]) error {
	shifted, err := token.ShiftDecimals(rules.VotingPowerToCreateProposals.TruncateInt(), mint.Account.Decimals)
	if err != nil {
		return errors.Wrapf(err, "mint %s", base58.Encode(mint.PublicKey))
	}
	rules.VotingPowerToCreateProposals = shifted
	return nil
}

// Loaded reports whether Load has populated the editor.
func (e *Editor) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.realm != nil
}

func (e *Editor) GovernanceAddress() ed25519.PublicKey {
	return e.governanceAddress
}

func (e *Editor) WalletAddress() ed25519.PublicKey {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.walletAddress
}

func (e *Editor) WalletName() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.walletName
}

func (e *Editor) ProgramVersion() uint8 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.programVersion
}

// Current returns a copy of the edited rules.
func (e *Editor) Current() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.clone()
}

// Initial returns a copy of the rules as loaded.
func (e *Editor) Initial() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initial.clone()
}

func (e *Editor) ProposalVoteType() ProposalVoteType {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.proposalVoteType
}

func (e *Editor) ProposalTitle() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.proposalTitle
}

func (e *Editor) ProposalDescription() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.proposalDescription
}

func (e *Editor) SetCommunityRules(rules Rules) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current.CommunityRules = rules
}

// SetCouncilRules replaces the council rules. Nil removes the council track
// from the draft.
func (e *Editor) SetCouncilRules(rules *Rules) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current.CouncilRules = rules.clone()
}

func (e *Editor) SetDepositExemptProposalCount(count uint8) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current.DepositExemptProposalCount = count
}

func (e *Editor) SetMinInstructionHoldupDays(days uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current.MinInstructionHoldupDays = days
}

func (e *Editor) SetProposalTitle(title string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.proposalTitle = title
}

func (e *Editor) SetProposalDescription(description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.proposalDescription = description
}

func (e *Editor) SetProposalVoteType(voteType ProposalVoteType) error {
	switch voteType {
	case ProposalVoteTypeCommunity, ProposalVoteTypeCouncil:
	default:
		return errors.Wrapf(ErrInvalidProposalVoteType, "%q", voteType)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.proposalVoteType = voteType
	return nil
}

// draft is a consistent copy of everything a submission reads.
type draft struct {
	current Snapshot
	initial Snapshot

	realm          *governance.ProgramAccount[governance.RealmAccount]
	programVersion uint8

	title       string
	description string
	voteType    ProposalVoteType
	wallet      ed25519.PublicKey
}

func (e *Editor) draft() draft {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return draft{
		current:        e.current.clone(),
		initial:        e.initial.clone(),
		realm:          e.realm,
		programVersion: e.programVersion,
		title:          e.proposalTitle,
		description:    e.proposalDescription,
		voteType:       e.proposalVoteType,
		wallet:         e.walletAddress,
	}
}
