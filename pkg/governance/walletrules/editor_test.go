package walletrules

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyamudgal/governance-ui/pkg/governance/accountname"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/token"
)

func TestEditor_Defaults(t *testing.T) {
	env := setupTestEnv(t, communityOnlyConfig(), false)
	editor := NewEditor(env.governanceAddress, nil)

	assert.False(t, editor.Loaded())
	assert.Equal(t, StepForm, editor.Step())
	assert.Equal(t, ProposalVoteTypeCommunity, editor.ProposalVoteType())
	assert.Equal(t, governance.DefaultProgramVersion, editor.ProgramVersion())
	assert.Equal(t, make([]byte, 32), []byte(editor.WalletAddress()))

	current := editor.Current()
	assert.Nil(t, current.CouncilRules)
	assert.Equal(t, 3.0, current.BaseVoteDays)
	assert.Equal(t, 3.0, current.MaxVoteDays)
	assert.EqualValues(t, 1, current.CommunityRules.QuorumPercent)
	assert.EqualValues(t, 100, current.CommunityRules.VetoQuorumPercent)
	assert.True(t, current.CommunityRules.CanCreateProposal)
	assert.True(t, sdkmath.LegacyOneDec().Equal(current.CommunityRules.VotingPowerToCreateProposals))
}

func TestEditor_Load_WaitsForAccounts(t *testing.T) {
	env := setupTestEnv(t, communityOnlyConfig(), false)
	editor := NewEditor(env.governanceAddress, nil)
	before := editor.Current()

	for _, input := range []*LoaderInput{
		nil,
		{Realm: env.realmAccount()},
		{Governance: env.governanceAccount()},
	} {
		loaded, err := editor.Load(input)
		require.NoError(t, err)
		assert.False(t, loaded)
	}

	assert.False(t, editor.Loaded())
	assert.Equal(t, before, editor.Current())
}

func TestEditor_Load_CommunityOnly(t *testing.T) {
	env := setupTestEnv(t, communityOnlyConfig(), false)
	editor := env.loadedEditor(t, nil)

	assert.True(t, editor.Loaded())
	assert.Equal(t, ProposalVoteTypeCommunity, editor.ProposalVoteType())

	current := editor.Current()
	assert.Equal(t, current, editor.Initial())
	assert.Nil(t, current.CouncilRules)
	assert.Equal(t, 3.0, current.BaseVoteDays)
	assert.Equal(t, 3.0, current.MaxVoteDays)
	assert.EqualValues(t, 0, current.CoolOffHours)
	assert.EqualValues(t, 1, current.MinInstructionHoldupDays)
	assert.EqualValues(t, 10, current.DepositExemptProposalCount)

	// 1,000,000 natural units of a 6 decimal mint
	assert.True(t, sdkmath.LegacyOneDec().Equal(current.CommunityRules.VotingPowerToCreateProposals))

	wallet := base58.Encode(editor.WalletAddress())
	assert.Equal(t, wallet, editor.WalletName())
	assert.Equal(t, "Update Wallet Rules for “"+wallet+"”", editor.ProposalTitle())
}

func TestEditor_Load_MaxIncludesCoolOff(t *testing.T) {
	env := setupTestEnv(t, councilConfig(), true)
	editor := env.loadedEditor(t, nil)

	current := editor.Current()
	assert.Equal(t, 2.0, current.BaseVoteDays)
	assert.Equal(t, 2.5, current.MaxVoteDays)
	assert.EqualValues(t, 12, current.CoolOffHours)
}

func TestEditor_Load_CouncilVotes(t *testing.T) {
	env := setupTestEnv(t, councilConfig(), true)
	editor := env.loadedEditor(t, nil)

	assert.Equal(t, ProposalVoteTypeCouncil, editor.ProposalVoteType())

	current := editor.Current()
	require.NotNil(t, current.CouncilRules)
	assert.True(t, sdkmath.LegacyOneDec().Equal(current.CouncilRules.VotingPowerToCreateProposals))
}

func TestEditor_Load_CommunityVotesWithCouncil(t *testing.T) {
	config := councilConfig()
	config.CommunityVoteThreshold = governance.NewYesVoteThreshold(10)

	env := setupTestEnv(t, config, true)
	editor := env.loadedEditor(t, nil)

	assert.Equal(t, ProposalVoteTypeCommunity, editor.ProposalVoteType())
}

func TestEditor_Load_WithoutMints(t *testing.T) {
	env := setupTestEnv(t, communityOnlyConfig(), false)

	input := env.loaderInput()
	input.CommunityMint = nil
	input.ProgramVersion = 0

	editor := NewEditor(env.governanceAddress, nil)
	loaded, err := editor.Load(input)
	require.NoError(t, err)
	require.True(t, loaded)

	assert.True(t, sdkmath.LegacyNewDec(1_000_000).Equal(editor.Current().CommunityRules.VotingPowerToCreateProposals))
	assert.Equal(t, governance.ProgramVersionV3, editor.ProgramVersion())
}

func TestEditor_Load_WalletName(t *testing.T) {
	env := setupTestEnv(t, communityOnlyConfig(), false)
	names := accountname.New()

	require.NoError(t, names.Set(base58.Encode(env.governanceAddress), "Governance"))
	editor := env.loadedEditor(t, names)
	assert.Equal(t, "Governance", editor.WalletName())

	require.NoError(t, names.Set(base58.Encode(editor.WalletAddress()), "Treasury"))
	editor = env.loadedEditor(t, names)
	assert.Equal(t, "Treasury", editor.WalletName())
	assert.Equal(t, "Update Wallet Rules for “Treasury”", editor.ProposalTitle())
}

func TestEditor_Setters(t *testing.T) {
	env := setupTestEnv(t, councilConfig(), true)
	editor := env.loadedEditor(t, nil)

	community := editor.Current().CommunityRules
	community.QuorumPercent = 20
	community.CanVote = true
	editor.SetCommunityRules(community)

	editor.SetCouncilRules(nil)
	editor.SetDepositExemptProposalCount(3)
	editor.SetMinInstructionHoldupDays(2)
	editor.SetProposalTitle("title")
	editor.SetProposalDescription("description")
	require.NoError(t, editor.SetProposalVoteType(ProposalVoteTypeCommunity))
	assert.ErrorIs(t, editor.SetProposalVoteType("multisig"), ErrInvalidProposalVoteType)

	current := editor.Current()
	assert.EqualValues(t, 20, current.CommunityRules.QuorumPercent)
	assert.True(t, current.CommunityRules.CanVote)
	assert.Nil(t, current.CouncilRules)
	assert.EqualValues(t, 3, current.DepositExemptProposalCount)
	assert.EqualValues(t, 2, current.MinInstructionHoldupDays)
	assert.Equal(t, "title", editor.ProposalTitle())
	assert.Equal(t, "description", editor.ProposalDescription())
	assert.Equal(t, ProposalVoteTypeCommunity, editor.ProposalVoteType())

	initial := editor.Initial()
	assert.EqualValues(t, disabledQuorumPercent, initial.CommunityRules.QuorumPercent)
	assert.NotNil(t, initial.CouncilRules)
	assert.EqualValues(t, 0, initial.DepositExemptProposalCount)
}

func TestEditor_SnapshotsAreCopies(t *testing.T) {
	env := setupTestEnv(t, councilConfig(), true)
	editor := env.loadedEditor(t, nil)

	current := editor.Current()
	current.CouncilRules.QuorumPercent = 99
	assert.EqualValues(t, 50, editor.Current().CouncilRules.QuorumPercent)

	council := *editor.Current().CouncilRules
	council.QuorumPercent = 75
	editor.SetCouncilRules(&council)
	council.QuorumPercent = 80
	assert.EqualValues(t, 75, editor.Current().CouncilRules.QuorumPercent)
	assert.EqualValues(t, 50, editor.Initial().CouncilRules.QuorumPercent)
}

func TestEditor_Load_Idempotent(t *testing.T) {
	env := setupTestEnv(t, councilConfig(), true)
	editor := env.loadedEditor(t, nil)
	first := editor.Current()

	community := first.CommunityRules
	community.QuorumPercent = 42
	editor.SetCommunityRules(community)
	editor.SetCouncilRules(nil)
	editor.SetCoolOffHours(36)
	editor.SetMaxVoteDays(5)
	editor.SetDepositExemptProposalCount(7)
	require.NoError(t, editor.SetProposalVoteType(ProposalVoteTypeCommunity))

	loaded, err := editor.Load(env.loaderInput())
	require.NoError(t, err)
	require.True(t, loaded)

	assertSameSnapshot(t, first, editor.Current())
	assertSameSnapshot(t, first, editor.Initial())
	assertSameSnapshot(t, env.loadedEditor(t, nil).Current(), editor.Current())
	assert.Equal(t, ProposalVoteTypeCouncil, editor.ProposalVoteType())
}

func TestEditor_Load_UnsupportedDecimals(t *testing.T) {
	for _, decimals := range []uint8{token.MaxDecimals + 1, 24, 100, 255} {
		env := setupTestEnv(t, councilConfig(), true)

		input := env.loaderInput()
		input.CouncilMint.Account.Decimals = decimals

		editor := NewEditor(env.governanceAddress, nil)
		loaded, err := editor.Load(input)
		assert.ErrorIs(t, err, token.ErrUnsupportedDecimals, "decimals=%d", decimals)
		assert.False(t, loaded)
		assert.False(t, editor.Loaded())
	}

	env := setupTestEnv(t, communityOnlyConfig(), false)
	input := env.loaderInput()
	input.CommunityMint.Account.Decimals = token.MaxDecimals

	editor := NewEditor(env.governanceAddress, nil)
	loaded, err := editor.Load(input)
	require.NoError(t, err)
	require.True(t, loaded)
	assert.True(t, editor.Loaded())
}

func TestEditor_Load_FractionalCoolOff(t *testing.T) {
	config := councilConfig()
	config.VotingCoolOffTime = 5400

	env := setupTestEnv(t, config, true)

	logger, hook := logtest.NewNullLogger()
	editor := NewEditor(env.governanceAddress, nil)
	editor.log = logrus.NewEntry(logger)

	loaded, err := editor.Load(env.loaderInput())
	require.NoError(t, err)
	require.True(t, loaded)
	assert.EqualValues(t, 1, editor.Current().CoolOffHours)

	warning := hook.LastEntry()
	require.NotNil(t, warning)
	assert.Equal(t, logrus.WarnLevel, warning.Level)
	assert.EqualValues(t, 5400, warning.Data["cool_off_secs"])

	hook.Reset()
	env = setupTestEnv(t, councilConfig(), true)
	editor = NewEditor(env.governanceAddress, nil)
	editor.log = logrus.NewEntry(logger)

	_, err = editor.Load(env.loaderInput())
	require.NoError(t, err)
	for _, entry := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, entry.Level)
	}
}

func assertSameSnapshot(t *testing.T, expected, actual Snapshot) {
	t.Helper()

	assert.True(t, expected.CommunityRules.Equal(actual.CommunityRules))
	if expected.CouncilRules == nil {
		assert.Nil(t, actual.CouncilRules)
	} else {
		require.NotNil(t, actual.CouncilRules)
		assert.True(t, expected.CouncilRules.Equal(*actual.CouncilRules))
	}
	assert.Equal(t, expected.CoolOffHours, actual.CoolOffHours)
	assert.Equal(t, expected.BaseVoteDays, actual.BaseVoteDays)
	assert.Equal(t, expected.MaxVoteDays, actual.MaxVoteDays)
	assert.Equal(t, expected.DepositExemptProposalCount, actual.DepositExemptProposalCount)
	assert.Equal(t, expected.MinInstructionHoldupDays, actual.MinInstructionHoldupDays)
}
