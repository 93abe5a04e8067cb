package walletrules

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	assert.Equal(t, 1, StepForm.Number())
	assert.Equal(t, 2, StepSummary.Number())
	assert.Equal(t, "Edit Wallet Rules", StepForm.Name())
	assert.Equal(t, "Create Proposal", StepSummary.Name())
	assert.Equal(t, StepCount, StepSummary.Number())
}

func TestEditor_Navigation(t *testing.T) {
	env := setupTestEnv(t, communityOnlyConfig(), false)
	editor := env.loadedEditor(t, nil)

	assert.False(t, editor.Back())
	assert.Equal(t, StepForm, editor.Step())

	assert.True(t, editor.Continue())
	assert.Equal(t, StepSummary, editor.Step())
	assert.False(t, editor.Continue())

	assert.True(t, editor.Back())
	assert.Equal(t, StepForm, editor.Step())
}

func TestEditor_Summary_Unchanged(t *testing.T) {
	env := setupTestEnv(t, councilConfig(), true)
	editor := env.loadedEditor(t, nil)

	assert.Empty(t, editor.Summary())
}

func TestEditor_Summary(t *testing.T) {
	env := setupTestEnv(t, communityOnlyConfig(), false)
	editor := env.loadedEditor(t, nil)

	editor.SetCoolOffHours(24)

	community := editor.Current().CommunityRules
	community.QuorumPercent = 5
	community.VotingPowerToCreateProposals = sdkmath.LegacyMustNewDecFromStr("1500.25")
	editor.SetCommunityRules(community)

	editor.SetCouncilRules(&Rules{
		CanCreateProposal:            true,
		CanVote:                      true,
		QuorumPercent:                60,
		VetoQuorumPercent:            60,
		TokenType:                    TokenTypeCouncil,
		VotingPowerToCreateProposals: sdkmath.LegacyOneDec(),
	})

	changes := editor.Summary()
	require.Len(t, changes, 5)
	assert.Equal(t, Change{Section: "Voting", Field: "Base voting time", Initial: "3 days", Current: "2 days"}, changes[0])
	assert.Equal(t, Change{Section: "Voting", Field: "Cool-off time", Initial: "0 hours", Current: "24 hours"}, changes[1])
	assert.Equal(t, Change{Section: "Community", Field: "Approval quorum", Initial: "1%", Current: "5%"}, changes[2])
	assert.Equal(t, Change{Section: "Community", Field: "Voting power to create proposals", Initial: "1", Current: "1,500.25"}, changes[3])
	assert.Equal(t, Change{Section: "Council", Field: "Track", Initial: "None", Current: "Enabled"}, changes[4])

	assert.Equal(t, "Voting / Cool-off time: 0 hours -> 24 hours", changes[1].String())
}

func TestEditor_Summary_CouncilRemoved(t *testing.T) {
	env := setupTestEnv(t, councilConfig(), true)
	editor := env.loadedEditor(t, nil)

	editor.SetCouncilRules(nil)

	changes := editor.Summary()
	require.Len(t, changes, 1)
	assert.Equal(t, Change{Section: "Council", Field: "Track", Initial: "Enabled", Current: "None"}, changes[0])
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "1 day", formatDays(1))
	assert.Equal(t, "2.5 days", formatDays(2.5))
	assert.Equal(t, "1 hour", formatHours(1))
	assert.Equal(t, "0 hours", formatHours(0))
	assert.Equal(t, "Yes", formatBool(true))
	assert.Equal(t, "No", formatBool(false))
	assert.Equal(t, "0", formatPower(sdkmath.LegacyDec{}))
}
