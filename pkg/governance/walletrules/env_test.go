package walletrules

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/token"
	"github.com/bhagyamudgal/governance-ui/pkg/testutil"
)

type testEnv struct {
	ctx context.Context
	sc  *testutil.FakeSolanaClient

	program           ed25519.PublicKey
	realmAddress      ed25519.PublicKey
	governanceAddress ed25519.PublicKey
	communityMint     ed25519.PublicKey
	councilMint       ed25519.PublicKey

	realm      governance.RealmAccount
	governance governance.GovernanceAccount
}

// communityOnlyConfig allows community proposals from 1 whole token of a 6
// decimal mint, with a 1% quorum, 3 days of voting and no cool off.
func communityOnlyConfig() governance.GovernanceConfig {
	return governance.GovernanceConfig{
		CommunityVoteThreshold:             governance.NewYesVoteThreshold(1),
		MinCommunityWeightToCreateProposal: 1_000_000,
		MinTransactionHoldUpTime:           86400,
		VotingBaseTime:                     3 * 86400,
		CommunityVoteTipping:               governance.VoteTippingDisabled,
		CouncilVoteThreshold:               governance.NewDisabledVoteThreshold(),
		CouncilVetoVoteThreshold:           governance.NewDisabledVoteThreshold(),
		MinCouncilWeightToCreateProposal:   governance.DisabledVoterWeight,
		CouncilVoteTipping:                 governance.VoteTippingDisabled,
		CommunityVetoVoteThreshold:         governance.NewDisabledVoteThreshold(),
		VotingCoolOffTime:                  0,
		DepositExemptProposalCount:         10,
	}
}

// councilConfig hands voting to a council of whole tokens. The community
// can only veto.
func councilConfig() governance.GovernanceConfig {
	return governance.GovernanceConfig{
		CommunityVoteThreshold:             governance.NewDisabledVoteThreshold(),
		MinCommunityWeightToCreateProposal: governance.DisabledVoterWeight,
		MinTransactionHoldUpTime:           0,
		VotingBaseTime:                     2 * 86400,
		CommunityVoteTipping:               governance.VoteTippingStrict,
		CouncilVoteThreshold:               governance.NewYesVoteThreshold(50),
		CouncilVetoVoteThreshold:           governance.NewDisabledVoteThreshold(),
		MinCouncilWeightToCreateProposal:   1,
		CouncilVoteTipping:                 governance.VoteTippingEarly,
		CommunityVetoVoteThreshold:         governance.NewYesVoteThreshold(30),
		VotingCoolOffTime:                  12 * 3600,
		DepositExemptProposalCount:         0,
	}
}

func setupTestEnv(t *testing.T, config governance.GovernanceConfig, withCouncil bool) *testEnv {
	keys := testutil.GenerateSolanaKeys(t, 5)

	env := &testEnv{
		ctx:               context.Background(),
		sc:                testutil.NewFakeSolanaClient(),
		program:           keys[0],
		realmAddress:      keys[1],
		governanceAddress: keys[2],
		communityMint:     keys[3],
	}

	env.realm = governance.RealmAccount{
		AccountType:   governance.AccountTypeRealmV2,
		CommunityMint: env.communityMint,
		Config: governance.RealmConfig{
			CommunityMintMaxVoterWeightSource: governance.FullSupplyMaxVoterWeightSource(),
		},
		Name: "Grape",
	}
	if withCouncil {
		env.councilMint = keys[4]
		env.realm.Config.CouncilMint = env.councilMint
	}

	env.governance = governance.GovernanceAccount{
		AccountType:     governance.AccountTypeGovernanceV2,
		Realm:           env.realmAddress,
		GovernedAccount: keys[4],
		Config:          config,
	}

	env.sc.SetAccount(env.realmAddress, env.program, env.realm.Marshal())
	env.sc.SetAccount(env.governanceAddress, env.program, env.governance.Marshal())
	env.sc.SetAccount(env.communityMint, token.ProgramKey, (&token.Mint{Decimals: 6, IsInitialized: true, Supply: 1_000_000_000}).Marshal())
	if withCouncil {
		env.sc.SetAccount(env.councilMint, token.ProgramKey, (&token.Mint{Decimals: 0, IsInitialized: true, Supply: 5}).Marshal())
	}

	return env
}

func (e *testEnv) realmAccount() *governance.ProgramAccount[governance.RealmAccount] {
	return &governance.ProgramAccount[governance.RealmAccount]{
		PublicKey: e.realmAddress,
		Owner:     e.program,
		Account:   e.realm,
	}
}

func (e *testEnv) governanceAccount() *governance.ProgramAccount[governance.GovernanceAccount] {
	return &governance.ProgramAccount[governance.GovernanceAccount]{
		PublicKey: e.governanceAddress,
		Owner:     e.program,
		Account:   e.governance,
	}
}

func (e *testEnv) loaderInput() *LoaderInput {
	input := &LoaderInput{
		Governance:     e.governanceAccount(),
		Realm:          e.realmAccount(),
		CommunityMint:  &token.ProgramAccount[token.Mint]{PublicKey: e.communityMint, Account: token.Mint{Decimals: 6}},
		ProgramVersion: governance.ProgramVersionV3,
	}
	if e.realm.HasCouncil() {
		input.CouncilMint = &token.ProgramAccount[token.Mint]{PublicKey: e.councilMint, Account: token.Mint{Decimals: 0}}
	}
	return input
}

// loadedEditor returns an editor loaded from the environment.
func (e *testEnv) loadedEditor(t *testing.T, names NameLookup) *Editor {
	editor := NewEditor(e.governanceAddress, names)
	loaded, err := editor.Load(e.loaderInput())
	require.NoError(t, err)
	require.True(t, loaded)
	return editor
}
