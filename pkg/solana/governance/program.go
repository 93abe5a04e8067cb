package governance

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

var (
	ErrInvalidAccountData     = errors.New("unexpected account data")
	ErrInvalidAccountType     = errors.New("unexpected governance account type")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
	ErrUnsupportedVersion     = errors.New("unsupported governance program version")
)

var (
	// PROGRAM_ID is the mainnet deployment of spl-governance. Realms may use
	// their own deployment, so callers pass the realm owner explicitly.
	PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw"))
)

var (
	SYSTEM_PROGRAM_ID  = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
	SYSVAR_RENT_PUBKEY = ed25519.PublicKey(mustBase58Decode("SysvarRent111111111111111111111111111111111"))
)

const (
	ProgramVersionV1 uint8 = 1
	ProgramVersionV2 uint8 = 2
	ProgramVersionV3 uint8 = 3

	// DefaultProgramVersion is assumed when a deployment has no metadata
	// account.
	DefaultProgramVersion = ProgramVersionV3
)

// DisabledVoterWeight is the minimum weight to create proposals that no
// voter can reach.
const DisabledVoterWeight uint64 = 1<<64 - 1

type AccountType uint8

const (
	AccountTypeUninitialized AccountType = iota
	AccountTypeRealmV1
	AccountTypeTokenOwnerRecordV1
	AccountTypeGovernanceV1
	AccountTypeProgramGovernanceV1
	AccountTypeProposalV1
	AccountTypeSignatoryRecordV1
	AccountTypeVoteRecordV1
	AccountTypeProposalInstructionV1
	AccountTypeMintGovernanceV1
	AccountTypeTokenGovernanceV1
	AccountTypeRealmConfig
	AccountTypeVoteRecordV2
	AccountTypeProposalTransactionV2
	AccountTypeProposalV2
	AccountTypeProgramMetadata
	AccountTypeRealmV2
	AccountTypeTokenOwnerRecordV2
	AccountTypeGovernanceV2
	AccountTypeProgramGovernanceV2
	AccountTypeMintGovernanceV2
	AccountTypeTokenGovernanceV2
	AccountTypeSignatoryRecordV2
	AccountTypeProposalDeposit
	AccountTypeRequiredSignatory
)

func (t AccountType) isGovernanceV2() bool {
	switch t {
	case AccountTypeGovernanceV2, AccountTypeProgramGovernanceV2, AccountTypeMintGovernanceV2, AccountTypeTokenGovernanceV2:
		return true
	}
	return false
}
