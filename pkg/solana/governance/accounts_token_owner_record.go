package governance

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	tokenOwnerRecordReservedSize   = 6
	tokenOwnerRecordReservedV2Size = 128
)

// TokenOwnerRecordAccount tracks the governing tokens a wallet deposited into
// a realm for one mint.
type TokenOwnerRecordAccount struct {
	Realm                       ed25519.PublicKey
	GoverningTokenMint          ed25519.PublicKey
	GoverningTokenOwner         ed25519.PublicKey
	GoverningTokenDepositAmount uint64
	UnrelinquishedVotesCount    uint64
	OutstandingProposalCount    uint8
	Version                     uint8
	GovernanceDelegate          ed25519.PublicKey
}

func (obj *TokenOwnerRecordAccount) Marshal() []byte {
	data := make([]byte, 1+32+32+32+8+8+1+1+tokenOwnerRecordReservedSize+optionalKeySize(obj.GovernanceDelegate)+tokenOwnerRecordReservedV2Size)

	var offset int
	putUint8(data, uint8(AccountTypeTokenOwnerRecordV2), &offset)
	putKey(data, obj.Realm, &offset)
	putKey(data, obj.GoverningTokenMint, &offset)
	putKey(data, obj.GoverningTokenOwner, &offset)
	putUint64(data, obj.GoverningTokenDepositAmount, &offset)
	putUint64(data, obj.UnrelinquishedVotesCount, &offset)
	putUint8(data, obj.OutstandingProposalCount, &offset)
	putUint8(data, obj.Version, &offset)
	offset += tokenOwnerRecordReservedSize
	putOptionalKey(data, obj.GovernanceDelegate, &offset)

	return data
}

func (obj *TokenOwnerRecordAccount) Unmarshal(data []byte) error {
	if len(data) < 1+32+32+32+8+8+1+1+tokenOwnerRecordReservedSize {
		return ErrInvalidAccountData
	}

	var offset int
	var accountType uint8
	getUint8(data, &accountType, &offset)
	if AccountType(accountType) != AccountTypeTokenOwnerRecordV2 {
		return errors.Wrapf(ErrInvalidAccountType, "expected token owner record, got %d", accountType)
	}

	getKey(data, &obj.Realm, &offset)
	getKey(data, &obj.GoverningTokenMint, &offset)
	getKey(data, &obj.GoverningTokenOwner, &offset)
	getUint64(data, &obj.GoverningTokenDepositAmount, &offset)
	getUint64(data, &obj.UnrelinquishedVotesCount, &offset)
	getUint8(data, &obj.OutstandingProposalCount, &offset)
	getUint8(data, &obj.Version, &offset)
	offset += tokenOwnerRecordReservedSize

	return getOptionalKey(data, &obj.GovernanceDelegate, &offset)
}

func (obj *TokenOwnerRecordAccount) String() string {
	return fmt.Sprintf(
		"TokenOwnerRecord{realm=%s,governing_token_mint=%s,governing_token_owner=%s,deposit_amount=%d,outstanding_proposal_count=%d}",
		base58.Encode(obj.Realm),
		base58.Encode(obj.GoverningTokenMint),
		base58.Encode(obj.GoverningTokenOwner),
		obj.GoverningTokenDepositAmount,
		obj.OutstandingProposalCount,
	)
}
