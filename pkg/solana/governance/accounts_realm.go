package governance

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	realmReservedSize   = 6
	realmReservedV2Size = 128
)

// RealmConfig is the realm wide configuration of community and council
// tokens.
type RealmConfig struct {
	MinCommunityWeightToCreateGovernance uint64
	CommunityMintMaxVoterWeightSource    MintMaxVoterWeightSource
	// CouncilMint is nil when the realm has no council.
	CouncilMint ed25519.PublicKey
}

type RealmAccount struct {
	AccountType   AccountType
	CommunityMint ed25519.PublicKey
	Config        RealmConfig
	Authority     ed25519.PublicKey
	Name          string
}

func (obj *RealmAccount) HasCouncil() bool {
	return len(obj.Config.CouncilMint) > 0
}

func (obj *RealmAccount) Marshal() []byte {
	size := 1 + // account_type
		32 + // community_mint
		1 + 1 + realmReservedSize + // legacy fields and reserved
		8 + // min_community_weight_to_create_governance
		mintMaxVoterWeightSourceSize +
		optionalKeySize(obj.Config.CouncilMint) +
		realmReservedSize +
		2 + // legacy1
		optionalKeySize(obj.Authority) +
		stringSize(obj.Name) +
		realmReservedV2Size

	data := make([]byte, size)

	var offset int
	putUint8(data, uint8(AccountTypeRealmV2), &offset)
	putKey(data, obj.CommunityMint, &offset)
	offset += 1 + 1 + realmReservedSize
	putUint64(data, obj.Config.MinCommunityWeightToCreateGovernance, &offset)
	putMintMaxVoterWeightSource(data, obj.Config.CommunityMintMaxVoterWeightSource, &offset)
	putOptionalKey(data, obj.Config.CouncilMint, &offset)
	offset += realmReservedSize + 2
	putOptionalKey(data, obj.Authority, &offset)
	putString(data, obj.Name, &offset)

	return data
}

func (obj *RealmAccount) Unmarshal(data []byte) error {
	if len(data) < 1+32+1+1+realmReservedSize+8 {
		return ErrInvalidAccountData
	}

	var offset int
	var accountType uint8
	getUint8(data, &accountType, &offset)
	obj.AccountType = AccountType(accountType)
	if obj.AccountType != AccountTypeRealmV2 {
		return errors.Wrapf(ErrInvalidAccountType, "expected realm, got %d", accountType)
	}

	getKey(data, &obj.CommunityMint, &offset)
	offset += 1 + 1 + realmReservedSize
	getUint64(data, &obj.Config.MinCommunityWeightToCreateGovernance, &offset)
	if err := getMintMaxVoterWeightSource(data, &obj.Config.CommunityMintMaxVoterWeightSource, &offset); err != nil {
		return err
	}
	if err := getOptionalKey(data, &obj.Config.CouncilMint, &offset); err != nil {
		return err
	}

	offset += realmReservedSize + 2
	if err := getOptionalKey(data, &obj.Authority, &offset); err != nil {
		return err
	}
	return getString(data, &obj.Name, &offset)
}

func (obj *RealmAccount) String() string {
	councilMint := "none"
	if obj.HasCouncil() {
		councilMint = base58.Encode(obj.Config.CouncilMint)
	}
	authority := "none"
	if len(obj.Authority) > 0 {
		authority = base58.Encode(obj.Authority)
	}

	return fmt.Sprintf(
		"Realm{name=%s,community_mint=%s,council_mint=%s,authority=%s,max_voter_weight_source=%s}",
		obj.Name,
		base58.Encode(obj.CommunityMint),
		councilMint,
		authority,
		obj.Config.CommunityMintMaxVoterWeightSource,
	)
}
