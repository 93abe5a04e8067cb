package governance

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const governanceReservedV2Size = 119

type GovernanceAccount struct {
	AccountType     AccountType
	Realm           ed25519.PublicKey
	GovernedAccount ed25519.PublicKey
	Config          GovernanceConfig

	RequiredSignatoriesCount uint8
	ActiveProposalCount      uint64
}

func (obj *GovernanceAccount) Marshal() []byte {
	data := make([]byte, 1+32+32+4+obj.Config.Size()+governanceReservedV2Size+1+8)

	var offset int
	accountType := obj.AccountType
	if !accountType.isGovernanceV2() {
		accountType = AccountTypeGovernanceV2
	}
	putUint8(data, uint8(accountType), &offset)
	putKey(data, obj.Realm, &offset)
	putKey(data, obj.GovernedAccount, &offset)
	offset += 4 // reserved
	putGovernanceConfig(data, &obj.Config, &offset)
	offset += governanceReservedV2Size
	putUint8(data, obj.RequiredSignatoriesCount, &offset)
	putUint64(data, obj.ActiveProposalCount, &offset)

	return data
}

func (obj *GovernanceAccount) Unmarshal(data []byte) error {
	if len(data) < 1+32+32+4 {
		return ErrInvalidAccountData
	}

	var offset int
	var accountType uint8
	getUint8(data, &accountType, &offset)
	obj.AccountType = AccountType(accountType)
	if !obj.AccountType.isGovernanceV2() {
		return errors.Wrapf(ErrInvalidAccountType, "expected governance, got %d", accountType)
	}

	getKey(data, &obj.Realm, &offset)
	getKey(data, &obj.GovernedAccount, &offset)
	offset += 4 // reserved
	if err := getGovernanceConfig(data, &obj.Config, &offset); err != nil {
		return err
	}

	// Accounts created before v3 end after the config.
	if checkRemaining(data, offset, governanceReservedV2Size+1+8) == nil {
		offset += governanceReservedV2Size
		getUint8(data, &obj.RequiredSignatoriesCount, &offset)
		getUint64(data, &obj.ActiveProposalCount, &offset)
	}

	return nil
}

func (obj *GovernanceAccount) String() string {
	return fmt.Sprintf(
		"Governance{realm=%s,governed_account=%s,config=%s,required_signatories_count=%d,active_proposal_count=%d}",
		base58.Encode(obj.Realm),
		base58.Encode(obj.GovernedAccount),
		obj.Config.String(),
		obj.RequiredSignatoriesCount,
		obj.ActiveProposalCount,
	)
}
