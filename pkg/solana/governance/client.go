package governance

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("governance account not found")
)

// ProgramAccount is a decoded governance account along with its address and
// the program deployment that owns it.
type ProgramAccount[T any] struct {
	PublicKey ed25519.PublicKey
	Owner     ed25519.PublicKey
	Account   T
}

// Client reads spl-governance accounts through a Solana RPC endpoint.
type Client struct {
	log        *logrus.Entry
	sc         solana.Client
	commitment solana.Commitment
}

// NewClient creates a new Client.
func NewClient(sc solana.Client, commitment solana.Commitment) *Client {
	return &Client{
		log:        logrus.StandardLogger().WithField("type", "solana/governance/client"),
		sc:         sc,
		commitment: commitment,
	}
}

// GetRealm returns the realm at address. The owner of the returned account is
// the governance program deployment used by the realm.
func (c *Client) GetRealm(address ed25519.PublicKey) (*ProgramAccount[RealmAccount], error) {
	var realm RealmAccount
	owner, err := c.getAccount(address, &realm)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get realm")
	}

	return &ProgramAccount[RealmAccount]{PublicKey: address, Owner: owner, Account: realm}, nil
}

// GetGovernance returns the governance at address.
func (c *Client) GetGovernance(address ed25519.PublicKey) (*ProgramAccount[GovernanceAccount], error) {
	var governance GovernanceAccount
	owner, err := c.getAccount(address, &governance)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get governance")
	}

	return &ProgramAccount[GovernanceAccount]{PublicKey: address, Owner: owner, Account: governance}, nil
}

// GetTokenOwnerRecord returns the record of owner's deposit of mint into
// realm.
func (c *Client) GetTokenOwnerRecord(program, realm, mint, owner ed25519.PublicKey) (*ProgramAccount[TokenOwnerRecordAccount], error) {
	address, _, err := GetTokenOwnerRecordAddress(program, &GetTokenOwnerRecordAddressArgs{
		Realm:               realm,
		GoverningTokenMint:  mint,
		GoverningTokenOwner: owner,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive token owner record address")
	}

	var record TokenOwnerRecordAccount
	recordOwner, err := c.getAccount(address, &record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get token owner record")
	}

	return &ProgramAccount[TokenOwnerRecordAccount]{PublicKey: address, Owner: recordOwner, Account: record}, nil
}

// GetGovernances returns every governance of realm.
func (c *Client) GetGovernances(program, realm ed25519.PublicKey) ([]ProgramAccount[GovernanceAccount], error) {
	raw, err := c.sc.GetProgramAccounts(program, solana.ProgramAccountsFilter{MemcmpOffset: 1, MemcmpBytes: realm})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get governances")
	}

	var governances []ProgramAccount[GovernanceAccount]
	for _, keyed := range raw {
		// Realm-keyed accounts of other types share the same prefix.
		if len(keyed.Account.Data) == 0 || !AccountType(keyed.Account.Data[0]).isGovernanceV2() {
			continue
		}

		var governance GovernanceAccount
		if err := governance.Unmarshal(keyed.Account.Data); err != nil {
			return nil, errors.Wrapf(err, "invalid governance %s", base58.Encode(keyed.PublicKey))
		}

		governances = append(governances, ProgramAccount[GovernanceAccount]{
			PublicKey: keyed.PublicKey,
			Owner:     keyed.Account.Owner,
			Account:   governance,
		})
	}
	return governances, nil
}

// GetProgramVersion returns the major version of a governance deployment.
// Deployments without a metadata account, or with an unreadable one, are
// assumed to run DefaultProgramVersion.
func (c *Client) GetProgramVersion(program ed25519.PublicKey) (uint8, error) {
	address, _, err := GetProgramMetadataAddress(program)
	if err != nil {
		return 0, errors.Wrap(err, "failed to derive program metadata address")
	}

	var metadata ProgramMetadataAccount
	_, err = c.getAccount(address, &metadata)
	if err == ErrAccountNotFound {
		return DefaultProgramVersion, nil
	} else if errors.Is(err, ErrInvalidAccountData) || errors.Is(err, ErrInvalidAccountType) {
		c.log.WithError(err).WithField("program", base58.Encode(program)).Warn("unreadable program metadata")
		return DefaultProgramVersion, nil
	} else if err != nil {
		return 0, errors.Wrap(err, "failed to get program metadata")
	}

	version, err := metadata.MajorVersion()
	if err != nil {
		c.log.WithError(err).WithField("program", base58.Encode(program)).Warn("unreadable program version")
		return DefaultProgramVersion, nil
	}
	return version, nil
}

type unmarshaler interface {
	Unmarshal([]byte) error
}

func (c *Client) getAccount(address ed25519.PublicKey, dst unmarshaler) (ed25519.PublicKey, error) {
	info, err := c.sc.GetAccountInfo(address, c.commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, err
	}

	if err := dst.Unmarshal(info.Data); err != nil {
		return nil, errors.Wrapf(err, "account %s", base58.Encode(address))
	}
	return info.Owner, nil
}
