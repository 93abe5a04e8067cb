package walletrules

import (
	"bytes"
	"context"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/governance"
	"github.com/bhagyamudgal/governance-ui/pkg/solana/token"
)

var (
	ErrRealmMismatch = errors.New("governance belongs to another realm")
)

// LoaderInput is everything Load needs, fetched together.
type LoaderInput struct {
	Governance     *governance.ProgramAccount[governance.GovernanceAccount]
	Realm          *governance.ProgramAccount[governance.RealmAccount]
	CommunityMint  *token.ProgramAccount[token.Mint]
	CouncilMint    *token.ProgramAccount[token.Mint]
	ProgramVersion uint8
}

// Fetcher reads the accounts a wallet rules edit starts from.
type Fetcher struct {
	log        *logrus.Entry
	conf       *conf
	governance *governance.Client
	tokens     *token.Client
}

func NewFetcher(sc solana.Client, commitment solana.Commitment, configProvider ConfigProvider) *Fetcher {
	return &Fetcher{
		log:        logrus.StandardLogger().WithField("type", "governance/walletrules/fetcher"),
		conf:       configProvider(),
		governance: governance.NewClient(sc, commitment),
		tokens:     token.NewClient(sc),
	}
}

// Tokens returns the token client the fetcher reads mints with.
func (f *Fetcher) Tokens() *token.Client {
	return f.tokens
}

// Fetch reads the governance and its realm, then the realm's mints in one
// batch alongside the governance program version. Reads within a phase run
// concurrently and the result is only returned once every read completed.
//
// Missing mints are left nil, as Load can proceed without them.
func (f *Fetcher) Fetch(ctx context.Context, realmAddress, governanceAddress ed25519.PublicKey) (*LoaderInput, error) {
	ctx, cancel := context.WithTimeout(ctx, f.conf.fetchTimeout.Get(ctx))
	defer cancel()

	log := f.log.WithFields(logrus.Fields{
		"method":     "Fetch",
		"realm":      base58.Encode(realmAddress),
		"governance": base58.Encode(governanceAddress),
	})

	var input LoaderInput

	accounts, groupCtx := errgroup.WithContext(ctx)
	accounts.Go(func() error {
		if err := groupCtx.Err(); err != nil {
			return err
		}

		account, err := f.governance.GetGovernance(governanceAddress)
		if err != nil {
			return err
		}
		input.Governance = account
		return nil
	})
	accounts.Go(func() error {
		if err := groupCtx.Err(); err != nil {
			return err
		}

		realm, err := f.governance.GetRealm(realmAddress)
		if err != nil {
			return err
		}
		input.Realm = realm
		return nil
	})
	if err := accounts.Wait(); err != nil {
		log.WithError(err).Warn("failure fetching governance accounts")
		return nil, err
	}

	if !bytes.Equal(input.Governance.Account.Realm, realmAddress) {
		return nil, errors.Wrapf(ErrRealmMismatch, "governance realm is %s", base58.Encode(input.Governance.Account.Realm))
	}

	details, groupCtx := errgroup.WithContext(ctx)
	details.Go(func() error {
		if err := groupCtx.Err(); err != nil {
			return err
		}

		mintAddresses := []ed25519.PublicKey{input.Realm.Account.CommunityMint}
		if input.Realm.Account.HasCouncil() {
			mintAddresses = append(mintAddresses, input.Realm.Account.Config.CouncilMint)
		}

		mints := f.tokens.TryGetMints(mintAddresses...)
		input.CommunityMint = mints[0]
		if len(mints) > 1 {
			input.CouncilMint = mints[1]
		}
		return nil
	})
	details.Go(func() error {
		if err := groupCtx.Err(); err != nil {
			return err
		}

		version, err := f.governance.GetProgramVersion(input.Realm.Owner)
		if err != nil {
			return err
		}
		input.ProgramVersion = version
		return nil
	})
	if err := details.Wait(); err != nil {
		log.WithError(err).Warn("failure fetching realm details")
		return nil, err
	}

	return &input, nil
}
