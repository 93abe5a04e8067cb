package accountname

import (
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	ErrInvalidAddress = errors.New("invalid account address")
	ErrEmptyName      = errors.New("account name is empty")
)

// wellKnown are names shown for accounts every realm may interact with.
var wellKnown = map[string]string{
	"11111111111111111111111111111111":             "System Program",
	"TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA":  "Token Program",
	"ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL": "Associated Token Program",
	"BPFLoaderUpgradeab1e11111111111111111111111":  "BPF Upgradeable Loader",
	"GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw": "Governance Program",
	"SysvarRent111111111111111111111111111111111":  "Sysvar: Rent",
	"SysvarC1ock11111111111111111111111111111111":  "Sysvar: Clock",
	"So11111111111111111111111111111111111111112":  "Wrapped SOL",
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": "USDC",
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": "USDT",
}

// Entry is a named account as written in a registry file.
type Entry struct {
	Address string `mapstructure:"address"`
	Name    string `mapstructure:"name"`
}

// Registry maps account addresses to display names.
type Registry struct {
	log *logrus.Entry

	mu    sync.RWMutex
	names map[string]string
}

// New returns a registry holding the well-known accounts.
func New() *Registry {
	r := &Registry{
		log:   logrus.StandardLogger().WithField("type", "governance/accountname"),
		names: make(map[string]string, len(wellKnown)),
	}
	for address, name := range wellKnown {
		r.names[address] = name
	}
	return r
}

// Get returns the display name of address, if it has one.
func (r *Registry) Get(address ed25519.PublicKey) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.names[base58.Encode(address)]
	return name, ok
}

// Set names the account at a base58 address, replacing any existing name.
func (r *Registry) Set(address, name string) error {
	decoded, err := base58.Decode(address)
	if err != nil || len(decoded) != ed25519.PublicKeySize {
		return errors.Wrapf(ErrInvalidAddress, "%q", address)
	}
	if name == "" {
		return errors.Wrapf(ErrEmptyName, "%s", address)
	}

	r.mu.Lock()
	r.names[address] = name
	r.mu.Unlock()
	return nil
}

// Len returns the number of named accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// LoadFile adds the accounts listed under the "accounts" key of a YAML, JSON
// or TOML file. Addresses are listed as entries rather than map keys since
// viper lower cases keys.
func (r *Registry) LoadFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read account names from %s", path)
	}

	var entries []Entry
	if err := v.UnmarshalKey("accounts", &entries); err != nil {
		return errors.Wrapf(err, "failed to decode account names from %s", path)
	}

	for _, entry := range entries {
		if err := r.Set(entry.Address, entry.Name); err != nil {
			return err
		}
	}

	r.log.WithFields(logrus.Fields{
		"path":    path,
		"entries": len(entries),
	}).Debug("loaded account names")
	return nil
}
