package main

import (
	"crypto/ed25519"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bhagyamudgal/governance-ui/pkg/governance/accountname"
	"github.com/bhagyamudgal/governance-ui/pkg/governance/walletrules"
	"github.com/bhagyamudgal/governance-ui/pkg/metrics"
	"github.com/bhagyamudgal/governance-ui/pkg/solana"
)

const (
	flagConfig          = "config"
	flagRPC             = "rpc"
	flagRPCRate         = "rpc-rate"
	flagCluster         = "cluster"
	flagLogLevel        = "log-level"
	flagLogJSON         = "log-json"
	flagAccountNames    = "account-names"
	flagRealm           = "realm"
	flagGovernance      = "governance"
	flagNewRelicLicense = "newrelic-license"

	envPrefix = "GOVERNANCE"

	newRelicShutdownTimeout = 10 * time.Second
)

// app is the state shared by all commands once flags and config are read.
type app struct {
	v   *viper.Viper
	log *logrus.Entry

	cluster  solana.Cluster
	sc       solana.Client
	names    *accountname.Registry
	newRelic *newrelic.Application
}

func newApp() *app {
	return &app{
		v:   viper.New(),
		log: logrus.StandardLogger().WithField("type", "cmd/walletrules"),
	}
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               binaryName,
		Short:             "Inspect and propose changes to the rules of a governance wallet",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}

	flags := cmd.PersistentFlags()
	flags.String(flagConfig, "", "Config file (yaml, json or toml)")
	flags.String(flagRPC, "", "Solana RPC endpoint, defaults to the public endpoint of the cluster")
	flags.Float64(flagRPCRate, 0, "Max RPC requests per second, 0 for no limit")
	flags.String(flagCluster, string(solana.ClusterMainnet), "Solana cluster: mainnet, devnet or testnet")
	flags.String(flagLogLevel, "info", "Log level")
	flags.Bool(flagLogJSON, false, "Log as JSON")
	flags.String(flagAccountNames, "", "File with additional account display names")
	flags.String(flagRealm, "", "Realm address")
	flags.String(flagGovernance, "", "Governance address")
	flags.String(flagNewRelicLicense, "", "New Relic license key, enables reporting when set")

	cmd.AddCommand(newShowCmd(a), newProposeCmd(a))
	return cmd
}

// setup reads the config file, then lets the environment and flags override
// it, in that order of precedence.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString(flagConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrap(err, "failed to read config")
		}
	}

	if err := a.setupLogging(); err != nil {
		return err
	}

	if license := a.v.GetString(flagNewRelicLicense); license != "" {
		nr, err := newrelic.NewApplication(
			newrelic.ConfigAppName(binaryName),
			newrelic.ConfigLicense(license),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			return errors.Wrap(err, "failed to start new relic")
		}
		a.newRelic = nr

		logrus.SetFormatter(metrics.NewLogFormatter(nr, logrus.StandardLogger().Formatter))
		cmd.SetContext(metrics.NewContext(cmd.Context(), nr))
	}

	cluster, err := solana.ParseCluster(a.v.GetString(flagCluster))
	if err != nil {
		return err
	}
	a.cluster = cluster

	endpoint := a.v.GetString(flagRPC)
	if endpoint == "" {
		endpoint = string(cluster.Environment())
	}
	a.sc = solana.NewRateLimited(endpoint, a.v.GetFloat64(flagRPCRate))

	a.names = accountname.New()
	if path := a.v.GetString(flagAccountNames); path != "" {
		if err := a.names.LoadFile(path); err != nil {
			return err
		}
	}

	a.log.WithFields(logrus.Fields{
		"cluster":  cluster,
		"endpoint": endpoint,
		"names":    a.names.Len(),
	}).Debug("configured")
	return nil
}

func (a *app) setupLogging() error {
	level, err := logrus.ParseLevel(a.v.GetString(flagLogLevel))
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	if a.v.GetBool(flagLogJSON) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func (a *app) teardown(_ *cobra.Command, _ []string) {
	if a.newRelic != nil {
		a.newRelic.Shutdown(newRelicShutdownTimeout)
	}
}

// load fetches the governance named by the flags and returns an editor
// loaded with its rules.
func (a *app) load(cmd *cobra.Command) (*walletrules.Editor, *walletrules.Fetcher, error) {
	realm, err := a.address(flagRealm)
	if err != nil {
		return nil, nil, err
	}
	governanceAddress, err := a.address(flagGovernance)
	if err != nil {
		return nil, nil, err
	}

	fetcher := walletrules.NewFetcher(a.sc, solana.CommitmentConfirmed, walletrules.WithFileConfigs(a.v))
	input, err := fetcher.Fetch(cmd.Context(), realm, governanceAddress)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to fetch governance")
	}

	editor := walletrules.NewEditor(governanceAddress, a.names)
	loaded, err := editor.Load(input)
	if err != nil {
		return nil, nil, err
	} else if !loaded {
		return nil, nil, errors.New("governance or realm unavailable")
	}
	return editor, fetcher, nil
}

func (a *app) address(flag string) (ed25519.PublicKey, error) {
	value := a.v.GetString(flag)
	if value == "" {
		return nil, errors.Errorf("--%s is required", flag)
	}

	decoded, err := base58.Decode(value)
	if err != nil || len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("--%s: invalid address %q", flag, value)
	}
	return decoded, nil
}
