package walletrules

import (
	"time"

	"github.com/spf13/viper"

	"github.com/bhagyamudgal/governance-ui/pkg/config"
	"github.com/bhagyamudgal/governance-ui/pkg/config/env"
	"github.com/bhagyamudgal/governance-ui/pkg/config/file"
	"github.com/bhagyamudgal/governance-ui/pkg/config/memory"
	"github.com/bhagyamudgal/governance-ui/pkg/config/wrapper"
)

const (
	envConfigPrefix = "WALLET_RULES_"

	FetchTimeoutConfigEnvName = envConfigPrefix + "FETCH_TIMEOUT"
	defaultFetchTimeout       = 30 * time.Second

	DaoPathPrefixConfigEnvName = envConfigPrefix + "DAO_PATH_PREFIX"
	defaultDaoPathPrefix       = "/dao"

	fileConfigPrefix = "wallet_rules."
)

type conf struct {
	fetchTimeout  config.Duration
	daoPathPrefix config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			fetchTimeout:  env.NewDurationConfig(FetchTimeoutConfigEnvName, defaultFetchTimeout),
			daoPathPrefix: env.NewStringConfig(DaoPathPrefixConfigEnvName, defaultDaoPathPrefix),
		}
	}
}

// WithFileConfigs returns configuration read from the wallet_rules section
// of v
func WithFileConfigs(v *viper.Viper) ConfigProvider {
	return func() *conf {
		return &conf{
			fetchTimeout:  file.NewDurationConfig(v, fileConfigPrefix+"fetch_timeout", defaultFetchTimeout),
			daoPathPrefix: file.NewStringConfig(v, fileConfigPrefix+"dao_path_prefix", defaultDaoPathPrefix),
		}
	}
}

type testOverrides struct {
	fetchTimeout time.Duration
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			fetchTimeout:  wrapper.NewDurationConfig(memory.NewConfig(overrides.fetchTimeout), defaultFetchTimeout),
			daoPathPrefix: wrapper.NewStringConfig(memory.NewConfig(defaultDaoPathPrefix), defaultDaoPathPrefix),
		}
	}
}
