package proposal

import (
	"github.com/spf13/viper"

	"github.com/bhagyamudgal/governance-ui/pkg/config"
	"github.com/bhagyamudgal/governance-ui/pkg/config/env"
	"github.com/bhagyamudgal/governance-ui/pkg/config/file"
	"github.com/bhagyamudgal/governance-ui/pkg/config/memory"
	"github.com/bhagyamudgal/governance-ui/pkg/config/wrapper"
)

const (
	envConfigPrefix = "PROPOSAL_SERVICE_"

	CommitmentConfigEnvName = envConfigPrefix + "COMMITMENT"
	defaultCommitment       = "confirmed"

	InsertsPerTransactionConfigEnvName = envConfigPrefix + "INSERTS_PER_TRANSACTION"
	defaultInsertsPerTransaction       = 2

	ApproveOptionConfigEnvName = envConfigPrefix + "APPROVE_OPTION"
	defaultApproveOption       = "Approve"

	fileConfigPrefix = "proposal."
)

type conf struct {
	commitment            config.String
	insertsPerTransaction config.Uint64
	approveOption         config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			commitment:            env.NewStringConfig(CommitmentConfigEnvName, defaultCommitment),
			insertsPerTransaction: env.NewUint64Config(InsertsPerTransactionConfigEnvName, defaultInsertsPerTransaction),
			approveOption:         env.NewStringConfig(ApproveOptionConfigEnvName, defaultApproveOption),
		}
	}
}

// WithFileConfigs returns configuration read from the proposal section of v
func WithFileConfigs(v *viper.Viper) ConfigProvider {
	return func() *conf {
		return &conf{
			commitment:            file.NewStringConfig(v, fileConfigPrefix+"commitment", defaultCommitment),
			insertsPerTransaction: file.NewUint64Config(v, fileConfigPrefix+"inserts_per_transaction", defaultInsertsPerTransaction),
			approveOption:         file.NewStringConfig(v, fileConfigPrefix+"approve_option", defaultApproveOption),
		}
	}
}

type testOverrides struct {
	insertsPerTransaction uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			commitment:            wrapper.NewStringConfig(memory.NewConfig(defaultCommitment), defaultCommitment),
			insertsPerTransaction: wrapper.NewUint64Config(memory.NewConfig(overrides.insertsPerTransaction), defaultInsertsPerTransaction),
			approveOption:         wrapper.NewStringConfig(memory.NewConfig(defaultApproveOption), defaultApproveOption),
		}
	}
}
