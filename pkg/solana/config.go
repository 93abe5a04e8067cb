package solana

import "github.com/pkg/errors"

type Environment string

const (
	EnvironmentDev  Environment = "https://api.devnet.solana.com"
	EnvironmentTest Environment = "https://api.testnet.solana.com"
	EnvironmentProd Environment = "https://api.mainnet-beta.solana.com"
)

// Cluster is the short name of a Solana network, as used in explorer and
// dashboard URLs.
type Cluster string

const (
	ClusterDevnet  Cluster = "devnet"
	ClusterTestnet Cluster = "testnet"
	ClusterMainnet Cluster = "mainnet"
)

// Environment returns the public RPC endpoint of the cluster.
func (c Cluster) Environment() Environment {
	switch c {
	case ClusterDevnet:
		return EnvironmentDev
	case ClusterTestnet:
		return EnvironmentTest
	default:
		return EnvironmentProd
	}
}

func (c Cluster) IsMainnet() bool {
	return c == ClusterMainnet
}

// ParseCluster accepts the short cluster names, with "mainnet-beta" as an
// alias of mainnet.
func ParseCluster(value string) (Cluster, error) {
	switch value {
	case "", string(ClusterMainnet), "mainnet-beta":
		return ClusterMainnet, nil
	case string(ClusterDevnet):
		return ClusterDevnet, nil
	case string(ClusterTestnet):
		return ClusterTestnet, nil
	}
	return "", errors.Errorf("unknown cluster %q", value)
}
