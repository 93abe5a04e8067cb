package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhagyamudgal/governance-ui/pkg/solana"
	"github.com/bhagyamudgal/governance-ui/pkg/testutil"
)

func setupApp(t *testing.T, args ...string) (*app, error) {
	a := newApp()
	root := a.command()

	show, _, err := root.Find([]string{"show"})
	require.NoError(t, err)
	require.NoError(t, show.ParseFlags(args))

	return a, a.setup(show, nil)
}

func TestSetup_Defaults(t *testing.T) {
	level := logrus.GetLevel()
	defer logrus.SetLevel(level)

	a, err := setupApp(t)
	require.NoError(t, err)

	assert.Equal(t, solana.ClusterMainnet, a.cluster)
	assert.Equal(t, string(solana.EnvironmentProd), a.sc.Endpoint())
	assert.Greater(t, a.names.Len(), 0)
	assert.Nil(t, a.newRelic)
}

func TestSetup_ConfigFile(t *testing.T) {
	level := logrus.GetLevel()
	defer logrus.SetLevel(level)

	dir := t.TempDir()
	governanceAddress := testutil.GenerateSolanaKeys(t, 1)[0]

	names := filepath.Join(dir, "names.yaml")
	require.NoError(t, os.WriteFile(names, []byte(`
accounts:
  - address: `+base58.Encode(governanceAddress)+`
    name: Treasury
`), 0600))

	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
cluster: devnet
log-level: debug
account-names: `+names+`
governance: `+base58.Encode(governanceAddress)+`
`), 0600))

	a, err := setupApp(t, "--config", config, "--rpc", "http://localhost:8899")
	require.NoError(t, err)

	assert.Equal(t, solana.ClusterDevnet, a.cluster)
	assert.Equal(t, "http://localhost:8899", a.sc.Endpoint())
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	name, ok := a.names.Get(governanceAddress)
	require.True(t, ok)
	assert.Equal(t, "Treasury", name)

	address, err := a.address(flagGovernance)
	require.NoError(t, err)
	assert.Equal(t, governanceAddress, address)

	_, err = a.address(flagRealm)
	assert.Error(t, err)
}

func TestSetup_Errors(t *testing.T) {
	level := logrus.GetLevel()
	defer logrus.SetLevel(level)

	_, err := setupApp(t, "--cluster", "localnet")
	assert.Error(t, err)

	_, err = setupApp(t, "--log-level", "loud")
	assert.Error(t, err)

	_, err = setupApp(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	a, err := setupApp(t, "--realm", "not-an-address")
	require.NoError(t, err)
	_, err = a.address(flagRealm)
	assert.Error(t, err)
}
