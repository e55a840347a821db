package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cli runs custodyd commands against a single home directory.
type cli struct {
	t    *testing.T
	home string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	home, err := ioutil.TempDir("", "custodyd-")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(home) })
	return &cli{t: t, home: home}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(ioutil.Discard)
	cmd.SetArgs(append([]string{"--home", c.home, "--log-level", "none"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "custodyd %s", strings.Join(args, " "))
	return out
}

func (c *cli) keyPath(name string) string {
	return filepath.Join(c.home, "keys", name)
}

// keygen creates a key file and returns the hex address of the key.
func (c *cli) keygen(name string) string {
	c.t.Helper()
	out := c.mustRun("--key", c.keyPath(name), "keygen")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(c.t, lines, 2)
	assert.True(c.t, strings.HasPrefix(lines[1], bech32Prefix+"1"))
	return lines[0]
}

func (c *cli) as(name string, args ...string) string {
	c.t.Helper()
	return c.mustRun(append([]string{"--key", c.keyPath(name)}, args...)...)
}

// initChain loads a genesis with a 2 of 3 treasury wallet. Every
// signatory owns 100 coins.
func (c *cli) initChain(signatories ...string) {
	c.t.Helper()
	accounts := make([]cash.GenesisAccount, len(signatories))
	wg := wallet.GenesisWallet{Name: "treasury", Threshold: 2}
	for i, enc := range signatories {
		accounts[i] = cash.GenesisAccount{
			Address: custodytest.ParseAddress(c.t, enc),
			Amount:  100,
		}
		wg.Signatories = append(wg.Signatories, accounts[i].Address)
	}
	gen := map[string]interface{}{
		"chain_id": "custodyd-test",
		"app_options": map[string]interface{}{
			"cash":   accounts,
			"wallet": wg,
		},
	}
	raw, err := json.Marshal(gen)
	require.NoError(c.t, err)
	path := filepath.Join(c.home, "genesis.json")
	require.NoError(c.t, ioutil.WriteFile(path, raw, 0600))
	out := c.mustRun("init", "--genesis", path)
	assert.Contains(c.t, out, "custodyd-test")
}

func TestCustodyd(t *testing.T) {
	c := newCLI(t)
	alice, bob := c.keygen("alice"), c.keygen("bob")
	carol := c.keygen("carol")
	c.initChain(alice, bob, carol)

	_, err := c.run("init", "--genesis", filepath.Join(c.home, "genesis.json"))
	assert.True(t, errors.ErrDuplicate.Is(err))

	treasury := wallet.WalletAddress("treasury").String()
	c.as("alice", "deposit", "--to", treasury, "--amount", "40")
	assert.Equal(t, "40\n", c.mustRun("balance", "--addr", treasury))
	assert.Equal(t, "60\n", c.as("alice", "balance"))

	dest := "0000000000000000000000000000000000000001"
	id := c.as("bob", "queue", "--transfer", dest+":15")
	assert.Equal(t, "0\n", id)

	out := c.as("alice", "approve", "--id", "0")
	assert.Equal(t, wallet.EventTransactionApproved+"\n", out)
	out = c.as("carol", "approve", "--id", "0")
	assert.Contains(t, out, wallet.EventTransactionExecuted)

	var view struct {
		ID       uint64        `json:"id"`
		Status   wallet.Status `json:"status"`
		Approved int           `json:"approved"`
	}
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("show", "--id", "0")), &view))
	assert.Equal(t, wallet.StatusExecuted, view.Status)
	assert.Equal(t, 2, view.Approved)
	assert.Equal(t, "15\n", c.mustRun("balance", "--addr", dest))
	assert.Equal(t, "25\n", c.mustRun("balance", "--addr", treasury))

	_, err = c.run("--key", c.keyPath("bob"), "approve", "--id", "0")
	assert.True(t, wallet.ErrAlreadyExecuted.Is(err))
	_, err = c.run("--key", c.keyPath("bob"), "approve", "--id", "7")
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestCustodydAmendment(t *testing.T) {
	c := newCLI(t)
	alice, bob := c.keygen("alice"), c.keygen("bob")
	carol := c.keygen("carol")
	c.initChain(alice, bob)

	assert.Equal(t, "0\n", c.as("alice", "queue",
		"--amend", "add:"+carol,
		"--amend", "threshold:3",
	))
	c.as("alice", "approve", "--id", "0")
	c.as("bob", "approve", "--id", "0")

	var reg wallet.Registry
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("signatories")), &reg))
	assert.Equal(t, uint32(3), reg.Threshold)
	assert.Len(t, reg.Signatories, 3)
	assert.Equal(t, carol, reg.Signatories[2].String())
}

func TestCustodydFailedExecution(t *testing.T) {
	c := newCLI(t)
	alice, bob := c.keygen("alice"), c.keygen("bob")
	c.initChain(alice, bob)

	// The treasury holds nothing.
	c.as("alice", "queue", "--transfer", alice+":5")
	c.as("alice", "approve", "--id", "0")
	_, err := c.run("--key", c.keyPath("bob"), "approve", "--id", "0")
	assert.True(t, wallet.ErrExecution.Is(err))
	assert.Contains(t, err.Error(), "action 0")

	var view struct {
		Status   wallet.Status `json:"status"`
		Approved int           `json:"approved"`
	}
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("show", "--id", "0")), &view))
	assert.Equal(t, wallet.StatusApproving, view.Status)
	assert.Equal(t, 2, view.Approved)

	treasury := wallet.WalletAddress("treasury").String()
	c.as("bob", "deposit", "--to", treasury, "--amount", "5")
	// Any signatory can retry once the wallet is funded.
	out := c.as("alice", "approve", "--id", "0")
	assert.Contains(t, out, wallet.EventTransactionExecuted)
}

func TestCustodydRequiresInit(t *testing.T) {
	c := newCLI(t)
	c.keygen("alice")

	_, err := c.run("signatories")
	assert.True(t, errors.ErrState.Is(err))
	_, err = c.run("--key", c.keyPath("alice"), "keygen")
	assert.True(t, errors.ErrDuplicate.Is(err))
	_, err = c.run("init")
	assert.True(t, errors.ErrEmpty.Is(err))
	_, err = c.run("--log-level", "loud", "signatories")
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVersionFlag(t *testing.T) {
	out := newCLI(t).mustRun("--version")
	assert.Contains(t, out, custody.Version())
}
