package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/wallet"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	dbName         = "custody"
	defaultKeyFile = "key.priv"
	bech32Prefix   = "custody"
)

type config struct {
	home     string
	keyPath  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var conf config
	root := &cobra.Command{
		Use:          "custodyd",
		Short:        "Multi-signatory custody wallet",
		Version:      custody.Version(),
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&conf.home, "home", defaultHome(), "Directory holding the application state")
	flags.StringVar(&conf.keyPath, "key", "", "Private key file (default <home>/"+defaultKeyFile+")")
	flags.StringVar(&conf.logLevel, "log-level", "info", "Log level: debug, info, error or none")

	root.AddCommand(
		newInitCmd(&conf),
		newKeygenCmd(&conf),
		newKeyaddrCmd(&conf),
		newDepositCmd(&conf),
		newQueueCmd(&conf),
		newApproveCmd(&conf),
		newShowCmd(&conf),
		newSignatoriesCmd(&conf),
		newBalanceCmd(&conf),
		newServeCmd(&conf),
	)
	return root
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".custodyd"
	}
	return filepath.Join(home, ".custodyd")
}

func (c *config) keyFile() string {
	if c.keyPath != "" {
		return c.keyPath
	}
	return filepath.Join(c.home, defaultKeyFile)
}

func (c *config) logger(w io.Writer) (log.Logger, error) {
	opt, err := log.AllowLevel(c.logLevel)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w)).With("module", "custody")
	return log.NewFilter(logger, opt), nil
}

// withApp opens the application stored in the home directory for the
// duration of fn.
func (c *config) withApp(cmd *cobra.Command, fn func(*app.App) error) error {
	logger, err := c.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.home, 0700); err != nil {
		return errors.Wrapf(errors.ErrInput, "home directory: %s", err)
	}
	db, err := iavl.NewCommitStore(c.home, dbName)
	if err != nil {
		return err
	}
	defer db.Close()

	a, err := app.New(db, app.Stack(wallet.NewPrograms()), logger)
	if err != nil {
		return err
	}
	return fn(a)
}

// withInitializedApp is withApp for commands that need the genesis to be
// loaded.
func (c *config) withInitializedApp(cmd *cobra.Command, fn func(*app.App) error) error {
	return c.withApp(cmd, func(a *app.App) error {
		if a.ChainID() == "" {
			return errors.Wrapf(errors.ErrState, "no chain in %s, run init first", c.home)
		}
		return fn(a)
	})
}

// deliver signs msg with key using the next sequence of the key owner.
func deliver(ctx custody.Context, a *app.App, key *crypto.PrivateKey, msg custody.Msg) (*custody.DeliverResult, error) {
	var seq int64
	err := a.View(func(db custody.ReadOnlyKVStore) error {
		var err error
		seq, err = sigs.GetSequence(db, key.PublicKey().Address())
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	sig, err := sigs.Sign(key, msg, a.ChainID(), seq)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return a.Deliver(ctx, sigs.NewSignedMsg(msg, sig))
}
