package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/wallet"
	"github.com/spf13/cobra"
)

// transactionView is the presentation of a queued transaction.
type transactionView struct {
	*wallet.Transaction
	Status    wallet.Status `json:"status"`
	Approved  int           `json:"approved"`
	Threshold uint32        `json:"threshold"`
}

func loadTransaction(db custody.ReadOnlyKVStore, id uint64) (*transactionView, error) {
	tx, err := wallet.GetTransaction(db, id)
	if err != nil {
		return nil, err
	}
	reg, err := wallet.GetRegistry(db)
	if err != nil {
		return nil, err
	}
	return &transactionView{
		Transaction: tx,
		Status:      tx.Status(),
		Approved:    tx.ApprovalCount(reg),
		Threshold:   reg.CurrentThreshold(),
	}, nil
}

func loadBalance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	return cash.NewController(cash.NewBucket()).Balance(db, addr)
}

func printJSON(w io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	_, err = fmt.Fprintf(w, "%s\n", raw)
	return err
}

func newShowCmd(conf *config) *cobra.Command {
	var id uint64
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a wallet transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return conf.withInitializedApp(cmd, func(a *app.App) error {
				var view *transactionView
				err := a.View(func(db custody.ReadOnlyKVStore) error {
					var err error
					view, err = loadTransaction(db, id)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), view)
			})
		},
	}
	cmd.Flags().Uint64Var(&id, "id", 0, "Transaction id")
	return cmd
}

func newSignatoriesCmd(conf *config) *cobra.Command {
	return &cobra.Command{
		Use:   "signatories",
		Short: "Print the wallet registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return conf.withInitializedApp(cmd, func(a *app.App) error {
				var reg *wallet.Registry
				err := a.View(func(db custody.ReadOnlyKVStore) error {
					var err error
					reg, err = wallet.GetRegistry(db)
					return err
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), reg)
			})
		},
	}
}

func newBalanceCmd(conf *config) *cobra.Command {
	var enc string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Print the balance of an account",
		Long:  "Print the balance of an account. Without --addr the key owner account is used.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var addr custody.Address
			if enc == "" {
				key, err := crypto.LoadKeyFile(conf.keyFile())
				if err != nil {
					return err
				}
				addr = key.PublicKey().Address()
			} else {
				var err error
				if addr, err = custody.ParseAddress(enc); err != nil {
					return err
				}
			}
			return conf.withInitializedApp(cmd, func(a *app.App) error {
				var amount uint64
				err := a.View(func(db custody.ReadOnlyKVStore) error {
					var err error
					amount, err = loadBalance(db, addr)
					return err
				})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), amount)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&enc, "addr", "", "Account address")
	return cmd
}
