package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/wallet"
	"github.com/spf13/cobra"
)

func newDepositCmd(conf *config) *cobra.Command {
	var (
		to     string
		amount uint64
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Send coins from the key owner account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := custody.ParseAddress(to)
			if err != nil {
				return errors.Wrap(err, "destination")
			}
			key, err := crypto.LoadKeyFile(conf.keyFile())
			if err != nil {
				return err
			}
			msg := &cash.SendMsg{
				Source:      key.PublicKey().Address(),
				Destination: dest,
				Amount:      amount,
			}
			return conf.withInitializedApp(cmd, func(a *app.App) error {
				_, err := deliver(cmd.Context(), a, key, msg)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination address")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "Amount of coins")
	return cmd
}

type actionFlags struct {
	transfers []string
	amends    []string
	deploys   []string
	calls     []string
}

func newQueueCmd(conf *config) *cobra.Command {
	var flags actionFlags
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Queue a wallet transaction",
		Long: `Queue a wallet transaction. Actions are declared with repeatable flags
and queued in the order transfers, amendments, deployments, calls.

  --transfer addr:amount
  --amend    add:addr | remove:addr | threshold:n
  --deploy   salt:code[:value]             (salt and code in hex)
  --call     addr:value:payload[:delegate] (payload in hex, may be empty)

The transaction id is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.LoadKeyFile(conf.keyFile())
			if err != nil {
				return err
			}
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
				actions, err := flags.actions(reg.Address)
				if err != nil {
					return err
				}
				res, err := deliver(cmd.Context(), a, key, &wallet.QueueTransactionMsg{Actions: actions})
				if err != nil {
					return err
				}
				id, err := orm.DecodeSequence(res.Data)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
				return err
			})
		},
	}
	cmd.Flags().StringArrayVar(&flags.transfers, "transfer", nil, "Transfer action addr:amount")
	cmd.Flags().StringArrayVar(&flags.amends, "amend", nil, "Amendment action add:addr, remove:addr or threshold:n")
	cmd.Flags().StringArrayVar(&flags.deploys, "deploy", nil, "Deployment action salt:code[:value]")
	cmd.Flags().StringArrayVar(&flags.calls, "call", nil, "Call action addr:value:payload[:delegate]")
	return cmd
}

// actions returns the actions declared by the flags. Amendments target
// the wallet.
func (f actionFlags) actions(self custody.Address) ([]wallet.Action, error) {
	var actions []wallet.Action
	for _, s := range f.transfers {
		i := strings.LastIndex(s, ":")
		if i < 0 {
			return nil, errors.Wrapf(errors.ErrInput, "transfer %q: want addr:amount", s)
		}
		dest, err := custody.ParseAddress(s[:i])
		if err != nil {
			return nil, errors.Wrapf(err, "transfer %q", s)
		}
		amount, err := parseAmount(s[i+1:])
		if err != nil {
			return nil, errors.Wrapf(err, "transfer %q", s)
		}
		actions = append(actions, wallet.NewTransferAction(dest, amount))
	}
	for _, s := range f.amends {
		in, err := parseInstruction(s)
		if err != nil {
			return nil, errors.Wrapf(err, "amend %q", s)
		}
		a, err := wallet.NewAmendmentAction(self, in)
		if err != nil {
			return nil, errors.Wrapf(err, "amend %q", s)
		}
		actions = append(actions, a)
	}
	for _, s := range f.deploys {
		a, err := parseDeploy(s)
		if err != nil {
			return nil, errors.Wrapf(err, "deploy %q", s)
		}
		actions = append(actions, a)
	}
	for _, s := range f.calls {
		a, err := parseCall(s)
		if err != nil {
			return nil, errors.Wrapf(err, "call %q", s)
		}
		actions = append(actions, a)
	}
	if len(actions) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no actions")
	}
	return actions, nil
}

func parseInstruction(s string) (wallet.Instruction, error) {
	chunks := strings.SplitN(s, ":", 2)
	if len(chunks) != 2 {
		return nil, errors.Wrap(errors.ErrInput, "want kind:value")
	}
	switch kind, val := chunks[0], chunks[1]; kind {
	case "add", "remove":
		addr, err := custody.ParseAddress(val)
		if err != nil {
			return nil, err
		}
		if kind == "add" {
			return wallet.AddSignatory{Signatory: addr}, nil
		}
		return wallet.RemoveSignatory{Signatory: addr}, nil
	case "threshold":
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "threshold: %s", err)
		}
		return wallet.ChangeThreshold{Threshold: uint32(n)}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown amendment %q", kind)
	}
}

func parseDeploy(s string) (wallet.Action, error) {
	chunks := strings.Split(s, ":")
	if len(chunks) < 2 || len(chunks) > 3 {
		return wallet.Action{}, errors.Wrap(errors.ErrInput, "want salt:code[:value]")
	}
	rawSalt, err := decodeHex(chunks[0])
	if err != nil {
		return wallet.Action{}, errors.Wrap(err, "salt")
	}
	if len(rawSalt) > 32 {
		return wallet.Action{}, errors.Wrap(errors.ErrInput, "salt longer than 32 bytes")
	}
	var salt [32]byte
	copy(salt[:], common.LeftPadBytes(rawSalt, 32))

	code, err := decodeHex(chunks[1])
	if err != nil {
		return wallet.Action{}, errors.Wrap(err, "code")
	}
	var value uint64
	if len(chunks) == 3 {
		if value, err = parseAmount(chunks[2]); err != nil {
			return wallet.Action{}, err
		}
	}
	return wallet.NewDeployAction(salt, code, value)
}

// parseCall reads addr:value:payload[:delegate] from the end so that the
// address can carry a format prefix.
func parseCall(s string) (wallet.Action, error) {
	chunks := strings.Split(s, ":")
	var delegate bool
	if n := len(chunks); n > 0 && chunks[n-1] == "delegate" {
		delegate = true
		chunks = chunks[:n-1]
	}
	n := len(chunks)
	if n < 3 {
		return wallet.Action{}, errors.Wrap(errors.ErrInput, "want addr:value:payload[:delegate]")
	}
	target, err := custody.ParseAddress(strings.Join(chunks[:n-2], ":"))
	if err != nil {
		return wallet.Action{}, errors.Wrap(err, "target")
	}
	var value uint64
	if chunks[n-2] != "" {
		if value, err = parseAmount(chunks[n-2]); err != nil {
			return wallet.Action{}, err
		}
	}
	payload, err := decodeHex(chunks[n-1])
	if err != nil {
		return wallet.Action{}, errors.Wrap(err, "payload")
	}
	return wallet.NewCallAction(target, value, payload, delegate), nil
}

func parseAmount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrAmount, "%q: %s", s, err)
	}
	return n, nil
}

func decodeHex(s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "hex: %s", err)
	}
	return raw, nil
}

func newApproveCmd(conf *config) *cobra.Command {
	var id uint64
	cmd := &cobra.Command{
		Use:   "approve",
		Short: "Approve a queued wallet transaction",
		Long: `Approve a queued wallet transaction. The transaction is executed once
the approval reaches the threshold. A failed execution keeps the approval
recorded and can be retried by another approval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.LoadKeyFile(conf.keyFile())
			if err != nil {
				return err
			}
			return conf.withInitializedApp(cmd, func(a *app.App) error {
				res, err := deliver(cmd.Context(), a, key, &wallet.ApproveTransactionMsg{TransactionID: id})
				if res != nil && res.Log != "" {
					fmt.Fprintln(cmd.OutOrStdout(), res.Log)
				}
				if err != nil {
					if i, ok := wallet.FailedAction(err); ok {
						return errors.Wrapf(err, "action %d", i)
					}
					return err
				}
				if res != nil {
					for _, ev := range res.Events {
						fmt.Fprintln(cmd.OutOrStdout(), ev.Type)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&id, "id", 0, "Transaction id")
	return cmd
}
