package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/spf13/cobra"
)

func newKeygenCmd(conf *config) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new ed25519 private key",
		Long: `Generate a new ed25519 private key and store it in the key file. An
existing key file is never overwritten. The address of the key is printed
in hex and bech32 format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := conf.keyFile()
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				return errors.Wrapf(errors.ErrInput, "key directory: %s", err)
			}
			key, err := crypto.GenPrivKeyEd25519()
			if err != nil {
				return err
			}
			if err := crypto.SaveKeyFile(path, key); err != nil {
				return err
			}
			return printAddress(cmd.OutOrStdout(), key)
		},
	}
}

func newKeyaddrCmd(conf *config) *cobra.Command {
	return &cobra.Command{
		Use:   "keyaddr",
		Short: "Print the address of the private key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := crypto.LoadKeyFile(conf.keyFile())
			if err != nil {
				return err
			}
			return printAddress(cmd.OutOrStdout(), key)
		},
	}
}

func printAddress(w io.Writer, key *crypto.PrivateKey) error {
	addr := key.PublicKey().Address()
	b32, err := addr.Bech32(bech32Prefix)
	if err != nil {
		return errors.Wrap(err, "bech32")
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n", addr, b32)
	return err
}
