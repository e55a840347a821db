package main

import (
	"fmt"

	"github.com/iov-one/custody/app"
	"github.com/iov-one/custody/errors"
	"github.com/spf13/cobra"
)

func newInitCmd(conf *config) *cobra.Command {
	var genesisPath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the state from a genesis file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if genesisPath == "" {
				return errors.Wrap(errors.ErrEmpty, "genesis file is required")
			}
			gen, err := app.LoadGenesis(genesisPath)
			if err != nil {
				return err
			}
			return conf.withApp(cmd, func(a *app.App) error {
				if err := a.InitChain(gen, app.Initializers()); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "chain %s initialized in %s\n", gen.ChainID, conf.home)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&genesisPath, "genesis", "", "Path to the genesis file")
	return cmd
}
