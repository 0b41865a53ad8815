package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dshills/sbp/internal/register"
)

var errNoRegisterFile = errors.New("registers.persist_file is not set")

func newRegistersCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registers",
		Short: "Inspect registers saved by the editor",
		Long: `Inspect registers saved by the editor. Registers are only kept between
sessions when registers.persist_file is configured.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved registers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.loadRegisters()
			if err != nil {
				return err
			}
			for _, k := range store.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, strconv.Quote(store.Get(k)))
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get NAME",
		Short: "Print one saved register",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.loadRegisters()
			if err != nil {
				return err
			}
			if !store.Contains(args[0]) {
				return fmt.Errorf("register %q is not set", args[0])
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), store.Get(args[0]))
			return err
		},
	})

	return cmd
}

func (g *globals) loadRegisters() (*register.Store, error) {
	path := g.cfg.Registers.PersistFile
	if path == "" {
		return nil, errNoRegisterFile
	}
	store := register.NewStore()
	if err := register.LoadFile(store, path); err != nil {
		return nil, err
	}
	return store, nil
}
