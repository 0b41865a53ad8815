package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/sbp/internal/config"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create configuration files",
	}

	var format string
	dump := &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration after defaults, the config file,
SBP_* environment variables and flags are merged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Dump(g.cfg, format)
			if err != nil {
				return err
			}
			if g.cfg.Source != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "# loaded from %s\n", g.cfg.Source)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	dump.Flags().StringVarP(&format, "format", "f", config.FormatTOML, "output format (toml or yaml)")

	initCmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write the default configuration to PATH (.toml or .yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(dump, initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sbp %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
			return nil
		},
	}
}
