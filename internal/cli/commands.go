package cli

import (
	"fmt"

	"github.com/dmitrijs2005/pstoolkit/internal/activity"
	"github.com/dmitrijs2005/pstoolkit/internal/config"
	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the store and the key file, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			rt, err := OpenRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Store ready at %s (key %s)\n", cfg.DBPath, cfg.KeyPath)
			return nil
		},
	}
}

func newLogsCommand() *cobra.Command {
	var tail int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			lines, err := activity.New(cfg.ActivityLogPath).Tail(tail)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintln(out, "No logs available.")
				return nil
			}
			for _, l := range lines {
				fmt.Fprintln(out, l)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&tail, "tail", "n", 0, "only print the last N entries (0 for all)")
	return cmd
}

func newGenerateCommand() *cobra.Command {
	var length int
	var noLower, noUpper, noDigits, noSymbols bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				cfg, err := config.LoadConfig(cmd.Flags())
				if err != nil {
					return err
				}
				length = cfg.GeneratedPasswordLength
			}
			classes := cryptox.Classes{
				Lower:   !noLower,
				Upper:   !noUpper,
				Digits:  !noDigits,
				Symbols: !noSymbols,
			}

			pw, err := cryptox.GeneratePassword(length, classes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pw)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&length, "length", "l", 12, "password length")
	f.BoolVar(&noLower, "no-lower", false, "exclude lowercase letters")
	f.BoolVar(&noUpper, "no-upper", false, "exclude uppercase letters")
	f.BoolVar(&noDigits, "no-digits", false, "exclude digits")
	f.BoolVar(&noSymbols, "no-symbols", false, "exclude punctuation")
	return cmd
}

func newStrengthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strength <password>",
		Short: "Score a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printStrength(cmd.OutOrStdout(), cryptox.CheckStrength(args[0]))
			return nil
		},
	}
}
