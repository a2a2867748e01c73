package cli

import (
	"github.com/dmitrijs2005/pstoolkit/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the toolkit command tree. Without a subcommand it
// starts the interactive menus.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "toolkit",
		Short: "Password & Security Toolkit",
		Long: `Password & Security Toolkit: an encrypted password vault with
admin-approved accounts, activity logging and password strength tools.

Run without arguments for the interactive menus.`,
		SilenceUsage:  true,
		SilenceErrors: true,
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

			app, err := NewApp(cfg, rt, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newMigrateCommand(),
		newLogsCommand(),
		newGenerateCommand(),
		newStrengthCommand(),
	)
	return root
}
