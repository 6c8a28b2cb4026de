package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/contacts/internal/config"
	"github.com/jask/contacts/internal/logging"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
}

// load reads config and applies flag overrides.
func (o *RootOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.LogLevel != "" {
		if _, err := logging.ParseLevel(o.LogLevel); err != nil {
			return config.Config{}, err
		}
		cfg.Log.Level = o.LogLevel
	}
	return cfg, nil
}

// NewRootCommand creates the root command. Without a subcommand it starts the UI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "contacts",
		Short:         "Contacts - a terminal address book",
		Long:          "Browse, add and delete contacts in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return Run(cmd.Context(), cfg)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ~/.config/contacts/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "override log.level (debug|info|warn|error)")

	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contacts %s\n", Version)
		},
	}
}

// NewConfigCommand prints the effective configuration after file and env
// overrides.
func NewConfigCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "log.path = %q\n", cfg.Log.Path)
			fmt.Fprintf(out, "log.level = %q\n", cfg.Log.Level)
			fmt.Fprintf(out, "contacts.seed = %q\n", cfg.Contacts.Seed)
			fmt.Fprintf(out, "contacts.similarity_threshold = %g\n", cfg.Contacts.SimilarityThreshold)
			fmt.Fprintf(out, "ui.alt_screen = %t\n", cfg.UI.AltScreen)
			fmt.Fprintf(out, "ui.start_tab = %q\n", cfg.UI.StartTab)
			return nil
		},
	}
}
