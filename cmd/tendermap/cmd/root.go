// Package cmd assembles the tendermap command tree: generate, validate,
// and snapshot, sharing configuration through viper.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermap/tendermap/pkg/logging"
)

// BuildInfo carries version metadata into the command tree.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the tendermap root command.
func NewRootCommand(info BuildInfo) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "tendermap",
		Short: "Reconcile legal-tender data from CLDR, ISO 4217, and country registries",
		Long: `tendermap assembles a consistent, queryable record of which currency
is (or was) legal tender in which country over time.

It ingests currency-territory facts from multiple reference sources,
resolves conflicts between them by an explicit precedence policy,
builds per-country historical timelines, and derives the current
snapshot, surfacing every anomaly as a structured diagnostic.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", info.Version, info.Commit, info.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindConfig(v, cmd); err != nil {
				return err
			}
			logging.SetLevel(v.GetString("log-level"))
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "config file (YAML)")
	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().Int("workers", 8, "per-country worker limit")
	root.PersistentFlags().String("cldr", "", "CLDR supplementalData XML file")
	root.PersistentFlags().String("iso4217-facts", "", "ISO 4217 fact file (YAML)")
	root.PersistentFlags().String("registry-facts", "", "country registry fact file (YAML)")
	root.PersistentFlags().String("countries", "", "ISO 3166 country reference table (YAML)")
	root.PersistentFlags().String("currencies", "", "ISO 4217 currency reference table (YAML)")

	root.AddCommand(newGenerateCommand(v, info))
	root.AddCommand(newValidateCommand(v))
	root.AddCommand(newSnapshotCommand(v))

	return root
}

// bindConfig wires flags, environment, and the optional config file
// into one viper instance. Environment variables use the TENDERMAP_
// prefix with dashes mapped to underscores.
func bindConfig(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	v.SetEnvPrefix("TENDERMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		logging.Debug().Str("file", v.ConfigFileUsed()).Msg("Loaded config")
	}
	return nil
}
