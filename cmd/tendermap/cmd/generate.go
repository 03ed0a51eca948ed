package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermap/tendermap/internal/emit"
	"github.com/tendermap/tendermap/pkg/logging"
)

// newGenerateCommand creates the generate command: a full
// reconciliation run followed by emission of every output view.
func newGenerateCommand(v *viper.Viper, info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run a reconciliation and write the output views",
		Long: `Run a full reconciliation and write the published views into the
output directory: current and historical currencies as CSV and JSON,
the ISO mapping view, and a metadata record.

The run continues through data anomalies; only a structural invariant
violation is fatal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refs, err := loadReferences(v)
			if err != nil {
				return err
			}
			facts, err := loadFacts(v)
			if err != nil {
				return err
			}
			engine, err := buildReconciler(v, refs)
			if err != nil {
				return err
			}

			result, runErr := engine.Reconcile(cmd.Context(), facts)
			if runErr != nil {
				// Structural violations mean the resolution policy
				// failed; nothing trustworthy to publish.
				return runErr
			}

			writer := emit.NewWriter(v.GetString("output"), info.Version, refs)
			if err := writer.WriteAll(result); err != nil {
				return err
			}

			logging.Info().
				Str("dir", v.GetString("output")).
				Int("countries", result.Statistics.Countries).
				Int("periods", result.Statistics.Periods).
				Msg("Output views written")
			return nil
		},
	}

	cmd.Flags().String("output", "data", "output directory")
	return cmd
}
