package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tendermap/tendermap/pkg/tender"
)

// newValidateCommand creates the validate command: a reconciliation run
// whose only output is the diagnostic report.
func newValidateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Run a reconciliation and report diagnostics",
		Long: `Run a full reconciliation and print every diagnostic the engine
recorded: skipped records, exclusions, conflicts, gaps, and countries
without data.

The exit code is non-zero only for a structural invariant violation,
so CI can proceed with warnings while still surfacing evidence of
data-quality problems.`,
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

			counts := result.DiagnosticCounts()
			kinds := make([]tender.DiagnosticKind, 0, len(counts))
			for kind := range counts {
				kinds = append(kinds, kind)
			}
			sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

			fmt.Printf("%d diagnostics across %d countries\n\n", len(result.Diagnostics), result.Statistics.Countries)
			for _, kind := range kinds {
				fmt.Printf("  %-18s %d\n", kind, counts[kind])
			}
			if len(result.Diagnostics) > 0 {
				fmt.Println()
			}
			for _, diag := range result.Diagnostics {
				code := diag.CountryCode
				if code == "" {
					code = "--"
				}
				fmt.Printf("%s  %-18s %s\n", code, diag.Kind, diag.Detail)
			}

			return runErr
		},
	}
}
