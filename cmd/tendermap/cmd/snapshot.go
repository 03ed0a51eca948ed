package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newSnapshotCommand creates the snapshot command: print each country's
// current tender to stdout.
func newSnapshotCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current country-to-currency mapping",
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
				return runErr
			}

			if v.GetString("format") == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result.Snapshot)
			}

			for _, code := range result.Snapshot.CountryCodes() {
				entry := result.Snapshot.Entries[code]
				line := fmt.Sprintf("%s  %s", code, entry.Primary.CurrencyCode)
				for _, secondary := range entry.Secondary {
					line += fmt.Sprintf(" (+%s)", secondary.CurrencyCode)
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().String("format", "text", "output format (text, json)")
	return cmd
}
