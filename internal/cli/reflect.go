package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var reflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Show the AI reflection bundle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close()

		reflections := client.API().Reflections
		if regen, _ := cmd.Flags().GetBool("generate"); regen {
			bundle, err := reflections.Generate(cmd.Context())
			if err != nil {
				return err
			}
			return printReflection(cmd, bundle.Daily.Summary, bundle.Weekly.Recommendation, bundle)
		}

		bundle, err := reflections.Get(cmd.Context())
		if err != nil {
			return err
		}
		return printReflection(cmd, bundle.Daily.Summary, bundle.Weekly.Recommendation, bundle)
	},
}

func printReflection(cmd *cobra.Command, summary, recommendation string, bundle any) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Today: %s\n", summary)
	if recommendation != "" {
		fmt.Fprintf(out, "Recommendation: %s\n", recommendation)
	}
	return nil
}

func init() {
	reflectCmd.Flags().Bool("generate", false, "ask the backend for a fresh bundle")
	reflectCmd.Flags().Bool("json", false, "emit raw JSON")
	rootCmd.AddCommand(reflectCmd)
}
