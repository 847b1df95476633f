package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soilgrade/soilgrade/internal/classify"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the decision rules of the classification tree",
	Long: `List every rule of the IS 1498:1970 decision tree in consultation
order. The identifiers match the rule trace in classification reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, rule := range classify.AllRules() {
			fmt.Printf("%-20s %s\n", rule.ID, rule.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
