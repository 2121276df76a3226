package cli

import (
	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [contact-id]",
	Short: "Generate an AI summary of a contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if err := ensureConnected(cmd); err != nil {
		return err
	}

	cmd.Println("Generating summary...")
	summary, err := contactService.Summarize(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println(summary)
	return nil
}
