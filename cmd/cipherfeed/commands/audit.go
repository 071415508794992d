package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// audit <draft...>: run the pre-post risk pipeline over a draft and
// print the assessment. Reads stdin when no argument is given.
func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit [draft]",
		Short: "Run the privacy and risk audit over a draft without posting",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := strings.Join(args, " ")
			if draft == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				draft = string(data)
			}
			if strings.TrimSpace(draft) == "" {
				return fmt.Errorf("nothing to audit")
			}

			client, _, err := newClient(false)
			if err != nil {
				return err
			}
			assessment := client.Audit(cmd.Context(), draft)

			fmt.Printf("Risk level: %s (source: %s)\n", assessment.Level, assessment.Source)
			if assessment.Degraded {
				fmt.Println("Note: classifier unreachable, local assessment only.")
			}
			for _, w := range assessment.Warnings {
				fmt.Printf("  - %s\n", w)
			}
			if assessment.SafeToPost {
				fmt.Println("Verdict: safe to post")
			} else {
				fmt.Println("Verdict: do not post")
			}
			return nil
		},
	}
}
