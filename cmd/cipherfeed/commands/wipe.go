package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func wipeCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Destroy all local key material",
		Long: "Destroy all local key material. Every post encrypted for this\n" +
			"device becomes permanently unreadable; there is no recovery.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe without --yes")
			}
			client, _, err := newClient(true)
			if err != nil {
				return err
			}
			if err := client.WipeKeys(); err != nil {
				return err
			}
			fmt.Println("Key vault wiped.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
