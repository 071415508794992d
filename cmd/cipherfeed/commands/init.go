package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the local key vault and print the public keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := newClient(true)
			if err != nil {
				return err
			}
			if err := client.Init(cmd.Context()); err != nil {
				return err
			}
			keys, err := client.ExportPublicKeys()
			if err != nil {
				return err
			}
			fmt.Printf("Key vault ready for %q.\n", userID)
			fmt.Printf("Signing key:  %s\n", keys.Signing)
			fmt.Printf("Exchange key: %s\n", keys.Exchange)
			return nil
		},
	}
}
