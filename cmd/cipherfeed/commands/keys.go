package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// keys prints the published public keys; --json emits the registry
// wire format for pasting into another tool.
func keysCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the vault's public keys",
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
			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(keys)
			}
			fmt.Printf("Signing key:  %s\n", keys.Signing)
			fmt.Printf("Exchange key: %s\n", keys.Exchange)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit registry wire format")
	return cmd
}
