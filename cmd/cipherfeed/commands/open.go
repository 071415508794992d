package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cipherfeed "github.com/cipherfeed/client-go"
)

// open <author-keys.json> <post.json>: verify and decrypt a sealed
// post. The author's signature is checked against the supplied keys
// before any decryption happens.
func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <author-keys.json> <post.json>",
		Short: "Verify and decrypt a sealed post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			authorKeys, err := loadPeerKeys(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			var post cipherfeed.EncryptedPost
			if err := json.Unmarshal(data, &post); err != nil {
				return fmt.Errorf("parsing %s: %w", args[1], err)
			}

			client, registry, err := newClient(true)
			if err != nil {
				return err
			}
			if err := client.Init(cmd.Context()); err != nil {
				return err
			}
			if err := registry.Publish(cmd.Context(), post.AuthorID, authorKeys); err != nil {
				return err
			}

			plaintext, err := client.ReadPost(cmd.Context(), &post)
			if err != nil {
				return err
			}
			fmt.Println(plaintext)
			return nil
		},
	}
}
