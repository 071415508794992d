package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// seal <recipient-keys.json> <message>: encrypt and sign a message for
// a peer whose public keys were exported with `keys --json`. The
// resulting post JSON can be sent over any channel and opened with
// `open`.
func sealCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "seal <recipient-keys.json> <message>",
		Short: "Encrypt and sign a message for a peer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			peerKeys, err := loadPeerKeys(args[0])
			if err != nil {
				return err
			}

			client, registry, err := newClient(true)
			if err != nil {
				return err
			}
			if err := client.Init(cmd.Context()); err != nil {
				return err
			}
			const peerID = "peer"
			if err := registry.Publish(cmd.Context(), peerID, peerKeys); err != nil {
				return err
			}

			post, err := client.ComposePost(cmd.Context(), args[1], peerID)
			if err != nil {
				return err
			}
			// The audit result is for the author's eyes; never ship it.
			post.Risk = nil

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			if err := enc.Encode(post); err != nil {
				return err
			}
			if out != "" {
				fmt.Printf("Sealed post written to %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the sealed post to a file instead of stdout")
	return cmd
}
