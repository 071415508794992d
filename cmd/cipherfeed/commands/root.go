package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cipherfeed "github.com/cipherfeed/client-go"
	"github.com/cipherfeed/client-go/internal/config"
)

var (
	cfgPath    string
	homeDir    string
	passphrase string
	userID     string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
)

func Execute() error {
	root := &cobra.Command{
		Use:           "cipherfeed",
		Short:         "Manage CipherFeed keys and audit drafts from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			if homeDir != "" {
				cfg.KeyStore.Dir = homeDir
			}
			log = zap.NewNop()
			if verbose {
				log, err = zap.NewDevelopment()
				if err != nil {
					return err
				}
			}
			if userID == "" {
				if u, err := user.Current(); err == nil {
					userID = u.Username
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.cipherfeed/config.yaml)")
	root.PersistentFlags().StringVar(&homeDir, "home", "", "key vault dir (default from config)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the key vault")
	root.PersistentFlags().StringVar(&userID, "user", "", "user id (default OS username)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(initCmd(), keysCmd(), wipeCmd(), auditCmd(), sealCmd(), openCmd())
	return root.Execute()
}

// newClient builds an SDK client against in-process registry and store.
// The CLI only manages local state; the vault on disk is the part that
// persists between runs. The registry is returned so commands can load
// peer keys from files into it.
func newClient(withVault bool) (*cipherfeed.Client, *cipherfeed.MemoryKeyRegistry, error) {
	opts := []cipherfeed.Option{
		cipherfeed.WithLogger(log),
		cipherfeed.WithAuditTimeout(cfg.OracleTimeout()),
	}
	if cfg.Oracle.APIKey != "" {
		opts = append(opts, cipherfeed.WithOracleAPI(cfg.Oracle.BaseURL, cfg.Oracle.APIKey))
	}
	if cfg.KillSwitchURL != "" {
		opts = append(opts, cipherfeed.WithKillSwitchURL(cfg.KillSwitchURL))
	}
	if cfg.Policy.FailClosed {
		opts = append(opts, cipherfeed.WithFailClosed())
	}

	if withVault {
		if passphrase == "" {
			return nil, nil, fmt.Errorf("passphrase required (-p)")
		}
		if err := os.MkdirAll(cfg.KeyStore.Dir, 0o700); err != nil {
			return nil, nil, err
		}
		store, err := cipherfeed.NewFileKeyStore(cfg.KeyStore.Dir, []byte(passphrase))
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, cipherfeed.WithKeyStore(store))
	}

	registry := cipherfeed.NewMemoryKeyRegistry()
	client, err := cipherfeed.New(
		cipherfeed.StaticIdentity(cipherfeed.UserInfo{ID: userID, Name: userID}),
		registry,
		cipherfeed.NewMemoryContentStore(),
		opts...,
	)
	if err != nil {
		return nil, nil, err
	}
	return client, registry, nil
}

// loadPeerKeys reads a PublicKeys JSON file, as written by `keys --json`.
func loadPeerKeys(path string) (cipherfeed.PublicKeys, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cipherfeed.PublicKeys{}, err
	}
	var keys cipherfeed.PublicKeys
	if err := json.Unmarshal(data, &keys); err != nil {
		return cipherfeed.PublicKeys{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if keys.Signing == "" || keys.Exchange == "" {
		return cipherfeed.PublicKeys{}, fmt.Errorf("%s: missing signing or exchange key", path)
	}
	return keys, nil
}
