package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/traillend-client/internal/config"
	"github.com/example/traillend-client/internal/infrastructure/authstore"
	"github.com/example/traillend-client/internal/infrastructure/traillend"
	"github.com/example/traillend-client/internal/logger"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "traillend",
		Short: "Campus equipment lending client: browse, reserve, get a QR receipt",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newKeysCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newItemsCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newReserveCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newNotificationsCmd())
	root.AddCommand(newPinCmd())
	root.AddCommand(newReceiptsCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads env config, starts the logger and builds the API client.
// Every subcommand begins here.
func setup() (config.Config, *traillend.Client, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, nil, err
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir}); err != nil {
		return config.Config{}, nil, err
	}
	client, err := traillend.New(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, client, nil
}

func openAuthStore(cfg config.Config) (*authstore.Store, error) {
	hashKey, blockKey, err := authstore.SealKeys(cfg)
	if err != nil {
		return nil, err
	}
	return authstore.NewStore(cfg.ConfigDir, hashKey, blockKey)
}

// restoreSession installs the cached bearer token on the client, if any.
func restoreSession(cfg config.Config, client *traillend.Client) (authstore.Session, bool) {
	store, err := openAuthStore(cfg)
	if err != nil {
		logger.Debug("auth store unavailable", "error", err)
		return authstore.Session{}, false
	}
	sess, ok := store.LoadSession()
	if ok {
		client.SetToken(sess.Token)
	}
	return sess, ok
}
