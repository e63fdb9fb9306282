package authstore

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/example/traillend-client/internal/config"
	"github.com/example/traillend-client/internal/logger"
)

const (
	keyringService = "traillend"
	hashKeyEntry   = "seal-hash-key"
	blockKeyEntry  = "seal-block-key"
)

// SealKeys resolves the securecookie key pair for the session blob. The OS
// keyring is the home for these; on first use a random pair is generated and
// stored there. When no keyring is available (headless kiosk, CI) the env
// pair from config is used instead — `traillend keys` prints a fresh one.
func SealKeys(cfg config.Config) (hashKey, blockKey []byte, err error) {
	hashKey, err = keyringKey(hashKeyEntry)
	if err == nil {
		blockKey, err = keyringKey(blockKeyEntry)
		if err == nil {
			return hashKey, blockKey, nil
		}
	}
	logger.Debug("keyring unavailable, falling back to env seal keys", "error", err)

	if len(cfg.HashKey) > 0 && len(cfg.BlockKey) > 0 {
		return cfg.HashKey, cfg.BlockKey, nil
	}
	return nil, nil, errors.New("no OS keyring and no TRAILLEND_HASH_KEY/TRAILLEND_BLOCK_KEY set; run `traillend keys` and export the pair")
}

// keyringKey loads one seal key from the keyring, generating and storing it
// on first use.
func keyringKey(entry string) ([]byte, error) {
	v, err := keyring.Get(keyringService, entry)
	if err == nil {
		return base64.StdEncoding.DecodeString(v)
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("keyring: %w", err)
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	if err := keyring.Set(keyringService, entry, encoded); err != nil {
		return nil, fmt.Errorf("keyring: %w", err)
	}
	return key, nil
}
