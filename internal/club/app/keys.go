package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/clubhouse/pkg/cryptox"
	"github.com/aussiebroadwan/clubhouse/pkg/jwtx"
)

// InitKeys loads the signing key from cfg.SigningKeyFile, creating it on
// first start, or generates cfg.NumKeys ephemeral keys when no file is
// configured.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	}

	if cfg.SigningKeyFile != "" {
		pem, created, err := cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
		if err != nil {
			return nil, fmt.Errorf("signing key: %w", err)
		}
		if created {
			logger.Info("signing key created", "path", cfg.SigningKeyFile)
		}
		opts.KeyPEMs = [][]byte{pem}
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	if cfg.SigningKeyFile != "" {
		logger.Info("signing key loaded", "path", cfg.SigningKeyFile, "issuer", cfg.Issuer)
	} else {
		logger.Info("generated ephemeral signing keys", "num_keys", km.NumSigners(), "issuer", cfg.Issuer)
		logger.Warn("all existing tokens are now invalid due to key rotation on startup")
	}
	return km, nil
}
