package server

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"

	gossh "github.com/gliderlabs/ssh"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	xssh "golang.org/x/crypto/ssh"
)

// LoadOrCreateHostKey reads a PEM private key from path. When the file is
// missing or unparsable a new ed25519 key is generated and written there.
func LoadOrCreateHostKey(path string, logger zerolog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info().Str("path", path).Msg("loaded host key")
			return signer, nil
		}
		logger.Warn().Str("path", path).Msg("host key unreadable, replacing")
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, eris.Wrap(err, "generate host key")
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, eris.Wrap(err, "create host key signer")
	}
	block, err := xssh.MarshalPrivateKey(key, "emoji-life server")
	if err != nil {
		return nil, eris.Wrap(err, "encode host key")
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not persist host key")
	} else {
		logger.Info().Str("path", path).Msg("generated host key")
	}
	return signer, nil
}
