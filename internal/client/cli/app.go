// Package cli implements the interactive passvault client. The REPL talks
// to the server over the HTTP API; entry fields are encrypted with the
// field codec before every write and decrypted after every read, so the
// server only ever sees ciphertext.
package cli

import (
	"bufio"
	"io"

	"passvault/internal/client"
	"passvault/internal/client/config"
	"passvault/internal/cryptox"
)

type App struct {
	config *config.Config
	api    *client.Client
	codec  *cryptox.Codec

	userEmail string

	// lastEntries caches the most recent listing so commands can refer to
	// entries by their displayed number.
	lastEntries []client.Entry

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, reader *bufio.Reader, out io.Writer) (*App, error) {
	codec, err := cryptox.NewCodec(cfg.EncryptionSecret)
	if err != nil {
		return nil, err
	}

	return &App{
		config: cfg,
		api:    client.New(cfg.ServerURL),
		codec:  codec,
		reader: reader,
		out:    out,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.IsAuthenticated()
}

// encryptFields seals each content field independently, never the record
// as a whole.
func (a *App) encryptFields(f client.Fields) (client.Fields, error) {
	var out client.Fields
	var err error

	if out.Title, err = a.codec.Encrypt(f.Title); err != nil {
		return out, err
	}
	if out.Username, err = a.codec.Encrypt(f.Username); err != nil {
		return out, err
	}
	if out.Password, err = a.codec.Encrypt(f.Password); err != nil {
		return out, err
	}
	if out.URL, err = a.codec.Encrypt(f.URL); err != nil {
		return out, err
	}
	if out.Notes, err = a.codec.Encrypt(f.Notes); err != nil {
		return out, err
	}

	return out, nil
}

// decryptEntry decrypts the content fields of e in place. Fields that fail
// to decrypt (written under a different secret) are left as ciphertext.
func (a *App) decryptEntry(e *client.Entry) {
	if v, err := a.codec.Decrypt(e.Title); err == nil {
		e.Title = v
	}
	if v, err := a.codec.Decrypt(e.Username); err == nil {
		e.Username = v
	}
	if v, err := a.codec.Decrypt(e.Password); err == nil {
		e.Password = v
	}
	if v, err := a.codec.Decrypt(e.URL); err == nil {
		e.URL = v
	}
	if v, err := a.codec.Decrypt(e.Notes); err == nil {
		e.Notes = v
	}
}
