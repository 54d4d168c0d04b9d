// Package config handles configuration for the client component.
package config

import (
	"flag"
	"os"

	"passvault/internal/flagx"
)

// Config holds runtime settings for the passvault CLI client.
//
// Fields:
//   - ServerURL: base URL of the passvault server.
//   - EncryptionSecret: application secret the field codec derives its AES key from.
//     Must match the value configured on every client of the same vault.
type Config struct {
	ServerURL        string
	EncryptionSecret string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.EncryptionSecret = "devEncryptionSecret"
}

// LoadConfig builds a Config by applying defaults and overlaying
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

// parseFlags populates Config fields from command-line flags:
//
//	-e string   server base URL
//	-k string   field encryption secret
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerURL, "e", config.ServerURL, "server base URL")
	fs.StringVar(&config.EncryptionSecret, "k", config.EncryptionSecret, "field encryption secret")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
