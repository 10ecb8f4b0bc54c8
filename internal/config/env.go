package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	DataDir        string        `envconfig:"DATA_DIR" default:"./wallet-data"`
	DefaultChainID int64         `envconfig:"DEFAULT_CHAIN_ID" default:"824"`
	SendCooldown   int           `envconfig:"SEND_COOLDOWN_SECONDS" default:"0"`
	RPCTimeout     time.Duration `envconfig:"RPC_TIMEOUT" default:"15s"`
	ReceiptTimeout time.Duration `envconfig:"RECEIPT_TIMEOUT" default:"2m"`
	ScryptN        int           `envconfig:"SCRYPT_N" default:"262144"`
	PricesEnabled  bool          `envconfig:"PRICES_ENABLED" default:"true"`
	PriceCurrency  string        `envconfig:"PRICE_CURRENCY" default:"usd"`
	CoinGeckoURL   string        `envconfig:"COINGECKO_URL" default:"https://api.coingecko.com/api/v3"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string        `envconfig:"LOG_FORMAT" default:"text"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("DATA_DIR must not be empty")
	}
	if c.DefaultChainID <= 0 {
		return errors.New("DEFAULT_CHAIN_ID must be positive")
	}
	if c.SendCooldown < 0 {
		return errors.New("SEND_COOLDOWN_SECONDS must not be negative")
	}
	// scrypt requires N to be a power of two greater than 1
	if c.ScryptN < 2 || c.ScryptN&(c.ScryptN-1) != 0 {
		return errors.New("SCRYPT_N must be a power of two")
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetDataDir returns the wallet database directory
func GetDataDir() string {
	return Get().DataDir
}

// PromptForPassword reads a password from the terminal without echo.
// Caller must zero the returned slice after use.
func PromptForPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the command interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}
