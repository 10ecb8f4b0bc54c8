// Usage: go run ./cmd/evm-wallet serve
package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/evm-wallet/internal/config"
	"github.com/AlexZinkM/evm-wallet/internal/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "evm-wallet",
	Short: "Local EVM wallet",
	Long:  "A single-user wallet for EVM chains: HD addresses, balances, native and ERC-20 transfers, served over a local HTTP API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return err
		}
		cfg := config.Get()
		return logging.Setup(cfg.LogLevel, cfg.LogFormat)
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
