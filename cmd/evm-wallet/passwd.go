package main

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/evm-wallet/internal/config"

	"github.com/spf13/cobra"
)

// passwdCmd re-encrypts the vault offline. The server must be stopped: the
// database allows a single process.
var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Re-encrypt the wallet vault under a new password",
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPw, err := config.PromptForPassword("Current password: ")
		if err != nil {
			return err
		}
		defer clear(oldPw)
		newPw, err := config.PromptForPassword("New password: ")
		if err != nil {
			return err
		}
		defer clear(newPw)
		confirm, err := config.PromptForPassword("Confirm new password: ")
		if err != nil {
			return err
		}
		defer clear(confirm)

		wallet, store, err := openWallet()
		if err != nil {
			return fmt.Errorf("failed to open wallet in %s: %w", config.GetDataDir(), err)
		}
		defer store.Close()
		defer wallet.Close()

		if err := wallet.ChangePassword(string(oldPw), string(newPw), string(confirm)); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "password changed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}
