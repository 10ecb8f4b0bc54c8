package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/AlexZinkM/evm-wallet/evm"

	"github.com/spf13/cobra"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List built-in and custom networks",
	Example: `  evm-wallet chains
  evm-wallet chains --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		wallet, store, err := openWallet()
		if err != nil {
			return err
		}
		defer store.Close()
		defer wallet.Close()

		resp := wallet.Chains()
		if output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "\tID\tNAME\tTICKER\tRPC")
		for _, c := range resp.Chains {
			mark := ""
			if c.ChainID == resp.Current {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", mark, c.ChainID, c.Name, c.Ticker, c.RPCURL)
		}
		return tw.Flush()
	},
}

var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "Print a fresh 12-word mnemonic and its first address (nothing is stored)",
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, err := evm.NewMnemonic()
		if err != nil {
			return err
		}
		address, err := evm.DeriveAddress(mnemonic, 0)
		if err != nil {
			return err
		}
		fmt.Println(mnemonic)
		fmt.Fprintf(os.Stderr, "address %s%d: %s\n", evm.DerivationPathPrefix, 0, address)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chainsCmd, mnemonicCmd)
	chainsCmd.Flags().StringP("output", "o", "plain", "Output format: plain|json")
}
