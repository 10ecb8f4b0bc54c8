package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/evm-wallet/evm"
	"github.com/AlexZinkM/evm-wallet/internal/api"
	"github.com/AlexZinkM/evm-wallet/internal/client"
	"github.com/AlexZinkM/evm-wallet/internal/config"
	"github.com/AlexZinkM/evm-wallet/internal/logging"
	"github.com/AlexZinkM/evm-wallet/internal/storage"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the wallet API",
	Example: `  PORT=8080 DATA_DIR=./wallet-data evm-wallet serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openWallet opens the store and builds the wallet from config
func openWallet() (*evm.Wallet, *storage.Store, error) {
	cfg := config.Get()

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}

	opts := evm.Options{
		Store:          store,
		Dial:           client.Dial,
		PriceCurrency:  cfg.PriceCurrency,
		DefaultChainID: cfg.DefaultChainID,
		ScryptN:        cfg.ScryptN,
		RPCTimeout:     cfg.RPCTimeout,
		ReceiptTimeout: cfg.ReceiptTimeout,
		SendCooldown:   time.Duration(cfg.SendCooldown) * time.Second,
		Logger:         logging.For("wallet"),
	}
	if cfg.PricesEnabled {
		opts.Prices = client.NewCoinGeckoClient(cfg.CoinGeckoURL)
	}

	wallet, err := evm.New(opts)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return wallet, store, nil
}

func serve(ctx context.Context) error {
	log := logging.For("server")

	wallet, store, err := openWallet()
	if err != nil {
		return err
	}
	defer store.Close()
	defer wallet.Close()

	router, err := api.SetupRouter(wallet, logging.For("api"))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              "127.0.0.1:" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).WithField("dataDir", config.GetDataDir()).Info("wallet API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
