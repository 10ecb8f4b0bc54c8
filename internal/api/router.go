package api

import (
	"net/http"

	_ "github.com/AlexZinkM/evm-wallet/docs"
	"github.com/AlexZinkM/evm-wallet/evm"
	"github.com/AlexZinkM/evm-wallet/internal/handler"

	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
// @title        EVM Wallet API
// @version      1.0
// @description  Local single-user wallet for EVM chains
// @BasePath     /
func SetupRouter(wallet *evm.Wallet, log *logrus.Entry) (http.Handler, error) {
	if log == nil {
		log = logrus.WithField("component", "api")
	}
	walletHandler, err := handler.NewWalletHandler(wallet, log)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/create", walletHandler.Create)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/unlock", walletHandler.Unlock)
	mux.HandleFunc("/wallet/lock", walletHandler.Lock)
	mux.HandleFunc("/wallet/status", walletHandler.Status)
	mux.HandleFunc("/wallet/mnemonic", walletHandler.Mnemonic)
	mux.HandleFunc("/wallet/addresses", walletHandler.DeriveAddress)
	mux.HandleFunc("/wallet/addresses/select", walletHandler.SelectAddress)
	mux.HandleFunc("/wallet/export", walletHandler.Export)
	mux.HandleFunc("/wallet/password", walletHandler.ChangePassword)
	mux.HandleFunc("/wallet/remove", walletHandler.Remove)
	mux.HandleFunc("/wallet/receive", walletHandler.Receive)

	// Network and token settings
	mux.HandleFunc("/chains", walletHandler.Chains)
	mux.HandleFunc("/chains/select", walletHandler.SelectChain)
	mux.HandleFunc("/chains/remove", walletHandler.RemoveChain)
	mux.HandleFunc("/tokens", walletHandler.Tokens)
	mux.HandleFunc("/tokens/remove", walletHandler.RemoveToken)

	// Balances and transfers
	mux.HandleFunc("/balance", walletHandler.Balance)
	mux.HandleFunc("/send/estimate", walletHandler.Estimate)
	mux.HandleFunc("/send/max", walletHandler.Max)
	mux.HandleFunc("/send", walletHandler.Send)
	mux.HandleFunc("/transactions", walletHandler.TransactionHistory)

	return withRecover(log, withRequestLog(log, mux)), nil
}
