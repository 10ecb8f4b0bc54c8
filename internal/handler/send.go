package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/AlexZinkM/evm-wallet/evm"
	"github.com/AlexZinkM/evm-wallet/internal/model"
)

// Balance handles GET /balance
// @Summary      Get balances
// @Description  Native and token balances of the current address on the current chain. Failed assets show 0.0000 with an error.
// @Tags         balance
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      423  {object}  model.ErrorResponse
// @Router       /balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	resp, err := h.wallet.Balances(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Estimate handles POST /send/estimate
// @Summary      Estimate gas
// @Description  Estimates the gas limit of a transfer. On failure 21000 is returned together with the error.
// @Tags         send
// @Accept       json
// @Produce      json
// @Param        request  body      model.EstimateRequest  true  "Transfer"
// @Success      200      {object}  model.EstimateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /send/estimate [post]
func (h *WalletHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.EstimateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.EstimateGas(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Max handles POST /send/max
// @Summary      Max sendable
// @Description  Native balance minus gasLimit * gasPrice
// @Tags         send
// @Accept       json
// @Produce      json
// @Param        request  body      model.MaxRequest  false  "Gas settings, defaults 21000 and 1 gwei"
// @Success      200      {object}  model.MaxResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /send/max [post]
func (h *WalletHandler) Max(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.MaxRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.MaxSendable(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Send handles POST /send
// @Summary      Send
// @Description  Signs and broadcasts a native or ERC-20 transfer and waits for the receipt. A receipt timeout returns status pending.
// @Tags         send
// @Accept       json
// @Produce      json
// @Param        request  body      model.SendRequest  true  "Transfer"
// @Success      200      {object}  model.SendResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      423      {object}  model.ErrorResponse
// @Failure      429      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /send [post]
func (h *WalletHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.SendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.Send(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// TransactionHistory handles GET /transactions
// @Summary      Get sent transactions
// @Description  Locally recorded transfers, newest first
// @Tags         transactions
// @Produce      json
// @Param        chainId  query     int     false  "Chain ID"
// @Param        symbol   query     string  false  "Asset symbol"
// @Param        to       query     string  false  "Recipient address"
// @Param        hash     query     string  false  "Transaction hash"
// @Param        status   query     string  false  "pending, success or failed"
// @Param        since    query     string  false  "Start date (YYYY-MM-DD or RFC3339)"
// @Param        until    query     string  false  "End date (YYYY-MM-DD or RFC3339)"
// @Success      200  {object}  model.HistoryResponse
// @Failure      400  {object}  model.ErrorResponse
// @Router       /transactions [get]
func (h *WalletHandler) TransactionHistory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	req, err := parseHistoryRequest(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.History(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseHistoryRequest(r *http.Request) (*model.HistoryRequest, error) {
	q := r.URL.Query()
	var req model.HistoryRequest

	if s := q.Get("chainId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &evm.ValidationError{Message: "invalid chainId"}
		}
		req.ChainID = &id
	}
	if s := q.Get("symbol"); s != "" {
		req.Symbol = &s
	}
	if s := q.Get("to"); s != "" {
		req.To = &s
	}
	if s := q.Get("hash"); s != "" {
		req.Hash = &s
	}
	if s := q.Get("status"); s != "" {
		status := model.TransactionStatus(s)
		req.Status = &status
	}
	if s := q.Get("since"); s != "" {
		t, err := parseDate(s, false)
		if err != nil {
			return nil, err
		}
		req.Since = &t
	}
	if s := q.Get("until"); s != "" {
		t, err := parseDate(s, true)
		if err != nil {
			return nil, err
		}
		req.Until = &t
	}
	return &req, nil
}

// parseDate accepts RFC3339 or YYYY-MM-DD. A bare date used as an upper bound
// covers the whole day.
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	const dateLayout = "2006-01-02"
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &evm.ValidationError{Message: fmt.Sprintf("invalid date %q: use YYYY-MM-DD (e.g. 2006-01-02) or RFC3339", s)}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
