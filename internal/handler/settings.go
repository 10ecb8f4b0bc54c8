package handler

import (
	"net/http"

	"github.com/AlexZinkM/evm-wallet/evm"
	"github.com/AlexZinkM/evm-wallet/internal/model"
)

// Chains handles GET and POST /chains
// @Summary      List or add networks
// @Description  GET lists built-in and custom chains. POST adds a custom chain and selects it; all fields are required.
// @Tags         chains
// @Accept       json
// @Produce      json
// @Param        request  body      model.Chain  false  "Chain to add (POST)"
// @Success      200      {object}  model.ChainsResponse
// @Success      201      {object}  model.Chain
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /chains [get]
// @Router       /chains [post]
func (h *WalletHandler) Chains(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.wallet.Chains())
	case http.MethodPost:
		var req model.Chain
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
		chain, err := h.wallet.AddChain(req)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, chain)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// SelectChain handles POST /chains/select
// @Summary      Select network
// @Tags         chains
// @Accept       json
// @Produce      json
// @Param        request  body      model.SelectChainRequest  true  "Chain ID"
// @Success      200      {object}  model.Chain
// @Failure      404      {object}  model.ErrorResponse
// @Router       /chains/select [post]
func (h *WalletHandler) SelectChain(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.SelectChainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := evm.ValidateRequest(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	chain, err := h.wallet.SelectChain(req.ChainID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chain)
}

// RemoveChain handles POST /chains/remove
// @Summary      Remove custom network
// @Tags         chains
// @Accept       json
// @Produce      json
// @Param        request  body      model.SelectChainRequest  true  "Chain ID"
// @Success      200      {object}  model.MessageResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /chains/remove [post]
func (h *WalletHandler) RemoveChain(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.SelectChainRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := evm.ValidateRequest(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.wallet.RemoveChain(req.ChainID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Network removed"})
}

// Tokens handles GET and POST /tokens
// @Summary      List or add tokens
// @Description  Tokens of the current chain, native first. POST adds an ERC-20 token.
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        request  body      model.AddTokenRequest  false  "Token to add (POST)"
// @Success      200      {object}  model.TokensResponse
// @Success      201      {object}  model.Token
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /tokens [get]
// @Router       /tokens [post]
func (h *WalletHandler) Tokens(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.wallet.Tokens())
	case http.MethodPost:
		var req model.AddTokenRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.writeError(w, r, err)
			return
		}
		token, err := h.wallet.AddToken(req)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, token)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// RemoveToken handles POST /tokens/remove
// @Summary      Remove token
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        request  body      model.RemoveTokenRequest  true  "Token symbol"
// @Success      200      {object}  model.MessageResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /tokens/remove [post]
func (h *WalletHandler) RemoveToken(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.RemoveTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := evm.ValidateRequest(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.wallet.RemoveToken(req.Symbol); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Token removed"})
}
