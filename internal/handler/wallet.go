package handler

import (
	"net/http"

	"github.com/AlexZinkM/evm-wallet/evm"
	"github.com/AlexZinkM/evm-wallet/internal/model"
)

// Create handles POST /wallet/create
// @Summary      Create wallet
// @Description  Generates a 12-word mnemonic, encrypts it with the password and unlocks the wallet. The mnemonic is returned once.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateRequest  true  "Password and confirmation"
// @Success      200      {object}  model.CreateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/create [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.CreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.Create(req.Password, req.ConfirmPassword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Import handles POST /wallet/import
// @Summary      Import wallet
// @Description  Imports an existing BIP-39 mnemonic and unlocks the wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Mnemonic and password"
// @Success      200      {object}  model.AddressResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.Import(req.Mnemonic, req.Password, req.ConfirmPassword)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Unlock handles POST /wallet/unlock
// @Summary      Unlock wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Password"
// @Success      200      {object}  model.AddressResponse
// @Failure      401      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/unlock [post]
func (h *WalletHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.Unlock(req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Lock handles POST /wallet/lock
// @Summary      Lock wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.MessageResponse
// @Router       /wallet/lock [post]
func (h *WalletHandler) Lock(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h.wallet.Lock()
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Wallet locked"})
}

// Status handles GET /wallet/status
// @Summary      Wallet status
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /wallet/status [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	resp, err := h.wallet.Status()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Mnemonic handles GET /wallet/mnemonic
// @Summary      Preview a fresh mnemonic
// @Description  Generates a random 12-word phrase. Nothing is stored.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.MnemonicResponse
// @Router       /wallet/mnemonic [get]
func (h *WalletHandler) Mnemonic(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	mnemonic, err := evm.NewMnemonic()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MnemonicResponse{Mnemonic: mnemonic})
}

// DeriveAddress handles POST /wallet/addresses
// @Summary      Derive address
// @Description  Derives m/44'/60'/0'/0/{index}, adds it to the address list and selects it
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.DeriveRequest  true  "Address index"
// @Success      200      {object}  model.AddressResponse
// @Failure      423      {object}  model.ErrorResponse
// @Router       /wallet/addresses [post]
func (h *WalletHandler) DeriveAddress(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.DeriveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := evm.ValidateRequest(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.DeriveAddress(*req.Index)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SelectAddress handles POST /wallet/addresses/select
// @Summary      Select address
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SelectAddressRequest  true  "Derived address"
// @Success      200      {object}  model.AddressResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /wallet/addresses/select [post]
func (h *WalletHandler) SelectAddress(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.SelectAddressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := evm.ValidateRequest(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.SelectAddress(req.Address)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Export handles POST /wallet/export
// @Summary      Export mnemonic
// @Description  Re-checks the password and returns the mnemonic
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Password"
// @Success      200      {object}  model.MnemonicResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallet/export [post]
func (h *WalletHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	resp, err := h.wallet.ExportMnemonic(req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}

// ChangePassword handles POST /wallet/password
// @Summary      Change password
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChangePasswordRequest  true  "Old and new password"
// @Success      200      {object}  model.MessageResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallet/password [post]
func (h *WalletHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.ChangePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.wallet.ChangePassword(req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Password changed"})
}

// Remove handles POST /wallet/remove
// @Summary      Remove wallet
// @Description  Deletes the encrypted mnemonic, addresses, token lists and history
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PasswordRequest  true  "Password"
// @Success      200      {object}  model.MessageResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /wallet/remove [post]
func (h *WalletHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req model.PasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.wallet.Remove(req.Password); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Wallet removed"})
}

// Receive handles GET /wallet/receive
// @Summary      Receive
// @Description  Current address with a base64 PNG QR code
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ReceiveResponse
// @Failure      423  {object}  model.ErrorResponse
// @Router       /wallet/receive [get]
func (h *WalletHandler) Receive(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	resp, err := h.wallet.Receive()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
