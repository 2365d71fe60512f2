package http

import (
	"encoding/json"
	"net/http"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/service"
)

type WalletHandler struct {
	walletSvc service.WalletService
}

func NewWalletHandler(walletSvc service.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

type openAccountRequest struct {
	OwnerName string             `json:"owner_name"`
	Type      domain.AccountType `json:"type"`
}

func (h *WalletHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	account, err := h.walletSvc.OpenAccount(r.Context(), req.OwnerName, req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	account, err := h.walletSvc.GetAccount(r.Context(), actor.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	page, pageSize := paging(r)
	txs, total, err := h.walletSvc.GetTransactions(r.Context(), actor.AccountID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txs,
		"total":        total,
	})
}

type movementRequest struct {
	AmountPaise int64  `json:"amount_paise"`
	ProviderRef string `json:"provider_ref"`
}

// Deposit assumes the API gateway already verified the payment provider's
// signature; here the verified amount just enters the ledger.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	tx, err := h.walletSvc.Deposit(r.Context(), actor.AccountID, req.AmountPaise, req.ProviderRef)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	tx, err := h.walletSvc.Withdraw(r.Context(), actor.AccountID, req.AmountPaise, req.ProviderRef)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

type transferRequest struct {
	ToAccountID int64 `json:"to_account_id"`
	AmountPaise int64 `json:"amount_paise"`
}

func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	ref, err := h.walletSvc.Transfer(r.Context(), actor.AccountID, req.ToAccountID, req.AmountPaise)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"transfer_ref": ref})
}
