package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/service"
)

type AuctionHandler struct {
	biddingSvc    service.BiddingService
	settlementSvc service.SettlementService
}

func NewAuctionHandler(biddingSvc service.BiddingService, settlementSvc service.SettlementService) *AuctionHandler {
	return &AuctionHandler{biddingSvc: biddingSvc, settlementSvc: settlementSvc}
}

type createListingRequest struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	QuantityKg int32  `json:"quantity_kg"`
}

func (h *AuctionHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	var req createListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	listing, err := h.biddingSvc.CreateListing(r.Context(), actor, req.Name, req.Category, req.QuantityKg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (h *AuctionHandler) ListMyListings(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	listings, err := h.biddingSvc.ListMyListings(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"listings": listings})
}

type startAuctionRequest struct {
	ListingID      int64     `json:"listing_id"`
	BasePricePaise int64     `json:"base_price_paise"`
	QuantityKg     int32     `json:"quantity_kg"`
	Deadline       time.Time `json:"deadline"`
}

func (h *AuctionHandler) StartAuction(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	var req startAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	auction, err := h.biddingSvc.StartAuction(r.Context(), actor, req.ListingID, req.BasePricePaise, req.QuantityKg, req.Deadline)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, auction)
}

type placeBidRequest struct {
	AmountPaise int64 `json:"amount_paise"`
}

func (h *AuctionHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	auctionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid auction id"})
		return
	}
	var req placeBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	auction, err := h.biddingSvc.PlaceBid(r.Context(), actor, auctionID, req.AmountPaise)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auction)
}

func (h *AuctionHandler) CloseAuction(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		return
	}
	auctionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid auction id"})
		return
	}
	auction, err := h.settlementSvc.CloseAuction(r.Context(), actor, auctionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, auction)
}

func (h *AuctionHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	auctionID, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid auction id"})
		return
	}
	auction, bids, err := h.biddingSvc.GetAuction(r.Context(), auctionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"auction": auction,
		"bids":    bids,
	})
}

func (h *AuctionHandler) ListAuctions(w http.ResponseWriter, r *http.Request) {
	status := domain.AuctionStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.AuctionStatusOpen
	}
	page, pageSize := paging(r)
	auctions, total, err := h.biddingSvc.ListAuctions(r.Context(), status, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"auctions": auctions,
		"total":    total,
	})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func paging(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(10)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
