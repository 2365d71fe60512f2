package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/security"
	"agriconnect-backend/internal/service"
)

// Handlers groups everything the router needs.
type Handlers struct {
	Wallet       *WalletHandler
	Auction      *AuctionHandler
	Booking      *BookingHandler
	Notification *NotificationHandler
	Websocket    *WebsocketHandler
}

func NewHandlers(
	walletSvc service.WalletService,
	biddingSvc service.BiddingService,
	settlementSvc service.SettlementService,
	bookingSvc service.BookingService,
	noteSvc service.NotificationService,
	hub *events.Hub,
) *Handlers {
	return &Handlers{
		Wallet:       NewWalletHandler(walletSvc),
		Auction:      NewAuctionHandler(biddingSvc, settlementSvc),
		Booking:      NewBookingHandler(bookingSvc),
		Notification: NewNotificationHandler(noteSvc),
		Websocket:    NewWebsocketHandler(hub),
	}
}

// NewRouter wires all API routes. Auction reads are public; everything else
// requires a valid bearer token.
func NewRouter(h *Handlers, tokenManager security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	auth := NewAuthMiddleware(tokenManager)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	v1 := router.PathPrefix("/v1").Subrouter()

	// Public reads.
	v1.HandleFunc("/auctions", h.Auction.ListAuctions).Methods("GET")
	v1.HandleFunc("/auctions/{id:[0-9]+}", h.Auction.GetAuction).Methods("GET")

	authed := v1.NewRoute().Subrouter()
	authed.Use(auth.Handler)

	authed.HandleFunc("/accounts", h.Wallet.OpenAccount).Methods("POST")
	authed.HandleFunc("/wallet", h.Wallet.GetWallet).Methods("GET")
	authed.HandleFunc("/wallet/transactions", h.Wallet.GetTransactions).Methods("GET")
	authed.HandleFunc("/wallet/deposit", h.Wallet.Deposit).Methods("POST")
	authed.HandleFunc("/wallet/withdraw", h.Wallet.Withdraw).Methods("POST")
	authed.HandleFunc("/wallet/transfer", h.Wallet.Transfer).Methods("POST")

	authed.HandleFunc("/listings", h.Auction.CreateListing).Methods("POST")
	authed.HandleFunc("/listings", h.Auction.ListMyListings).Methods("GET")

	authed.HandleFunc("/auctions", h.Auction.StartAuction).Methods("POST")
	authed.HandleFunc("/auctions/{id:[0-9]+}/bids", h.Auction.PlaceBid).Methods("POST")
	authed.HandleFunc("/auctions/{id:[0-9]+}/close", h.Auction.CloseAuction).Methods("POST")

	authed.HandleFunc("/bookings", h.Booking.BookStorage).Methods("POST")
	authed.HandleFunc("/bookings", h.Booking.ListBookings).Methods("GET")
	authed.HandleFunc("/bookings/{id:[0-9]+}/cancel", h.Booking.CancelBooking).Methods("POST")

	authed.HandleFunc("/notifications", h.Notification.List).Methods("GET")
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkAsRead).Methods("POST")

	authed.HandleFunc("/ws", h.Websocket.Serve).Methods("GET")

	return router
}
