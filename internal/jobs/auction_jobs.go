package jobs

import (
	"context"
	"time"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/logger"
)

// CloseExpiredAuctions is the deadline sweep: every open auction whose
// deadline has passed is settled as the system actor. Each auction closes in
// its own transaction; one failed close is logged and the sweep moves on.
func (jr *JobRunner) CloseExpiredAuctions() {
	jr.runWithRecovery("CloseExpiredAuctions", func() {
		ctx := context.Background()

		expired, err := jr.store.Auctions().ListExpiredOpen(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to list expired auctions", "error", err)
			return
		}
		if len(expired) == 0 {
			logger.Debug("No expired auctions found")
			return
		}

		closed := 0
		for _, auction := range expired {
			if _, err := jr.services.Settlement.CloseAuction(ctx, domain.SystemActor, auction.ID); err != nil {
				logger.Error("Failed to close expired auction", "auction_id", auction.ID, "error", err)
				continue
			}
			closed++
			logger.Debug("Closed expired auction",
				"auction_id", auction.ID,
				"listing_id", auction.ListingID,
				"deadline", auction.Deadline)
		}

		logger.Info("Closed expired auctions", "expired", len(expired), "closed", closed)
	})
}
