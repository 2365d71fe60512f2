package service

import (
	"context"
	"fmt"
	"strconv"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/repository"
	"agriconnect-backend/internal/utils"
)

type bookingService struct {
	store     repository.Store
	publisher events.Publisher
	notifier  notifier
}

func NewBookingService(store repository.Store, publisher events.Publisher) BookingService {
	return &bookingService{
		store:     store,
		publisher: publisher,
		notifier:  notifier{notes: store.Notifications(), publisher: publisher},
	}
}

// BookStorage charges the renter's wallet and credits the unit owner in one
// transaction. Unlike bids there is no escrow leg; the fee settles directly.
func (s *bookingService) BookStorage(ctx context.Context, actor domain.Actor, ownerAccountID int64, unitName string, feePaise int64) (*domain.Booking, error) {
	if feePaise <= 0 {
		return nil, fmt.Errorf("%w: storage fee must be positive", domain.ErrInvalidState)
	}

	var booking *domain.Booking
	err := s.store.WithTx(ctx, func(st repository.Store) error {
		booking = &domain.Booking{
			UnitName:        unitName,
			RenterAccountID: actor.AccountID,
			OwnerAccountID:  ownerAccountID,
			FeePaise:        feePaise,
		}
		if err := st.Bookings().Create(ctx, booking); err != nil {
			return err
		}

		ref := strconv.FormatInt(booking.ID, 10)
		if _, err := st.Ledger().ApplyMovement(ctx, actor.AccountID, -feePaise, domain.CategoryStorageFee, domain.ReferenceBooking, ref); err != nil {
			return err
		}
		if _, err := st.Ledger().ApplyMovement(ctx, ownerAccountID, feePaise, domain.CategoryStorageFee, domain.ReferenceBooking, ref); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	attrs := map[string]string{"booking_id": strconv.FormatInt(booking.ID, 10)}
	s.notifier.send(ctx, ownerAccountID, "Storage booked",
		fmt.Sprintf("Your storage unit %q was booked for %s.", unitName, utils.FormatPaise(feePaise)), attrs)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64) error {
	var booking *domain.Booking
	err := s.store.WithTx(ctx, func(st repository.Store) error {
		b, err := st.Bookings().GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.RenterAccountID != actor.AccountID {
			return fmt.Errorf("%w: only the renter can cancel a booking", domain.ErrUnauthorized)
		}
		if b.Status != domain.BookingStatusActive {
			return fmt.Errorf("%w: booking is not active", domain.ErrInvalidState)
		}

		ref := strconv.FormatInt(b.ID, 10)
		if _, err := st.Ledger().ApplyMovement(ctx, b.OwnerAccountID, -b.FeePaise, domain.CategoryStorageRefund, domain.ReferenceBooking, ref); err != nil {
			return err
		}
		if _, err := st.Ledger().ApplyMovement(ctx, b.RenterAccountID, b.FeePaise, domain.CategoryStorageRefund, domain.ReferenceBooking, ref); err != nil {
			return err
		}
		if err := st.Bookings().UpdateStatus(ctx, b.ID, domain.BookingStatusCancelled); err != nil {
			return err
		}
		booking = b
		return nil
	})
	if err != nil {
		return err
	}

	attrs := map[string]string{"booking_id": strconv.FormatInt(booking.ID, 10)}
	s.notifier.send(ctx, booking.OwnerAccountID, "Booking cancelled",
		fmt.Sprintf("The booking of %q was cancelled and the fee refunded.", booking.UnitName), attrs)
	return nil
}

func (s *bookingService) ListBookings(ctx context.Context, renterAccountID int64) ([]domain.Booking, error) {
	return s.store.Bookings().ListByRenter(ctx, renterAccountID)
}
