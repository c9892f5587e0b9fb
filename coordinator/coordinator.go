// Package coordinator implements the rental lifecycle: it orchestrates the
// fleet, the rental ledger, the parking zones and the pricing engine so that
// starting and ending a rental look atomic to callers. All mutation goes
// through the state store's single commit path; an operation either commits
// fully or leaves no trace.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/geo"
	"github.com/velobg/rental-backend/internal/syncbridge"
	"github.com/velobg/rental-backend/notify"
	"github.com/velobg/rental-backend/pricing"
	"github.com/velobg/rental-backend/rental"
	"github.com/velobg/rental-backend/state"
	"github.com/velobg/rental-backend/zone"
)

type Coordinator struct {
	store  *state.Store
	sync   syncbridge.Client
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*Coordinator)

// WithSync attaches a remote sync client. Pushes and photo uploads become
// best-effort side effects of rental operations.
func WithSync(c syncbridge.Client) Option {
	return func(co *Coordinator) { co.sync = c }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(co *Coordinator) { co.now = now }
}

func New(store *state.Store, logger *slog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartRental opens a rental for the user on the given bike and marks the
// bike rented. The two mutations commit together or not at all.
func (c *Coordinator) StartRental(ctx context.Context, userID, bikeID string, start *geo.Point) (rental.Rental, error) {
	var out rental.Rental

	_, err := c.store.Update(func(st state.AppState) (state.AppState, error) {
		if rental.HasActive(st.Rentals, userID) {
			return state.AppState{}, rental.ErrActiveRental
		}

		b, ok := bike.Find(st.Bikes, bikeID)
		if !ok {
			return state.AppState{}, bike.ErrNotFound
		}
		if b.Status != bike.StatusAvailable {
			return state.AppState{}, bike.ErrNotAvailable
		}

		now := c.now()
		bikes, _, err := bike.MarkRented(st.Bikes, bikeID, now)
		if err != nil {
			return state.AppState{}, err
		}
		rentals, r, err := rental.Open(st.Rentals, userID, bikeID, start, now)
		if err != nil {
			return state.AppState{}, err
		}

		n := notify.New(userID, "Rental started",
			fmt.Sprintf("You have rented bike %s.", b.Label), r.ID, now)

		st.Bikes = bikes
		st.Rentals = rentals
		st.Notifications = prepend(st.Notifications, n)
		out = r
		return st, nil
	})
	if err != nil {
		return rental.Rental{}, err
	}

	rentalsStarted.Inc()
	c.pushStateAsync()
	return out, nil
}

// EndRental validates the return (mandatory photo, inside a parking zone),
// prices the elapsed time and finishes the rental, moving the bike to the
// return location. Validation failures leave the rental active so the caller
// can retry with corrected input.
func (c *Coordinator) EndRental(ctx context.Context, rentalID string, end geo.Point, photoRef string) (rental.Rental, error) {
	var out rental.Rental

	_, err := c.store.Update(func(st state.AppState) (state.AppState, error) {
		r, ok := rental.Find(st.Rentals, rentalID)
		if !ok {
			return state.AppState{}, rental.ErrNotFound
		}
		if r.Status != rental.StatusActive {
			return state.AppState{}, rental.ErrNotActive
		}

		b, ok := bike.Find(st.Bikes, r.BikeID)
		if !ok {
			// Data-integrity violation: an active rental must reference an
			// existing bike.
			return state.AppState{}, bike.ErrNotFound
		}

		if photoRef == "" {
			return state.AppState{}, ErrPhotoRequired
		}

		if _, _, inside := zone.FindContaining(end, st.ParkingZones); !inside {
			nz, d, hasNearest := zone.Nearest(end, st.ParkingZones)
			return state.AppState{}, &NotInZoneError{
				Nearest:        nz,
				DistanceMeters: d,
				HasNearest:     hasNearest,
			}
		}

		now := c.now()

		// The remote upload happens before the close commits so a finished
		// rental always carries a resolvable reference. Upload failure keeps
		// the local reference; price accrual is never blocked by network
		// state.
		ref := photoRef
		if c.sync != nil {
			url, err := c.sync.UploadPhoto(ctx, photoRef, "rental")
			if err != nil {
				c.logger.Warn("photo upload failed, keeping local reference",
					"rental_id", rentalID, "error", err)
			} else {
				ref = url
			}
		}

		total := pricing.Price(now.Sub(r.StartAt), b.PricePerHour)

		rentals, closed, err := rental.Close(st.Rentals, rentalID, end, total, ref, now)
		if err != nil {
			return state.AppState{}, err
		}
		bikes, _, err := bike.MarkAvailable(st.Bikes, r.BikeID, &end, now)
		if err != nil {
			return state.AppState{}, err
		}

		n := notify.New(r.UserID, "Rental finished",
			fmt.Sprintf("Rental of bike %s finished. Total: %.2f RSD.", b.Label, total), r.ID, now)

		st.Rentals = rentals
		st.Bikes = bikes
		st.Notifications = prepend(st.Notifications, n)
		out = closed
		return st, nil
	})
	if err != nil {
		return rental.Rental{}, err
	}

	rentalsFinished.Inc()
	c.pushStateAsync()
	return out, nil
}

// pushStateAsync mirrors the committed state to the remote authority without
// blocking the caller. Failures are logged; the local result stands.
func (c *Coordinator) pushStateAsync() {
	if c.sync == nil {
		return
	}
	st := c.store.View()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := c.sync.Push(ctx, st); err != nil {
			c.logger.Warn("state push failed, will sync later", "error", err)
		}
	}()
}

func prepend(ns []notify.Notification, n notify.Notification) []notify.Notification {
	next := make([]notify.Notification, 0, len(ns)+1)
	next = append(next, n)
	return append(next, ns...)
}
