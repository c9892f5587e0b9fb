package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velobg/rental-backend/geo"
)

func TestOpen(t *testing.T) {
	now := time.Now()
	start := &geo.Point{Lat: 44.8158, Lng: 20.46}

	next, r, err := Open(nil, "usr_1", "bike_1", start, now)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, r.Status)
	assert.Equal(t, "usr_1", r.UserID)
	assert.Equal(t, "bike_1", r.BikeID)
	assert.Equal(t, now, r.StartAt)
	assert.NotEmpty(t, r.ID)
	assert.Len(t, next, 1)
	assert.True(t, HasActive(next, "usr_1"))
}

func TestOpen_SecondActiveRentalRejected(t *testing.T) {
	now := time.Now()
	rentals, _, err := Open(nil, "usr_1", "bike_1", nil, now)
	require.NoError(t, err)

	_, _, err = Open(rentals, "usr_1", "bike_2", nil, now)
	assert.ErrorIs(t, err, ErrActiveRental)
	assert.Len(t, rentals, 1)
}

func TestOpen_OtherUserUnaffected(t *testing.T) {
	now := time.Now()
	rentals, _, err := Open(nil, "usr_1", "bike_1", nil, now)
	require.NoError(t, err)

	next, r, err := Open(rentals, "usr_2", "bike_2", nil, now)
	require.NoError(t, err)
	assert.Equal(t, "usr_2", r.UserID)
	assert.Len(t, next, 2)
}

func TestClose(t *testing.T) {
	start := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	rentals, r, err := Open(nil, "usr_1", "bike_1", nil, start)
	require.NoError(t, err)

	endPos := geo.Point{Lat: 44.8166, Lng: 20.4602}
	next, closed, err := Close(rentals, r.ID, endPos, 60.00, "return_1.jpg", end)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, closed.Status)
	require.NotNil(t, closed.EndAt)
	assert.Equal(t, end, *closed.EndAt)
	require.NotNil(t, closed.TotalPrice)
	assert.Equal(t, 60.00, *closed.TotalPrice)
	assert.Equal(t, "return_1.jpg", closed.ReturnPhoto)
	require.NotNil(t, closed.EndPos)
	assert.Equal(t, endPos, *closed.EndPos)
	assert.False(t, closed.EndAt.Before(closed.StartAt))

	assert.False(t, HasActive(next, "usr_1"))
}

func TestClose_NotFound(t *testing.T) {
	_, _, err := Close(nil, "ren_missing", geo.Point{}, 0, "x.jpg", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClose_FinishedRentalCannotReopen(t *testing.T) {
	now := time.Now()
	rentals, r, err := Open(nil, "usr_1", "bike_1", nil, now)
	require.NoError(t, err)

	rentals, _, err = Close(rentals, r.ID, geo.Point{}, 10, "x.jpg", now.Add(time.Minute))
	require.NoError(t, err)

	_, _, err = Close(rentals, r.ID, geo.Point{}, 99, "y.jpg", now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNotActive)

	// First close stands untouched.
	got, ok := Find(rentals, r.ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, *got.TotalPrice)
	assert.Equal(t, "x.jpg", got.ReturnPhoto)
}

func TestActiveForBike(t *testing.T) {
	now := time.Now()
	rentals, r, err := Open(nil, "usr_1", "bike_1", nil, now)
	require.NoError(t, err)

	got, ok := ActiveForBike(rentals, "bike_1")
	require.True(t, ok)
	assert.Equal(t, r.ID, got.ID)

	_, ok = ActiveForBike(rentals, "bike_2")
	assert.False(t, ok)
}
