package state

import (
	"time"

	"github.com/velobg/rental-backend/bike"
	"github.com/velobg/rental-backend/user"
	"github.com/velobg/rental-backend/zone"
)

// Seed returns the initial fleet used when no state file exists yet:
// ten bikes and six parking zones around central Belgrade.
func Seed() AppState {
	now := time.Now()

	return AppState{
		Bikes: []bike.Bike{
			{ID: "bike_1", Label: "BG-001", Type: bike.TypeCity, PricePerHour: 120, Lat: 44.8158, Lng: 20.4600, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_2", Label: "BG-002", Type: bike.TypeEBike, PricePerHour: 220, Lat: 44.8142, Lng: 20.4555, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_3", Label: "BG-003", Type: bike.TypeMTB, PricePerHour: 160, Lat: 44.8206, Lng: 20.4526, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_4", Label: "BG-004", Type: bike.TypeCity, PricePerHour: 120, Lat: 44.8017, Lng: 20.4657, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_5", Label: "BG-005", Type: bike.TypeCity, PricePerHour: 120, Lat: 44.8036, Lng: 20.4688, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_6", Label: "BG-006", Type: bike.TypeEBike, PricePerHour: 220, Lat: 44.8150, Lng: 20.4335, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_7", Label: "BG-007", Type: bike.TypeMTB, PricePerHour: 160, Lat: 44.8165, Lng: 20.4360, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_8", Label: "BG-008", Type: bike.TypeCity, PricePerHour: 120, Lat: 44.8050, Lng: 20.4860, Status: bike.StatusAvailable, UpdatedAt: now},
			{ID: "bike_9", Label: "BG-009", Type: bike.TypeEBike, PricePerHour: 220, Lat: 44.8040, Lng: 20.4900, Status: bike.StatusMaintenance, UpdatedAt: now},
			{ID: "bike_10", Label: "BG-010", Type: bike.TypeCity, PricePerHour: 120, Lat: 44.7920, Lng: 20.4750, Status: bike.StatusDisabled, UpdatedAt: now},
		},
		ParkingZones: []zone.ParkingZone{
			{ID: "pz_1", Name: "Trg Republike", Lat: 44.8166, Lng: 20.4602, RadiusMeters: 180, Capacity: 15},
			{ID: "pz_2", Name: "Kalemegdan", Lat: 44.8231, Lng: 20.4502, RadiusMeters: 220, Capacity: 20},
			{ID: "pz_3", Name: "Slavija", Lat: 44.8025, Lng: 20.4661, RadiusMeters: 200, Capacity: 18},
			{ID: "pz_4", Name: "Ušće", Lat: 44.8160, Lng: 20.4345, RadiusMeters: 240, Capacity: 25},
			{ID: "pz_5", Name: "Vukov spomenik", Lat: 44.8047, Lng: 20.4867, RadiusMeters: 200, Capacity: 15},
			{ID: "pz_6", Name: "Bilećka 14", Lat: 44.7732, Lng: 20.4785, RadiusMeters: 100, Capacity: 8},
		},
	}
}

// SeedAdmins returns the default console operator. The password should be
// changed on first login.
func SeedAdmins() ([]user.Admin, error) {
	hash, err := user.HashPassword("admin123")
	if err != nil {
		return nil, err
	}
	return []user.Admin{
		{
			ID:           "admin_1",
			Username:     "admin",
			PasswordHash: hash,
			FirstName:    "System",
			LastName:     "Administrator",
			CreatedAt:    time.Now(),
		},
	}, nil
}
