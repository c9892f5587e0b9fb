package coordinator

import (
	"errors"
	"fmt"

	"github.com/velobg/rental-backend/zone"
)

// ErrPhotoRequired rejects a return without the mandatory photo evidence.
var ErrPhotoRequired = errors.New("return photo is required")

// NotInZoneError rejects a return outside every parking zone. It carries the
// nearest zone and the distance to its center so the caller can tell the
// user where to go.
type NotInZoneError struct {
	Nearest        zone.ParkingZone
	DistanceMeters float64
	HasNearest     bool
}

func (e *NotInZoneError) Error() string {
	if !e.HasNearest {
		return "not inside a parking zone"
	}
	return fmt.Sprintf("not inside a parking zone; nearest is %s, %.0f m away",
		e.Nearest.Name, e.DistanceMeters)
}

// NotInZoneFromError unpacks a NotInZoneError, when err is one.
func NotInZoneFromError(err error) (*NotInZoneError, bool) {
	var nze *NotInZoneError
	if errors.As(err, &nze) {
		return nze, true
	}
	return nil, false
}
