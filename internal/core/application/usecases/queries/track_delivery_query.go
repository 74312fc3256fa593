package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/pkg/guard"
)

var ErrTrackDeliveryQueryIsNotConstructed = errors.New(
	"TrackDeliveryQuery must be created via NewTrackDeliveryQuery constructor",
)

// TrackDeliveryQuery retrieves one delivery by its buyer-facing tracking code.
type TrackDeliveryQuery struct {
	trackingCode string

	guard guard.ConstructorGuard
}

// NewTrackDeliveryQuery creates a tracking query. The code shape is checked
// up front so malformed codes never hit the database.
func NewTrackDeliveryQuery(trackingCode string) (TrackDeliveryQuery, error) {
	if err := delivery.ValidateTrackingCode(trackingCode); err != nil {
		return TrackDeliveryQuery{}, err
	}

	return TrackDeliveryQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrTrackDeliveryQueryIsNotConstructed)
}

// TrackingCode returns the requested tracking code.
func (q TrackDeliveryQuery) TrackingCode() string { return q.trackingCode }

// DeliveryResponse is the delivery read model.
type DeliveryResponse struct {
	ID           string     `json:"id"`
	OrderID      string     `json:"order_id"`
	RiderID      *string    `json:"rider_id,omitempty"`
	TrackingCode string     `json:"tracking_code"`
	PickupLat    float64    `json:"pickup_lat"`
	PickupLon    float64    `json:"pickup_lon"`
	DropoffLat   float64    `json:"dropoff_lat"`
	DropoffLon   float64    `json:"dropoff_lon"`
	Status       string     `json:"status"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	Eta          *time.Time `json:"eta,omitempty"`
	PickedUpAt   *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
