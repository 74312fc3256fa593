package services

import (
	"math"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/pkg/errs"
)

// RiderDispatcher is a domain service that selects the best rider for a
// delivery.
//
// Business rules:
//   - Only active, available riders are considered
//   - Selection minimizes straight-line distance to the pickup point
//   - The first rider wins in case of ties
//
// The dispatcher operates on in-memory aggregates only. Protecting the claim
// against concurrent dispatchers is the job of the storage layer, which
// performs the availability flip conditionally.
type RiderDispatcher struct{}

// NewRiderDispatcher creates a new RiderDispatcher instance.
func NewRiderDispatcher() RiderDispatcher {
	return RiderDispatcher{}
}

// SelectRider evaluates candidates against the delivery's pickup point and
// returns the closest available one. It returns errs.ErrNoCapacity when no
// candidate qualifies.
func (d RiderDispatcher) SelectRider(dlv *delivery.Delivery, candidates []*rider.Rider) (*rider.Rider, error) {
	if err := dlv.Validate(); err != nil {
		return nil, err
	}

	var best *rider.Rider
	bestDistance := math.MaxFloat64

	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			return nil, err
		}

		if !candidate.IsAvailable() {
			continue
		}

		distance, err := candidate.DistanceTo(dlv.Pickup())
		if err != nil {
			return nil, err
		}

		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, errs.NewNoCapacityError("no available rider for delivery")
	}

	return best, nil
}
