// Package delivery contains the Delivery aggregate: the shipment of one paid
// order from the vendor's pickup point to the buyer's dropoff point, tracked
// by a human-readable tracking code and handled by a single rider at a time.
package delivery
