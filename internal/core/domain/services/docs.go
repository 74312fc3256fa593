// Package services provides domain services that coordinate business
// operations across multiple aggregates.
//
// The package includes:
//   - RiderDispatcher: selects the nearest available rider for a delivery and
//     executes the claim workflow on the in-memory aggregates.
//
// Domain services implement logic that spans aggregates and does not belong
// to any single one of them.
package services
