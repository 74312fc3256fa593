// Package payment contains the Payment aggregate: one attempted charge for
// one order. Payments change state only in response to verified provider
// outcomes, never by direct client action.
package payment
