// Package order contains the Order aggregate: the marketplace's record of one
// buyer purchasing one part from one vendor. The aggregate owns the order
// status state machine; other coordinators request transitions through the
// order coordinator's public operations and never mutate an order directly.
package order
