package delivery

import "marketplace/internal/pkg/statemachine"

// Status values for the delivery lifecycle, stored as plain strings.
const (
	StatusPending   = "pending"
	StatusAssigned  = "assigned"
	StatusPickedUp  = "picked_up"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// StateMachine declares the allowed delivery transitions. A delivery can fail
// from any active state; delivered and failed are terminal.
var StateMachine = statemachine.MustNew("delivery", map[string][]string{
	StatusPending:   {StatusAssigned, StatusFailed},
	StatusAssigned:  {StatusPickedUp, StatusFailed},
	StatusPickedUp:  {StatusInTransit, StatusFailed},
	StatusInTransit: {StatusDelivered, StatusFailed},
	StatusDelivered: {},
	StatusFailed:    {},
})
