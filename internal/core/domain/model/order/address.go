package order

import (
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using an improperly initialized
// Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the shipping destination of an order. Line and city are
// required; region is optional.
type Address struct { //nolint:recvcheck //using for validation
	line   string
	city   string
	region string
	guard  guard.ConstructorGuard
}

// NewAddress creates a validated shipping address.
func NewAddress(line, city, region string) (Address, error) {
	if line == "" {
		return Address{}, errs.NewValidationError("valid shipping address is required")
	}
	if city == "" {
		return Address{}, errs.NewValidationError("valid shipping address is required")
	}

	return Address{
		line:   line,
		city:   city,
		region: region,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrAddressIsNotConstructed for the zero value.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Line returns the street line of the address.
func (a Address) Line() string {
	return a.line
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// Region returns the region of the address, possibly empty.
func (a Address) Region() string {
	return a.region
}
