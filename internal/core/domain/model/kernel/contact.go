package kernel

import (
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when attempting to use an improperly
// initialized Contact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError(
	"contact must be created via NewContact constructor")

// Contact is a customer or rider contact: a display name plus a phone number,
// optionally an email address. Used on deliveries and notification payloads.
type Contact struct { //nolint:recvcheck //using for validation
	name  string
	phone string
	email string
	guard guard.ConstructorGuard
}

// NewContact creates a Contact. Name and phone are required; email may be
// empty.
func NewContact(name, phone, email string) (Contact, error) {
	if name == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact name")
	}
	if phone == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact phone")
	}

	return Contact{
		name:  name,
		phone: phone,
		email: email,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrContactIsNotConstructed for the zero value.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// Name returns the contact display name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact phone number.
func (c Contact) Phone() string {
	return c.phone
}

// Email returns the contact email, possibly empty.
func (c Contact) Email() string {
	return c.email
}
