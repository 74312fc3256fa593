// Package paymentrepo provides data transfer objects and mapping functions
// for payment persistence. The provider reference column carries a unique
// index; violations surface as conflict errors so webhook and initiation
// races resolve deterministically.
package paymentrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for persisting payment aggregates.
type PaymentDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	Amount           float64   `gorm:"type:numeric(12,2)"`
	Currency         string    `gorm:"type:varchar(3)"`
	Status           string    `gorm:"index"`
	Provider         string
	PayerEmail       string
	ProviderRef      string `gorm:"uniqueIndex:idx_payments_provider_ref,where:provider_ref <> ''"`
	AuthorizationURL string
	Channel          string
	GatewayResponse  string
	ErrorMessage     string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides GORM's default naming to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		Amount:           aggregate.Amount().Amount(),
		Currency:         aggregate.Amount().Currency(),
		Status:           aggregate.Status(),
		Provider:         aggregate.Provider(),
		PayerEmail:       aggregate.PayerEmail(),
		ProviderRef:      aggregate.ProviderRef(),
		AuthorizationURL: aggregate.AuthorizationURL(),
		Channel:          aggregate.Channel(),
		GatewayResponse:  aggregate.GatewayResponse(),
		ErrorMessage:     aggregate.ErrorMessage(),
		PaidAt:           aggregate.PaidAt(),
		CreatedAt:        aggregate.CreatedAt(),
		UpdatedAt:        aggregate.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, orderID, amount,
		dto.Status, dto.Provider, dto.PayerEmail,
		dto.ProviderRef, dto.AuthorizationURL, dto.Channel,
		dto.GatewayResponse, dto.ErrorMessage, dto.PaidAt,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
