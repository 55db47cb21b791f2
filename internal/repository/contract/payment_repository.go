package contract

import (
	"context"

	"qa-assistant-be/internal/entity"
)

// PaymentRepository stores checkout orders so gateway notifications can be
// mapped back to the user and plan they pay for.
type PaymentRepository interface {
	CreateOrder(ctx context.Context, order *entity.PaymentOrder) error
	// FindOrder returns (nil, nil) for unknown order ids.
	FindOrder(ctx context.Context, orderID string) (*entity.PaymentOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) error
}
