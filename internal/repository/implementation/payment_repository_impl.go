package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/model"
	"qa-assistant-be/internal/repository/contract"
)

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) CreateOrder(ctx context.Context, order *entity.PaymentOrder) error {
	m := &model.PaymentOrder{
		OrderID:     order.OrderID,
		UserID:      order.UserID,
		Plan:        string(order.Plan),
		GrossAmount: order.GrossAmount,
		Status:      order.Status,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *PaymentRepositoryImpl) FindOrder(ctx context.Context, orderID string) (*entity.PaymentOrder, error) {
	var m model.PaymentOrder
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.PaymentOrder{
		OrderID:     m.OrderID,
		UserID:      m.UserID,
		Plan:        entity.Plan(m.Plan),
		GrossAmount: m.GrossAmount,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func (r *PaymentRepositoryImpl) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	result := r.db.WithContext(ctx).Model(&model.PaymentOrder{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}
