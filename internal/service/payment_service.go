package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/pkg/logger"
	"qa-assistant-be/internal/repository/contract"
)

// Plan prices in the gateway's smallest currency unit.
var planPrices = map[entity.Plan]int64{
	entity.PlanBasic: 490000,
	entity.PlanPro:   990000,
}

// CheckoutResult is what the client needs to open the gateway's payment
// page.
type CheckoutResult struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

type IPaymentService interface {
	// CreatePlanCheckout opens a checkout session for upgrading to plan.
	CreatePlanCheckout(ctx context.Context, user *entity.User, plan string) (*CheckoutResult, error)
	// HandleNotification processes a gateway webhook callback. The order
	// status is re-checked against the gateway, never trusted from the
	// request body.
	HandleNotification(ctx context.Context, orderID string) error
}

type paymentService struct {
	enabled bool
	snap    snap.Client
	core    coreapi.Client
	orders  contract.PaymentRepository
	users   contract.UserRepository
	log     logger.ILogger
}

func NewPaymentService(serverKey string, production bool, orders contract.PaymentRepository, users contract.UserRepository, log logger.ILogger) IPaymentService {
	s := &paymentService{
		enabled: serverKey != "",
		orders:  orders,
		users:   users,
		log:     log,
	}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	if s.enabled {
		s.snap.New(serverKey, env)
		s.core.New(serverKey, env)
	}
	return s
}

func (s *paymentService) CreatePlanCheckout(ctx context.Context, user *entity.User, plan string) (*CheckoutResult, error) {
	if !s.enabled {
		return nil, apierr.User(apierr.PaymentNotEnabledText)
	}
	price, ok := planPrices[entity.Plan(plan)]
	if !ok {
		return nil, apierr.User(apierr.InvalidPlanText, plan, planList())
	}

	orderID := fmt.Sprintf("plan-%s", uuid.NewString())
	order := &entity.PaymentOrder{
		OrderID:     orderID,
		UserID:      user.UserID,
		Plan:        entity.Plan(plan),
		GrossAmount: price,
		Status:      "pending",
	}
	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	resp, midErr := s.snap.CreateTransaction(&snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: price,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.UserID,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    plan,
			Name:  fmt.Sprintf("Plan upgrade: %s", plan),
			Price: price,
			Qty:   1,
		}},
	})
	if midErr != nil {
		return nil, fmt.Errorf("checkout failed: %s", midErr.GetMessage())
	}
	return &CheckoutResult{
		OrderID:     orderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (s *paymentService) HandleNotification(ctx context.Context, orderID string) error {
	if !s.enabled {
		return apierr.User(apierr.PaymentNotEnabledText)
	}
	if orderID == "" {
		return apierr.MissingParameter("order_id")
	}
	order, err := s.orders.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		// a notification for an order we never issued
		return nil
	}

	status, midErr := s.core.CheckTransaction(orderID)
	if midErr != nil {
		return fmt.Errorf("transaction check failed: %s", midErr.GetMessage())
	}

	switch status.TransactionStatus {
	case "settlement", "capture":
		if err := s.orders.UpdateOrderStatus(ctx, orderID, status.TransactionStatus); err != nil {
			return err
		}
		user, err := s.users.FindByUserID(ctx, order.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return nil
		}
		user.Plan = order.Plan
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		s.log.Info("payment", "plan upgraded", map[string]interface{}{
			"userId":  user.UserID,
			"plan":    string(order.Plan),
			"orderId": orderID,
		})
	case "deny", "cancel", "expire", "failure":
		return s.orders.UpdateOrderStatus(ctx, orderID, status.TransactionStatus)
	}
	return nil
}
