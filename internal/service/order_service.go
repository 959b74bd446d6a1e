package service

import (
	"context"
	"fmt"
	"time"

	"roastery/internal/model"
	"roastery/internal/notify"
	"roastery/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	notifier     notify.Notifier
	logger       zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	notifier notify.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
		logger:       logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder persists the order, its items and the stock decrements in a
// single transaction. The customer record is looked up by email and created
// on first purchase. Payment has already been captured when this runs, so a
// failure here is logged with the payment reference for manual
// reconciliation.
func (s *orderService) CreateOrder(ctx context.Context, draft *model.OrderDraft) (*model.OrderReceipt, error) {
	if draft == nil || len(draft.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("payment_ref", draft.PaymentRef).Msg("failed to begin transaction")
		return nil, model.ErrOrderPersistFailed
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()

	// Customer lookup-or-create by email.
	customer, err := s.customerRepo.GetByEmail(ctx, tx, draft.Customer.Email)
	if err != nil {
		s.logger.Error().Err(err).Str("payment_ref", draft.PaymentRef).Msg("customer lookup failed")
		return nil, model.ErrOrderPersistFailed
	}

	isNewCustomer := customer == nil
	if isNewCustomer {
		customer = &model.Customer{
			ID:        uuid.New(),
			Email:     draft.Customer.Email,
			FullName:  draft.Customer.FullName,
			Phone:     draft.Customer.Phone,
			CreatedAt: now,
		}
		if err = s.customerRepo.Create(ctx, tx, customer); err != nil {
			s.logger.Error().Err(err).Str("payment_ref", draft.PaymentRef).Msg("customer creation failed")
			return nil, model.ErrOrderPersistFailed
		}
	}

	order := &model.Order{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		FullName:     draft.Customer.FullName,
		Email:        draft.Customer.Email,
		Phone:        draft.Customer.Phone,
		Emirate:      draft.Shipping.Emirate,
		City:         draft.Shipping.City,
		Address:      draft.Shipping.Address,
		Subtotal:     draft.Subtotal,
		ShippingCost: draft.ShippingCost,
		Discount:     draft.Discount,
		Total:        draft.Total,
		PaymentRef:   draft.PaymentRef,
		Status:       model.OrderStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID.String()).
			Str("payment_ref", draft.PaymentRef).
			Msg("failed to create order")
		return nil, model.ErrOrderPersistFailed
	}

	items := make([]model.OrderItem, len(draft.Items))
	for i, item := range draft.Items {
		item.ID = uuid.New()
		item.OrderID = order.ID
		items[i] = item
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID.String()).
			Str("payment_ref", draft.PaymentRef).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, model.ErrOrderPersistFailed
	}

	// Stock decrements run inside the same transaction so an oversell
	// aborts the whole order.
	for _, item := range items {
		if err = s.orderRepo.DecrementStock(ctx, tx, item.VariationID, item.Quantity); err != nil {
			s.logger.Error().Err(err).
				Str("order_id", order.ID.String()).
				Str("variation_id", item.VariationID.String()).
				Str("payment_ref", draft.PaymentRef).
				Msg("stock decrement failed")
			if err == model.ErrInsufficientStock {
				return nil, model.ErrInsufficientStock
			}
			return nil, model.ErrOrderPersistFailed
		}
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).
			Str("order_id", order.ID.String()).
			Str("payment_ref", draft.PaymentRef).
			Msg("failed to commit order transaction")
		return nil, model.ErrOrderPersistFailed
	}

	if isNewCustomer {
		s.notifier.NewCustomerCredentials(ctx, customer.Email, customer.FullName)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("payment_ref", draft.PaymentRef).
		Int("item_count", len(items)).
		Bool("new_customer", isNewCustomer).
		Msg("order created successfully")

	return &model.OrderReceipt{
		OrderID:       order.ID,
		IsNewCustomer: isNewCustomer,
	}, nil
}

// GetByID retrieves an order with its line items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, items, nil
}

// UpdateStatus moves an order to a new status, refusing transitions out of
// terminal states.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, model.ErrInvalidStatus
	}

	current, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if current == nil {
		return nil, model.ErrOrderNotFound
	}
	if current.Status.Terminal() && current.Status != status {
		return nil, model.ErrStatusTerminal
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if updated == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(current.Status)).
		Str("to", string(status)).
		Msg("order status updated")

	return updated, nil
}
