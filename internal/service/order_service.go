package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dna-status-service/internal/apperr"
	"dna-status-service/internal/model"
	"dna-status-service/internal/tracking"
)

type OrderRepository interface {
	Save(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Order, error)
}

// OrderService maneja el ciclo de vida de la orden: crear, cargar
// participantes, pagar y proyectar la línea de seguimiento.
type OrderService struct {
	repo OrderRepository
}

func NewOrderService(r OrderRepository) *OrderService {
	return &OrderService{repo: r}
}

// CreateOrder registra la orden en estado pending y sin pago.
func (s *OrderService) CreateOrder(ctx context.Context, userID, serviceType string, totalAmount float64, paymentMethod string) (*model.Order, error) {
	o := &model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		ServiceType:   serviceType,
		Status:        model.OrderPending,
		TotalAmount:   totalAmount,
		PaymentMethod: paymentMethod,
		PaymentStatus: model.PaymentUnpaid,
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("creando orden: %w", err)
	}
	return o, nil
}

// AddParticipants carga el detalle de la orden. Solo el dueño puede y
// solo mientras la orden siga en pending.
func (s *OrderService) AddParticipants(ctx context.Context, orderID, actorID string, participants []model.Participant) (*model.Order, error) {
	o, err := s.ownedOrder(ctx, orderID, actorID)
	if err != nil {
		return nil, err
	}
	if o.Status != model.OrderPending {
		return nil, fmt.Errorf("orden %s ya procesada: %w", orderID, apperr.ErrConflict)
	}

	o.Participants = append(o.Participants, participants...)
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ProcessPayment marca la orden como pagada y la pasa a processing.
// Pagar dos veces es un conflicto, no un reintento.
func (s *OrderService) ProcessPayment(ctx context.Context, orderID, actorID, method string) (*model.Order, error) {
	o, err := s.ownedOrder(ctx, orderID, actorID)
	if err != nil {
		return nil, err
	}
	if o.PaymentStatus == model.PaymentPaid {
		return nil, fmt.Errorf("orden %s ya pagada: %w", orderID, apperr.ErrConflict)
	}

	o.PaymentStatus = model.PaymentPaid
	o.PaymentMethod = method
	o.Status = model.OrderProcessing
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// CompleteOrder cierra la orden cuando el resultado está disponible.
// La invoca el personal del laboratorio, no el cliente.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID string) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status != model.OrderProcessing {
		return nil, fmt.Errorf("orden %s no está en procesamiento: %w", orderID, apperr.ErrConflict)
	}

	o.Status = model.OrderCompleted
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// GetTracking devuelve la proyección de 5 etapas de la orden.
func (s *OrderService) GetTracking(ctx context.Context, orderID, actorID string, isStaff bool) ([]model.TrackingStep, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isStaff && o.UserID != actorID {
		return nil, apperr.ErrForbidden
	}
	return tracking.Build(o), nil
}

func (s *OrderService) MyOrders(ctx context.Context, userID string) ([]*model.Order, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *OrderService) ownedOrder(ctx context.Context, orderID, actorID string) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != actorID {
		return nil, apperr.ErrForbidden
	}
	return o, nil
}
