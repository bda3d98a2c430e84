// Package mockdata implementa los repositorios en memoria del modo demo.
// Simula la latencia de red con una espera cancelable por contexto, así
// el resto del servicio no distingue entre el mock y Mongo.
package mockdata

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"dna-status-service/internal/apperr"
	"dna-status-service/internal/model"
)

// Latency acota el retardo artificial de cada llamada.
type Latency struct {
	Min time.Duration
	Max time.Duration
}

// DefaultLatency imita la latencia del backend real (200-1000 ms).
var DefaultLatency = Latency{Min: 200 * time.Millisecond, Max: 1000 * time.Millisecond}

func (l Latency) wait(ctx context.Context) error {
	d := l.Min
	if l.Max > l.Min {
		d += time.Duration(rand.Int63n(int64(l.Max - l.Min)))
	}
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type AppointmentStore struct {
	mu      sync.RWMutex
	appts   map[string]*model.Appointment
	latency Latency
}

func NewAppointmentStore(latency Latency) *AppointmentStore {
	return &AppointmentStore{
		appts:   make(map[string]*model.Appointment),
		latency: latency,
	}
}

func (s *AppointmentStore) Save(ctx context.Context, a *model.Appointment) error {
	if err := s.latency.wait(ctx); err != nil {
		return err
	}
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	cp := *a
	s.mu.Lock()
	s.appts[a.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *AppointmentStore) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appts[id]
	if !ok {
		return nil, fmt.Errorf("cita %s: %w", id, apperr.ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (s *AppointmentStore) FindByUserID(ctx context.Context, userID string) ([]*model.Appointment, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Appointment
	for _, a := range s.appts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *AppointmentStore) FindAll(ctx context.Context) ([]*model.Appointment, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Appointment, 0, len(s.appts))
	for _, a := range s.appts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

type OrderStore struct {
	mu      sync.RWMutex
	orders  map[string]*model.Order
	latency Latency
}

func NewOrderStore(latency Latency) *OrderStore {
	return &OrderStore{
		orders:  make(map[string]*model.Order),
		latency: latency,
	}
}

func (s *OrderStore) Save(ctx context.Context, o *model.Order) error {
	if err := s.latency.wait(ctx); err != nil {
		return err
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	cp := *o
	s.mu.Lock()
	s.orders[o.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("orden %s: %w", id, apperr.ErrNotFound)
	}
	cp := *o
	return &cp, nil
}

func (s *OrderStore) FindByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	if err := s.latency.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}
