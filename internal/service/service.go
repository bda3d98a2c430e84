package service

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"dna-status-service/internal/model"
	"dna-status-service/internal/status"
	"dna-status-service/internal/statusstore"
)

// Interfaces que deben implementar repository y mockdata
type AppointmentRepository interface {
	Save(ctx context.Context, a *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Appointment, error)
	FindAll(ctx context.Context) ([]*model.Appointment, error)
}

const statusCacheSize = 256

// StatusService deriva el estado de las citas y mantiene el registro
// persistido que el portal muestra cuando el laboratorio no responde.
type StatusService struct {
	repo  AppointmentRepository
	store *statusstore.Store
	cache *lru.Cache[string, model.AppointmentStatus]
}

func NewStatusService(repo AppointmentRepository, store *statusstore.Store) (*StatusService, error) {
	cache, err := lru.New[string, model.AppointmentStatus](statusCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creando cache de estados: %w", err)
	}
	return &StatusService{repo: repo, store: store, cache: cache}, nil
}

// CurrentStatus deriva el estado desde el snapshot de tareas, lo cachea
// y persiste el registro para lecturas sin backend.
func (s *StatusService) CurrentStatus(ctx context.Context, appointmentID string) (model.AppointmentStatus, int, error) {
	if st, ok := s.cache.Get(appointmentID); ok {
		return st, status.StepOf(st), nil
	}

	apt, err := s.repo.FindByID(ctx, appointmentID)
	if err != nil {
		return "", 0, err
	}

	st := status.Derive(apt.Active, apt.Tasks)
	step := status.StepOf(st)
	s.cache.Add(appointmentID, st)
	s.store.Save(ctx, appointmentID, st, step)
	return st, step, nil
}

// StoredRecord devuelve el último registro persistido, o nil si no hay.
func (s *StatusService) StoredRecord(ctx context.Context, appointmentID string) (*model.AppointmentStatusRecord, error) {
	return s.store.Load(ctx, appointmentID)
}

// ClearStatus borra el registro persistido y la entrada de cache.
func (s *StatusService) ClearStatus(ctx context.Context, appointmentID string) error {
	s.cache.Remove(appointmentID)
	return s.store.Clear(ctx, appointmentID)
}

// ApplyTaskSnapshot actualiza el espejo local de la cita con lo que
// reporta el laboratorio, invalida la cache y persiste el estado nuevo.
// Lo invoca el consumer de Rabbit en cada evento de tareas.
func (s *StatusService) ApplyTaskSnapshot(ctx context.Context, apt *model.Appointment) (model.AppointmentStatus, error) {
	if err := s.repo.Save(ctx, apt); err != nil {
		return "", err
	}

	st := status.Derive(apt.Active, apt.Tasks)
	s.cache.Add(apt.ID, st)
	s.store.Save(ctx, apt.ID, st, status.StepOf(st))
	return st, nil
}

// MyAppointments lista las citas del usuario con su estado derivado.
func (s *StatusService) MyAppointments(ctx context.Context, userID string) ([]*model.Appointment, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *StatusService) AllAppointments(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.FindAll(ctx)
}

// AppointmentsByStatus filtra por estado derivado. El estado no vive en
// la base: se recalcula cita por cita sobre el snapshot.
func (s *StatusService) AppointmentsByStatus(ctx context.Context, want model.AppointmentStatus) ([]*model.Appointment, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Appointment
	for _, a := range all {
		if status.Derive(a.Active, a.Tasks) == want {
			out = append(out, a)
		}
	}
	return out, nil
}

// CleanupStoredStatuses barre los registros viejos o corruptos.
func (s *StatusService) CleanupStoredStatuses(ctx context.Context, maxAge time.Duration) (int, error) {
	return s.store.Cleanup(ctx, maxAge)
}
