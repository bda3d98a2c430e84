package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dna-status-service/internal/apperr"
	"dna-status-service/internal/mockdata"
	"dna-status-service/internal/model"
	"dna-status-service/internal/service"
	"dna-status-service/internal/statusstore"
)

var noLatency = mockdata.Latency{}

func newStatusService(t *testing.T) (*service.StatusService, *mockdata.AppointmentStore, *statusstore.Store) {
	t.Helper()
	appts := mockdata.NewAppointmentStore(noLatency)
	store := statusstore.New(statusstore.NewMemoryKV())
	svc, err := service.NewStatusService(appts, store)
	require.NoError(t, err)
	return svc, appts, store
}

func TestCurrentStatusDerivesAndPersists(t *testing.T) {
	ctx := context.Background()
	svc, appts, store := newStatusService(t)

	require.NoError(t, appts.Save(ctx, &model.Appointment{
		ID:     "apt-1",
		UserID: "u1",
		Active: true,
		Tasks: []model.Task{
			{TaskType: model.TaskSampleCollection, Status: model.TaskStatusCompleted},
			{TaskType: model.TaskTesting, Status: model.TaskStatusInProgress},
		},
	}))

	st, step, err := svc.CurrentStatus(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusSampleReceived, st)
	assert.Equal(t, 4, step)

	rec, err := store.Load(ctx, "apt-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, model.StatusSampleReceived, rec.Status)
	assert.Equal(t, 4, rec.CurrentStep)
	assert.Len(t, rec.CompletedSteps, 4)
}

func TestCurrentStatusUsesCache(t *testing.T) {
	ctx := context.Background()
	svc, appts, _ := newStatusService(t)

	apt := &model.Appointment{ID: "apt-1", UserID: "u1", Active: true}
	require.NoError(t, appts.Save(ctx, apt))

	st, _, err := svc.CurrentStatus(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, st)

	// El repo cambia por detrás pero la cache sigue sirviendo el valor
	// hasta que llegue un evento de tareas.
	apt.Active = false
	require.NoError(t, appts.Save(ctx, apt))

	st, _, err = svc.CurrentStatus(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, st)
}

func TestApplyTaskSnapshotInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	svc, appts, store := newStatusService(t)

	apt := &model.Appointment{ID: "apt-1", UserID: "u1", Active: true}
	require.NoError(t, appts.Save(ctx, apt))
	_, _, err := svc.CurrentStatus(ctx, "apt-1")
	require.NoError(t, err)

	updated := &model.Appointment{
		ID:     "apt-1",
		UserID: "u1",
		Active: true,
		Tasks: []model.Task{
			{TaskType: model.TaskSampleCollection, Status: model.TaskStatusCompleted},
			{TaskType: model.TaskTesting, Status: model.TaskStatusCompleted},
		},
	}
	st, err := svc.ApplyTaskSnapshot(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, st)

	// La próxima lectura ve el estado nuevo, no el cacheado.
	st, step, err := svc.CurrentStatus(ctx, "apt-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, st)
	assert.Equal(t, 6, step)

	rec, err := store.Load(ctx, "apt-1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, model.StatusCompleted, rec.Status)
}

func TestClearStatus(t *testing.T) {
	ctx := context.Background()
	svc, appts, store := newStatusService(t)

	require.NoError(t, appts.Save(ctx, &model.Appointment{ID: "apt-1", UserID: "u1", Active: true}))
	_, _, err := svc.CurrentStatus(ctx, "apt-1")
	require.NoError(t, err)

	require.NoError(t, svc.ClearStatus(ctx, "apt-1"))
	rec, err := store.Load(ctx, "apt-1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestAppointmentsByStatus(t *testing.T) {
	ctx := context.Background()
	svc, appts, _ := newStatusService(t)

	require.NoError(t, appts.Save(ctx, &model.Appointment{ID: "a1", UserID: "u1", Active: true}))
	require.NoError(t, appts.Save(ctx, &model.Appointment{ID: "a2", UserID: "u2", Active: false}))
	require.NoError(t, appts.Save(ctx, &model.Appointment{
		ID: "a3", UserID: "u3", Active: true,
		Tasks: []model.Task{
			{TaskType: model.TaskSampleCollection, Status: model.TaskStatusCompleted},
			{TaskType: model.TaskTesting, Status: model.TaskStatusCompleted},
		},
	}))

	cancelled, err := svc.AppointmentsByStatus(ctx, model.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, "a2", cancelled[0].ID)

	completed, err := svc.AppointmentsByStatus(ctx, model.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "a3", completed[0].ID)
}

func TestCleanupStoredStatuses(t *testing.T) {
	ctx := context.Background()
	svc, appts, _ := newStatusService(t)

	require.NoError(t, appts.Save(ctx, &model.Appointment{ID: "apt-1", UserID: "u1", Active: true}))
	_, _, err := svc.CurrentStatus(ctx, "apt-1")
	require.NoError(t, err)

	// Nada es más viejo que una semana: el barrido no borra nada.
	removed, err := svc.CleanupStoredStatuses(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func newOrderService() *service.OrderService {
	return service.NewOrderService(mockdata.NewOrderStore(noLatency))
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService()

	o, err := svc.CreateOrder(ctx, "u1", "paternity", 350.0, "card")
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "paternity", o.ServiceType)
	assert.Equal(t, model.OrderPending, o.Status)
	assert.Equal(t, model.PaymentUnpaid, o.PaymentStatus)

	o, err = svc.AddParticipants(ctx, o.ID, "u1", []model.Participant{
		{FullName: "Ana Pérez", Relationship: "madre"},
		{FullName: "Luis Pérez", Relationship: "hijo"},
	})
	require.NoError(t, err)
	assert.Len(t, o.Participants, 2)

	o, err = svc.ProcessPayment(ctx, o.ID, "u1", "card")
	require.NoError(t, err)
	assert.Equal(t, model.OrderProcessing, o.Status)
	assert.Equal(t, model.PaymentPaid, o.PaymentStatus)

	steps, err := svc.GetTracking(ctx, o.ID, "u1", false)
	require.NoError(t, err)
	require.Len(t, steps, 5)
	assert.Equal(t, model.TrackCurrent, steps[2].Status)

	o, err = svc.CompleteOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, o.Status)

	steps, err = svc.GetTracking(ctx, o.ID, "u1", false)
	require.NoError(t, err)
	for _, s := range steps {
		assert.Equal(t, model.TrackCompleted, s.Status)
	}
}

func TestOrderOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService()

	o, err := svc.CreateOrder(ctx, "u1", "paternity", 100, "card")
	require.NoError(t, err)

	_, err = svc.AddParticipants(ctx, o.ID, "otro", []model.Participant{{FullName: "X"}})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.GetTracking(ctx, o.ID, "otro", false)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// El personal del laboratorio sí puede mirar cualquier orden.
	_, err = svc.GetTracking(ctx, o.ID, "otro", true)
	assert.NoError(t, err)
}

func TestPaymentConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService()

	o, err := svc.CreateOrder(ctx, "u1", "paternity", 100, "card")
	require.NoError(t, err)

	_, err = svc.ProcessPayment(ctx, o.ID, "u1", "card")
	require.NoError(t, err)

	_, err = svc.ProcessPayment(ctx, o.ID, "u1", "card")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Con la orden ya en processing no se pueden sumar participantes.
	_, err = svc.AddParticipants(ctx, o.ID, "u1", []model.Participant{{FullName: "X"}})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestCompleteOrderRequiresProcessing(t *testing.T) {
	ctx := context.Background()
	svc := newOrderService()

	o, err := svc.CreateOrder(ctx, "u1", "paternity", 100, "card")
	require.NoError(t, err)

	_, err = svc.CompleteOrder(ctx, o.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
