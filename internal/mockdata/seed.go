// seed.go
package mockdata

import (
	"context"
	"log"

	"dna-status-service/internal/model"
)

// Seed carga citas de demostración en los distintos puntos del flujo,
// para poder recorrer el portal sin backend de laboratorio.
func Seed(ctx context.Context, appts *AppointmentStore) {
	demo := []*model.Appointment{
		{
			ID:     "apt-demo-1",
			UserID: "user-demo",
			Active: true,
		},
		{
			ID:             "apt-demo-2",
			UserID:         "user-demo",
			Active:         true,
			HomeCollection: true,
			Tasks: []model.Task{
				{TaskType: model.TaskKitDelivery, Status: model.TaskStatusCompleted},
				{TaskType: model.TaskSampleCollection, Status: model.TaskStatusCompleted},
				{TaskType: model.TaskTesting, Status: model.TaskStatusInProgress},
			},
		},
		{
			ID:     "apt-demo-3",
			UserID: "user-demo",
			Active: true,
			Tasks: []model.Task{
				{TaskType: model.TaskSampleCollection, Status: model.TaskStatusCompleted},
				{TaskType: model.TaskTesting, Status: model.TaskStatusCompleted},
			},
		},
		{
			ID:     "apt-demo-4",
			UserID: "user-demo",
			Active: false,
		},
	}

	for _, a := range demo {
		if err := appts.Save(ctx, a); err != nil {
			log.Println("mockdata: error sembrando cita:", err)
		}
	}
}
