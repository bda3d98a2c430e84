package rabbit

import (
	"context"
	"encoding/json"
	"log"

	"dna-status-service/internal/model"
	"dna-status-service/internal/service"
)

type TaskEventConsumer struct {
	Service *service.StatusService
}

func NewTaskEventConsumer(s *service.StatusService) *TaskEventConsumer {
	return &TaskEventConsumer{Service: s}
}

// TaskEventMessage es el evento que publica el backend de laboratorio
// cada vez que cambia una tarea. Trae el snapshot completo: acá no se
// aplican deltas, se recalcula todo de cero.
type TaskEventMessage struct {
	CorrelationID string `json:"correlation_id"`
	Exchange      string `json:"exchange"`
	RoutingKey    string `json:"routing_key"`
	Message       struct {
		AppointmentID  string       `json:"appointmentId"`
		UserID         string       `json:"userId"`
		Active         bool         `json:"active"`
		HomeCollection bool         `json:"homeCollection"`
		Tasks          []model.Task `json:"tasks"`
	} `json:"message"`
}

func (c *TaskEventConsumer) Handle(msg []byte) error {
	log.Println("[Rabbit] Evento recibido: lab_task_update")

	var event TaskEventMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		log.Println("Error parseando mensaje:", err)
		return err
	}

	st, err := c.Service.ApplyTaskSnapshot(context.Background(), &model.Appointment{
		ID:             event.Message.AppointmentID,
		UserID:         event.Message.UserID,
		Active:         event.Message.Active,
		HomeCollection: event.Message.HomeCollection,
		Tasks:          event.Message.Tasks,
	})
	if err != nil {
		log.Println("Error aplicando snapshot de tareas:", err)
		return err
	}

	log.Printf("Estado recalculado para cita %s: %s", event.Message.AppointmentID, st)
	return nil
}
