// dto.go
package dto

import "dna-status-service/internal/model"

// CreateOrderRequest inicia una orden de test de ADN.
type CreateOrderRequest struct {
	ServiceType   string  `json:"serviceType" binding:"required"`
	TotalAmount   float64 `json:"totalAmount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod"`
}

type ParticipantDTO struct {
	FullName     string `json:"fullName" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
	SampleType   string `json:"sampleType"`
}

// AddParticipantsRequest agrega las personas que aportan muestra.
type AddParticipantsRequest struct {
	Participants []ParticipantDTO `json:"participants" binding:"required,min=1,dive"`
}

type PaymentRequest struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// AppointmentStatusResponse es lo que consume el stepper del portal.
type AppointmentStatusResponse struct {
	AppointmentID  string                  `json:"appointmentId"`
	Status         model.AppointmentStatus `json:"status"`
	CurrentStep    int                     `json:"currentStep"`
	Progress       float64                 `json:"progress"`
	CompletedSteps []string                `json:"completedSteps"`
}

// TaskEventRequest replica el mensaje que llega por Rabbit, para poder
// inyectar snapshots por API en pruebas manuales.
type TaskEventRequest struct {
	AppointmentID string       `json:"appointmentId" binding:"required"`
	UserID        string       `json:"userId"`
	Active        *bool        `json:"active" binding:"required"`
	Tasks         []model.Task `json:"tasks"`
}

func (p ParticipantDTO) ToModel() model.Participant {
	return model.Participant{
		FullName:     p.FullName,
		Relationship: p.Relationship,
		SampleType:   p.SampleType,
	}
}
