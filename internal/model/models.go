// models.go
package model

import "time"

// AppointmentStatus es el estado derivado de una cita de toma de muestra.
// El orden importa: Pending < Confirmed < KitDelivered < SampleReceived < Testing < Completed.
type AppointmentStatus string

const (
	StatusPending        AppointmentStatus = "Pending"
	StatusConfirmed      AppointmentStatus = "Confirmed"
	StatusKitDelivered   AppointmentStatus = "KitDelivered"
	StatusSampleReceived AppointmentStatus = "SampleReceived"
	StatusTesting        AppointmentStatus = "Testing"
	StatusCompleted      AppointmentStatus = "Completed"

	// Estado absorbente: se llega desde cualquier estado y no tiene salida.
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Tipos de tarea que reporta el backend de laboratorio.
const (
	TaskSampleCollection = "SAMPLE_COLLECTION"
	TaskTesting          = "TESTING"
	TaskKitDelivery      = "KIT_DELIVERY"
)

// Estados de una tarea individual.
const (
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusPending    = "PENDING"
)

// Task es una unidad de trabajo del laboratorio asociada a una cita.
// La crea y la muta el backend de laboratorio; acá solo leemos el snapshot.
type Task struct {
	TaskType string `bson:"task_type" json:"taskType"`
	Status   string `bson:"status" json:"status"`
}

// Appointment es el espejo local de una cita, tal como la reporta el laboratorio.
type Appointment struct {
	ID             string    `bson:"appointment_id" json:"appointmentId"`
	UserID         string    `bson:"user_id" json:"userId"`
	Active         bool      `bson:"active" json:"active"`
	HomeCollection bool      `bson:"home_collection" json:"homeCollection"`
	Tasks          []Task    `bson:"tasks" json:"tasks"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// AppointmentStatusRecord es el registro persistido del último estado conocido.
// Invariante: CompletedSteps es siempre el prefijo de la secuencia canónica
// de 6 pasos, de largo CurrentStep.
type AppointmentStatusRecord struct {
	ID             string            `json:"id"`
	CurrentStep    int               `json:"currentStep"`
	Status         AppointmentStatus `json:"status"`
	LastUpdated    time.Time         `json:"lastUpdated"`
	CompletedSteps []string          `json:"completedSteps"`
}

// Estados gruesos de una orden de compra.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
)

// Estados de pago.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// Participant es una persona que aporta muestra dentro de una orden.
type Participant struct {
	FullName     string `bson:"full_name" json:"fullName"`
	Relationship string `bson:"relationship" json:"relationship"`
	SampleType   string `bson:"sample_type" json:"sampleType"`
}

type Order struct {
	ID            string        `bson:"order_id" json:"id"`
	UserID        string        `bson:"user_id" json:"userId"`
	ServiceType   string        `bson:"service_type" json:"serviceType"`
	Status        string        `bson:"status" json:"status"`
	TotalAmount   float64       `bson:"total_amount" json:"totalAmount"`
	PaymentMethod string        `bson:"payment_method" json:"paymentMethod"`
	PaymentStatus string        `bson:"payment_status" json:"paymentStatus"`
	Participants  []Participant `bson:"participants" json:"participants"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Estados de un paso de la línea de seguimiento.
const (
	TrackCompleted = "completed"
	TrackCurrent   = "current"
	TrackPending   = "pending"
)

// TrackingStep es un paso de la proyección de 5 etapas que ve el cliente.
type TrackingStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description"`
}

// MedicalRecord viaja por el contrato REST externo /dna_service.
type MedicalRecord struct {
	ID         string    `json:"id,omitempty"`
	PatientID  string    `json:"patientId"`
	RecordType string    `json:"recordType"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary,omitempty"`
	Details    string    `json:"details,omitempty"`
	RecordDate time.Time `json:"recordDate"`
}
