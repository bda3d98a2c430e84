package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dna-status-service/internal/apperr"
	"dna-status-service/internal/client"
	"dna-status-service/internal/dto"
	"dna-status-service/internal/model"
	"dna-status-service/internal/service"
	"dna-status-service/internal/status"
	"dna-status-service/internal/statusstore"
)

type Controller struct {
	Status  *service.StatusService
	Orders  *service.OrderService
	Records *client.MedicalRecordClient
}

func New(statusSvc *service.StatusService, orderSvc *service.OrderService, records *client.MedicalRecordClient) *Controller {
	return &Controller{Status: statusSvc, Orders: orderSvc, Records: records}
}

// fail responde con el código de la taxonomía y el mensaje localizado.
func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.Message(err)})
}

// GET /appointments/:appointmentId/status — deriva, persiste y responde
func (ctl *Controller) GetAppointmentStatus(c *gin.Context) {
	id := c.Param("appointmentId")

	st, step, err := ctl.Status.CurrentStatus(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AppointmentStatusResponse{
		AppointmentID:  id,
		Status:         st,
		CurrentStep:    step,
		Progress:       status.Progress(st),
		CompletedSteps: status.CompletedSteps(step),
	})
}

// GET /appointments/:appointmentId/status/stored — último registro guardado
func (ctl *Controller) GetStoredStatus(c *gin.Context) {
	id := c.Param("appointmentId")

	rec, err := ctl.Status.StoredRecord(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if rec == nil {
		fail(c, apperr.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DELETE /appointments/:appointmentId/status
func (ctl *Controller) ClearStoredStatus(c *gin.Context) {
	if err := ctl.Status.ClearStatus(c.Request.Context(), c.Param("appointmentId")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status cleared"})
}

// GET /appointments/mine
func (ctl *Controller) GetMyAppointments(c *gin.Context) {
	userID := c.GetString("userID")
	appts, err := ctl.Status.MyAppointments(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// POST /orders
func (ctl *Controller) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.ErrInvalidPayload)
		return
	}

	o, err := ctl.Orders.CreateOrder(c.Request.Context(), c.GetString("userID"), req.ServiceType, req.TotalAmount, req.PaymentMethod)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// POST /orders/:orderId/participants
func (ctl *Controller) AddParticipants(c *gin.Context) {
	var req dto.AddParticipantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.ErrInvalidPayload)
		return
	}

	participants := make([]model.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		participants = append(participants, p.ToModel())
	}

	o, err := ctl.Orders.AddParticipants(c.Request.Context(), c.Param("orderId"), c.GetString("userID"), participants)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// POST /orders/:orderId/payment
func (ctl *Controller) ProcessPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.ErrInvalidPayload)
		return
	}

	o, err := ctl.Orders.ProcessPayment(c.Request.Context(), c.Param("orderId"), c.GetString("userID"), req.PaymentMethod)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GET /orders/:orderId/tracking
func (ctl *Controller) GetOrderTracking(c *gin.Context) {
	steps, err := ctl.Orders.GetTracking(
		c.Request.Context(),
		c.Param("orderId"),
		c.GetString("userID"),
		c.GetBool("isStaff"),
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": c.Param("orderId"), "steps": steps})
}

// GET /orders/mine
func (ctl *Controller) GetMyOrders(c *gin.Context) {
	orders, err := ctl.Orders.MyOrders(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// --- rutas de personal ---

// GET /staff/appointments
func (ctl *Controller) GetAllAppointments(c *gin.Context) {
	appts, err := ctl.Status.AllAppointments(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GET /staff/appointments/:state
func (ctl *Controller) GetAppointmentsByState(c *gin.Context) {
	state := model.AppointmentStatus(c.Param("state"))
	appts, err := ctl.Status.AppointmentsByStatus(c.Request.Context(), state)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// POST /staff/orders/:orderId/complete
func (ctl *Controller) CompleteOrder(c *gin.Context) {
	o, err := ctl.Orders.CompleteOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// POST /staff/status-cleanup — barrido manual de registros viejos
func (ctl *Controller) CleanupStatuses(c *gin.Context) {
	removed, err := ctl.Status.CleanupStoredStatuses(c.Request.Context(), statusstore.DefaultMaxAge)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// GET /staff/medical-records — proxy al colaborador /dna_service con la
// credencial de servicio
func (ctl *Controller) ListMedicalRecords(c *gin.Context) {
	recs, err := ctl.Records.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// GET /staff/medical-records/:id
func (ctl *Controller) GetMedicalRecord(c *gin.Context) {
	rec, err := ctl.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// POST /staff/events/tasks — espejo del consumer Rabbit para pruebas manuales
func (ctl *Controller) ApplyTaskEvent(c *gin.Context) {
	var req dto.TaskEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.ErrInvalidPayload)
		return
	}

	st, err := ctl.Status.ApplyTaskSnapshot(c.Request.Context(), &model.Appointment{
		ID:     req.AppointmentID,
		UserID: req.UserID,
		Active: *req.Active,
		Tasks:  req.Tasks,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointmentId": req.AppointmentID, "status": st})
}
