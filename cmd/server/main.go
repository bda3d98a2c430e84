package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"dna-status-service/internal/client"
	"dna-status-service/internal/config"
	"dna-status-service/internal/controller"
	"dna-status-service/internal/middleware"
	"dna-status-service/internal/mockdata"
	"dna-status-service/internal/rabbit"
	"dna-status-service/internal/repository"
	"dna-status-service/internal/service"
	"dna-status-service/internal/statusstore"
)

func main() {
	cfg := config.Load()

	var (
		apptRepo  service.AppointmentRepository
		orderRepo service.OrderRepository
		kv        statusstore.KV
	)

	if cfg.MockData {
		// Modo demo: repos en memoria con latencia artificial, sin Mongo.
		latency := mockdata.Latency{Min: cfg.MockLatencyMin, Max: cfg.MockLatencyMax}
		appts := mockdata.NewAppointmentStore(latency)
		mockdata.Seed(context.Background(), appts)
		apptRepo = appts
		orderRepo = mockdata.NewOrderStore(latency)
		kv = statusstore.NewMemoryKV()
		log.Println("MOCK_DATA=true: usando datos simulados en memoria")
	} else {
		// Conexión a MongoDB
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal(err)
		}
		db := client.Database(cfg.MongoDBName)

		apptRepo = repository.NewMongoAppointmentRepository(db)
		orderRepo = repository.NewMongoOrderRepository(db)
		kv = statusstore.NewMongoKV(db)
	}

	// Servicios
	store := statusstore.New(kv)
	statusSvc, err := service.NewStatusService(apptRepo, store)
	if err != nil {
		log.Fatal(err)
	}
	orderSvc := service.NewOrderService(orderRepo)
	authSvc := service.NewAuthService(cfg.AuthURL)

	// Cliente del colaborador /dna_service, con credencial de servicio
	tokens := &client.MemoryTokenStore{}
	tokens.Set(cfg.DNAServiceToken)
	records := client.NewMedicalRecordClient(cfg.DNAServiceURL, tokens)

	// Handlers
	ctl := controller.New(statusSvc, orderSvc, records)

	// Router
	r := gin.Default()

	// Rutas protegidas (requieren token)
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(authSvc))

	auth.GET("/appointments/mine", ctl.GetMyAppointments)
	auth.GET("/appointments/:appointmentId/status", ctl.GetAppointmentStatus)
	auth.GET("/appointments/:appointmentId/status/stored", ctl.GetStoredStatus)
	auth.DELETE("/appointments/:appointmentId/status", ctl.ClearStoredStatus)

	auth.POST("/orders", ctl.CreateOrder)
	auth.GET("/orders/mine", ctl.GetMyOrders)
	auth.POST("/orders/:orderId/participants", ctl.AddParticipants)
	auth.POST("/orders/:orderId/payment", ctl.ProcessPayment)
	auth.GET("/orders/:orderId/tracking", ctl.GetOrderTracking)

	// Rutas de personal
	staff := auth.Group("/staff")
	staff.Use(middleware.StaffOnly())
	staff.GET("/appointments", ctl.GetAllAppointments)
	staff.GET("/appointments/:state", ctl.GetAppointmentsByState)
	staff.GET("/medical-records", ctl.ListMedicalRecords)
	staff.GET("/medical-records/:id", ctl.GetMedicalRecord)
	staff.POST("/orders/:orderId/complete", ctl.CompleteOrder)
	staff.POST("/status-cleanup", ctl.CleanupStatuses)
	staff.POST("/events/tasks", ctl.ApplyTaskEvent)

	// Conexión a RabbitMQ (en modo mock no hay laboratorio que escuche)
	if !cfg.MockData {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("Error conectando a RabbitMQ: %v", err)
		}
		ch, err := conn.Channel()
		if err != nil {
			log.Fatalf("Error creando canal en RabbitMQ: %v", err)
		}
		rabbit.SetupConsumers(ch, statusSvc)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Si el servidor cae, el contexto del grupo se cancela y el barrido
	// termina: el error llega siempre a g.Wait().
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Printf("DNA Status Service ejecutándose en puerto %s", cfg.Port)
		return srv.ListenAndServe()
	})

	// Barrido periódico de registros viejos
	g.Go(func() error {
		return store.RunCleanupLoop(ctx, cfg.CleanupInterval, cfg.StatusMaxAge)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
