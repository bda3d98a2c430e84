// setup.go
package rabbit

import (
	"log"

	"github.com/rabbitmq/amqp091-go"

	"dna-status-service/internal/service"
)

func SetupConsumers(ch *amqp091.Channel, svc *service.StatusService) {
	consumer := NewTaskEventConsumer(svc)

	// 1. Declarar la queue
	q, err := ch.QueueDeclare(
		"dna_status_service_tasks", // cola exclusiva de este micro
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Println("Error declarando queue:", err)
		return
	}

	// 2. Bindear al exchange fanout del laboratorio
	err = ch.QueueBind(
		q.Name,
		"", // fanout ignora routing key
		"lab_task_events",
		false,
		nil,
	)
	if err != nil {
		log.Println("Error binding exchange:", err)
		return
	}

	// 3. Consumir
	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Println("Error al consumir queue:", err)
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	log.Println("Suscrito a exchange lab_task_events (fanout)")
}
