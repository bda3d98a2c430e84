// Package tracking proyecta el estado grueso de una orden sobre la línea
// de seguimiento de 5 etapas que ve el cliente. Es una proyección, no una
// máquina de estados: solo pending/processing/completed son representables.
package tracking

import (
	"time"

	"dna-status-service/internal/model"
)

type stepDef struct {
	title       string
	description string
}

var steps = [5]stepDef{
	{"Orden confirmada", "Recibimos su orden y quedó registrada."},
	{"Preparación del kit", "Estamos preparando el kit de toma de muestra."},
	{"Kit enviado", "El kit va en camino a la dirección indicada."},
	{"Análisis en laboratorio", "Las muestras están siendo analizadas."},
	{"Resultado disponible", "El resultado ya puede consultarse en el portal."},
}

// Build arma las 5 etapas a partir del estado de la orden. La etapa 1
// siempre está completa; el resto sigue la tabla fija de mapeo.
func Build(o *model.Order) []model.TrackingStep {
	statuses := [5]string{
		model.TrackCompleted,
		stepTwo(o.Status),
		stepThree(o.Status),
		tailStep(o.Status),
		tailStep(o.Status),
	}

	out := make([]model.TrackingStep, 0, len(steps))
	for i, def := range steps {
		st := statuses[i]
		out = append(out, model.TrackingStep{
			Step:        i + 1,
			Title:       def.title,
			Status:      st,
			Date:        stepDate(o, i, st),
			Description: def.description,
		})
	}
	return out
}

func stepTwo(orderStatus string) string {
	if orderStatus == model.OrderPending {
		return model.TrackCurrent
	}
	return model.TrackCompleted
}

func stepThree(orderStatus string) string {
	switch orderStatus {
	case model.OrderProcessing:
		return model.TrackCurrent
	case model.OrderCompleted:
		return model.TrackCompleted
	default:
		return model.TrackPending
	}
}

func tailStep(orderStatus string) string {
	if orderStatus == model.OrderCompleted {
		return model.TrackCompleted
	}
	return model.TrackPending
}

func stepDate(o *model.Order, idx int, st string) string {
	if st == model.TrackPending {
		return ""
	}
	ts := o.UpdatedAt
	if idx == 0 {
		ts = o.CreatedAt
	}
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
