// Package status deriva el estado canónico de una cita a partir del
// snapshot de tareas que reporta el laboratorio. Es lógica pura: la misma
// entrada produce siempre el mismo estado, sin transiciones incrementales.
package status

import "dna-status-service/internal/model"

// Secuencia canónica de pasos. El registro persistido guarda siempre
// un prefijo de esta lista.
var CanonicalSteps = []string{
	"booking",
	"confirmed",
	"kit_delivered",
	"sample_received",
	"testing",
	"completed",
}

// Paso que corresponde a cada estado dentro de la barra de progreso.
// Cancelled queda fuera de la secuencia 1-6.
var stepByStatus = map[model.AppointmentStatus]int{
	model.StatusPending:        1,
	model.StatusConfirmed:      2,
	model.StatusKitDelivered:   3,
	model.StatusSampleReceived: 4,
	model.StatusTesting:        5,
	model.StatusCompleted:      6,
	model.StatusCancelled:      0,
}

// Derive calcula el estado de la cita. El orden de los chequeos importa:
//  1. Cita inactiva -> Cancelled, sin mirar nada más.
//  2. Sin tareas -> Confirmed (la cita está activa).
//  3. Ninguna completada -> Confirmed. Todas completadas -> Completed.
//  4. Muestra tomada pero testeo sin terminar -> SampleReceived.
//  5. Testeo en curso -> Testing. Cualquier otra cosa -> Confirmed.
func Derive(active bool, tasks []model.Task) model.AppointmentStatus {
	if !active {
		return model.StatusCancelled
	}
	if len(tasks) == 0 {
		return model.StatusConfirmed
	}

	completed := 0
	for _, t := range tasks {
		if t.Status == model.TaskStatusCompleted {
			completed++
		}
	}
	if completed == 0 {
		return model.StatusConfirmed
	}
	if completed == len(tasks) {
		return model.StatusCompleted
	}

	// Si hay varias tareas del mismo tipo gana la primera en orden de
	// iteración. El backend no define un desempate más estricto.
	sample, sampleOK := findTask(tasks, model.TaskSampleCollection)
	testing, testingOK := findTask(tasks, model.TaskTesting)

	if sampleOK && sample.Status == model.TaskStatusCompleted &&
		(!testingOK || testing.Status != model.TaskStatusCompleted) {
		return model.StatusSampleReceived
	}
	if testingOK && testing.Status == model.TaskStatusInProgress {
		return model.StatusTesting
	}
	return model.StatusConfirmed
}

func findTask(tasks []model.Task, taskType string) (model.Task, bool) {
	for _, t := range tasks {
		if t.TaskType == taskType {
			return t, true
		}
	}
	return model.Task{}, false
}

// StepOf es total: todo estado conocido tiene su paso y cualquier otro
// string cae en el paso 1.
func StepOf(s model.AppointmentStatus) int {
	if step, ok := stepByStatus[s]; ok {
		return step
	}
	return 1
}

// Progress devuelve la fracción de llenado de la barra (0..1).
func Progress(s model.AppointmentStatus) float64 {
	step := StepOf(s)
	if step <= 1 {
		return 0
	}
	return float64(step-1) / float64(len(CanonicalSteps)-1)
}

// CompletedSteps devuelve el prefijo canónico de largo step.
func CompletedSteps(step int) []string {
	if step < 0 {
		step = 0
	}
	if step > len(CanonicalSteps) {
		step = len(CanonicalSteps)
	}
	out := make([]string, step)
	copy(out, CanonicalSteps[:step])
	return out
}
