package statusstore

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"dna-status-service/internal/model"
	"dna-status-service/internal/status"
)

// KeyPrefix fija el espacio de claves de los registros de estado.
const KeyPrefix = "appointment_status_"

// DefaultMaxAge es la antigüedad máxima por defecto antes del barrido.
const DefaultMaxAge = 7 * 24 * time.Hour

type Store struct {
	kv  KV
	now func() time.Time
}

func New(kv KV) *Store {
	return &Store{kv: kv, now: time.Now}
}

// Save sobreescribe incondicionalmente el registro de la cita. Si el
// almacenamiento falla, se loguea y se sigue: el tracking degrada a
// memoria para esa sesión, no es un error del llamador.
func (s *Store) Save(ctx context.Context, id string, st model.AppointmentStatus, step int) {
	rec := model.AppointmentStatusRecord{
		ID:             id,
		CurrentStep:    step,
		Status:         st,
		LastUpdated:    s.now().UTC(),
		CompletedSteps: status.CompletedSteps(step),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		log.Println("statusstore: error serializando registro:", err)
		return
	}
	if err := s.kv.Set(ctx, KeyPrefix+id, string(raw)); err != nil {
		log.Println("statusstore: error guardando registro:", err)
	}
}

// Load devuelve el registro guardado, o nil si no existe. Una entrada
// corrupta se trata como ausente, no como error.
func (s *Store) Load(ctx context.Context, id string) (*model.AppointmentStatusRecord, error) {
	raw, ok, err := s.kv.Get(ctx, KeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var rec model.AppointmentStatusRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}

// Clear borra el registro. Si no existe no pasa nada.
func (s *Store) Clear(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, KeyPrefix+id)
}

// Cleanup barre todas las claves del prefijo y borra las entradas más
// viejas que maxAge y las que no parsean. Las que tienen exactamente la
// edad límite se conservan (el borrado es estrictamente-más-viejo).
// Devuelve cuántas entradas se eliminaron.
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	keys, err := s.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().UTC().Add(-maxAge)
	removed := 0
	for _, key := range keys {
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			return removed, err
		}
		if !ok {
			continue
		}

		var rec model.AppointmentStatusRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			// Entrada corrupta: se borra de una, no se ignora.
			if err := s.kv.Delete(ctx, key); err != nil {
				return removed, err
			}
			removed++
			continue
		}
		if rec.LastUpdated.Before(cutoff) {
			if err := s.kv.Delete(ctx, key); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// RunCleanupLoop ejecuta el barrido cada interval hasta que el contexto
// se cancele. Un error del barrido se loguea y el loop sigue; el único
// retorno es ctx.Err(), así el grupo que lo corre se entera del cierre.
func (s *Store) RunCleanupLoop(ctx context.Context, interval, maxAge time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := s.Cleanup(ctx, maxAge)
			if err != nil {
				log.Println("statusstore: error en limpieza de registros:", err)
				continue
			}
			if removed > 0 {
				log.Printf("statusstore: limpieza de registros: %d eliminados", removed)
			}
		}
	}
}
