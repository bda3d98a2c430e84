// Package client habla con el colaborador externo /dna_service que
// administra los registros médicos. Todas las respuestas vienen
// envueltas en {code, message, result}.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dna-status-service/internal/apperr"
	"dna-status-service/internal/model"
)

const basePath = "/dna_service"

// TokenStore guarda la credencial del usuario actual. El cliente la
// limpia ante un 401: la sesión murió y no hay reintento posible.
type TokenStore interface {
	Token() (string, bool)
	Clear()
}

// MemoryTokenStore es la implementación simple para un proceso.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func (m *MemoryTokenStore) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MemoryTokenStore) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

func (m *MemoryTokenStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type MedicalRecordClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenStore
}

func NewMedicalRecordClient(baseURL string, tokens TokenStore) *MedicalRecordClient {
	return &MedicalRecordClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		tokens: tokens,
	}
}

// My trae los registros del usuario autenticado.
func (c *MedicalRecordClient) My(ctx context.Context) ([]model.MedicalRecord, error) {
	var out []model.MedicalRecord
	err := c.do(ctx, http.MethodGet, "/medical-records/my", nil, &out)
	return out, err
}

// List trae todos los registros (vista de personal).
func (c *MedicalRecordClient) List(ctx context.Context) ([]model.MedicalRecord, error) {
	var out []model.MedicalRecord
	err := c.do(ctx, http.MethodGet, "/medical-records", nil, &out)
	return out, err
}

func (c *MedicalRecordClient) Get(ctx context.Context, id string) (*model.MedicalRecord, error) {
	var out model.MedicalRecord
	if err := c.do(ctx, http.MethodGet, "/medical-records/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MedicalRecordClient) Create(ctx context.Context, rec model.MedicalRecord) (*model.MedicalRecord, error) {
	var out model.MedicalRecord
	if err := c.do(ctx, http.MethodPost, "/medical-records", rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MedicalRecordClient) Update(ctx context.Context, id string, rec model.MedicalRecord) (*model.MedicalRecord, error) {
	var out model.MedicalRecord
	if err := c.do(ctx, http.MethodPut, "/medical-records/"+id, rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *MedicalRecordClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/medical-records/"+id, nil, nil)
}

func (c *MedicalRecordClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// No llegó respuesta: falla de transporte.
		return fmt.Errorf("%s %s: %v: %w", method, path, err, apperr.ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// La credencial guardada ya no sirve. Se limpia acá; qué hacer
		// después (volver al login) es problema del llamador.
		c.tokens.Clear()
		return fmt.Errorf("%s %s: %w", method, path, apperr.ErrSessionExpired)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: %w", method, path, apperr.FromStatusCode(resp.StatusCode))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decodificando envelope: %w", method, path, err)
	}
	if env.Code != http.StatusOK && env.Code != http.StatusCreated {
		return fmt.Errorf("%s %s: %s: %w", method, path, env.Message, apperr.FromStatusCode(env.Code))
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%s %s: decodificando result: %w", method, path, err)
		}
	}
	return nil
}
