package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dna-status-service/internal/apperr"
	"dna-status-service/internal/client"
	"dna-status-service/internal/model"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*client.MedicalRecordClient, *client.MemoryTokenStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := &client.MemoryTokenStore{}
	tokens.Set("tok-123")
	return client.NewMedicalRecordClient(srv.URL, tokens), tokens, srv
}

func TestMyAttachesBearerAndUnwrapsEnvelope(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dna_service/medical-records/my", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"code":    200,
			"message": "ok",
			"result": []model.MedicalRecord{
				{ID: "mr-1", PatientID: "p1", Title: "Resultado ADN"},
			},
		})
	})

	recs, err := c.My(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "mr-1", recs[0].ID)
}

func TestUnauthorizedClearsToken(t *testing.T) {
	c, tokens, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.My(context.Background())
	assert.ErrorIs(t, err, apperr.ErrSessionExpired)

	_, ok := tokens.Token()
	assert.False(t, ok, "el 401 tiene que limpiar la credencial guardada")
}

func TestHTTPErrorsMapToTaxonomy(t *testing.T) {
	status := http.StatusNotFound
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})

	_, err := c.Get(context.Background(), "mr-x")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	status = http.StatusConflict
	_, err = c.Create(context.Background(), model.MedicalRecord{PatientID: "p1"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestEnvelopeCodeFailure(t *testing.T) {
	// HTTP 200 pero el envelope trae un código de error.
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"code":    400,
			"message": "payload inválido",
		})
	})

	_, err := c.List(context.Background())
	assert.ErrorIs(t, err, apperr.ErrInvalidPayload)
}

func TestCreateAccepts201Envelope(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var rec model.MedicalRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		rec.ID = "mr-nuevo"

		json.NewEncoder(w).Encode(map[string]any{
			"code": 201, "message": "created", "result": rec,
		})
	})

	out, err := c.Create(context.Background(), model.MedicalRecord{PatientID: "p1", Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, "mr-nuevo", out.ID)
}

func TestNetworkFailure(t *testing.T) {
	tokens := &client.MemoryTokenStore{}
	c := client.NewMedicalRecordClient("http://127.0.0.1:1", tokens)

	_, err := c.My(context.Background())
	assert.ErrorIs(t, err, apperr.ErrUnreachable)
}

func TestDelete(t *testing.T) {
	c, _, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/dna_service/medical-records/mr-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"code": 200, "message": "ok"})
	})

	assert.NoError(t, c.Delete(context.Background(), "mr-1"))
}
