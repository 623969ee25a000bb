package apiErrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedErr struct {
	code string
}

func (e codedErr) Error() string   { return "erro com código" }
func (e codedErr) APICode() string { return e.code }

func TestFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "Erro nulo", err: nil, wantCode: ErrInternalServer},
		{name: "Erro sem código usa o padrão", err: errors.New("falhou"), wantCode: ErrDatabaseOperation},
		{name: "Erro com código", err: codedErr{code: ErrSessionNotFound}, wantCode: ErrSessionNotFound},
		{name: "Erro com código embrulhado", err: fmt.Errorf("aplicando: %w", codedErr{code: ErrApplyInProgress}), wantCode: ErrApplyInProgress},
		{name: "Código vazio usa o padrão", err: codedErr{}, wantCode: ErrDatabaseOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, FromError(tt.err, ErrDatabaseOperation).Code)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrConfirmationRequired, "Confirme", map[string]int{"changes": 2})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrConfirmationRequired, body.Code)
	assert.Equal(t, "Confirme", body.Message)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotImplemented, StatusFor(ErrNotImplemented))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrNegativeValue))
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}
