package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLogin(t *testing.T) {
	assert.Equal(t, "maria.silva", NormalizeLogin("  Maria .Silva "))
	assert.Equal(t, "admin@loja.local", NormalizeLogin("ADMIN@loja.local"))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"lj0002", "lj0001"}, Dedupe([]string{"lj0002", "lj0001", "lj0002"}))
	assert.Empty(t, Dedupe(nil))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, idLength)

	sessionID, err := GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, sessionID, sessionIDLength)
	assert.NotEqual(t, sessionID, MustGenerateID())
}
