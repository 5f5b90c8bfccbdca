package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PawsProtect/service-welfare/internal/platform/auth"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile("uid-1", " Ana ", "ana@example.com", "superuser", domain.None[string](), domain.Some("https://img/ana.svg"))
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, auth.RolePublic, p.Role)

	p, err = NewProfile("uid-2", "Vee", "vee@example.com", "vet", domain.Some("555"), domain.None[string]())
	require.NoError(t, err)
	assert.Equal(t, auth.RoleVet, p.Role)

	_, err = NewProfile("", "x", "x@y.z", "ngo", domain.None[string](), domain.None[string]())
	assert.True(t, domain.IsValidation(err))
}
