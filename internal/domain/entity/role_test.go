package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockfacil/kiosco-pos/internal/domain/entity"
)

// NormalizeRole: cualquier variante histórica de "dueño" colapsa en RoleOwner;
// todo lo demás es empleado.
func TestNormalizeRole_VariantesDeDueno(t *testing.T) {
	for _, raw := range []string{"owner", "dueno", "dueño", "empleador", "DUEÑO", " Owner "} {
		assert.Equal(t, entity.RoleOwner, entity.NormalizeRole(raw), "variante %q", raw)
	}
}

func TestNormalizeRole_TodoLoDemasEsEmpleado(t *testing.T) {
	for _, raw := range []string{"empleado", "employee", "", "admin", "vendedor"} {
		assert.Equal(t, entity.RoleEmployee, entity.NormalizeRole(raw), "variante %q", raw)
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, entity.RoleOwner.Valid())
	assert.True(t, entity.RoleEmployee.Valid())
	assert.False(t, entity.Role("dueño").Valid())
	assert.False(t, entity.Role("").Valid())
}
