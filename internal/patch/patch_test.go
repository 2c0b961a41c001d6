package patch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gwp-backend/internal/models"
)

func TestBuildIgnoresUnknownAndProtectedKeys(t *testing.T) {
	u, err := PlanItemFields.Build(map[string]interface{}{
		"id":          float64(99),
		"created_by":  float64(3),
		"created_at":  "2024-01-01",
		"; DROP x":    "y",
		"unknown_key": true,
	})
	require.NoError(t, err)
	assert.True(t, u.Empty())
	assert.Empty(t, u.Columns())
}

func TestBuildConvertsValues(t *testing.T) {
	u, err := PlanItemFields.Build(map[string]interface{}{
		"fecha_fin":    "",
		"week_start":   "3",
		"week_end":     float64(5),
		"task_name":    "Diagnóstico",
		"product_code": nil,
		"fecha_inicio": "2024-03-01",
	})
	require.NoError(t, err)
	require.False(t, u.Empty())

	// declaration order, not payload order
	assert.Equal(t, []string{"product_code", "task_name", "week_start", "week_end", "fecha_inicio", "fecha_fin"}, u.Columns())

	v, _ := u.Value("task_name")
	assert.Equal(t, "Diagnóstico", v)
	v, _ = u.Value("week_start")
	assert.Equal(t, 3, v)
	v, _ = u.Value("week_end")
	assert.Equal(t, 5, v)
	v, ok := u.Value("product_code")
	assert.True(t, ok)
	assert.Nil(t, v)

	v, _ = u.Value("fecha_fin")
	assert.Equal(t, models.Date{}, v)
	v, _ = u.Value("fecha_inicio")
	d, ok := v.(models.Date)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", d.String())
}

func TestBuildRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
		key     string
	}{
		{"non integer week", map[string]interface{}{"week_start": "abc"}, "week_start"},
		{"fractional week", map[string]interface{}{"week_end": 1.5}, "week_end"},
		{"null status", map[string]interface{}{"status": nil}, "status"},
		{"bad date", map[string]interface{}{"fecha_inicio": "01/03/2024"}, "fecha_inicio"},
		{"object text", map[string]interface{}{"task_name": map[string]interface{}{}}, "task_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanItemFields.Build(tt.payload)
			require.Error(t, err)
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.key, fe.Key)
		})
	}
}

func TestStampAddsBookkeepingColumns(t *testing.T) {
	u, err := MilestoneFields.Build(map[string]interface{}{"estado": "Completado"})
	require.NoError(t, err)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	u.Stamp(7, now)

	assert.Equal(t, []string{"estado", "updated_by", "updated_at"}, u.Columns())
	m := u.Map()
	assert.Equal(t, uint(7), m["updated_by"])
	assert.Equal(t, now, m["updated_at"])
}

func TestUserFieldsHashPassword(t *testing.T) {
	set := UserFields(func(pw string) (string, error) { return "hashed:" + pw, nil })

	u, err := set.Build(map[string]interface{}{"password": "secreto", "nombre": "Ana"})
	require.NoError(t, err)
	v, ok := u.Value("password_hash")
	require.True(t, ok)
	assert.Equal(t, "hashed:secreto", v)
	_, ok = u.Value("password")
	assert.False(t, ok)

	u, err = set.Build(map[string]interface{}{"password": ""})
	require.NoError(t, err)
	assert.True(t, u.Empty())
}

func TestRepositoryFieldsEmptyDateIsNull(t *testing.T) {
	u, err := RepositoryFields.Build(map[string]interface{}{"fecha_publicacion": ""})
	require.NoError(t, err)
	v, _ := u.Value("fecha_publicacion")
	d := v.(models.Date)
	assert.False(t, d.Valid())
	value, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}
