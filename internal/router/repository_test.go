package router_test

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryDocuments(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("Ana", "ana")

	w := s.multipart("/repositorio", token, map[string]string{"descripcion": "sin título"}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.multipart("/repositorio", token, map[string]string{
		"titulo":            "Ley de transparencia",
		"tipo_documento":    "Normativa",
		"fecha_publicacion": "",
		"etiquetas":         "ley,transparencia",
	}, "ley 20.285.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, w, &created)

	w = s.multipart("/repositorio", token, map[string]string{
		"titulo":            "Enlace externo",
		"enlace_externo":    "https://example.org/doc",
		"fecha_publicacion": "2023-11-02",
	}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/repositorio", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]interface{}
	decode(t, w, &rows)
	require.Len(t, rows, 2)

	var withFile map[string]interface{}
	for _, r := range rows {
		assert.Equal(t, "Ana", r["uploader_name"])
		assert.Equal(t, "Pendiente", r["estado_procesamiento"])
		if r["titulo"] == "Ley de transparencia" {
			withFile = r
		} else {
			assert.Nil(t, r["ruta_archivo"])
			assert.Equal(t, "2023-11-02", r["fecha_publicacion"])
		}
	}
	require.NotNil(t, withFile)
	assert.Nil(t, withFile["fecha_publicacion"])
	key, _ := withFile["ruta_archivo"].(string)
	assert.True(t, strings.HasPrefix(key, "REPO_"), key)
	assert.True(t, strings.HasSuffix(key, "_ley_20.285.pdf"), key)
	_, err := os.Stat(filepath.Join(s.uploadDir, key))
	require.NoError(t, err)

	path := "/repositorio/" + itoa(created.ID)
	w = s.do(http.MethodPut, path, token, map[string]interface{}{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Nada que actualizar", message(t, w, "message"))

	w = s.do(http.MethodPut, path, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, path, token, map[string]interface{}{"estado_procesamiento": "Procesado", "fecha_publicacion": "2024-01-05"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, path, token, map[string]interface{}{"titulo": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, err = os.Stat(filepath.Join(s.uploadDir, key))
	assert.True(t, os.IsNotExist(err))

	w = s.do(http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodPut, path, token, map[string]interface{}{"titulo": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
