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

type uploadResponse struct {
	ID            uint   `json:"id"`
	NombreArchivo string `json:"nombre_archivo"`
	RutaArchivo   string `json:"ruta_archivo"`
}

func (s *testServer) upload(token string, planID uint, filename, content string) uploadResponse {
	s.t.Helper()
	w := s.multipart("/upload", token, map[string]string{"plan_id": itoa(planID)}, filename, []byte(content))
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp uploadResponse
	decode(s.t, w, &resp)
	return resp
}

func TestUploadTracksHasFileUploaded(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("Ana", "ana")
	planID := s.createPlanItem(token, map[string]interface{}{"task_name": "Evidencias"})

	first := s.upload(token, planID, "Acta reunión.pdf", "uno")
	assert.Equal(t, "Acta_reunion.pdf", first.NombreArchivo)
	assert.True(t, strings.HasSuffix(first.RutaArchivo, "_Acta_reunion.pdf"))
	assert.True(t, s.getPlanItem(token, planID).HasFileUploaded)

	second := s.upload(token, planID, "anexo.xlsx", "dos")
	assert.NotEqual(t, first.RutaArchivo, second.RutaArchivo)

	w := s.do(http.MethodGet, "/plan-maestro/"+itoa(planID)+"/documentos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var docs []map[string]interface{}
	decode(t, w, &docs)
	require.Len(t, docs, 2)
	assert.Equal(t, "Ana", docs[0]["uploader"])

	// deleting a non-last document keeps the flag
	w = s.do(http.MethodDelete, "/documentos/"+itoa(first.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, s.getPlanItem(token, planID).HasFileUploaded)
	_, err := os.Stat(filepath.Join(s.uploadDir, first.RutaArchivo))
	assert.True(t, os.IsNotExist(err))

	// deleting the last one clears it
	w = s.do(http.MethodDelete, "/documentos/"+itoa(second.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.getPlanItem(token, planID).HasFileUploaded)

	w = s.do(http.MethodDelete, "/documentos/"+itoa(second.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentDeleteToleratesMissingFile(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("Ana", "ana")
	planID := s.createPlanItem(token, map[string]interface{}{"task_name": "X"})
	doc := s.upload(token, planID, "a.txt", "a")

	require.NoError(t, os.Remove(filepath.Join(s.uploadDir, doc.RutaArchivo)))

	w := s.do(http.MethodDelete, "/documentos/"+itoa(doc.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.getPlanItem(token, planID).HasFileUploaded)
}

func TestUploadValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("Ana", "ana")
	planID := s.createPlanItem(token, map[string]interface{}{"task_name": "X"})

	w := s.multipart("/upload", token, map[string]string{"plan_id": itoa(planID)}, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file part", message(t, w, "error"))

	w = s.multipart("/upload", token, map[string]string{"plan_id": itoa(planID)}, "漢字", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.multipart("/upload", token, map[string]string{"plan_id": "9999"}, "a.txt", []byte("x"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.multipart("/upload", token, nil, "a.txt", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.multipart("/upload", "", map[string]string{"plan_id": itoa(planID)}, "a.txt", []byte("x"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, s.getPlanItem(token, planID).HasFileUploaded)
}

func TestServeUploadedFile(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("Ana", "ana")
	planID := s.createPlanItem(token, map[string]interface{}{"task_name": "X"})
	doc := s.upload(token, planID, "informe.txt", "contenido del informe")

	w := s.do(http.MethodGet, "/uploads/"+doc.RutaArchivo, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "contenido del informe", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	w = s.do(http.MethodGet, "/uploads/no-existe.txt", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/uploads/..", "", nil)
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestListAllDocuments(t *testing.T) {
	s := newTestServer(t)
	_, token := s.user("Ana", "ana")
	a := s.createPlanItem(token, map[string]interface{}{"activity_code": "A1", "task_name": "Uno"})
	b := s.createPlanItem(token, map[string]interface{}{"activity_code": "B2", "task_name": "Dos"})
	s.upload(token, a, "a.txt", "a")
	s.upload(token, b, "b.txt", "b")

	w := s.do(http.MethodGet, "/documentos", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var docs []map[string]interface{}
	decode(t, w, &docs)
	require.Len(t, docs, 2)

	codes := []interface{}{docs[0]["activity_code"], docs[1]["activity_code"]}
	assert.ElementsMatch(t, []interface{}{"A1", "B2"}, codes)
	for _, d := range docs {
		assert.Equal(t, "Ana", d["uploader"])
		assert.NotEmpty(t, d["task_name"])
	}
}
