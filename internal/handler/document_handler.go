package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gwp-backend/internal/metrics"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// DocumentHandler serves plan evidence files.
type DocumentHandler struct {
	documentService *service.DocumentService
	metrics         *metrics.Metrics
}

// NewDocumentHandler creates a DocumentHandler. m may be nil.
func NewDocumentHandler(documentService *service.DocumentService, m *metrics.Metrics) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, metrics: m}
}

// List GET /documentos
func (h *DocumentHandler) List(c *gin.Context) {
	rows, err := h.documentService.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// ListByPlan GET /plan-maestro/:id/documentos
func (h *DocumentHandler) ListByPlan(c *gin.Context) {
	planID, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := h.documentService.ListByPlan(c.Request.Context(), planID)
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// Upload POST /upload, multipart with "file" and "plan_id".
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "No file part")
		return
	}
	if fh.Filename == "" {
		utils.BadRequest(c, "No selected file")
		return
	}

	planID, err := strconv.ParseUint(c.PostForm("plan_id"), 10, 32)
	if err != nil || planID == 0 {
		utils.BadRequest(c, "plan_id requerido")
		return
	}

	doc, err := h.documentService.Upload(c.Request.Context(), userID, uint(planID), fh)
	if err != nil {
		respondError(c, err, "Item no encontrado")
		return
	}
	h.metrics.ObserveUpload("documento")

	utils.MessageResponse(c, http.StatusCreated, "Archivo subido", gin.H{
		"id":             doc.ID,
		"nombre_archivo": doc.NombreArchivo,
		"ruta_archivo":   doc.RutaArchivo,
	})
}

// Delete DELETE /documentos/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Documento no encontrado")
		return
	}
	utils.SuccessWithMessage(c, "Documento eliminado", nil)
}

// Serve GET /uploads/:filename streams a stored file without auth.
func (h *DocumentHandler) Serve(c *gin.Context) {
	obj, err := h.documentService.Open(c.Request.Context(), c.Param("filename"))
	if err != nil {
		respondError(c, err, "Archivo no encontrado")
		return
	}
	defer obj.Body.Close()

	if !obj.LastModified.IsZero() {
		c.Header("Last-Modified", obj.LastModified.UTC().Format(http.TimeFormat))
	}
	c.DataFromReader(http.StatusOK, obj.ContentLength, obj.ContentType, obj.Body, nil)
}
