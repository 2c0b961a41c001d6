package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/metrics"
	"gwp-backend/internal/service"
	"gwp-backend/internal/utils"
)

// RepositoryHandler serves /repositorio.
type RepositoryHandler struct {
	repositoryService *service.RepositoryService
	metrics           *metrics.Metrics
}

// NewRepositoryHandler creates a RepositoryHandler. m may be nil.
func NewRepositoryHandler(repositoryService *service.RepositoryService, m *metrics.Metrics) *RepositoryHandler {
	return &RepositoryHandler{repositoryService: repositoryService, metrics: m}
}

// List GET /repositorio
func (h *RepositoryHandler) List(c *gin.Context) {
	rows, err := h.repositoryService.List(c.Request.Context())
	if err != nil {
		utils.InternalError(c, err)
		return
	}
	utils.SuccessResponse(c, rows)
}

// Create POST /repositorio, multipart with an optional "file".
func (h *RepositoryHandler) Create(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}

	var form dto.RepositoryForm
	if err := c.ShouldBind(&form); err != nil {
		utils.BadRequest(c, "Formulario inválido")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			utils.BadRequest(c, "Archivo inválido")
			return
		}
		fh = nil
	}

	doc, err := h.repositoryService.Create(c.Request.Context(), userID, &form, fh)
	if err != nil {
		respondError(c, err, "")
		return
	}
	if fh != nil {
		h.metrics.ObserveUpload("repositorio")
	}
	utils.Created(c, doc.ID, "Documento agregado al repositorio")
}

// Update PUT /repositorio/:id
func (h *RepositoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	changed, err := h.repositoryService.Update(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, err, "Documento no encontrado")
		return
	}
	updated(c, changed, "Documento actualizado")
}

// Delete DELETE /repositorio/:id
func (h *RepositoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.repositoryService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Documento no encontrado")
		return
	}
	utils.SuccessWithMessage(c, "Documento eliminado", nil)
}
