package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/models"
	"gwp-backend/internal/patch"
	"gwp-backend/internal/repository"
	"gwp-backend/internal/storage"
)

// RepositoryFilePrefix marks files that belong to the strategic repository.
const RepositoryFilePrefix = "REPO_"

// RepositoryService manages the strategic document repository.
type RepositoryService struct {
	docs  *repository.RepositoryDocRepository
	files storage.Provider
	log   *logrus.Logger
}

// NewRepositoryService creates a RepositoryService.
func NewRepositoryService(docs *repository.RepositoryDocRepository, files storage.Provider, log *logrus.Logger) *RepositoryService {
	return &RepositoryService{docs: docs, files: files, log: log}
}

// List returns every entry.
func (s *RepositoryService) List(ctx context.Context) ([]models.RepositoryDocumentRow, error) {
	rows, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list repository: %w", err)
	}
	return rows, nil
}

// Create stores an entry and its optional file.
func (s *RepositoryService) Create(ctx context.Context, caller uint, form *dto.RepositoryForm, fh *multipart.FileHeader) (*models.RepositoryDocument, error) {
	titulo := strings.TrimSpace(form.Titulo)
	if titulo == "" {
		return nil, invalid("Título requerido")
	}
	fecha, err := models.ParseDate(form.FechaPublicacion)
	if err != nil {
		return nil, invalid("Fecha de publicación inválida")
	}
	estado := strings.TrimSpace(form.EstadoProcesamiento)
	if estado == "" {
		estado = models.DefaultStatus
	}

	doc := &models.RepositoryDocument{
		Titulo:              titulo,
		TipoDocumento:       optional(form.TipoDocumento),
		Descripcion:         optional(form.Descripcion),
		PuntosClave:         optional(form.PuntosClave),
		FechaPublicacion:    fecha,
		FuenteOrigen:        optional(form.FuenteOrigen),
		TipoFuente:          optional(form.TipoFuente),
		EnlaceExterno:       optional(form.EnlaceExterno),
		EstadoProcesamiento: estado,
		Etiquetas:           optional(form.Etiquetas),
		UploadedBy:          &caller,
	}

	var key string
	if fh != nil {
		name := storage.SecureFilename(fh.Filename)
		if name == "" {
			return nil, invalid("Nombre de archivo inválido")
		}
		key = storage.UniqueName(RepositoryFilePrefix, name)
		if err := saveUpload(ctx, s.files, key, fh); err != nil {
			return nil, err
		}
		doc.RutaArchivo = &key
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		removeFile(context.Background(), s.files, s.log, key)
		return nil, fmt.Errorf("create repository entry: %w", err)
	}
	return doc, nil
}

// Update applies a partial metadata update.
func (s *RepositoryService) Update(ctx context.Context, id uint, payload map[string]interface{}) (bool, error) {
	u, err := patch.RepositoryFields.Build(payload)
	if err != nil {
		return false, invalid(err.Error())
	}
	if u.Empty() {
		return false, nil
	}
	if v, ok := u.Value("titulo"); ok && strings.TrimSpace(v.(string)) == "" {
		return false, invalid("Título requerido")
	}
	u.Touch("updated_at", time.Now())
	if err := s.docs.Update(ctx, id, u); err != nil {
		return false, notFound(err)
	}
	return true, nil
}

// Delete removes the entry and then its file, best effort.
func (s *RepositoryService) Delete(ctx context.Context, id uint) error {
	doc, err := s.docs.Delete(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if doc.RutaArchivo != nil {
		removeFile(ctx, s.files, s.log, *doc.RutaArchivo)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
