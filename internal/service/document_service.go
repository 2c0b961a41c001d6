package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/sirupsen/logrus"

	"gwp-backend/internal/models"
	"gwp-backend/internal/repository"
	"gwp-backend/internal/storage"
)

// DocumentService stores plan evidence files and their rows.
type DocumentService struct {
	docs  *repository.DocumentRepository
	plans *repository.PlanRepository
	files storage.Provider
	log   *logrus.Logger
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(docs *repository.DocumentRepository, plans *repository.PlanRepository, files storage.Provider, log *logrus.Logger) *DocumentService {
	return &DocumentService{docs: docs, plans: plans, files: files, log: log}
}

// List returns every document with plan and uploader labels.
func (s *DocumentService) List(ctx context.Context) ([]models.DocumentRow, error) {
	rows, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return rows, nil
}

// ListByPlan returns the documents of one plan item.
func (s *DocumentService) ListByPlan(ctx context.Context, planID uint) ([]models.DocumentRow, error) {
	rows, err := s.docs.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("list plan documents: %w", err)
	}
	return rows, nil
}

// Upload stores the file and records it against the plan item. When the
// database write fails the stored file is removed again.
func (s *DocumentService) Upload(ctx context.Context, caller, planID uint, fh *multipart.FileHeader) (*models.Document, error) {
	name := storage.SecureFilename(fh.Filename)
	if name == "" {
		return nil, invalid("Nombre de archivo inválido")
	}

	exists, err := s.plans.Exists(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("check plan item: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	key := storage.UniqueName("", name)
	if err := saveUpload(ctx, s.files, key, fh); err != nil {
		return nil, err
	}

	doc := &models.Document{
		PlanMaestroID: planID,
		NombreArchivo: name,
		RutaArchivo:   key,
		UploadedBy:    &caller,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		removeFile(context.Background(), s.files, s.log, key)
		return nil, notFound(err)
	}
	return doc, nil
}

// Delete removes the row, clears the plan flag when needed and then drops
// the stored file on a best-effort basis.
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.docs.Delete(ctx, id)
	if err != nil {
		return notFound(err)
	}
	removeFile(ctx, s.files, s.log, doc.RutaArchivo)
	return nil
}

// Open streams a stored file by its key.
func (s *DocumentService) Open(ctx context.Context, key string) (*storage.FileObject, error) {
	obj, err := s.files.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return obj, nil
}

func saveUpload(ctx context.Context, files storage.Provider, key string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if err := files.Put(ctx, key, src, contentType); err != nil {
		return fmt.Errorf("store file: %w", err)
	}
	return nil
}
