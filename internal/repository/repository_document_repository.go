package repository

import (
	"context"

	"gorm.io/gorm"

	"gwp-backend/internal/models"
	"gwp-backend/internal/patch"
)

// RepositoryDocRepository reads and writes repositorio_documentos.
type RepositoryDocRepository struct {
	db *gorm.DB
}

// NewRepositoryDocRepository creates a RepositoryDocRepository.
func NewRepositoryDocRepository(db *gorm.DB) *RepositoryDocRepository {
	return &RepositoryDocRepository{db: db}
}

// Create inserts a repository entry.
func (r *RepositoryDocRepository) Create(ctx context.Context, doc *models.RepositoryDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

// List returns every entry with the uploader's name, newest first.
func (r *RepositoryDocRepository) List(ctx context.Context) ([]models.RepositoryDocumentRow, error) {
	rows := make([]models.RepositoryDocumentRow, 0)
	err := r.db.WithContext(ctx).
		Table("repositorio_documentos r").
		Select("r.*, u.nombre AS uploader_name").
		Joins("LEFT JOIN usuarios u ON u.id = r.uploaded_by").
		Order("r.created_at DESC, r.id DESC").
		Scan(&rows).Error
	return rows, err
}

// GetByID returns one entry.
func (r *RepositoryDocRepository) GetByID(ctx context.Context, id uint) (*models.RepositoryDocument, error) {
	var doc models.RepositoryDocument
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update applies a partial update.
func (r *RepositoryDocRepository) Update(ctx context.Context, id uint, u *patch.Update) error {
	return applyUpdate(r.db.WithContext(ctx), &models.RepositoryDocument{}, id, u)
}

// Delete removes the entry and returns it so the caller can drop its file.
func (r *RepositoryDocRepository) Delete(ctx context.Context, id uint) (*models.RepositoryDocument, error) {
	var doc models.RepositoryDocument
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, id).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.RepositoryDocument{}, id)
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
