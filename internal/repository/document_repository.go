package repository

import (
	"context"

	"gorm.io/gorm"

	"gwp-backend/internal/models"
)

const documentColumns = "d.id, d.plan_maestro_id, d.nombre_archivo, d.ruta_archivo, d.uploaded_by, d.created_at"

// DocumentRepository reads and writes documentos and keeps the
// has_file_uploaded flag of plan_maestro in step with them.
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a DocumentRepository.
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts the document and marks its plan item as having a file, in
// one transaction. gorm.ErrRecordNotFound means the plan item is absent.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePlan(tx, doc.PlanMaestroID); err != nil {
			return err
		}
		if err := tx.Create(doc).Error; err != nil {
			return err
		}
		return tx.Model(&models.PlanItem{}).
			Where("id = ?", doc.PlanMaestroID).
			Update("has_file_uploaded", true).Error
	})
}

func (r *DocumentRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("documentos d").
		Select(documentColumns + ", p.activity_code, p.task_name, u.nombre AS uploader").
		Joins("LEFT JOIN plan_maestro p ON p.id = d.plan_maestro_id").
		Joins("LEFT JOIN usuarios u ON u.id = d.uploaded_by")
}

// List returns every document, newest first.
func (r *DocumentRepository) List(ctx context.Context) ([]models.DocumentRow, error) {
	rows := make([]models.DocumentRow, 0)
	err := r.joined(ctx).Order("d.created_at DESC, d.id DESC").Scan(&rows).Error
	return rows, err
}

// ListByPlan returns the documents of one plan item, newest first.
func (r *DocumentRepository) ListByPlan(ctx context.Context, planID uint) ([]models.DocumentRow, error) {
	rows := make([]models.DocumentRow, 0)
	err := r.joined(ctx).
		Where("d.plan_maestro_id = ?", planID).
		Order("d.created_at DESC, d.id DESC").
		Scan(&rows).Error
	return rows, err
}

// GetByID returns one document.
func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes the document and clears has_file_uploaded when it was the
// last one of its plan item. The deleted row is returned so the caller can
// remove the stored file.
func (r *DocumentRepository) Delete(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&doc, id).Error; err != nil {
			return err
		}
		if err := deleteByID(tx, &models.Document{}, id); err != nil {
			return err
		}
		var remaining int64
		if err := tx.Model(&models.Document{}).
			Where("plan_maestro_id = ?", doc.PlanMaestroID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}
		return tx.Model(&models.PlanItem{}).
			Where("id = ?", doc.PlanMaestroID).
			Update("has_file_uploaded", false).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
