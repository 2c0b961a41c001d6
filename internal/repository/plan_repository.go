package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gwp-backend/internal/models"
	"gwp-backend/internal/patch"
)

// PlanRepository reads and writes plan_maestro.
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a PlanRepository.
func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create inserts a plan item.
func (r *PlanRepository) Create(ctx context.Context, item *models.PlanItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID returns one plan item.
func (r *PlanRepository) GetByID(ctx context.Context, id uint) (*models.PlanItem, error) {
	var item models.PlanItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns the whole plan ordered by id.
func (r *PlanRepository) List(ctx context.Context) ([]models.PlanItem, error) {
	items := make([]models.PlanItem, 0)
	err := r.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

// Exists reports whether the plan item id is present.
func (r *PlanRepository) Exists(ctx context.Context, id uint) (bool, error) {
	err := requirePlan(r.db.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Update applies a partial update.
func (r *PlanRepository) Update(ctx context.Context, id uint, u *patch.Update) error {
	return applyUpdate(r.db.WithContext(ctx), &models.PlanItem{}, id, u)
}

// Delete removes the plan item together with its milestones, documents and
// observations. It returns the file store keys of the removed documents so
// the caller can delete them after commit.
func (r *PlanRepository) Delete(ctx context.Context, id uint) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePlan(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Document{}).
			Where("plan_maestro_id = ?", id).
			Pluck("ruta_archivo", &keys).Error; err != nil {
			return err
		}
		for _, child := range []interface{}{&models.Milestone{}, &models.Document{}, &models.Observation{}} {
			if err := tx.Where("plan_maestro_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return deleteByID(tx, &models.PlanItem{}, id)
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
