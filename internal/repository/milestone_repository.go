package repository

import (
	"context"

	"gorm.io/gorm"

	"gwp-backend/internal/models"
	"gwp-backend/internal/patch"
)

const milestoneColumns = "h.id, h.plan_maestro_id, h.nombre, h.fecha_estimada, h.descripcion, h.estado, " +
	"h.created_by, h.updated_by, h.created_at, h.updated_at"

// MilestoneRepository reads and writes hitos.
type MilestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a MilestoneRepository.
func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

// Create inserts the milestone after checking that its plan item exists.
func (r *MilestoneRepository) Create(ctx context.Context, m *models.Milestone) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePlan(tx, m.PlanMaestroID); err != nil {
			return err
		}
		return tx.Create(m).Error
	})
}

// List returns all milestones with the labels of their plan item.
func (r *MilestoneRepository) List(ctx context.Context) ([]models.MilestoneRow, error) {
	rows := make([]models.MilestoneRow, 0)
	err := r.db.WithContext(ctx).
		Table("hitos h").
		Select(milestoneColumns + ", p.activity_code, p.task_name").
		Joins("LEFT JOIN plan_maestro p ON p.id = h.plan_maestro_id").
		Order("h.fecha_estimada, h.id").
		Scan(&rows).Error
	return rows, err
}

// ListByPlan returns the milestones of one plan item.
func (r *MilestoneRepository) ListByPlan(ctx context.Context, planID uint) ([]models.Milestone, error) {
	milestones := make([]models.Milestone, 0)
	err := r.db.WithContext(ctx).
		Where("plan_maestro_id = ?", planID).
		Order("fecha_estimada, id").
		Find(&milestones).Error
	return milestones, err
}

// Update applies a partial update.
func (r *MilestoneRepository) Update(ctx context.Context, id uint, u *patch.Update) error {
	return applyUpdate(r.db.WithContext(ctx), &models.Milestone{}, id, u)
}

// Delete removes one milestone.
func (r *MilestoneRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.Milestone{}, id)
}
