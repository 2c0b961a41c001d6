package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gwp-backend/internal/models"
)

// AuthorizeFunc vets the caller against the current row inside the
// transaction that mutates it. A non-nil error aborts the mutation.
type AuthorizeFunc func(obs *models.Observation) error

// ObservationRepository reads and writes observaciones.
type ObservationRepository struct {
	db *gorm.DB
}

// NewObservationRepository creates an ObservationRepository.
func NewObservationRepository(db *gorm.DB) *ObservationRepository {
	return &ObservationRepository{db: db}
}

// Create inserts an observation on an existing plan item.
func (r *ObservationRepository) Create(ctx context.Context, obs *models.Observation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePlan(tx, obs.PlanMaestroID); err != nil {
			return err
		}
		return tx.Create(obs).Error
	})
}

func (r *ObservationRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("observaciones o").
		Select("o.id, o.texto, o.created_at, o.updated_at, o.usuario_id, " +
			"u.nombre AS usuario_nombre, u.username AS usuario_username, " +
			"o.plan_maestro_id AS plan_id, p.activity_code, p.task_name").
		Joins("LEFT JOIN usuarios u ON u.id = o.usuario_id").
		Joins("LEFT JOIN plan_maestro p ON p.id = o.plan_maestro_id")
}

// ListByPlan returns the log of one plan item, newest first.
func (r *ObservationRepository) ListByPlan(ctx context.Context, planID uint) ([]models.ObservationRow, error) {
	rows := make([]models.ObservationRow, 0)
	err := r.joined(ctx).
		Where("o.plan_maestro_id = ?", planID).
		Order("o.created_at DESC, o.id DESC").
		Scan(&rows).Error
	return rows, err
}

// List returns every observation, newest first.
func (r *ObservationRepository) List(ctx context.Context) ([]models.ObservationRow, error) {
	rows := make([]models.ObservationRow, 0)
	err := r.joined(ctx).Order("o.created_at DESC, o.id DESC").Scan(&rows).Error
	return rows, err
}

// UpdateText replaces the text of an observation once authorize accepts it.
func (r *ObservationRepository) UpdateText(ctx context.Context, id uint, texto string, now time.Time, authorize AuthorizeFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var obs models.Observation
		if err := tx.First(&obs, id).Error; err != nil {
			return err
		}
		if err := authorize(&obs); err != nil {
			return err
		}
		return tx.Model(&models.Observation{}).Where("id = ?", id).Updates(map[string]interface{}{
			"texto":      texto,
			"updated_at": now,
		}).Error
	})
}

// Delete removes an observation once authorize accepts it.
func (r *ObservationRepository) Delete(ctx context.Context, id uint, authorize AuthorizeFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var obs models.Observation
		if err := tx.First(&obs, id).Error; err != nil {
			return err
		}
		if err := authorize(&obs); err != nil {
			return err
		}
		return deleteByID(tx, &models.Observation{}, id)
	})
}
