package repository

import (
	"context"

	"gorm.io/gorm"

	"gwp-backend/internal/models"
)

// LabelCount is one bucket of a GROUP BY count.
type LabelCount struct {
	Label string
	Total int64
}

// Totals are the dashboard counters.
type Totals struct {
	Items          int64
	ByStatus       []LabelCount
	ByProduct      []LabelCount
	Milestones     int64
	MilestonesDone int64
	Documents      int64
	Observations   int64
}

// StatsRepository aggregates counters over the plan tables.
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a StatsRepository.
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Totals runs every counter inside one read transaction so the numbers
// describe the same snapshot.
func (r *StatsRepository) Totals(ctx context.Context, doneStates []string) (*Totals, error) {
	t := &Totals{ByStatus: make([]LabelCount, 0), ByProduct: make([]LabelCount, 0)}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.PlanItem{}).Count(&t.Items).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PlanItem{}).
			Select("status AS label, COUNT(*) AS total").
			Group("status").Order("status").
			Scan(&t.ByStatus).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PlanItem{}).
			Select("COALESCE(product_code, '') AS label, COUNT(*) AS total").
			Group("COALESCE(product_code, '')").Order("label").
			Scan(&t.ByProduct).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Milestone{}).Count(&t.Milestones).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Milestone{}).
			Where("estado IN ?", doneStates).
			Count(&t.MilestonesDone).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Document{}).Count(&t.Documents).Error; err != nil {
			return err
		}
		return tx.Model(&models.Observation{}).Count(&t.Observations).Error
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
