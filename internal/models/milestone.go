package models

import (
	"time"
)

// Milestone (hito) belongs to exactly one plan item.
type Milestone struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	PlanMaestroID uint      `gorm:"not null;index" json:"plan_maestro_id"`
	Nombre        string    `gorm:"size:255;not null" json:"nombre"`
	FechaEstimada Date      `json:"fecha_estimada"`
	Descripcion   *string   `gorm:"type:text" json:"descripcion"`
	Estado        string    `gorm:"size:50;not null;default:'Pendiente'" json:"estado"`
	CreatedBy     *uint     `json:"created_by"`
	UpdatedBy     *uint     `json:"updated_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName maps the model to its table.
func (Milestone) TableName() string {
	return "hitos"
}

// MilestoneRow is a milestone joined with its plan item's labels.
type MilestoneRow struct {
	Milestone
	ActivityCode *string `json:"activity_code"`
	TaskName     *string `json:"task_name"`
}
