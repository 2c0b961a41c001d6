package models

import (
	"time"
)

// Observation is a log entry (bitácora) written by a user on a plan item.
type Observation struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	PlanMaestroID uint      `gorm:"not null;index" json:"plan_maestro_id"`
	UsuarioID     *uint     `gorm:"index" json:"usuario_id"`
	Texto         string    `gorm:"type:text;not null" json:"texto"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName maps the model to its table.
func (Observation) TableName() string {
	return "observaciones"
}

// ObservationRow is an observation with author and plan labels.
type ObservationRow struct {
	ID              uint      `json:"id"`
	Texto           string    `json:"texto"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UsuarioID       *uint     `json:"usuario_id"`
	UsuarioNombre   *string   `json:"usuario_nombre"`
	UsuarioUsername *string   `json:"usuario_username,omitempty"`
	PlanID          uint      `json:"plan_id"`
	ActivityCode    *string   `json:"activity_code,omitempty"`
	TaskName        *string   `json:"task_name,omitempty"`
}
