package models

import (
	"time"
)

// DefaultStatus is assigned to plan items and milestones created without one.
const DefaultStatus = "Pendiente"

// PlanItem is one task of the master plan (plan maestro).
type PlanItem struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	ActivityCode        *string   `gorm:"size:50" json:"activity_code"`
	ProductCode         *string   `gorm:"size:255" json:"product_code"`
	TaskName            *string   `gorm:"type:text" json:"task_name"`
	WeekStart           *int      `json:"week_start"`
	WeekEnd             *int      `json:"week_end"`
	TypeTag             *string   `gorm:"size:100" json:"type_tag"`
	DependencyCode      *string   `gorm:"size:100" json:"dependency_code"`
	EvidenceRequirement *string   `gorm:"type:text" json:"evidence_requirement"`
	PrimaryRole         *string   `gorm:"size:150" json:"primary_role"`
	CoResponsibles      *string   `gorm:"type:text" json:"co_responsibles"`
	PrimaryResponsible  *string   `gorm:"size:150" json:"primary_responsible"`
	Status              string    `gorm:"size:50;not null;default:'Pendiente'" json:"status"`
	FechaInicio         Date      `json:"fecha_inicio"`
	FechaFin            Date      `json:"fecha_fin"`
	HasFileUploaded     bool      `gorm:"not null;default:false" json:"has_file_uploaded"`
	CreatedBy           *uint     `json:"created_by"`
	UpdatedBy           *uint     `json:"updated_by"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName maps the model to its table.
func (PlanItem) TableName() string {
	return "plan_maestro"
}
