package dto

import "gwp-backend/internal/models"

// CreatePlanItemRequest is the body of POST /plan-maestro. Every field is
// optional; status falls back to models.DefaultStatus.
type CreatePlanItemRequest struct {
	ActivityCode        *string     `json:"activity_code"`
	ProductCode         *string     `json:"product_code"`
	TaskName            *string     `json:"task_name"`
	WeekStart           *int        `json:"week_start"`
	WeekEnd             *int        `json:"week_end"`
	TypeTag             *string     `json:"type_tag"`
	DependencyCode      *string     `json:"dependency_code"`
	EvidenceRequirement *string     `json:"evidence_requirement"`
	PrimaryRole         *string     `json:"primary_role"`
	CoResponsibles      *string     `json:"co_responsibles"`
	PrimaryResponsible  *string     `json:"primary_responsible"`
	Status              string      `json:"status"`
	FechaInicio         models.Date `json:"fecha_inicio"`
	FechaFin            models.Date `json:"fecha_fin"`
}

// CreateMilestoneRequest is the body of POST /hitos.
type CreateMilestoneRequest struct {
	PlanMaestroID uint        `json:"plan_maestro_id" binding:"required"`
	Nombre        string      `json:"nombre"`
	FechaEstimada models.Date `json:"fecha_estimada"`
	Descripcion   *string     `json:"descripcion"`
	Estado        string      `json:"estado"`
}

// ObservationRequest is the body of observation writes.
type ObservationRequest struct {
	Texto string `json:"texto"`
}
