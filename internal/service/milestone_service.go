package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/models"
	"gwp-backend/internal/patch"
	"gwp-backend/internal/repository"
)

// MilestoneService manages hitos.
type MilestoneService struct {
	milestones *repository.MilestoneRepository
}

// NewMilestoneService creates a MilestoneService.
func NewMilestoneService(milestones *repository.MilestoneRepository) *MilestoneService {
	return &MilestoneService{milestones: milestones}
}

// List returns all milestones with their plan labels.
func (s *MilestoneService) List(ctx context.Context) ([]models.MilestoneRow, error) {
	rows, err := s.milestones.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return rows, nil
}

// ListByPlan returns the milestones of one plan item.
func (s *MilestoneService) ListByPlan(ctx context.Context, planID uint) ([]models.Milestone, error) {
	rows, err := s.milestones.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("list plan milestones: %w", err)
	}
	return rows, nil
}

// Create adds a milestone to an existing plan item.
func (s *MilestoneService) Create(ctx context.Context, caller uint, req *dto.CreateMilestoneRequest) (*models.Milestone, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, invalid("Nombre requerido")
	}
	estado := strings.TrimSpace(req.Estado)
	if estado == "" {
		estado = models.DefaultStatus
	}
	m := &models.Milestone{
		PlanMaestroID: req.PlanMaestroID,
		Nombre:        nombre,
		FechaEstimada: req.FechaEstimada,
		Descripcion:   req.Descripcion,
		Estado:        estado,
		CreatedBy:     &caller,
		UpdatedBy:     &caller,
	}
	if err := s.milestones.Create(ctx, m); err != nil {
		return nil, notFound(err)
	}
	return m, nil
}

// Update applies a partial update. changed is false on an empty payload.
func (s *MilestoneService) Update(ctx context.Context, caller, id uint, payload map[string]interface{}) (bool, error) {
	u, err := patch.MilestoneFields.Build(payload)
	if err != nil {
		return false, invalid(err.Error())
	}
	if u.Empty() {
		return false, nil
	}
	if v, ok := u.Value("nombre"); ok && strings.TrimSpace(v.(string)) == "" {
		return false, invalid("Nombre requerido")
	}
	u.Stamp(caller, time.Now())
	if err := s.milestones.Update(ctx, id, u); err != nil {
		return false, notFound(err)
	}
	return true, nil
}

// Delete removes a milestone.
func (s *MilestoneService) Delete(ctx context.Context, id uint) error {
	return notFound(s.milestones.Delete(ctx, id))
}
