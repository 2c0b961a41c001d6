package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gwp-backend/internal/models"
	"gwp-backend/internal/repository"
)

// ObservationService manages the per-item log.
type ObservationService struct {
	observations *repository.ObservationRepository
	authz        *Authorizer
}

// NewObservationService creates an ObservationService.
func NewObservationService(observations *repository.ObservationRepository, authz *Authorizer) *ObservationService {
	return &ObservationService{observations: observations, authz: authz}
}

// ListByPlan returns the log of one plan item.
func (s *ObservationService) ListByPlan(ctx context.Context, planID uint) ([]models.ObservationRow, error) {
	rows, err := s.observations.ListByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	return rows, nil
}

// List returns every observation.
func (s *ObservationService) List(ctx context.Context) ([]models.ObservationRow, error) {
	rows, err := s.observations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	return rows, nil
}

// Create writes an observation authored by caller.
func (s *ObservationService) Create(ctx context.Context, caller, planID uint, texto string) (*models.Observation, error) {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, invalid("Texto requerido")
	}
	obs := &models.Observation{
		PlanMaestroID: planID,
		UsuarioID:     &caller,
		Texto:         texto,
	}
	if err := s.observations.Create(ctx, obs); err != nil {
		return nil, notFound(err)
	}
	return obs, nil
}

// Update replaces the text. Only the author or an admin may do it.
func (s *ObservationService) Update(ctx context.Context, caller, id uint, texto string) error {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return invalid("Texto requerido")
	}
	return notFound(s.observations.UpdateText(ctx, id, texto, time.Now(), s.ownedBy(caller)))
}

// Delete removes an observation. Only the author or an admin may do it.
func (s *ObservationService) Delete(ctx context.Context, caller, id uint) error {
	return notFound(s.observations.Delete(ctx, id, s.ownedBy(caller)))
}

func (s *ObservationService) ownedBy(caller uint) repository.AuthorizeFunc {
	return func(obs *models.Observation) error {
		if !s.authz.CanModify(caller, obs.UsuarioID) {
			return ErrForbidden
		}
		return nil
	}
}
