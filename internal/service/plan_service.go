package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/models"
	"gwp-backend/internal/patch"
	"gwp-backend/internal/repository"
	"gwp-backend/internal/storage"
)

// PlanService manages the master plan items.
type PlanService struct {
	plans *repository.PlanRepository
	files storage.Provider
	log   *logrus.Logger
}

// NewPlanService creates a PlanService.
func NewPlanService(plans *repository.PlanRepository, files storage.Provider, log *logrus.Logger) *PlanService {
	return &PlanService{plans: plans, files: files, log: log}
}

// List returns the whole plan.
func (s *PlanService) List(ctx context.Context) ([]models.PlanItem, error) {
	items, err := s.plans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plan: %w", err)
	}
	return items, nil
}

// Get returns one plan item.
func (s *PlanService) Get(ctx context.Context, id uint) (*models.PlanItem, error) {
	item, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return item, nil
}

// Create inserts a plan item owned by caller.
func (s *PlanService) Create(ctx context.Context, caller uint, req *dto.CreatePlanItemRequest) (*models.PlanItem, error) {
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.DefaultStatus
	}
	item := &models.PlanItem{
		ActivityCode:        req.ActivityCode,
		ProductCode:         req.ProductCode,
		TaskName:            req.TaskName,
		WeekStart:           req.WeekStart,
		WeekEnd:             req.WeekEnd,
		TypeTag:             req.TypeTag,
		DependencyCode:      req.DependencyCode,
		EvidenceRequirement: req.EvidenceRequirement,
		PrimaryRole:         req.PrimaryRole,
		CoResponsibles:      req.CoResponsibles,
		PrimaryResponsible:  req.PrimaryResponsible,
		Status:              status,
		FechaInicio:         req.FechaInicio,
		FechaFin:            req.FechaFin,
		CreatedBy:           &caller,
		UpdatedBy:           &caller,
	}
	if err := s.plans.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create plan item: %w", err)
	}
	return item, nil
}

// Update applies the recognised keys of payload. changed is false when
// there was nothing to update; the row is then left untouched.
func (s *PlanService) Update(ctx context.Context, caller, id uint, payload map[string]interface{}) (bool, error) {
	u, err := patch.PlanItemFields.Build(payload)
	if err != nil {
		return false, invalid(err.Error())
	}
	if u.Empty() {
		return false, nil
	}
	if v, ok := u.Value("status"); ok && strings.TrimSpace(v.(string)) == "" {
		return false, invalid("El estado no puede estar vacío")
	}
	u.Stamp(caller, time.Now())
	if err := s.plans.Update(ctx, id, u); err != nil {
		return false, notFound(err)
	}
	return true, nil
}

// Delete removes a plan item with everything attached to it. Stored files
// are removed after commit; failures there are only logged.
func (s *PlanService) Delete(ctx context.Context, id uint) error {
	keys, err := s.plans.Delete(ctx, id)
	if err != nil {
		return notFound(err)
	}
	for _, key := range keys {
		removeFile(ctx, s.files, s.log, key)
	}
	return nil
}

// removeFile deletes a stored file, logging instead of failing.
func removeFile(ctx context.Context, files storage.Provider, log *logrus.Logger, key string) {
	if key == "" {
		return
	}
	if err := files.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("file", key).Warn("could not remove stored file")
	}
}
