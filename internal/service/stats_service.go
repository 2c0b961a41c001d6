package service

import (
	"context"
	"fmt"

	"gwp-backend/internal/dto"
	"gwp-backend/internal/repository"
)

// NoProductLabel groups plan items without a product code.
const NoProductLabel = "Sin producto"

// DoneStates are the milestone states counted as finished.
var DoneStates = []string{"Completado", "Completada", "Cumplido", "Finalizado"}

// StatsService computes the dashboard counters.
type StatsService struct {
	stats *repository.StatsRepository
}

// NewStatsService creates a StatsService.
func NewStatsService(stats *repository.StatsRepository) *StatsService {
	return &StatsService{stats: stats}
}

// Get returns the dashboard counters.
func (s *StatsService) Get(ctx context.Context) (*dto.StatsResponse, error) {
	t, err := s.stats.Totals(ctx, DoneStates)
	if err != nil {
		return nil, fmt.Errorf("compute stats: %w", err)
	}
	resp := &dto.StatsResponse{
		TotalItems:     t.Items,
		ByStatus:       make(map[string]int64, len(t.ByStatus)),
		ByProduct:      make(map[string]int64, len(t.ByProduct)),
		Milestones:     t.Milestones,
		MilestonesDone: t.MilestonesDone,
		Documents:      t.Documents,
		Observations:   t.Observations,
	}
	for _, c := range t.ByStatus {
		resp.ByStatus[c.Label] = c.Total
	}
	for _, c := range t.ByProduct {
		label := c.Label
		if label == "" {
			label = NoProductLabel
		}
		resp.ByProduct[label] += c.Total
	}
	return resp, nil
}
