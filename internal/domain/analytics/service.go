// internal/domain/analytics/service.go
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/your-org/storefront-gateway/internal/config"
	"gorm.io/gorm"
)

const defaultStatsLimit = 20

// Service handles product view analytics
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// HandleViews is the per-product aggregation row for the stats readout.
type HandleViews struct {
	ProductHandle string `json:"product_handle"`
	ProductTitle  string `json:"product_title"`
	Views         int64  `json:"views"`
}

// ViewStats represents the admin readout over recorded view events
type ViewStats struct {
	TotalViews int64              `json:"total_views"`
	ByHandle   []HandleViews      `json:"by_handle"`
	Recent     []ProductViewEvent `json:"recent"`
}

// RecordProductView persists one view event. Missing quantity and timestamp
// are filled in. Callers treat a failure as log-and-continue: a failed view
// write must never fail the page that produced it.
func (s *Service) RecordProductView(ctx context.Context, event *ProductViewEvent) error {
	if event.Quantity <= 0 {
		event.Quantity = 1
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record product view: %w", err)
	}
	return nil
}

// ProductViewStats aggregates recorded views: total count, views per product
// handle, and the most recent events. A zero since means all time.
func (s *Service) ProductViewStats(ctx context.Context, since time.Time, limit int) (*ViewStats, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultStatsLimit
	}

	stats := &ViewStats{}

	total := s.db.WithContext(ctx).Model(&ProductViewEvent{})
	if !since.IsZero() {
		total = total.Where("created_at >= ?", since)
	}
	if err := total.Count(&stats.TotalViews).Error; err != nil {
		return nil, fmt.Errorf("failed to count product views: %w", err)
	}

	byHandle := s.db.WithContext(ctx).Model(&ProductViewEvent{}).
		Select("product_handle, product_title, COUNT(*) AS views")
	if !since.IsZero() {
		byHandle = byHandle.Where("created_at >= ?", since)
	}
	if err := byHandle.
		Group("product_handle, product_title").
		Order("views DESC").
		Limit(limit).
		Scan(&stats.ByHandle).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate product views: %w", err)
	}

	recent := s.db.WithContext(ctx).Model(&ProductViewEvent{})
	if !since.IsZero() {
		recent = recent.Where("created_at >= ?", since)
	}
	if err := recent.
		Order("created_at DESC").
		Limit(limit).
		Find(&stats.Recent).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent product views: %w", err)
	}

	return stats, nil
}
