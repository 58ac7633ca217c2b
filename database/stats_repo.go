package database

import (
	"context"

	"github.com/dasalon/blog-backend/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DashboardStats is the aggregation view over the other stores. It is
// recomputed from current store state on every call; nothing is cached.
type DashboardStats struct {
	TotalPosts      int64 `json:"totalPosts"`
	TotalCategories int64 `json:"totalCategories"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalViews      int64 `json:"totalViews"`
}

type StatsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db}
}

// Stats derives the dashboard counters. The four reads run concurrently but
// each is a single aggregate query, so no row is double-counted or skipped
// within a call.
func (r *StatsRepo) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Post{}).Count(&stats.TotalPosts).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Menu{}).
			Where("status = ?", true).
			Count(&stats.TotalCategories).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.User{}).Count(&stats.TotalUsers).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Post{}).
			Select("COALESCE(SUM(views), 0)").
			Scan(&stats.TotalViews).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
