package customers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FathomMedia/tja-portal-1229-sub000/internal/modules/levels"
)

var (
	ErrSuspendNoop     = errors.New("customer already in requested state")
	ErrPointsBelowZero = errors.New("point adjustment would go negative")
)

const detailCacheTTL = 10 * time.Minute

type Service struct {
	db     *gorm.DB
	repo   *Repo
	levels *levels.Repo
	rdb    *redis.Client
	logger *slog.Logger
}

func NewService(db *gorm.DB, rdb *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		repo:   NewRepo(db),
		levels: levels.NewRepo(db),
		rdb:    rdb,
		logger: logger,
	}
}

func cacheKey(id string) string { return "customer:" + id }

// Detail serves the customer record through the Redis cache. Mutations
// drop the key, so a stale read lasts at most one write.
func (s *Service) Detail(ctx context.Context, id string) (Customer, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKey(id)).Result(); err == nil {
			var cu Customer
			if json.Unmarshal([]byte(raw), &cu) == nil {
				return cu, nil
			}
		}
	}

	cu, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}

	if s.rdb != nil {
		if b, err := json.Marshal(cu); err == nil {
			if err := s.rdb.Set(ctx, cacheKey(id), b, detailCacheTTL).Err(); err != nil {
				s.logger.WarnContext(ctx, "customer cache set failed", "id", id, "err", err)
			}
		}
	}
	return cu, nil
}

func (s *Service) Suspend(ctx context.Context, id string) error {
	return s.setSuspended(ctx, id, true)
}

func (s *Service) Unsuspend(ctx context.Context, id string) error {
	return s.setSuspended(ctx, id, false)
}

func (s *Service) setSuspended(ctx context.Context, id string, suspended bool) error {
	cu, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if cu.Suspended == suspended {
		return ErrSuspendNoop
	}
	if err := s.repo.SetSuspended(ctx, id, suspended); err != nil {
		return err
	}
	s.dropCache(ctx, id)
	return nil
}

type AdjustPointsInput struct {
	CustomerID string
	Delta      int
	ActorID    string
	Reason     string
}

// AdjustPoints applies a point delta under a row lock and moves the customer
// to the matching loyalty tier.
func (s *Service) AdjustPoints(ctx context.Context, in AdjustPointsInput) (Customer, error) {
	var out Customer

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cu Customer
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&cu, "id = ?", in.CustomerID).Error; err != nil {
			return err
		}

		newPoints := cu.Points + in.Delta
		if newPoints < 0 {
			return ErrPointsBelowZero
		}

		lvl, err := levels.NewRepo(tx).ForPoints(ctx, newPoints)
		if err != nil {
			return err
		}
		var levelID *string
		if lvl != nil {
			levelID = &lvl.ID
		}

		if err := tx.WithContext(ctx).Model(&Customer{}).
			Where("id = ?", cu.ID).
			Updates(map[string]any{
				"points":     newPoints,
				"level_id":   levelID,
				"updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}

		ev := PointsEvent{
			ID:         uuid.NewString(),
			CustomerID: cu.ID,
			ActorID:    in.ActorID,
			Delta:      in.Delta,
			Balance:    newPoints,
			Reason:     in.Reason,
			CreatedAt:  time.Now(),
		}
		if err := tx.WithContext(ctx).Create(&ev).Error; err != nil {
			return err
		}

		cu.Points = newPoints
		cu.LevelID = levelID
		cu.Level = lvl
		out = cu
		return nil
	})
	if err != nil {
		return Customer{}, err
	}

	s.logger.InfoContext(ctx, "customer points adjusted",
		"customer_id", in.CustomerID, "delta", in.Delta, "actor_id", in.ActorID, "reason", in.Reason)
	s.dropCache(ctx, in.CustomerID)
	return out, nil
}

func (s *Service) dropCache(ctx context.Context, id string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		s.logger.WarnContext(ctx, "customer cache invalidate failed", "id", id, "err", err)
	}
}
