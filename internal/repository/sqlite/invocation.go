package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/isaacphi/awsdocs/internal/domain"
	"github.com/isaacphi/awsdocs/internal/repository"

	"gorm.io/gorm"
)

// likePrefix escapes the LIKE metacharacters so a prefix matches literally.
var likePrefix = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type invocationRepo struct {
	db *gorm.DB
}

func NewInvocationRepository(db *gorm.DB) repository.InvocationRepository {
	return &invocationRepo{db: db}
}

func (r *invocationRepo) Record(ctx context.Context, inv *domain.Invocation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *invocationRepo) List(ctx context.Context, filter repository.ListFilter) ([]domain.Invocation, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.ToolID != "" {
		q = q.Where("tool_id = ?", filter.ToolID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var invocations []domain.Invocation
	if err := q.Find(&invocations).Error; err != nil {
		return nil, err
	}
	return invocations, nil
}

func (r *invocationRepo) FindByPartialID(ctx context.Context, partialID string) (*domain.Invocation, error) {
	if partialID == "" {
		return nil, errors.New("invocation id prefix must not be empty")
	}

	var matches []domain.Invocation
	if err := r.db.WithContext(ctx).Where(`id LIKE ? ESCAPE '\'`, likePrefix.Replace(partialID)+"%").Limit(2).Find(&matches).Error; err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, domain.NoHistoryError{}
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("ambiguous invocation id prefix %q", partialID)
	}
}

func (r *invocationRepo) Clear(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Invocation{})
	if res.Error != nil && !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *invocationRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
