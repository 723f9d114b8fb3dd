package repository

import (
	"context"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// HolidayRepository は祝日永続化のインターフェース
type HolidayRepository interface {
	List(ctx context.Context, orgID string) ([]*model.Holiday, error)
	Create(ctx context.Context, holiday *model.Holiday) error
	Delete(ctx context.Context, orgID, id string) error
}

// ResourceRepository は個人リソース永続化のインターフェース
type ResourceRepository interface {
	List(ctx context.Context, orgID string) ([]*model.Resource, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Resource, error)
	Create(ctx context.Context, resource *model.Resource) error
	Delete(ctx context.Context, orgID, id string) error
}

// PTORepository は休暇永続化のインターフェース。組織はリソース経由で判定する
type PTORepository interface {
	ListByOrg(ctx context.Context, orgID string) ([]*model.PTOEntry, error)
	ListByResource(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error)
	Create(ctx context.Context, orgID string, entry *model.PTOEntry) error
	Delete(ctx context.Context, orgID, id string) error
}
