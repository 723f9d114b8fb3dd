package repository

import (
	"context"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// TeamRepository はチーム永続化のインターフェース
type TeamRepository interface {
	List(ctx context.Context, orgID string) ([]*model.Team, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Team, error)
	Create(ctx context.Context, team *model.Team) error
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, orgID, id string) error
}
