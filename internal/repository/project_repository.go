package repository

import (
	"context"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// ProjectRepository はプロジェクトとチーム別見積の永続化インターフェース
type ProjectRepository interface {
	// List は見積付きのプロジェクトを優先度順（同値は作成順）で返す
	List(ctx context.Context, orgID string) ([]*model.Project, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Project, error)
	// Create はプロジェクトと見積を 1 トランザクションで作成する
	Create(ctx context.Context, project *model.Project) error
	// Update は見積以外の列を更新する
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, orgID, id string) error
	// ReplaceEstimates は見積を全削除して estimates を挿入する
	ReplaceEstimates(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error
}
