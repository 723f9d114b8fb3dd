package repository

import (
	"context"
	"time"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// ScenarioRepository はシナリオ（契約者・優先度上書き付き）の永続化インターフェース
type ScenarioRepository interface {
	List(ctx context.Context, orgID string) ([]*model.Scenario, error)
	GetByID(ctx context.Context, orgID, id string) (*model.Scenario, error)
	Create(ctx context.Context, scenario *model.Scenario) error
	// Update は名前・説明を更新し、契約者と上書きを置き換える。スナップショットは破棄する
	Update(ctx context.Context, scenario *model.Scenario) error
	Delete(ctx context.Context, orgID, id string) error
	SaveSnapshot(ctx context.Context, orgID, id string, snapshot []byte, at time.Time) error
}

// OrgSettingsRepository は組織設定の永続化インターフェース
type OrgSettingsRepository interface {
	// Get は未設定の組織に対して空の設定を返す
	Get(ctx context.Context, orgID string) (*model.OrgSettings, error)
	Upsert(ctx context.Context, settings *model.OrgSettings) error
}
