package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// PgScenarioRepository は ScenarioRepository の PostgreSQL 実装
type PgScenarioRepository struct {
	pool *pgxpool.Pool
}

// NewPgScenarioRepository は PgScenarioRepository を生成する
func NewPgScenarioRepository(pool *pgxpool.Pool) *PgScenarioRepository {
	return &PgScenarioRepository{pool: pool}
}

// List は組織のシナリオ一覧を返す。スナップショットは含めない
func (r *PgScenarioRepository) List(ctx context.Context, orgID string) ([]*model.Scenario, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, org_id, name, description, snapshot_at, created_at, updated_at
		 FROM scenarios WHERE org_id = $1 ORDER BY created_at, id`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenarios := []*model.Scenario{}
	for rows.Next() {
		var s model.Scenario
		if err := rows.Scan(&s.ID, &s.OrgID, &s.Name, &s.Description, &s.SnapshotAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, s := range scenarios {
		if err := r.loadOverlay(ctx, s); err != nil {
			return nil, err
		}
	}
	return scenarios, nil
}

// GetByID は ID でシナリオをスナップショット付きで取得する
func (r *PgScenarioRepository) GetByID(ctx context.Context, orgID, id string) (*model.Scenario, error) {
	var s model.Scenario
	var snapshot []byte
	err := r.pool.QueryRow(ctx,
		`SELECT id, org_id, name, description, snapshot, snapshot_at, created_at, updated_at
		 FROM scenarios WHERE org_id = $1 AND id = $2`,
		orgID, id,
	).Scan(&s.ID, &s.OrgID, &s.Name, &s.Description, &snapshot, &s.SnapshotAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	if len(snapshot) > 0 {
		s.Snapshot = snapshot
	}
	if err := r.loadOverlay(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// loadOverlay は契約者と優先度上書きを読み込む
func (r *PgScenarioRepository) loadOverlay(ctx context.Context, s *model.Scenario) error {
	rows, err := r.pool.Query(ctx,
		`SELECT id, scenario_id, team_id, role, fte, weeks, start_week
		 FROM scenario_contractors WHERE scenario_id = $1 ORDER BY sort_order, id`,
		s.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	s.Contractors = []model.Contractor{}
	for rows.Next() {
		var c model.Contractor
		if err := rows.Scan(&c.ID, &c.ScenarioID, &c.TeamID, &c.Role, &c.FTE, &c.Weeks, &c.StartWeek); err != nil {
			return err
		}
		s.Contractors = append(s.Contractors, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	ovRows, err := r.pool.Query(ctx,
		`SELECT scenario_id, project_id, priority
		 FROM scenario_priority_overrides WHERE scenario_id = $1 ORDER BY priority, project_id`,
		s.ID,
	)
	if err != nil {
		return err
	}
	defer ovRows.Close()

	s.PriorityOverrides = []model.PriorityOverride{}
	for ovRows.Next() {
		var o model.PriorityOverride
		if err := ovRows.Scan(&o.ScenarioID, &o.ProjectID, &o.Priority); err != nil {
			return err
		}
		s.PriorityOverrides = append(s.PriorityOverrides, o)
	}
	return ovRows.Err()
}

// Create はシナリオと上書きを 1 トランザクションで作成する
func (r *PgScenarioRepository) Create(ctx context.Context, scenario *model.Scenario) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO scenarios (org_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		scenario.OrgID, scenario.Name, scenario.Description,
	).Scan(&scenario.ID, &scenario.CreatedAt, &scenario.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertOverlay(ctx, tx, scenario); err != nil {
		return notFound(err)
	}
	return tx.Commit(ctx)
}

// Update はシナリオの上書きを全削除して再挿入する
func (r *PgScenarioRepository) Update(ctx context.Context, scenario *model.Scenario) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE scenarios SET name=$1, description=$2, snapshot=NULL, snapshot_at=NULL, updated_at=NOW()
		 WHERE org_id=$3 AND id=$4
		 RETURNING created_at, updated_at`,
		scenario.Name, scenario.Description, scenario.OrgID, scenario.ID,
	).Scan(&scenario.CreatedAt, &scenario.UpdatedAt)
	if err != nil {
		return notFound(err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM scenario_contractors WHERE scenario_id=$1`, scenario.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM scenario_priority_overrides WHERE scenario_id=$1`, scenario.ID); err != nil {
		return err
	}
	if err := insertOverlay(ctx, tx, scenario); err != nil {
		return notFound(err)
	}
	scenario.Snapshot = nil
	scenario.SnapshotAt = nil
	return tx.Commit(ctx)
}

// insertOverlay は契約者と優先度上書きを挿入する
func insertOverlay(ctx context.Context, tx pgx.Tx, scenario *model.Scenario) error {
	for i := range scenario.Contractors {
		c := &scenario.Contractors[i]
		c.ScenarioID = scenario.ID
		if err := tx.QueryRow(ctx,
			`INSERT INTO scenario_contractors (scenario_id, team_id, role, fte, weeks, start_week, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			scenario.ID, c.TeamID, c.Role, c.FTE, c.Weeks, c.StartWeek, i,
		).Scan(&c.ID); err != nil {
			return err
		}
	}

	batch := &pgx.Batch{}
	for i := range scenario.PriorityOverrides {
		o := &scenario.PriorityOverrides[i]
		o.ScenarioID = scenario.ID
		batch.Queue(
			`INSERT INTO scenario_priority_overrides (scenario_id, project_id, priority) VALUES ($1, $2, $3)`,
			scenario.ID, o.ProjectID, o.Priority,
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	return tx.SendBatch(ctx, batch).Close()
}

// Delete はシナリオを削除する
func (r *PgScenarioRepository) Delete(ctx context.Context, orgID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM scenarios WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveSnapshot は表示用に最新の割当結果を保存する
func (r *PgScenarioRepository) SaveSnapshot(ctx context.Context, orgID, id string, snapshot []byte, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE scenarios SET snapshot=$1, snapshot_at=$2 WHERE org_id=$3 AND id=$4`,
		snapshot, at, orgID, id,
	)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PgOrgSettingsRepository は OrgSettingsRepository の PostgreSQL 実装
type PgOrgSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPgOrgSettingsRepository は PgOrgSettingsRepository を生成する
func NewPgOrgSettingsRepository(pool *pgxpool.Pool) *PgOrgSettingsRepository {
	return &PgOrgSettingsRepository{pool: pool}
}

// Get は組織設定を取得する
func (r *PgOrgSettingsRepository) Get(ctx context.Context, orgID string) (*model.OrgSettings, error) {
	s := model.OrgSettings{OrgID: orgID}
	err := r.pool.QueryRow(ctx,
		`SELECT blended_rate, hours_per_week, updated_at FROM org_settings WHERE org_id = $1`,
		orgID,
	).Scan(&s.BlendedRate, &s.HoursPerWeek, &s.UpdatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return &s, nil
}

// Upsert は組織設定を作成または更新する
func (r *PgOrgSettingsRepository) Upsert(ctx context.Context, settings *model.OrgSettings) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO org_settings (org_id, blended_rate, hours_per_week)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (org_id) DO UPDATE SET blended_rate=EXCLUDED.blended_rate,
		   hours_per_week=EXCLUDED.hours_per_week, updated_at=NOW()
		 RETURNING updated_at`,
		settings.OrgID, settings.BlendedRate, settings.HoursPerWeek,
	).Scan(&settings.UpdatedAt)
}
