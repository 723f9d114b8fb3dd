package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

const teamColumns = `id, org_id, name, architect, developer, qa, devops, business_analyst, dba, pm,
	product_manager, ux_designer, klo_hours, admin_pct, created_at, updated_at`

// PgTeamRepository は TeamRepository の PostgreSQL 実装
type PgTeamRepository struct {
	pool *pgxpool.Pool
}

// NewPgTeamRepository は PgTeamRepository を生成する
func NewPgTeamRepository(pool *pgxpool.Pool) *PgTeamRepository {
	return &PgTeamRepository{pool: pool}
}

func scanTeam(row pgx.Row) (*model.Team, error) {
	var t model.Team
	s := &t.Staffing
	err := row.Scan(
		&t.ID, &t.OrgID, &t.Name,
		&s.Architect, &s.Developer, &s.QA, &s.DevOps, &s.BusinessAnalyst, &s.DBA, &s.PM,
		&s.ProductManager, &s.UXDesigner,
		&t.KLOHours, &t.AdminPct, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List は組織のチーム一覧を作成順で返す
func (r *PgTeamRepository) List(ctx context.Context, orgID string) ([]*model.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE org_id = $1 ORDER BY created_at, id`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []*model.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// GetByID は ID でチームを取得する
func (r *PgTeamRepository) GetByID(ctx context.Context, orgID, id string) (*model.Team, error) {
	t, err := scanTeam(r.pool.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE org_id = $1 AND id = $2`,
		orgID, id,
	))
	if err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// Create はチームを作成する
func (r *PgTeamRepository) Create(ctx context.Context, team *model.Team) error {
	s := team.Staffing
	return r.pool.QueryRow(ctx,
		`INSERT INTO teams (org_id, name, architect, developer, qa, devops, business_analyst, dba, pm,
		   product_manager, ux_designer, klo_hours, admin_pct)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		team.OrgID, team.Name, s.Architect, s.Developer, s.QA, s.DevOps, s.BusinessAnalyst, s.DBA, s.PM,
		s.ProductManager, s.UXDesigner, team.KLOHours, team.AdminPct,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

// Update はチームの名前・人員構成・KLO/管理比率を更新する
func (r *PgTeamRepository) Update(ctx context.Context, team *model.Team) error {
	s := team.Staffing
	err := r.pool.QueryRow(ctx,
		`UPDATE teams SET name=$1, architect=$2, developer=$3, qa=$4, devops=$5, business_analyst=$6,
		   dba=$7, pm=$8, product_manager=$9, ux_designer=$10, klo_hours=$11, admin_pct=$12, updated_at=NOW()
		 WHERE org_id=$13 AND id=$14
		 RETURNING created_at, updated_at`,
		team.Name, s.Architect, s.Developer, s.QA, s.DevOps, s.BusinessAnalyst,
		s.DBA, s.PM, s.ProductManager, s.UXDesigner, team.KLOHours, team.AdminPct,
		team.OrgID, team.ID,
	).Scan(&team.CreatedAt, &team.UpdatedAt)
	return notFound(err)
}

// Delete はチームを削除する（見積・リソースはカスケード削除）
func (r *PgTeamRepository) Delete(ctx context.Context, orgID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
