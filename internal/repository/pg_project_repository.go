package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

// List は組織のプロジェクト一覧を見積付きで取得する
func (r *PgProjectRepository) List(ctx context.Context, orgID string) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, org_id, name, priority, status, start_week, created_at, updated_at
		 FROM projects WHERE org_id = $1 ORDER BY priority, created_at, id`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []*model.Project{}
	byID := make(map[string]*model.Project)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.OrgID, &p.Name, &p.Priority, &p.Status, &p.StartWeek, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Estimates = []model.TeamEstimate{}
		projects = append(projects, &p)
		byID[p.ID] = &p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load estimates
	estRows, err := r.pool.Query(ctx,
		`SELECT e.id, e.project_id, e.team_id, e.design, e.development, e.testing, e.deployment, e.post_deploy,
		        e.sort_order, e.created_at, e.updated_at
		 FROM team_estimates e JOIN projects p ON p.id = e.project_id
		 WHERE p.org_id = $1 ORDER BY e.project_id, e.sort_order, e.created_at`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer estRows.Close()

	for estRows.Next() {
		e, err := scanEstimate(estRows)
		if err != nil {
			return nil, err
		}
		if p, ok := byID[e.ProjectID]; ok {
			p.Estimates = append(p.Estimates, *e)
		}
	}
	return projects, estRows.Err()
}

func scanEstimate(row pgx.Row) (*model.TeamEstimate, error) {
	var e model.TeamEstimate
	err := row.Scan(
		&e.ID, &e.ProjectID, &e.TeamID, &e.Design, &e.Development, &e.Testing, &e.Deployment, &e.PostDeploy,
		&e.SortOrder, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByID は ID でプロジェクトを見積付きで取得する
func (r *PgProjectRepository) GetByID(ctx context.Context, orgID, id string) (*model.Project, error) {
	var p model.Project
	err := r.pool.QueryRow(ctx,
		`SELECT id, org_id, name, priority, status, start_week, created_at, updated_at
		 FROM projects WHERE org_id = $1 AND id = $2`,
		orgID, id,
	).Scan(&p.ID, &p.OrgID, &p.Name, &p.Priority, &p.Status, &p.StartWeek, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, team_id, design, development, testing, deployment, post_deploy,
		        sort_order, created_at, updated_at
		 FROM team_estimates WHERE project_id = $1 ORDER BY sort_order, created_at`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	p.Estimates = []model.TeamEstimate{}
	for rows.Next() {
		e, err := scanEstimate(rows)
		if err != nil {
			return nil, err
		}
		p.Estimates = append(p.Estimates, *e)
	}
	return &p, rows.Err()
}

// Create はプロジェクトを作成し、見積があれば同じトランザクションで挿入する
func (r *PgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO projects (org_id, name, priority, status, start_week)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		project.OrgID, project.Name, project.Priority, project.Status, project.StartWeek,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertEstimates(ctx, tx, project.ID, project.Estimates); err != nil {
		return notFound(err)
	}
	return tx.Commit(ctx)
}

// Update はプロジェクトの名前・優先度・状態・開始週を更新する
func (r *PgProjectRepository) Update(ctx context.Context, project *model.Project) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE projects SET name=$1, priority=$2, status=$3, start_week=$4, updated_at=NOW()
		 WHERE org_id=$5 AND id=$6
		 RETURNING created_at, updated_at`,
		project.Name, project.Priority, project.Status, project.StartWeek, project.OrgID, project.ID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	return notFound(err)
}

// Delete はプロジェクトを削除する
func (r *PgProjectRepository) Delete(ctx context.Context, orgID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceEstimates は既存の見積を全削除して estimates を挿入し、projects.updated_at を更新する
func (r *PgProjectRepository) ReplaceEstimates(ctx context.Context, orgID, projectID string, estimates []model.TeamEstimate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE projects SET updated_at=NOW() WHERE org_id=$1 AND id=$2`,
		orgID, projectID,
	)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM team_estimates WHERE project_id=$1`, projectID); err != nil {
		return err
	}
	if err := insertEstimates(ctx, tx, projectID, estimates); err != nil {
		return notFound(err)
	}
	return tx.Commit(ctx)
}

// insertEstimates は estimates を順に挿入し、採番された ID と時刻を書き戻す
func insertEstimates(ctx context.Context, tx pgx.Tx, projectID string, estimates []model.TeamEstimate) error {
	for i := range estimates {
		e := &estimates[i]
		e.ProjectID = projectID
		e.SortOrder = i
		if err := tx.QueryRow(ctx,
			`INSERT INTO team_estimates (project_id, team_id, design, development, testing, deployment, post_deploy, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id, created_at, updated_at`,
			projectID, e.TeamID, e.Design, e.Development, e.Testing, e.Deployment, e.PostDeploy, i,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return err
		}
	}
	return nil
}
