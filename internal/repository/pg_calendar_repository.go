package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/model"
)

// PgHolidayRepository は HolidayRepository の PostgreSQL 実装
type PgHolidayRepository struct {
	pool *pgxpool.Pool
}

// NewPgHolidayRepository は PgHolidayRepository を生成する
func NewPgHolidayRepository(pool *pgxpool.Pool) *PgHolidayRepository {
	return &PgHolidayRepository{pool: pool}
}

// List は組織の祝日を週順で返す
func (r *PgHolidayRepository) List(ctx context.Context, orgID string) ([]*model.Holiday, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, org_id, name, week, hours_per_fte, team_ids, created_at
		 FROM holidays WHERE org_id = $1 ORDER BY week, created_at`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := []*model.Holiday{}
	for rows.Next() {
		var h model.Holiday
		if err := rows.Scan(&h.ID, &h.OrgID, &h.Name, &h.Week, &h.HoursPerFTE, &h.TeamIDs, &h.CreatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, &h)
	}
	return holidays, rows.Err()
}

// Create は祝日を作成する。TeamIDs が空なら全チーム対象
func (r *PgHolidayRepository) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO holidays (org_id, name, week, hours_per_fte, team_ids)
		 VALUES ($1, $2, $3, $4, COALESCE($5::text[], '{}'))
		 RETURNING id, created_at`,
		holiday.OrgID, holiday.Name, holiday.Week, holiday.HoursPerFTE, holiday.TeamIDs,
	).Scan(&holiday.ID, &holiday.CreatedAt)
}

// Delete は祝日を削除する
func (r *PgHolidayRepository) Delete(ctx context.Context, orgID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM holidays WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PgResourceRepository は ResourceRepository の PostgreSQL 実装
type PgResourceRepository struct {
	pool *pgxpool.Pool
}

// NewPgResourceRepository は PgResourceRepository を生成する
func NewPgResourceRepository(pool *pgxpool.Pool) *PgResourceRepository {
	return &PgResourceRepository{pool: pool}
}

// List は組織のリソース一覧を返す
func (r *PgResourceRepository) List(ctx context.Context, orgID string) ([]*model.Resource, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, org_id, team_id, name, role, skills, created_at
		 FROM resources WHERE org_id = $1 ORDER BY team_id, name, id`,
		orgID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []*model.Resource{}
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(&res.ID, &res.OrgID, &res.TeamID, &res.Name, &res.Role, &res.Skills, &res.CreatedAt); err != nil {
			return nil, err
		}
		resources = append(resources, &res)
	}
	return resources, rows.Err()
}

// GetByID は ID でリソースを取得する
func (r *PgResourceRepository) GetByID(ctx context.Context, orgID, id string) (*model.Resource, error) {
	var res model.Resource
	err := r.pool.QueryRow(ctx,
		`SELECT id, org_id, team_id, name, role, skills, created_at
		 FROM resources WHERE org_id = $1 AND id = $2`,
		orgID, id,
	).Scan(&res.ID, &res.OrgID, &res.TeamID, &res.Name, &res.Role, &res.Skills, &res.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &res, nil
}

// Create はリソースを作成する。チームは同じ組織に属している必要がある
func (r *PgResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO resources (org_id, team_id, name, role, skills)
		 SELECT $1::text, t.id, $3::text, $4::text, COALESCE($5::text[], '{}')
		 FROM teams t WHERE t.org_id = $1 AND t.id = $2
		 RETURNING id, created_at`,
		resource.OrgID, resource.TeamID, resource.Name, resource.Role, resource.Skills,
	).Scan(&resource.ID, &resource.CreatedAt)
	return notFound(err)
}

// Delete はリソースを削除する（休暇はカスケード削除）
func (r *PgResourceRepository) Delete(ctx context.Context, orgID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE org_id=$1 AND id=$2`, orgID, id)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PgPTORepository は PTORepository の PostgreSQL 実装
type PgPTORepository struct {
	pool *pgxpool.Pool
}

// NewPgPTORepository は PgPTORepository を生成する
func NewPgPTORepository(pool *pgxpool.Pool) *PgPTORepository {
	return &PgPTORepository{pool: pool}
}

// ListByOrg は組織内の全休暇を返す
func (r *PgPTORepository) ListByOrg(ctx context.Context, orgID string) ([]*model.PTOEntry, error) {
	return r.list(ctx,
		`SELECT p.id, p.resource_id, p.week, p.hours, p.note, p.created_at
		 FROM pto_entries p JOIN resources r ON r.id = p.resource_id
		 WHERE r.org_id = $1 ORDER BY p.week, p.created_at`,
		orgID,
	)
}

// ListByResource はリソースの休暇を返す
func (r *PgPTORepository) ListByResource(ctx context.Context, orgID, resourceID string) ([]*model.PTOEntry, error) {
	return r.list(ctx,
		`SELECT p.id, p.resource_id, p.week, p.hours, p.note, p.created_at
		 FROM pto_entries p JOIN resources r ON r.id = p.resource_id
		 WHERE r.org_id = $1 AND r.id = $2 ORDER BY p.week, p.created_at`,
		orgID, resourceID,
	)
}

func (r *PgPTORepository) list(ctx context.Context, sql string, args ...any) ([]*model.PTOEntry, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, notFound(err)
	}
	defer rows.Close()

	entries := []*model.PTOEntry{}
	for rows.Next() {
		var e model.PTOEntry
		if err := rows.Scan(&e.ID, &e.ResourceID, &e.Week, &e.Hours, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Create は休暇を作成する。リソースが組織に属さない場合は ErrNotFound
func (r *PgPTORepository) Create(ctx context.Context, orgID string, entry *model.PTOEntry) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO pto_entries (resource_id, week, hours, note)
		 SELECT r.id, $3::int, $4::float8, $5::text FROM resources r WHERE r.org_id = $1 AND r.id = $2
		 RETURNING id, created_at`,
		orgID, entry.ResourceID, entry.Week, entry.Hours, entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
	return notFound(err)
}

// Delete は休暇を削除する
func (r *PgPTORepository) Delete(ctx context.Context, orgID, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM pto_entries p USING resources r
		 WHERE p.resource_id = r.id AND r.org_id = $1 AND p.id = $2`,
		orgID, id,
	)
	if err != nil {
		return notFound(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
