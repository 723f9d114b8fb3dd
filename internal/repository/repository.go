package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool は PostgreSQL 接続プールを生成する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}
	return pool, nil
}

// Repositories はサービス層へ注入する PostgreSQL リポジトリ一式
type Repositories struct {
	Teams     *PgTeamRepository
	Projects  *PgProjectRepository
	Holidays  *PgHolidayRepository
	Resources *PgResourceRepository
	PTO       *PgPTORepository
	Scenarios *PgScenarioRepository
	Settings  *PgOrgSettingsRepository
}

// NewRepositories は pool を共有するリポジトリ一式を生成する
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Teams:     NewPgTeamRepository(pool),
		Projects:  NewPgProjectRepository(pool),
		Holidays:  NewPgHolidayRepository(pool),
		Resources: NewPgResourceRepository(pool),
		PTO:       NewPgPTORepository(pool),
		Scenarios: NewPgScenarioRepository(pool),
		Settings:  NewPgOrgSettingsRepository(pool),
	}
}
