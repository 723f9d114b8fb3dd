package repository

import "context"

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// コンパイル時に各実装がインターフェースを満たすことを確認する
var (
	_ TeamRepository        = (*PgTeamRepository)(nil)
	_ ProjectRepository     = (*PgProjectRepository)(nil)
	_ HolidayRepository     = (*PgHolidayRepository)(nil)
	_ ResourceRepository    = (*PgResourceRepository)(nil)
	_ PTORepository         = (*PgPTORepository)(nil)
	_ ScenarioRepository    = (*PgScenarioRepository)(nil)
	_ OrgSettingsRepository = (*PgOrgSettingsRepository)(nil)
)
