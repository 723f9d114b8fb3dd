package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/cache"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/config"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/handler"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/logging"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/metrics"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/repository"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/service"
	"github.com/pschlie1/it-capacity-planner-sub001/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	pool, err := repository.NewPool(context.Background(), cfg.Database.URL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	repos := repository.NewRepositories(pool)
	resultCache := newResultCache(cfg.Redis)
	defer resultCache.Close()
	m := metrics.NewDefault()

	settings := service.NewSettingsResolver(repos.Settings, cfg.Planning)
	teamService := service.NewTeamService(repos.Teams, settings)
	projectService := service.NewProjectService(repos.Projects, repos.Teams)
	estimateService := service.NewEstimateService(repos.Projects, settings)
	calendarService := service.NewCalendarService(repos.Holidays, repos.Resources, repos.PTO)
	scenarioService := service.NewScenarioService(repos.Scenarios, repos.Teams, repos.Projects)
	settingsService := service.NewSettingsService(repos.Settings)
	allocationService := service.NewAllocationService(service.AllocationRepos{
		Teams:     repos.Teams,
		Projects:  repos.Projects,
		Holidays:  repos.Holidays,
		Resources: repos.Resources,
		PTO:       repos.PTO,
		Scenarios: repos.Scenarios,
	}, settings, resultCache, m, slog.Default())

	h := handler.New(pool, cfg.Server.FrontendURL)
	teamHandler := handler.NewTeamHandler(teamService)
	projectHandler := handler.NewProjectHandler(projectService, estimateService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	scenarioHandler := handler.NewScenarioHandler(scenarioService)
	allocationHandler := handler.NewAllocationHandler(allocationService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	secret := auth.SecretBytes(cfg.Server.SessionSecret)
	wrapAuth := func(next http.HandlerFunc) http.Handler {
		if cfg.Server.AuthRequired {
			return auth.RequireOrg(secret)(next)
		}
		return auth.DevAuth(next)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("GET /metrics", m.Handler())

	// チーム
	mux.Handle("GET /api/teams", wrapAuth(teamHandler.List))
	mux.Handle("POST /api/teams", wrapAuth(teamHandler.Create))
	mux.Handle("GET /api/teams/{id}", wrapAuth(teamHandler.Get))
	mux.Handle("PUT /api/teams/{id}", wrapAuth(teamHandler.Update))
	mux.Handle("DELETE /api/teams/{id}", wrapAuth(teamHandler.Delete))

	// プロジェクトと見積
	mux.Handle("GET /api/projects", wrapAuth(projectHandler.List))
	mux.Handle("POST /api/projects", wrapAuth(projectHandler.Create))
	mux.Handle("GET /api/projects/{id}", wrapAuth(projectHandler.Get))
	mux.Handle("PUT /api/projects/{id}", wrapAuth(projectHandler.Update))
	mux.Handle("DELETE /api/projects/{id}", wrapAuth(projectHandler.Delete))
	mux.Handle("PUT /api/projects/{id}/estimates", wrapAuth(projectHandler.ReplaceEstimates))
	mux.Handle("GET /api/projects/{id}/estimate-summary", wrapAuth(projectHandler.EstimateSummary))
	mux.Handle("POST /api/estimates/phases", wrapAuth(projectHandler.Phases))

	// 祝日・リソース・休暇
	mux.Handle("GET /api/holidays", wrapAuth(calendarHandler.ListHolidays))
	mux.Handle("POST /api/holidays", wrapAuth(calendarHandler.CreateHoliday))
	mux.Handle("DELETE /api/holidays/{id}", wrapAuth(calendarHandler.DeleteHoliday))
	mux.Handle("GET /api/resources", wrapAuth(calendarHandler.ListResources))
	mux.Handle("POST /api/resources", wrapAuth(calendarHandler.CreateResource))
	mux.Handle("DELETE /api/resources/{id}", wrapAuth(calendarHandler.DeleteResource))
	mux.Handle("GET /api/resources/{id}/pto", wrapAuth(calendarHandler.ListPTO))
	mux.Handle("POST /api/resources/{id}/pto", wrapAuth(calendarHandler.CreatePTO))
	mux.Handle("DELETE /api/pto/{id}", wrapAuth(calendarHandler.DeletePTO))

	// シナリオ
	mux.Handle("GET /api/scenarios", wrapAuth(scenarioHandler.List))
	mux.Handle("POST /api/scenarios", wrapAuth(scenarioHandler.Create))
	mux.Handle("GET /api/scenarios/{id}", wrapAuth(scenarioHandler.Get))
	mux.Handle("PUT /api/scenarios/{id}", wrapAuth(scenarioHandler.Update))
	mux.Handle("DELETE /api/scenarios/{id}", wrapAuth(scenarioHandler.Delete))
	mux.Handle("POST /api/scenarios/{id}/clone", wrapAuth(scenarioHandler.Clone))

	// 割当とレポート
	mux.Handle("GET /api/allocation", wrapAuth(allocationHandler.Baseline))
	mux.Handle("GET /api/scenarios/{id}/allocation", wrapAuth(allocationHandler.Scenario))
	mux.Handle("GET /api/scenarios/{id}/compare", wrapAuth(allocationHandler.Compare))
	mux.Handle("GET /api/capacity/summary", wrapAuth(allocationHandler.CapacitySummary))
	mux.Handle("GET /api/reports/spof", wrapAuth(allocationHandler.SinglePointsOfFailure))

	// 組織設定
	mux.Handle("GET /api/settings", wrapAuth(settingsHandler.Get))
	mux.Handle("PUT /api/settings", wrapAuth(settingsHandler.Update))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.SecurityHeaders(h.CORS(handler.RequestLogger(m)(mux))),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "auth_required", cfg.Server.AuthRequired)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newResultCache は redis.addr が設定されていれば redis を、なければプロセス内キャッシュを返す。
// redis に接続できない場合もプロセス内キャッシュで起動を続ける
func newResultCache(cfg config.RedisConfig) cache.ResultCache {
	if cfg.Addr == "" {
		return cache.NewMemory(cfg.TTL, 0)
	}
	rc, err := cache.NewRedis(cfg.Addr, cfg.Password, cfg.DB, cfg.TTL, slog.Default())
	if err != nil {
		slog.Warn("redis unavailable, using in-process cache", "addr", cfg.Addr, "error", err)
		return cache.NewMemory(cfg.TTL, 0)
	}
	slog.Info("allocation cache connected", "addr", cfg.Addr)
	return rc
}
