package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/pschlie1/it-capacity-planner-sub001/internal/config"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/logging"
	"github.com/pschlie1/it-capacity-planner-sub001/internal/migrate"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)       未適用のマイグレーションを適用
  down [version]  直近のマイグレーション、または version までロールバック
  reset           全マイグレーションをロールバック
  fresh           全マイグレーションをロールバックし、最初から適用
  status          適用状況を表示`)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	runner, err := migrate.New(cfg.Database.URL, slog.Default())
	if err != nil {
		logging.Fatal("migration setup failed", "error", err)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	switch cmd {
	case "", "up":
		err = runner.Up(ctx)
	case "down":
		var target int64
		if len(os.Args) > 2 {
			target, err = strconv.ParseInt(os.Args[2], 10, 64)
			if err != nil || target < 0 {
				usage()
			}
		}
		err = runner.Down(ctx, target)
	case "reset":
		err = runner.Reset(ctx)
	case "fresh":
		if err = runner.Reset(ctx); err == nil {
			err = runner.Up(ctx)
		}
	case "status":
		err = runner.Status(ctx)
	default:
		usage()
	}
	if err != nil {
		logging.Fatal("migration failed", "command", cmd, "error", err)
	}
}
