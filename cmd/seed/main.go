package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/config"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/repository"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var userID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机学生, 2: 为指定用户生成演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的学生数量")
	flag.Int64Var(&userID, "user-id", 0, "演示数据对应的用户 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的学生数量")
			return
		}
		cnt := seed.SeedStudents(repo, n, cfg.Seed.User.Password, cfg.Email.UserDomain)
		slog.Info("插入学生成功", slog.Int("count", cnt))
	case 2:
		if userID <= 0 {
			slog.Error("请输入合法的用户 ID")
			return
		}
		if _, err := repo.GetUserByID(userID); err != nil {
			slog.Error("指定的用户不存在", slog.Int64("user_id", userID))
			return
		}
		if err := seed.SeedPlannerData(repo, userID); err != nil {
			slog.Error("无法生成演示数据", slog.String("error", err.Error()))
			return
		}
		slog.Info("生成演示数据成功", slog.Int64("user_id", userID))
	default:
		slog.Error("指定的操作非法")
	}
}
