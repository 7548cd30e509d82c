package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/config"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/planner"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// 每周日晚上给所有激活用户发送上一周的学习报告
func sendWeeklyReports(cfg *config.Config, repo *repository.Repository, ch *amqp.Channel) {
	users, err := repo.GetAllUsers()
	if err != nil {
		slog.Error("无法获取用户列表", slog.String("error", err.Error()))
		return
	}

	// 统计刚结束的一周（周日跑，往前推一天落在上一周）
	now := time.Now()
	yesterday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	weekStart, weekEnd := planner.WeekRange(yesterday)

	sent := 0
	for _, user := range users {
		if !user.IsActive {
			continue
		}

		data, err := repo.LoadPlannerData(user.ID)
		if err != nil {
			slog.Error("无法加载用户数据", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
			continue
		}
		if data.VacationPeriod == nil {
			continue
		}

		sched, err := planner.Expand(data.Schedules, *data.VacationPeriod)
		if err != nil {
			slog.Error("无法重建日程视图", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
			continue
		}

		stats := planner.ComputeRangeStats(weekStart, weekEnd, *data.VacationPeriod, sched, data.StudyRecords)
		if stats.ElapsedDays == 0 {
			// 这一周与假期没有交集，不发报告
			continue
		}

		mailData, err := json.Marshal(domain.MailMessage{
			Type: "weekly_report",
			To:   user.Email,
			Data: domain.WeeklyReportMailData{
				FullName:        user.FullName,
				WeekStart:       stats.Start,
				WeekEnd:         stats.End,
				PlannedMinutes:  stats.PlannedMinutes,
				ActualMinutes:   stats.ActualMinutes,
				AchievementRate: stats.AchievementRate,
				Message:         stats.Message,
			},
		})
		if err != nil {
			slog.Error("无法序列化邮件信息", slog.String("error", err.Error()))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.RabbitMQ.PublishTimeout)*time.Second)
		err = ch.PublishWithContext(
			ctx,
			"",
			"email_queue",
			true,
			false,
			amqp.Publishing{
				ContentType: "application/json",
				Body:        mailData,
			},
		)
		cancel()
		if err != nil {
			slog.Error("无法投递邮件信息", slog.Int64("user_id", user.ID), slog.String("error", err.Error()))
			continue
		}

		sent++
	}

	slog.Info("每周学习报告已投递", slog.Int("count", sent), slog.String("week_start", weekStart.Format(planner.DateLayout)), slog.String("week_end", weekEnd.Format(planner.DateLayout)))
}

func main() {
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

	// 连接 RabbitMQ
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		"email_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 按配置的 cron 表达式调度
	c := cron.New()
	if _, err := c.AddFunc(cfg.Report.CronSpec, func() {
		sendWeeklyReports(cfg, repo, ch)
	}); err != nil {
		logger.Error("无法注册定时任务", slog.String("error", err.Error()))
		return
	}
	c.Start()

	logger.Info("report worker 已启动", slog.String("cron", cfg.Report.CronSpec))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("正在关闭 report worker...")
	<-c.Stop().Done()
	logger.Info("report worker 已成功关闭")
}
