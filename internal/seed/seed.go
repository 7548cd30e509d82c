package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/planner"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/repository"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/utils"
)

// SeedStudents 插入 n 个随机学生账户，返回成功插入的数量
func SeedStudents(repo *repository.Repository, n int, password, emailDomain string) int {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomStudent(password, emailDomain)
		if err != nil {
			slog.Error("无法生成随机学生", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("无法插入学生", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}

// SeedPlannerData 为指定用户生成一套完整的演示数据：
// 从下周开始的四周假期、一组典型日程规则和前几天的学习实绩。
func SeedPlannerData(repo *repository.Repository, userID int64) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -7)
	end := start.AddDate(0, 0, 27)

	vacation := &domain.VacationPeriod{
		Start: start.Format(planner.DateLayout),
		End:   end.Format(planner.DateLayout),
	}
	if err := repo.SaveVacationPeriod(userID, vacation); err != nil {
		return fmt.Errorf("无法保存假期范围: %w", err)
	}

	rules := demoRules()
	if err := repo.SaveSchedules(userID, rules); err != nil {
		return fmt.Errorf("无法保存日程规则: %w", err)
	}

	// 对已经过去的日期随机登记一部分自习实绩
	sched, err := planner.Expand(rules, *vacation)
	if err != nil {
		return fmt.Errorf("无法重建日程视图: %w", err)
	}

	subjects := []string{"数学", "英语", "物理", "化学", "语文"}
	records := domain.StudyRecords{}
	for d := start; d.Before(today); d = d.AddDate(0, 0, 1) {
		date := d.Format(planner.DateLayout)
		for _, occ := range sched[date] {
			if !occ.IsStudySlot || rand.Intn(3) == 0 {
				continue
			}

			if records[date] == nil {
				records[date] = map[string]domain.StudyRecord{}
			}
			// 实际时长在计划时长的 5 到 10 成之间
			minutes := occ.Duration * (5 + rand.Intn(6)) / 10
			records[date][occ.SlotID()] = domain.StudyRecord{
				Minutes:   minutes,
				Subject:   subjects[rand.Intn(len(subjects))],
				Timestamp: d.Add(22 * time.Hour),
			}
		}
	}
	if err := repo.SaveStudyRecords(userID, records); err != nil {
		return fmt.Errorf("无法保存学习实绩: %w", err)
	}

	return nil
}

func demoRules() []domain.ScheduleRule {
	newRule := func(title string, category domain.Category, start, end string) domain.ScheduleRule {
		return domain.ScheduleRule{
			ID:        utils.GenerateRuleID(),
			Title:     title,
			Category:  category,
			StartTime: start,
			EndTime:   end,
			CreatedAt: time.Now(),
		}
	}

	sleep := newRule("睡觉", domain.CategorySleep, "23:00", "07:00")
	sleep.ScheduleType = domain.ScheduleTypeRepeat
	sleep.RepeatType = domain.RepeatTypeDaily

	breakfast := newRule("早餐", domain.CategoryMeal, "07:30", "08:00")
	breakfast.ScheduleType = domain.ScheduleTypeRepeat
	breakfast.RepeatType = domain.RepeatTypeDaily

	lunch := newRule("午餐", domain.CategoryMeal, "12:00", "13:00")
	lunch.ScheduleType = domain.ScheduleTypeRepeat
	lunch.RepeatType = domain.RepeatTypeDaily

	dinner := newRule("晚餐", domain.CategoryMeal, "18:00", "19:00")
	dinner.ScheduleType = domain.ScheduleTypeRepeat
	dinner.RepeatType = domain.RepeatTypeDaily

	academy := newRule("数学补习", domain.CategoryAcademy, "14:00", "16:00")
	academy.ScheduleType = domain.ScheduleTypeRepeat
	academy.RepeatType = domain.RepeatTypeCustom
	academy.SelectedDays = []int{1, 3, 5}

	exercise := newRule("跑步", domain.CategoryExercise, "08:30", "09:30")
	exercise.ScheduleType = domain.ScheduleTypeRepeat
	exercise.RepeatType = domain.RepeatTypeWeekends

	return []domain.ScheduleRule{sleep, breakfast, lunch, dinner, academy, exercise}
}
