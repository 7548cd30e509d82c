package planner

import (
	"math"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

// DailyStats 单日的计划与实绩统计
type DailyStats struct {
	Date           string `json:"date"`
	PlannedMinutes int    `json:"plannedMinutes"`
	ActualMinutes  int    `json:"actualMinutes"`
	EfficiencyPct  int    `json:"efficiencyPct"`
}

// RangeStats 一段日期范围内的达成率统计
type RangeStats struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	ElapsedDays     int    `json:"elapsedDays"`
	StudyDays       int    `json:"studyDays"`
	PlannedMinutes  int    `json:"plannedMinutes"`
	ActualMinutes   int    `json:"actualMinutes"`
	AchievementRate int    `json:"achievementRate"`
	Message         string `json:"message"`
}

// ComputeDailyStats 统计某天的计划自习分钟数、实际自习分钟数和效率。
// 计划数是当天全部自习时段时长之和，实际数是当天全部实绩记录之和。
func ComputeDailyStats(date string, sched Schedule, records domain.StudyRecords) DailyStats {
	stats := DailyStats{Date: date}

	for _, occ := range sched[date] {
		if occ.IsStudySlot {
			stats.PlannedMinutes += occ.Duration
		}
	}
	for _, record := range records[date] {
		if record.Minutes > 0 {
			stats.ActualMinutes += record.Minutes
		}
	}
	if stats.PlannedMinutes > 0 {
		stats.EfficiencyPct = int(math.Round(float64(stats.ActualMinutes) / float64(stats.PlannedMinutes) * 100))
	}

	return stats
}

// ComputeRangeStats 统计 [start, end] 内（与假期范围取交集）的达成情况
func ComputeRangeStats(start, end time.Time, vacation domain.VacationPeriod, sched Schedule, records domain.StudyRecords) RangeStats {
	stats := RangeStats{
		Start: start.Format(DateLayout),
		End:   end.Format(DateLayout),
	}

	vacationStart, errStart := ParseDate(vacation.Start)
	vacationEnd, errEnd := ParseDate(vacation.End)
	hasVacation := errStart == nil && errEnd == nil

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if hasVacation && (d.Before(vacationStart) || d.After(vacationEnd)) {
			continue
		}

		daily := ComputeDailyStats(d.Format(DateLayout), sched, records)
		stats.ElapsedDays++

		if daily.PlannedMinutes > 0 {
			stats.StudyDays++
			stats.PlannedMinutes += daily.PlannedMinutes
			stats.ActualMinutes += daily.ActualMinutes
		}
	}

	if stats.PlannedMinutes > 0 {
		stats.AchievementRate = int(math.Round(float64(stats.ActualMinutes) / float64(stats.PlannedMinutes) * 100))
	}
	stats.Message = achievementMessage(stats.AchievementRate)

	return stats
}

// WeekRange 返回日期所在周的起止（周日到周六）
func WeekRange(date time.Time) (time.Time, time.Time) {
	start := date.AddDate(0, 0, -int(date.Weekday()))
	return start, start.AddDate(0, 0, 6)
}

// 达成率分四档给出评价
func achievementMessage(rate int) string {
	switch {
	case rate >= 80:
		return "非常棒，计划执行得很好"
	case rate >= 60:
		return "成果不错，再接再厉"
	case rate >= 40:
		return "与计划相比还有差距，需要更专注"
	default:
		return "计划执行严重不足，建议重新审视计划安排"
	}
}
