package planner

import (
	"slices"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

// Matches 判断规则在某个日期是否生效。
// 日期范围的比较一律基于 time.Time，不做字符串比较。
func Matches(rule *domain.ScheduleRule, date time.Time) bool {
	weekday := int(date.Weekday())
	dateKey := date.Format(DateLayout)

	switch rule.ScheduleType {
	case domain.ScheduleTypeSpecific:
		if rule.SpecificDate != "" {
			return dateKey == rule.SpecificDate
		}
		if rule.SpecificWeekday != nil {
			return weekday == *rule.SpecificWeekday
		}
		return false

	case domain.ScheduleTypePeriod:
		if rule.PeriodStart == "" || rule.PeriodEnd == "" {
			return false
		}
		return inPeriod(date, rule.PeriodStart, rule.PeriodEnd)

	default:
		// repeat 类型。先检查可选的生效范围
		if rule.PeriodStart != "" && rule.PeriodEnd != "" && !inPeriod(date, rule.PeriodStart, rule.PeriodEnd) {
			return false
		}

		switch rule.RepeatType {
		case domain.RepeatTypeDaily:
			return true
		case domain.RepeatTypeWeekdays:
			return weekday >= 1 && weekday <= 5
		case domain.RepeatTypeWeekends:
			return weekday == 0 || weekday == 6
		case domain.RepeatTypeCustom:
			return slices.Contains(rule.SelectedDays, weekday)
		default:
			// 未知的重复类型不匹配任何日期
			return false
		}
	}
}

// inPeriod 判断日期是否落在 [start, end] 内，两端均含
func inPeriod(date time.Time, start, end string) bool {
	periodStart, err := ParseDate(start)
	if err != nil {
		return false
	}
	periodEnd, err := ParseDate(end)
	if err != nil {
		return false
	}
	return !date.Before(periodStart) && !date.After(periodEnd)
}
