package utils

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
	"github.com/sunnylab-dev/vacation-planner/backend/internal/planner"
)

// ErrInvalidRule 表示规则定义本身不合法，这类错误在任何推导之前同步返回
var ErrInvalidRule = errors.New("无效的日程规则")

func invalidRule(format string, args ...any) error {
	return fmt.Errorf("%w：%s", ErrInvalidRule, fmt.Sprintf(format, args...))
}

// ValidateScheduleRule 对规则做结构校验，被拒绝的规则不会进入规则集
func ValidateScheduleRule(rule *domain.ScheduleRule) error {
	if rule.Title == "" {
		return invalidRule("必须填写标题")
	}
	if !domain.IsUserCategory(rule.Category) {
		return invalidRule("不支持的活动分类 %q", rule.Category)
	}
	if rule.StartTime == "" || rule.EndTime == "" {
		return invalidRule("必须填写开始时间和结束时间")
	}

	start, err := planner.ParseClock(rule.StartTime)
	if err != nil {
		return invalidRule("开始%s", err.Error())
	}
	end, err := planner.ParseClock(rule.EndTime)
	if err != nil {
		return invalidRule("结束%s", err.Error())
	}

	if rule.Category == domain.CategorySleep {
		// 睡眠允许跨天，但起止相同没有意义
		if start == end {
			return invalidRule("开始时间和结束时间不能相同")
		}
	} else if start >= end {
		return invalidRule("结束时间必须晚于开始时间")
	}

	switch rule.ScheduleType {
	case domain.ScheduleTypeRepeat:
		if rule.RepeatType == domain.RepeatTypeCustom && len(rule.SelectedDays) == 0 {
			return invalidRule("按星期自定义重复时至少要选择一个星期")
		}
		for _, day := range rule.SelectedDays {
			if day < 0 || day > 6 {
				return invalidRule("星期索引 %d 超出范围", day)
			}
		}
		if (rule.PeriodStart == "") != (rule.PeriodEnd == "") {
			return invalidRule("重复规则的生效范围必须同时填写开始和结束日期")
		}
		if rule.PeriodStart != "" {
			if err := validatePeriod(rule.PeriodStart, rule.PeriodEnd); err != nil {
				return err
			}
		}

	case domain.ScheduleTypeSpecific:
		if rule.SpecificDate == "" && rule.SpecificWeekday == nil {
			return invalidRule("指定类型必须提供具体日期或星期")
		}
		if rule.SpecificDate != "" && rule.SpecificWeekday != nil {
			return invalidRule("指定类型的日期和星期只能二选一")
		}
		if rule.SpecificDate != "" {
			if _, err := planner.ParseDate(rule.SpecificDate); err != nil {
				return invalidRule("指定日期格式无效")
			}
		}
		if rule.SpecificWeekday != nil && (*rule.SpecificWeekday < 0 || *rule.SpecificWeekday > 6) {
			return invalidRule("星期索引 %d 超出范围", *rule.SpecificWeekday)
		}

	case domain.ScheduleTypePeriod:
		if rule.PeriodStart == "" || rule.PeriodEnd == "" {
			return invalidRule("期间类型必须同时填写开始和结束日期")
		}
		if err := validatePeriod(rule.PeriodStart, rule.PeriodEnd); err != nil {
			return err
		}

	default:
		return invalidRule("不支持的日程类型 %q", rule.ScheduleType)
	}

	return nil
}

func validatePeriod(start, end string) error {
	periodStart, err := planner.ParseDate(start)
	if err != nil {
		return invalidRule("开始日期格式无效")
	}
	periodEnd, err := planner.ParseDate(end)
	if err != nil {
		return invalidRule("结束日期格式无效")
	}
	if periodStart.After(periodEnd) {
		return invalidRule("开始日期不能晚于结束日期")
	}
	return nil
}

// ValidateVacationPeriod 校验假期范围，要求开始日期严格早于结束日期
func ValidateVacationPeriod(vacation *domain.VacationPeriod) error {
	start, err := planner.ParseDate(vacation.Start)
	if err != nil {
		return invalidRule("假期开始日期格式无效")
	}
	end, err := planner.ParseDate(vacation.End)
	if err != nil {
		return invalidRule("假期结束日期格式无效")
	}
	if !start.Before(end) {
		return invalidRule("假期开始日期必须早于结束日期")
	}
	return nil
}

// FilterValidRules 过滤掉持久化数据中结构不完整的规则。
// 单条损坏的记录只做记录并丢弃，不中断整体加载。
func FilterValidRules(rules []domain.ScheduleRule) []domain.ScheduleRule {
	valid := make([]domain.ScheduleRule, 0, len(rules))
	for i := range rules {
		if rules[i].ID == "" || rules[i].StartTime == "" || rules[i].EndTime == "" {
			slog.Warn("丢弃损坏的日程规则", "id", rules[i].ID, "title", rules[i].Title)
			continue
		}
		valid = append(valid, rules[i])
	}
	return valid
}
