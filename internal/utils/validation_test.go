package utils

import (
	"errors"
	"testing"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

func validRule() domain.ScheduleRule {
	return domain.ScheduleRule{
		ID:           "r1",
		Title:        "午餐",
		Category:     domain.CategoryMeal,
		StartTime:    "12:00",
		EndTime:      "13:00",
		ScheduleType: domain.ScheduleTypeRepeat,
		RepeatType:   domain.RepeatTypeDaily,
	}
}

func TestValidateScheduleRuleAccepts(t *testing.T) {
	rule := validRule()
	if err := ValidateScheduleRule(&rule); err != nil {
		t.Fatalf("合法规则被拒绝: %v", err)
	}

	// 睡眠允许结束早于开始（跨天）
	sleep := validRule()
	sleep.Category = domain.CategorySleep
	sleep.StartTime = "23:00"
	sleep.EndTime = "07:00"
	if err := ValidateScheduleRule(&sleep); err != nil {
		t.Fatalf("跨天睡眠被拒绝: %v", err)
	}
}

func TestValidateScheduleRuleRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.ScheduleRule)
	}{
		{"缺少标题", func(r *domain.ScheduleRule) { r.Title = "" }},
		{"合成分类", func(r *domain.ScheduleRule) { r.Category = domain.CategoryStudy }},
		{"未知分类", func(r *domain.ScheduleRule) { r.Category = "午休" }},
		{"缺少时间", func(r *domain.ScheduleRule) { r.StartTime = "" }},
		{"时间格式错误", func(r *domain.ScheduleRule) { r.StartTime = "25:00" }},
		{"结束早于开始", func(r *domain.ScheduleRule) { r.StartTime = "13:00"; r.EndTime = "12:00" }},
		{"起止相同", func(r *domain.ScheduleRule) { r.EndTime = r.StartTime }},
		{"睡眠起止相同", func(r *domain.ScheduleRule) {
			r.Category = domain.CategorySleep
			r.StartTime = "23:00"
			r.EndTime = "23:00"
		}},
		{"自定义重复未选星期", func(r *domain.ScheduleRule) {
			r.RepeatType = domain.RepeatTypeCustom
			r.SelectedDays = nil
		}},
		{"星期索引越界", func(r *domain.ScheduleRule) {
			r.RepeatType = domain.RepeatTypeCustom
			r.SelectedDays = []int{7}
		}},
		{"生效范围只填一半", func(r *domain.ScheduleRule) { r.PeriodStart = "2026-07-01" }},
		{"生效范围颠倒", func(r *domain.ScheduleRule) {
			r.PeriodStart = "2026-07-10"
			r.PeriodEnd = "2026-07-01"
		}},
		{"指定类型缺少日期和星期", func(r *domain.ScheduleRule) {
			r.ScheduleType = domain.ScheduleTypeSpecific
		}},
		{"指定类型日期星期同填", func(r *domain.ScheduleRule) {
			r.ScheduleType = domain.ScheduleTypeSpecific
			r.SpecificDate = "2026-07-01"
			weekday := 0
			r.SpecificWeekday = &weekday
		}},
		{"指定日期格式无效", func(r *domain.ScheduleRule) {
			r.ScheduleType = domain.ScheduleTypeSpecific
			r.SpecificDate = "07/01"
		}},
		{"期间类型缺少结束日期", func(r *domain.ScheduleRule) {
			r.ScheduleType = domain.ScheduleTypePeriod
			r.PeriodStart = "2026-07-01"
		}},
		{"未知日程类型", func(r *domain.ScheduleRule) { r.ScheduleType = "monthly" }},
	}

	for _, c := range cases {
		rule := validRule()
		c.mutate(&rule)
		err := ValidateScheduleRule(&rule)
		if err == nil {
			t.Fatalf("%s: 应当被拒绝", c.name)
		}
		if !errors.Is(err, ErrInvalidRule) {
			t.Fatalf("%s: 错误应当包装 ErrInvalidRule, 得到 %v", c.name, err)
		}
	}
}

func TestValidateVacationPeriod(t *testing.T) {
	if err := ValidateVacationPeriod(&domain.VacationPeriod{Start: "2026-07-01", End: "2026-08-31"}); err != nil {
		t.Fatalf("合法假期被拒绝: %v", err)
	}

	cases := []domain.VacationPeriod{
		{Start: "2026-07-01", End: "2026-07-01"}, // 起止相同
		{Start: "2026-08-31", End: "2026-07-01"}, // 颠倒
		{Start: "bad", End: "2026-07-01"},
		{Start: "2026-07-01", End: ""},
	}
	for _, vacation := range cases {
		if err := ValidateVacationPeriod(&vacation); err == nil {
			t.Fatalf("假期 %+v 应当被拒绝", vacation)
		}
	}
}

func TestFilterValidRules(t *testing.T) {
	rules := []domain.ScheduleRule{
		validRule(),
		{Title: "没有 ID", StartTime: "10:00", EndTime: "11:00"},
		{ID: "r3", Title: "没有时间"},
	}

	valid := FilterValidRules(rules)

	if len(valid) != 1 {
		t.Fatalf("期望保留 1 条规则, 得到 %d", len(valid))
	}
	if valid[0].ID != "r1" {
		t.Fatalf("保留了错误的规则: %s", valid[0].ID)
	}
}
