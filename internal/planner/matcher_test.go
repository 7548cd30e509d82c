package planner

import (
	"testing"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

func mustDate(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := ParseDate(date)
	if err != nil {
		t.Fatalf("无法解析日期 %q: %v", date, err)
	}
	return d
}

func TestMatchesRepeat(t *testing.T) {
	// 2026-07-04 是周六，2026-07-05 是周日，2026-07-06 是周一
	saturday := mustDate(t, "2026-07-04")
	sunday := mustDate(t, "2026-07-05")
	monday := mustDate(t, "2026-07-06")

	daily := &domain.ScheduleRule{ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeDaily}
	for _, d := range []time.Time{saturday, sunday, monday} {
		if !Matches(daily, d) {
			t.Fatalf("daily 应当匹配 %s", d.Format(DateLayout))
		}
	}

	weekdays := &domain.ScheduleRule{ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeWeekdays}
	if Matches(weekdays, saturday) || Matches(weekdays, sunday) {
		t.Fatal("weekdays 不应匹配周末")
	}
	if !Matches(weekdays, monday) {
		t.Fatal("weekdays 应当匹配周一")
	}

	weekends := &domain.ScheduleRule{ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeWeekends}
	if !Matches(weekends, saturday) || !Matches(weekends, sunday) {
		t.Fatal("weekends 应当匹配周六和周日")
	}
	if Matches(weekends, monday) {
		t.Fatal("weekends 不应匹配周一")
	}

	custom := &domain.ScheduleRule{
		ScheduleType: domain.ScheduleTypeRepeat,
		RepeatType:   domain.RepeatTypeCustom,
		SelectedDays: []int{1, 6}, // 周一和周六
	}
	if !Matches(custom, monday) || !Matches(custom, saturday) {
		t.Fatal("custom 应当匹配选中的星期")
	}
	if Matches(custom, sunday) {
		t.Fatal("custom 不应匹配未选中的星期")
	}

	unknown := &domain.ScheduleRule{ScheduleType: domain.ScheduleTypeRepeat, RepeatType: "yearly"}
	if Matches(unknown, monday) {
		t.Fatal("未知的重复类型不应匹配任何日期")
	}
}

func TestMatchesRepeatWithPeriodBound(t *testing.T) {
	rule := &domain.ScheduleRule{
		ScheduleType: domain.ScheduleTypeRepeat,
		RepeatType:   domain.RepeatTypeDaily,
		PeriodStart:  "2026-07-05",
		PeriodEnd:    "2026-07-07",
	}

	if Matches(rule, mustDate(t, "2026-07-04")) {
		t.Fatal("生效范围之前的日期不应匹配")
	}
	for _, date := range []string{"2026-07-05", "2026-07-06", "2026-07-07"} {
		if !Matches(rule, mustDate(t, date)) {
			t.Fatalf("生效范围内的 %s 应当匹配", date)
		}
	}
	if Matches(rule, mustDate(t, "2026-07-08")) {
		t.Fatal("生效范围之后的日期不应匹配")
	}
}

func TestMatchesSpecific(t *testing.T) {
	byDate := &domain.ScheduleRule{
		ScheduleType: domain.ScheduleTypeSpecific,
		SpecificDate: "2026-07-06",
	}
	if !Matches(byDate, mustDate(t, "2026-07-06")) {
		t.Fatal("指定日期应当匹配当天")
	}
	if Matches(byDate, mustDate(t, "2026-07-07")) {
		t.Fatal("指定日期不应匹配其他日期")
	}

	sunday := 0
	byWeekday := &domain.ScheduleRule{
		ScheduleType:    domain.ScheduleTypeSpecific,
		SpecificWeekday: &sunday,
	}
	if !Matches(byWeekday, mustDate(t, "2026-07-05")) {
		t.Fatal("指定星期应当匹配周日")
	}
	if Matches(byWeekday, mustDate(t, "2026-07-06")) {
		t.Fatal("指定星期不应匹配周一")
	}

	// 日期和星期都缺失时不匹配任何日期
	empty := &domain.ScheduleRule{ScheduleType: domain.ScheduleTypeSpecific}
	if Matches(empty, mustDate(t, "2026-07-05")) {
		t.Fatal("缺失日期和星期的指定规则不应匹配")
	}
}

func TestMatchesPeriod(t *testing.T) {
	rule := &domain.ScheduleRule{
		ScheduleType: domain.ScheduleTypePeriod,
		PeriodStart:  "2026-07-05",
		PeriodEnd:    "2026-07-07",
	}

	if Matches(rule, mustDate(t, "2026-07-04")) {
		t.Fatal("期间之前的日期不应匹配")
	}
	if !Matches(rule, mustDate(t, "2026-07-05")) || !Matches(rule, mustDate(t, "2026-07-07")) {
		t.Fatal("期间的两端都应当匹配")
	}
	if Matches(rule, mustDate(t, "2026-07-08")) {
		t.Fatal("期间之后的日期不应匹配")
	}
}

func TestMatchesSingleDayPeriod(t *testing.T) {
	rule := &domain.ScheduleRule{
		ScheduleType: domain.ScheduleTypePeriod,
		PeriodStart:  "2026-07-06",
		PeriodEnd:    "2026-07-06",
	}

	if !Matches(rule, mustDate(t, "2026-07-06")) {
		t.Fatal("单日期间应当匹配当天")
	}
	if Matches(rule, mustDate(t, "2026-07-05")) || Matches(rule, mustDate(t, "2026-07-07")) {
		t.Fatal("单日期间不应匹配前后日期")
	}
}
