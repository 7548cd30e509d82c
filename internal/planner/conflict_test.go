package planner

import (
	"strings"
	"testing"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

func TestCheckConflictOverlap(t *testing.T) {
	existing := []Occurrence{occurrence(domain.CategoryMeal, "12:00", "13:00")}

	if conflict := CheckConflict("12:30", "13:30", domain.CategoryOther, existing); conflict == nil {
		t.Fatal("重叠的活动应当冲突")
	}
	if conflict := CheckConflict("13:00", "14:00", domain.CategoryOther, existing); conflict != nil {
		t.Fatalf("紧贴的活动不应冲突: %v", conflict)
	}
	if conflict := CheckConflict("10:00", "11:00", domain.CategoryOther, existing); conflict != nil {
		t.Fatalf("不相交的活动不应冲突: %v", conflict)
	}
}

func TestCheckConflictAcademyBuffer(t *testing.T) {
	existing := []Occurrence{occurrence(domain.CategoryAcademy, "14:00", "16:00")}

	// 补习结束后一小时内不能安排其他活动
	conflict := CheckConflict("16:30", "17:30", domain.CategoryExercise, existing)
	if conflict == nil {
		t.Fatal("补习后 30 分钟开始的活动应当冲突")
	}
	if !strings.Contains(conflict.Message, "补习/家教时间（14:00-16:00）") {
		t.Fatalf("冲突信息错误: %q", conflict.Message)
	}

	// 整整隔开一小时则没有冲突
	if conflict := CheckConflict("17:00", "18:00", domain.CategoryExercise, existing); conflict != nil {
		t.Fatalf("隔开一小时的活动不应冲突: %v", conflict)
	}
	if conflict := CheckConflict("12:00", "13:00", domain.CategoryMeal, existing); conflict != nil {
		t.Fatalf("补习前隔开一小时的活动不应冲突: %v", conflict)
	}
}

func TestCheckConflictSymmetry(t *testing.T) {
	// 缓冲对新旧双方同时生效：无论先登记哪个，结论一致
	academy := occurrence(domain.CategoryAcademy, "14:00", "16:00")
	exercise := occurrence(domain.CategoryExercise, "16:30", "17:30")

	first := CheckConflict(exercise.StartTime, exercise.EndTime, exercise.Category, []Occurrence{academy})
	second := CheckConflict(academy.StartTime, academy.EndTime, academy.Category, []Occurrence{exercise})

	if (first == nil) != (second == nil) {
		t.Fatalf("冲突判断不对称: %v / %v", first, second)
	}
	if first == nil {
		t.Fatal("两个方向都应当检测出冲突")
	}

	// 跨夜睡眠作为新登记方时，凌晨段同样要参与判断
	sleep := occurrence(domain.CategorySleep, "23:00", "07:00")
	morning := occurrence(domain.CategoryExercise, "07:30", "08:30")

	first = CheckConflict(sleep.StartTime, sleep.EndTime, sleep.Category, []Occurrence{morning})
	second = CheckConflict(morning.StartTime, morning.EndTime, morning.Category, []Occurrence{sleep})

	if (first == nil) != (second == nil) {
		t.Fatalf("跨夜睡眠的冲突判断不对称: %v / %v", first, second)
	}
	if first == nil {
		t.Fatal("跨夜睡眠的两个方向都应当检测出冲突")
	}
}

func TestCheckConflictOvernightSleep(t *testing.T) {
	existing := []Occurrence{occurrence(domain.CategorySleep, "23:00", "07:00")}

	// 凌晨段：起床后一小时内冲突
	if conflict := CheckConflict("07:30", "08:30", domain.CategoryExercise, existing); conflict == nil {
		t.Fatal("起床后 30 分钟开始的活动应当冲突")
	}
	if conflict := CheckConflict("08:00", "09:00", domain.CategoryExercise, existing); conflict != nil {
		t.Fatalf("起床一小时后的活动不应冲突: %v", conflict)
	}

	// 夜里段：睡前一小时内冲突
	if conflict := CheckConflict("21:30", "22:30", domain.CategoryOther, existing); conflict == nil {
		t.Fatal("睡前 30 分钟结束不了的活动应当冲突")
	}
	if conflict := CheckConflict("20:00", "21:00", domain.CategoryOther, existing); conflict != nil {
		t.Fatalf("睡前留足一小时的活动不应冲突: %v", conflict)
	}

	// 中午完全不受跨夜睡眠影响
	if conflict := CheckConflict("12:00", "13:00", domain.CategoryMeal, existing); conflict != nil {
		t.Fatalf("中午的活动不应冲突: %v", conflict)
	}
}

func TestCheckConflictNewOvernightSleep(t *testing.T) {
	// 新登记的跨夜睡眠自己带缓冲，撞上夜里已有的活动
	existing := []Occurrence{occurrence(domain.CategoryOther, "22:00", "22:30")}

	if conflict := CheckConflict("23:00", "07:00", domain.CategorySleep, existing); conflict == nil {
		t.Fatal("睡前一小时内已有活动时登记睡眠应当冲突")
	}

	existing = []Occurrence{occurrence(domain.CategoryOther, "20:00", "21:00")}
	if conflict := CheckConflict("23:00", "07:00", domain.CategorySleep, existing); conflict != nil {
		t.Fatalf("睡前留足一小时时登记睡眠不应冲突: %v", conflict)
	}
}

func TestCheckConflictIgnoresStudySlots(t *testing.T) {
	slot := Occurrence{
		ScheduleRule: domain.ScheduleRule{
			Category:  domain.CategoryStudy,
			StartTime: "09:00",
			EndTime:   "12:00",
		},
		IsStudySlot: true,
		Duration:    180,
	}

	if conflict := CheckConflict("10:00", "11:00", domain.CategoryMeal, []Occurrence{slot}); conflict != nil {
		t.Fatalf("自习时段不应参与冲突检测: %v", conflict)
	}
}

func TestValidateRuleConflicts(t *testing.T) {
	vacation := domain.VacationPeriod{Start: "2026-07-01", End: "2026-07-07"}
	rules := []domain.ScheduleRule{
		{
			ID: "lunch", Title: "午餐", Category: domain.CategoryMeal,
			StartTime: "12:00", EndTime: "13:00",
			ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeDaily,
		},
	}

	// 每天都撞上午餐，第一个匹配日期即短路返回
	newRule := &domain.ScheduleRule{
		ID: "new", Title: "看书", Category: domain.CategoryOther,
		StartTime: "12:30", EndTime: "13:30",
		ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeDaily,
	}
	err := ValidateRuleConflicts(newRule, rules, vacation)
	if err == nil {
		t.Fatal("应当检测出冲突")
	}
	conflict, ok := err.(*Conflict)
	if !ok {
		t.Fatalf("期望 *Conflict, 得到 %T", err)
	}
	if conflict.Date != "2026-07-01" {
		t.Fatalf("应当报告第一个冲突日期, 得到 %s", conflict.Date)
	}

	// 只在周末生效的规则不与工作日的安排冲突
	weekdayOnly := []domain.ScheduleRule{
		{
			ID: "class", Title: "补习", Category: domain.CategoryAcademy,
			StartTime: "14:00", EndTime: "16:00",
			ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeWeekdays,
		},
	}
	weekendRule := &domain.ScheduleRule{
		ID: "run", Title: "跑步", Category: domain.CategoryExercise,
		StartTime: "15:00", EndTime: "16:00",
		ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeWeekends,
	}
	if err := ValidateRuleConflicts(weekendRule, weekdayOnly, vacation); err != nil {
		t.Fatalf("不同生效日期的规则不应冲突: %v", err)
	}
}

func TestValidateRuleConflictsAcrossMidnight(t *testing.T) {
	vacation := domain.VacationPeriod{Start: "2026-07-01", End: "2026-07-02"}

	// 第一天的跨夜睡眠占掉第二天的凌晨
	sleepFirstDay := []domain.ScheduleRule{
		{
			ID: "sleep", Title: "睡觉", Category: domain.CategorySleep,
			StartTime: "23:00", EndTime: "07:00",
			ScheduleType: domain.ScheduleTypeSpecific, SpecificDate: "2026-07-01",
		},
	}
	morningNextDay := &domain.ScheduleRule{
		ID: "run", Title: "跑步", Category: domain.CategoryExercise,
		StartTime: "07:30", EndTime: "08:30",
		ScheduleType: domain.ScheduleTypeSpecific, SpecificDate: "2026-07-02",
	}
	err := ValidateRuleConflicts(morningNextDay, sleepFirstDay, vacation)
	if err == nil {
		t.Fatal("起床后一小时内的次日活动应当冲突")
	}
	if conflict := err.(*Conflict); conflict.Date != "2026-07-02" {
		t.Fatalf("冲突日期应为 2026-07-02, 得到 %s", conflict.Date)
	}

	// 反过来：先有次日凌晨的活动，再登记前一天的跨夜睡眠
	morningRules := []domain.ScheduleRule{*morningNextDay}
	newSleep := &domain.ScheduleRule{
		ID: "sleep", Title: "睡觉", Category: domain.CategorySleep,
		StartTime: "23:00", EndTime: "07:00",
		ScheduleType: domain.ScheduleTypeSpecific, SpecificDate: "2026-07-01",
	}
	err = ValidateRuleConflicts(newSleep, morningRules, vacation)
	if err == nil {
		t.Fatal("次日凌晨已有活动时登记跨夜睡眠应当冲突")
	}
	if conflict := err.(*Conflict); conflict.Date != "2026-07-02" {
		t.Fatalf("冲突日期应为 2026-07-02, 得到 %s", conflict.Date)
	}

	// 留足起床缓冲则两个方向都没有冲突
	lateMorning := &domain.ScheduleRule{
		ID: "run", Title: "跑步", Category: domain.CategoryExercise,
		StartTime: "08:00", EndTime: "09:00",
		ScheduleType: domain.ScheduleTypeSpecific, SpecificDate: "2026-07-02",
	}
	if err := ValidateRuleConflicts(lateMorning, sleepFirstDay, vacation); err != nil {
		t.Fatalf("起床一小时后的活动不应冲突: %v", err)
	}
}

func TestValidateRuleConflictsExcludesSelf(t *testing.T) {
	vacation := domain.VacationPeriod{Start: "2026-07-01", End: "2026-07-03"}
	rules := []domain.ScheduleRule{
		{
			ID: "lunch", Title: "午餐", Category: domain.CategoryMeal,
			StartTime: "12:00", EndTime: "13:00",
			ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeDaily,
		},
	}

	// 编辑规则自身：把午餐改成 12:30 开始，不与旧占位比较
	edited := &domain.ScheduleRule{
		ID: "lunch", Title: "午餐", Category: domain.CategoryMeal,
		StartTime: "12:30", EndTime: "13:30",
		ScheduleType: domain.ScheduleTypeRepeat, RepeatType: domain.RepeatTypeDaily,
	}
	if err := ValidateRuleConflicts(edited, rules, vacation); err != nil {
		t.Fatalf("编辑时不应与规则自身冲突: %v", err)
	}
}
