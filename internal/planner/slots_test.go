package planner

import (
	"testing"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

func occurrence(category domain.Category, start, end string) Occurrence {
	return Occurrence{
		ScheduleRule: domain.ScheduleRule{
			Category:  category,
			StartTime: start,
			EndTime:   end,
		},
		Date: "2026-07-01",
	}
}

func TestDeriveFreeSlotsEmptyDay(t *testing.T) {
	slots, budget := DeriveFreeSlots("2026-07-01", nil, nil)

	if budget != 1440 {
		t.Fatalf("空白一天的预算应为 1440, 得到 %d", budget)
	}
	if len(slots) != 1 {
		t.Fatalf("期望 1 个自习时段, 得到 %d", len(slots))
	}
	slot := slots[0]
	if slot.StartTime != "00:00" || slot.EndTime != "24:00" || slot.Duration != 1440 {
		t.Fatalf("整天时段错误: %s-%s (%d)", slot.StartTime, slot.EndTime, slot.Duration)
	}
	if !slot.IsStudySlot || slot.Category != domain.CategoryStudy {
		t.Fatal("推导出的时段应当标记为纯自习")
	}
}

func TestDeriveFreeSlotsMealNoBuffer(t *testing.T) {
	today := []Occurrence{occurrence(domain.CategoryMeal, "12:00", "13:00")}

	slots, budget := DeriveFreeSlots("2026-07-01", today, nil)

	// 用餐没有缓冲，只扣 60 分钟
	if budget != 1380 {
		t.Fatalf("预算应为 1380, 得到 %d", budget)
	}
	if len(slots) != 2 {
		t.Fatalf("期望 2 个时段, 得到 %d", len(slots))
	}
	if slots[0].StartTime != "00:00" || slots[0].EndTime != "12:00" {
		t.Fatalf("上午时段错误: %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[1].StartTime != "13:00" || slots[1].EndTime != "24:00" {
		t.Fatalf("下午时段错误: %s-%s", slots[1].StartTime, slots[1].EndTime)
	}
}

func TestDeriveFreeSlotsAcademyBuffer(t *testing.T) {
	today := []Occurrence{occurrence(domain.CategoryAcademy, "14:00", "16:00")}

	slots, budget := DeriveFreeSlots("2026-07-01", today, nil)

	// 补习前后各封锁一小时：扣 120 + 60 + 60 = 240
	if budget != 1200 {
		t.Fatalf("预算应为 1200, 得到 %d", budget)
	}
	if len(slots) != 2 {
		t.Fatalf("期望 2 个时段, 得到 %d", len(slots))
	}
	if slots[0].EndTime != "13:00" {
		t.Fatalf("上午时段应当在 13:00 结束, 得到 %s", slots[0].EndTime)
	}
	if slots[1].StartTime != "17:00" {
		t.Fatalf("下午时段应当从 17:00 开始, 得到 %s", slots[1].StartTime)
	}
}

func TestDeriveFreeSlotsOvernightSleep(t *testing.T) {
	sleep := occurrence(domain.CategorySleep, "23:00", "07:00")

	// 睡眠当天：只封锁夜里的部分加睡前一小时
	slots, budget := DeriveFreeSlots("2026-07-01", []Occurrence{sleep}, nil)

	// 扣 (1440-1380) + 60 = 120
	if budget != 1320 {
		t.Fatalf("当天预算应为 1320, 得到 %d", budget)
	}
	if len(slots) != 1 {
		t.Fatalf("期望 1 个时段, 得到 %d", len(slots))
	}
	if slots[0].StartTime != "00:00" || slots[0].EndTime != "22:00" || slots[0].Duration != 1320 {
		t.Fatalf("时段错误: %s-%s (%d)", slots[0].StartTime, slots[0].EndTime, slots[0].Duration)
	}

	// 次日：前一天的睡眠占掉凌晨 07:00 加起床后一小时
	slots, budget = DeriveFreeSlots("2026-07-02", nil, []Occurrence{sleep})

	// 扣 (1860-1440) + 60 = 480
	if budget != 960 {
		t.Fatalf("次日预算应为 960, 得到 %d", budget)
	}
	if len(slots) != 1 {
		t.Fatalf("期望 1 个时段, 得到 %d", len(slots))
	}
	if slots[0].StartTime != "08:00" || slots[0].EndTime != "24:00" {
		t.Fatalf("次日时段错误: %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
}

func TestDeriveFreeSlotsTypicalDay(t *testing.T) {
	sleep := occurrence(domain.CategorySleep, "23:00", "07:00")
	today := []Occurrence{sleep}
	previous := []Occurrence{sleep}

	slots, budget := DeriveFreeSlots("2026-07-02", today, previous)

	// 凌晨扣 480，夜里扣 120
	if budget != 840 {
		t.Fatalf("预算应为 840, 得到 %d", budget)
	}
	if len(slots) != 1 {
		t.Fatalf("期望 1 个时段, 得到 %d", len(slots))
	}
	if slots[0].StartTime != "08:00" || slots[0].EndTime != "22:00" || slots[0].Duration != 840 {
		t.Fatalf("时段错误: %s-%s (%d)", slots[0].StartTime, slots[0].EndTime, slots[0].Duration)
	}
	if slots[0].Title != "可自习 14小时" {
		t.Fatalf("时段标题错误: %q", slots[0].Title)
	}
}

func TestDeriveFreeSlotsDropsShortGaps(t *testing.T) {
	today := []Occurrence{
		occurrence(domain.CategoryMeal, "10:00", "12:00"),
		occurrence(domain.CategoryMeal, "12:50", "13:30"),
	}

	slots, _ := DeriveFreeSlots("2026-07-01", today, nil)

	// 12:00-12:50 只有 50 分钟，不生成时段
	for _, slot := range slots {
		if slot.StartTime == "12:00" {
			t.Fatal("短于一小时的空档不应生成自习时段")
		}
	}
	if len(slots) != 2 {
		t.Fatalf("期望 2 个时段, 得到 %d", len(slots))
	}
}

func TestDeriveFreeSlotsAccounting(t *testing.T) {
	// 重叠的封锁带加一个被丢弃的短空档：
	// 补习 10:00-12:00 封锁 [09:00,13:00]，午餐 11:30-12:30 完全落在其中，
	// 加餐 13:30-14:00 封锁 [13:30,14:00]，13:00-13:30 只有 30 分钟被丢弃。
	today := []Occurrence{
		occurrence(domain.CategoryAcademy, "10:00", "12:00"),
		occurrence(domain.CategoryMeal, "11:30", "12:30"),
		occurrence(domain.CategoryMeal, "13:30", "14:00"),
	}

	slots, _ := DeriveFreeSlots("2026-07-01", today, nil)

	if len(slots) != 2 {
		t.Fatalf("期望 2 个时段, 得到 %d", len(slots))
	}
	if slots[0].StartTime != "00:00" || slots[0].EndTime != "09:00" {
		t.Fatalf("上午时段错误: %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[1].StartTime != "14:00" || slots[1].EndTime != "24:00" {
		t.Fatalf("下午时段错误: %s-%s", slots[1].StartTime, slots[1].EndTime)
	}

	// 自习时段 + 合并后的封锁带 + 丢弃的空档必须恰好铺满一天
	free := 0
	for _, slot := range slots {
		free += slot.Duration
	}
	const mergedBlocked = 240 + 30 // [09:00,13:00] 与 [13:30,14:00]
	const droppedGaps = 30         // [13:00,13:30]
	if free+mergedBlocked+droppedGaps != 1440 {
		t.Fatalf("一天没有铺满: %d + %d + %d != 1440", free, mergedBlocked, droppedGaps)
	}
}

func TestDeriveFreeSlotsBudgetNeverNegative(t *testing.T) {
	today := []Occurrence{
		occurrence(domain.CategorySleep, "00:00", "10:00"),
		occurrence(domain.CategoryAcademy, "11:00", "18:00"),
		occurrence(domain.CategorySleep, "19:00", "23:59"),
	}

	_, budget := DeriveFreeSlots("2026-07-01", today, nil)
	if budget < 0 {
		t.Fatalf("预算不能为负, 得到 %d", budget)
	}
}

func TestDeriveFreeSlotsIgnoresStudySlots(t *testing.T) {
	existingSlot := Occurrence{
		ScheduleRule: domain.ScheduleRule{
			Category:  domain.CategoryStudy,
			StartTime: "09:00",
			EndTime:   "12:00",
		},
		Date:        "2026-07-01",
		IsStudySlot: true,
		Duration:    180,
	}

	slots, budget := DeriveFreeSlots("2026-07-01", []Occurrence{existingSlot}, nil)

	// 已有的自习时段不参与推导
	if budget != 1440 {
		t.Fatalf("预算应为 1440, 得到 %d", budget)
	}
	if len(slots) != 1 || slots[0].Duration != 1440 {
		t.Fatal("推导结果不应受既有自习时段影响")
	}
}
