package planner

import (
	"sort"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

type interval struct {
	start int
	end   int
}

// DeriveFreeSlots 计算某一天的纯自习时段和剩余可自习分钟数。
// previous 是前一天的活动：跨夜睡眠会占掉当天凌晨加起床后的缓冲时间。
// 返回的时段是被封锁区间合并后的补集，短于一小时的空档被丢弃。
func DeriveFreeSlots(date string, today, previous []Occurrence) ([]Occurrence, int) {
	budget := MinutesPerDay
	var busy []interval

	sleepBuffer := domain.BufferFor(domain.CategorySleep)

	// 前一天跨夜睡眠占掉的凌晨时间
	for i := range previous {
		occ := &previous[i]
		if occ.IsStudySlot || occ.Category != domain.CategorySleep {
			continue
		}
		_, end, err := ResolveInterval(occ.StartTime, occ.EndTime, occ.Category)
		if err != nil || end <= MinutesPerDay {
			continue
		}
		carry := (end - MinutesPerDay) + sleepBuffer.AfterMinutes
		carry = min(carry, MinutesPerDay)
		budget -= carry
		busy = append(busy, interval{0, carry})
	}

	// 当天活动逐条扣减
	for i := range today {
		occ := &today[i]
		if occ.IsStudySlot {
			continue
		}
		start, end, err := ResolveInterval(occ.StartTime, occ.EndTime, occ.Category)
		if err != nil {
			continue
		}

		buffer := domain.BufferFor(occ.Category)
		var blocked interval
		var charged int

		if occ.Category == domain.CategorySleep && end > MinutesPerDay {
			// 跨夜睡眠只占当天夜里的部分，凌晨的部分由次日负担
			blocked = interval{max(0, start-buffer.BeforeMinutes), MinutesPerDay}
			charged = (MinutesPerDay - start) + buffer.BeforeMinutes
		} else {
			blocked = interval{
				max(0, start-buffer.BeforeMinutes),
				min(MinutesPerDay, end+buffer.AfterMinutes),
			}
			charged = (end - start) + buffer.BeforeMinutes + buffer.AfterMinutes
		}

		budget -= charged
		busy = append(busy, blocked)
	}

	budget = max(budget, 0)

	gaps := freeGaps(busy)
	slots := make([]Occurrence, 0, len(gaps))
	for _, gap := range gaps {
		duration := gap.end - gap.start
		slots = append(slots, Occurrence{
			ScheduleRule: domain.ScheduleRule{
				Title:     "可自习 " + FormatDuration(duration),
				Category:  domain.CategoryStudy,
				StartTime: FormatClock(gap.start),
				EndTime:   FormatClock(gap.end),
			},
			Date:        date,
			IsStudySlot: true,
			Duration:    duration,
		})
	}

	return slots, budget
}

// freeGaps 返回被封锁区间合并后在 [0,1440] 上的补集，
// 只保留不短于 MinSlotMinutes 的空档
func freeGaps(busy []interval) []interval {
	sort.Slice(busy, func(i, j int) bool {
		return busy[i].start < busy[j].start
	})

	var gaps []interval
	current := 0

	for _, b := range busy {
		if current < b.start && b.start-current >= MinSlotMinutes {
			gaps = append(gaps, interval{current, b.start})
		}
		current = max(current, b.end)
	}

	if current < MinutesPerDay && MinutesPerDay-current >= MinSlotMinutes {
		gaps = append(gaps, interval{current, MinutesPerDay})
	}

	return gaps
}
