package planner

import (
	"fmt"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

// Conflict 描述新活动与既有活动之间的一次时间冲突
type Conflict struct {
	Date    string `json:"date"`
	Message string `json:"message"`
}

func (c *Conflict) Error() string {
	if c.Date != "" {
		return fmt.Sprintf("%s：%s", c.Date, c.Message)
	}
	return c.Message
}

// CheckConflict 判断新活动与当天既有活动是否冲突。
// 新旧双方都先按 domain.BufferPolicies 扩大成封锁带，再做半开区间重叠判断，
// 因此冲突关系是对称的。纯自习时段不参与检测。
func CheckConflict(newStart, newEnd string, newCategory domain.Category, existing []Occurrence) *Conflict {
	start, end, err := ResolveInterval(newStart, newEnd, newCategory)
	if err != nil {
		return nil
	}
	newZones := bufferedZones(start, end, newCategory)

	for i := range existing {
		occ := &existing[i]
		if occ.IsStudySlot {
			continue
		}

		exStart, exEnd, err := ResolveInterval(occ.StartTime, occ.EndTime, occ.Category)
		if err != nil {
			continue
		}

		for _, ez := range bufferedZones(exStart, exEnd, occ.Category) {
			for _, nz := range newZones {
				if nz.start < ez.end && nz.end > ez.start {
					return &Conflict{Message: conflictMessage(occ)}
				}
			}
		}
	}

	return nil
}

// bufferedZones 把活动加上缓冲后的封锁带拆成当天内的区间。
// 跨夜睡眠拆成两段：夜里一段、凌晨一段。新旧双方必须走同一个拆分，
// 否则冲突关系会失去对称性。
func bufferedZones(start, end int, category domain.Category) []interval {
	buffer := domain.BufferFor(category)

	if category == domain.CategorySleep && end > MinutesPerDay {
		return []interval{
			{max(0, start-buffer.BeforeMinutes), MinutesPerDay},
			{0, min(MinutesPerDay, (end-MinutesPerDay)+buffer.AfterMinutes)},
		}
	}

	return []interval{{
		max(0, start-buffer.BeforeMinutes),
		min(MinutesPerDay, end+buffer.AfterMinutes),
	}}
}

func conflictMessage(occ *Occurrence) string {
	switch occ.Category {
	case domain.CategorySleep:
		return fmt.Sprintf("睡眠时间（%s-%s）前后一小时内不能登记其他日程", occ.StartTime, occ.EndTime)
	case domain.CategoryAcademy:
		return fmt.Sprintf("补习/家教时间（%s-%s）前后一小时内不能登记其他日程", occ.StartTime, occ.EndTime)
	default:
		return fmt.Sprintf("与已有日程（%s-%s）时间重叠", occ.StartTime, occ.EndTime)
	}
}

// ValidateRuleConflicts 在整个假期范围内逐日检查规则是否与既有安排冲突。
// 重复规则在不同日期可能撞上不同的既有活动，因此必须覆盖全部匹配日期，
// 第一个冲突的日期即短路返回。编辑模式下按 ID 排除规则自身的旧占位。
// 跨夜睡眠的凌晨段落在次日：前一天的睡眠参与当天的检查，
// 新登记的跨夜睡眠也反过来要和次日的安排比对。
func ValidateRuleConflicts(rule *domain.ScheduleRule, rules []domain.ScheduleRule, vacation domain.VacationPeriod) error {
	others := make([]domain.ScheduleRule, 0, len(rules))
	for _, r := range rules {
		if rule.ID == "" || r.ID != rule.ID {
			others = append(others, r)
		}
	}

	sched, err := Expand(others, vacation)
	if err != nil {
		return err
	}

	wrapEnd := 0
	if rule.Category == domain.CategorySleep {
		if _, end, err := ResolveInterval(rule.StartTime, rule.EndTime, rule.Category); err == nil && end > MinutesPerDay {
			wrapEnd = end - MinutesPerDay
		}
	}

	start, _ := ParseDate(vacation.Start)
	end, _ := ParseDate(vacation.End)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !Matches(rule, d) {
			continue
		}
		dateKey := d.Format(DateLayout)

		dayOccs := sched[dateKey]
		prevKey := d.AddDate(0, 0, -1).Format(DateLayout)
		if carried := carriedSleep(sched[prevKey]); len(carried) > 0 {
			dayOccs = append(dayOccs[:len(dayOccs):len(dayOccs)], carried...)
		}

		if conflict := CheckConflict(rule.StartTime, rule.EndTime, rule.Category, dayOccs); conflict != nil {
			conflict.Date = dateKey
			return conflict
		}

		if wrapEnd > 0 {
			nextKey := d.AddDate(0, 0, 1).Format(DateLayout)
			if conflict := CheckConflict("00:00", FormatClock(wrapEnd), rule.Category, sched[nextKey]); conflict != nil {
				conflict.Date = nextKey
				return conflict
			}
		}
	}

	return nil
}

// carriedSleep 把前一天跨夜睡眠折算成当天凌晨的占位
func carriedSleep(previous []Occurrence) []Occurrence {
	var morning []Occurrence
	for i := range previous {
		occ := &previous[i]
		if occ.IsStudySlot || occ.Category != domain.CategorySleep {
			continue
		}
		_, end, err := ResolveInterval(occ.StartTime, occ.EndTime, occ.Category)
		if err != nil || end <= MinutesPerDay {
			continue
		}
		carried := *occ
		carried.StartTime = "00:00"
		carried.EndTime = FormatClock(end - MinutesPerDay)
		morning = append(morning, carried)
	}
	return morning
}
