package planner

import (
	"fmt"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

// Expand 把全部规则展开成假期内按日期索引的活动视图，
// 再按日期顺序为每一天补上纯自习时段。
// 输入不会被修改，每次调用都返回全新的结构。
func Expand(rules []domain.ScheduleRule, vacation domain.VacationPeriod) (Schedule, error) {
	start, err := ParseDate(vacation.Start)
	if err != nil {
		return nil, fmt.Errorf("假期开始日期无效：%w", err)
	}
	end, err := ParseDate(vacation.End)
	if err != nil {
		return nil, fmt.Errorf("假期结束日期无效：%w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("假期结束日期 %s 早于开始日期 %s", vacation.End, vacation.Start)
	}

	sched := make(Schedule)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateKey := d.Format(DateLayout)
		// 即使当天没有任何活动，日期键也必须存在
		sched[dateKey] = []Occurrence{}

		for i := range rules {
			rule := rules[i]
			if rule.StartTime == "" || rule.EndTime == "" {
				continue
			}
			if Matches(&rule, d) {
				sched[dateKey] = append(sched[dateKey], Occurrence{
					ScheduleRule: rule,
					Date:         dateKey,
				})
			}
		}
	}

	// 自习时段必须按时间顺序逐日推导：
	// 当天的凌晨可用性取决于前一天已经落位的睡眠安排
	var previous []Occurrence
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateKey := d.Format(DateLayout)
		today := sched[dateKey]
		slots, _ := DeriveFreeSlots(dateKey, today, previous)
		sched[dateKey] = append(sched[dateKey], slots...)
		previous = today
	}

	return sched, nil
}
