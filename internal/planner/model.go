package planner

import (
	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

const (
	// DateLayout 全仓库统一使用的日期格式
	DateLayout = "2006-01-02"

	// MinutesPerDay 一天的分钟数预算
	MinutesPerDay = 24 * 60

	// MinSlotMinutes 短于一小时的空档不生成自习时段
	MinSlotMinutes = 60
)

// Occurrence 是某条规则在具体日期上的一次落位，
// 持有规则的浅拷贝加上解析后的日期。
// 纯自习时段是推导出来的伪落位，IsStudySlot 为 true 且带 Duration。
type Occurrence struct {
	domain.ScheduleRule
	Date        string `json:"date"`
	IsStudySlot bool   `json:"isStudySlot,omitempty"`
	Duration    int    `json:"duration,omitempty"`
}

// SlotID 返回自习时段的标识，实绩记录用它做键
func (o *Occurrence) SlotID() string {
	return o.StartTime + "-" + o.EndTime
}

// Schedule 是按日期索引的当日活动视图，完全由规则和假期范围重建，
// 不做持久化。假期内的每个日期都必然存在键，即使当天没有任何活动。
type Schedule map[string][]Occurrence
