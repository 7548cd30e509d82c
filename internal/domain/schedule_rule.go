package domain

import "time"

type ScheduleType string

const (
	ScheduleTypeRepeat   ScheduleType = "repeat"
	ScheduleTypeSpecific ScheduleType = "specific"
	ScheduleTypePeriod   ScheduleType = "period"
)

type RepeatType string

const (
	RepeatTypeDaily    RepeatType = "daily"
	RepeatTypeWeekdays RepeatType = "weekdays"
	RepeatTypeWeekends RepeatType = "weekends"
	RepeatTypeCustom   RepeatType = "custom"
)

// ScheduleRule 是用户登记的一条活动规则
// 星期索引统一使用 0=周日 ... 6=周六
type ScheduleRule struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Category  Category `json:"category"`
	StartTime string   `json:"startTime"` // HH:MM
	EndTime   string   `json:"endTime"`   // HH:MM，睡眠分类允许小于 startTime 表示跨天

	ScheduleType ScheduleType `json:"scheduleType"`

	// repeat 类型字段
	RepeatType   RepeatType `json:"repeatType,omitempty"`
	SelectedDays []int      `json:"selectedDays,omitempty"`

	// specific 类型字段，二选一
	SpecificDate    string `json:"specificDate,omitempty"`
	SpecificWeekday *int   `json:"specificWeekday,omitempty"`

	// period 类型必填，repeat 类型可选（限制重复的生效范围）
	PeriodStart string `json:"periodStart,omitempty"`
	PeriodEnd   string `json:"periodEnd,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// VacationPeriod 定义所有推导发生的日期范围，要求 Start 严格早于 End
type VacationPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
