package domain

import "time"

// 持久化时的数据类型名，与存储键一一对应
const (
	DataTypeVacationPeriod     = "vacationPeriod"
	DataTypeSchedules          = "schedules"
	DataTypeStudyRecords       = "studyRecords"
	DataTypeCompletedSchedules = "completedSchedules"
)

var PlannerDataTypes = []string{
	DataTypeVacationPeriod,
	DataTypeSchedules,
	DataTypeStudyRecords,
	DataTypeCompletedSchedules,
}

// StudyRecord 是用户对某个自习时段登记的实际学习情况
type StudyRecord struct {
	Minutes   int       `json:"minutes"`
	Subject   string    `json:"subject"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// StudyRecords 按日期再按时段 ID（"HH:MM-HH:MM"）索引
type StudyRecords map[string]map[string]StudyRecord

// CompletionMarks 按日期再按规则 ID 索引，存在即表示已完成
type CompletionMarks map[string]map[string]bool

// PlannerData 是单个用户的全部持久化数据，推导出的日程视图不在其中
type PlannerData struct {
	VacationPeriod *VacationPeriod `json:"vacationPeriod"`
	Schedules      []ScheduleRule  `json:"schedules"`
	StudyRecords   StudyRecords    `json:"studyRecords"`
	Completions    CompletionMarks `json:"completedSchedules"`
}
