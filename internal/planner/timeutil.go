package planner

import (
	"fmt"
	"time"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

// ParseClock 把 "HH:MM" 解析成当天的分钟数。
// 只接受补零的五位写法，多余的字符一律拒绝。
func ParseClock(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, fmt.Errorf("时间格式应为 HH:MM，收到 %q", clock)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if clock[i] < '0' || clock[i] > '9' {
			return 0, fmt.Errorf("时间格式应为 HH:MM，收到 %q", clock)
		}
	}

	hours := int(clock[0]-'0')*10 + int(clock[1]-'0')
	minutes := int(clock[3]-'0')*10 + int(clock[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("时间超出范围：%q", clock)
	}
	return hours*60 + minutes, nil
}

// FormatClock 把分钟数格式化为补零的 "HH:MM"。
// 不做跨天归一化，超过 1440 的值由调用方先行处理。
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDuration 把分钟数格式化为中文时长
func FormatDuration(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d分钟", mins)
	case mins == 0:
		return fmt.Sprintf("%d小时", hours)
	default:
		return fmt.Sprintf("%d小时%d分钟", hours, mins)
	}
}

// ResolveInterval 解析一条活动的起止分钟数。
// 睡眠分类的结束时间不晚于开始时间时视为次日，结果加 1440。
// 这条规则在推导器和冲突检测器中必须保持一致。
func ResolveInterval(startTime, endTime string, category domain.Category) (int, int, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return 0, 0, err
	}
	if category == domain.CategorySleep && end <= start {
		end += MinutesPerDay
	}
	return start, end, nil
}

// ParseDate 按统一格式解析日期
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}
