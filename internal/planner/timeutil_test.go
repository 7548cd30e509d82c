package planner

import (
	"testing"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:05", 0, true},     // 必须补零
		{"07:30xyz", 0, true}, // 不接受多余字符
		{"07-30", 0, true},
		{"ab:cd", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, c := range cases {
		got, err := ParseClock(c.clock)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q) 应当返回错误", c.clock)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q) 返回错误: %v", c.clock, err)
		}
		if got != c.want {
			t.Fatalf("ParseClock(%q) = %d, 期望 %d", c.clock, got, c.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(450); got != "07:30" {
		t.Fatalf("FormatClock(450) = %q", got)
	}
	if got := FormatClock(0); got != "00:00" {
		t.Fatalf("FormatClock(0) = %q", got)
	}
	// 一天的末尾不做跨天归一化
	if got := FormatClock(1440); got != "24:00" {
		t.Fatalf("FormatClock(1440) = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{45, "45分钟"},
		{60, "1小时"},
		{90, "1小时30分钟"},
		{1320, "22小时"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Fatalf("FormatDuration(%d) = %q, 期望 %q", c.minutes, got, c.want)
		}
	}
}

func TestResolveInterval(t *testing.T) {
	// 普通活动不跨天
	start, end, err := ResolveInterval("12:00", "13:00", domain.CategoryMeal)
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if start != 720 || end != 780 {
		t.Fatalf("得到 [%d, %d]", start, end)
	}

	// 睡眠结束时间不晚于开始时间时视为次日
	start, end, err = ResolveInterval("23:00", "07:00", domain.CategorySleep)
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if start != 1380 || end != 1860 {
		t.Fatalf("跨夜睡眠得到 [%d, %d], 期望 [1380, 1860]", start, end)
	}

	// 白天的午睡不跨天
	start, end, err = ResolveInterval("13:00", "14:00", domain.CategorySleep)
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if start != 780 || end != 840 {
		t.Fatalf("午睡得到 [%d, %d]", start, end)
	}

	// 非睡眠分类不做跨天处理
	if _, end, _ := ResolveInterval("23:00", "07:00", domain.CategoryOther); end != 420 {
		t.Fatalf("非睡眠分类不应跨天, end = %d", end)
	}
}
