package domain

type Category string

const (
	CategoryMeal     Category = "用餐"
	CategorySleep    Category = "睡眠"
	CategoryAcademy  Category = "补习/家教"
	CategoryExercise Category = "运动"
	CategoryOther    Category = "其他"

	// CategoryStudy 是由空闲时间推导器生成的合成分类，用户不能直接创建
	CategoryStudy Category = "纯自习"
)

// BufferPolicy 描述某个分类的活动前后需要额外封锁的分钟数
type BufferPolicy struct {
	BeforeMinutes int
	AfterMinutes  int
}

// BufferPolicies 是推导器和冲突检测器共用的缓冲规则表，
// 两处必须查同一张表，避免规则不一致
var BufferPolicies = map[Category]BufferPolicy{
	CategorySleep:   {BeforeMinutes: 60, AfterMinutes: 60},
	CategoryAcademy: {BeforeMinutes: 60, AfterMinutes: 60},
}

// BufferFor 返回分类对应的缓冲规则，未登记的分类没有缓冲
func BufferFor(category Category) BufferPolicy {
	return BufferPolicies[category]
}

var userCategories = []Category{
	CategoryMeal,
	CategorySleep,
	CategoryAcademy,
	CategoryExercise,
	CategoryOther,
}

// IsUserCategory 判断分类是否允许由用户创建
func IsUserCategory(category Category) bool {
	for _, c := range userCategories {
		if c == category {
			return true
		}
	}
	return false
}
