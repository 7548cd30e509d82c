package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type WeeklyReportMailData struct {
	FullName        string `json:"fullName"`
	WeekStart       string `json:"weekStart"`
	WeekEnd         string `json:"weekEnd"`
	PlannedMinutes  int    `json:"plannedMinutes"`
	ActualMinutes   int    `json:"actualMinutes"`
	AchievementRate int    `json:"achievementRate"`
	Message         string `json:"message"`
}
