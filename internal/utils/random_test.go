package utils

import (
	"strings"
	"testing"

	"github.com/sunnylab-dev/vacation-planner/backend/internal/domain"
)

func TestGenerateRandomOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateRandomOTP()
		if len(otp) != 6 {
			t.Fatalf("验证码应为 6 位, 得到 %q", otp)
		}
		for _, c := range otp {
			if c < '0' || c > '9' {
				t.Fatalf("验证码应当只含数字, 得到 %q", otp)
			}
		}
	}
}

func TestGenerateRandomPassword(t *testing.T) {
	if got := GenerateRandomPassword(12); len(got) != 12 {
		t.Fatalf("密码长度应为 12, 得到 %d", len(got))
	}
}

func TestGenerateShareToken(t *testing.T) {
	token := GenerateShareToken()
	if len(token) != 64 {
		t.Fatalf("令牌长度应为 64, 得到 %d", len(token))
	}
	if strings.Contains(token, "-") {
		t.Fatalf("令牌不应包含连字符: %q", token)
	}
	if token == GenerateShareToken() {
		t.Fatal("两次生成的令牌不应相同")
	}
}

func TestGenerateRandomStudent(t *testing.T) {
	user, err := GenerateRandomStudent("password123", "example.com")
	if err != nil {
		t.Fatalf("意外错误: %v", err)
	}
	if user.Role != domain.RoleStudent {
		t.Fatalf("角色应为学生, 得到 %q", user.Role)
	}
	if user.FullName == "" || user.Username == "" {
		t.Fatal("姓名和用户名不能为空")
	}
	if !strings.HasSuffix(user.Email, "@example.com") {
		t.Fatalf("邮箱域名错误: %q", user.Email)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("密码必须经过哈希")
	}
	if user.MBTI == "" {
		t.Fatal("应当生成 MBTI")
	}
}
