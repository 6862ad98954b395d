package middleware

import (
	"testing"
	"time"
)

func TestCooldownLimiter_Check(t *testing.T) {
	limiter := &CooldownLimiter{}

	first := limiter.Check("form:1.2.3.4", time.Minute)
	if !first.Allowed {
		t.Fatal("首次请求应放行")
	}

	second := limiter.Check("form:1.2.3.4", time.Minute)
	if second.Allowed {
		t.Fatal("冷却期内应拒绝")
	}
	if second.RetryAfter <= 0 || second.RetryAfter > time.Minute {
		t.Errorf("RetryAfter = %v", second.RetryAfter)
	}

	// 不同 key 互不影响
	other := limiter.Check("form:5.6.7.8", time.Minute)
	if !other.Allowed {
		t.Error("不同 IP 不应被牵连")
	}
}

func TestCooldownLimiter_CheckOnlyDoesNotMark(t *testing.T) {
	limiter := &CooldownLimiter{}

	if got := limiter.CheckOnly("sync:retry", time.Minute); !got.Allowed {
		t.Fatal("未执行过应放行")
	}
	// CheckOnly 不更新时间，Check 仍应放行
	if got := limiter.Check("sync:retry", time.Minute); !got.Allowed {
		t.Fatal("CheckOnly 不应占用配额")
	}
}

func TestCooldownLimiter_Reset(t *testing.T) {
	limiter := &CooldownLimiter{}

	limiter.Check("form:1.2.3.4", time.Hour)
	limiter.Reset("form:1.2.3.4")

	if got := limiter.Check("form:1.2.3.4", time.Hour); !got.Allowed {
		t.Error("重置后应放行")
	}
}
