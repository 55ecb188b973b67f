package task

import "time"

// Clock 时间来源，测试中可替换
type Clock interface {
	Now() time.Time
}

// ClockFunc 将函数适配为 Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock 读取系统时间，无缓存
var SystemClock Clock = ClockFunc(time.Now)
