package task

import "fmt"

// Status 定义任务状态
type Status string

const (
	StatusCreated    Status = "created"     // 已创建，尚未入队
	StatusQueued     Status = "queued"      // 等待处理
	StatusStarted    Status = "started"     // 开始处理
	StatusInProgress Status = "in_progress" // 处理中
	StatusCompleted  Status = "completed"   // 处理成功
	StatusFailed     Status = "failed"      // 致命错误
	StatusRetrying   Status = "retrying"    // 失败后重试中
	StatusCanceled   Status = "canceled"    // 被取消
	StatusTimeout    Status = "timeout"     // 超时未完成
)

var allStatuses = []Status{
	StatusCreated,
	StatusQueued,
	StatusStarted,
	StatusInProgress,
	StatusCompleted,
	StatusFailed,
	StatusRetrying,
	StatusCanceled,
	StatusTimeout,
}

// Statuses 返回全部状态，按生命周期顺序
func Statuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus 解析状态字面量
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", invalidf("status", "unknown status %q", s)
	}
	return st, nil
}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	for _, st := range allStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsTerminal 是否为实际意义上的终态。
// 状态机本身并不禁止离开终态。
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCanceled, StatusTimeout:
		return true
	default:
		return false
	}
}

// IsInFlight 是否处于执行中（可进入 retrying）
func (s Status) IsInFlight() bool {
	switch s {
	case StatusQueued, StatusStarted, StatusInProgress, StatusRetrying:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// UnmarshalText 拒绝未知状态
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("cannot encode unknown status %q", string(s))
	}
	return []byte(s), nil
}
