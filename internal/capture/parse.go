package capture

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Prefix 是采集目录名的固定前缀。
const Prefix = "taxan_"

// Layout 是前缀之后的时间戳布局（秒级精度，无时区）。
// 定宽格式保证目录名的字典序与时间序一致。
const Layout = "2006-01-02-15-04-05"

// NotCaptureError 表示目录名不是合法的采集目录名。
// 调用方应把它降级为 unmatched（跳过该目录，不中断运行）。
type NotCaptureError struct {
	Name string
	Err  error
}

func (e *NotCaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("目录 %q 不是采集目录：时间戳无法解析：%v", e.Name, e.Err)
	}
	return fmt.Sprintf("目录 %q 不是采集目录（缺少前缀 %q）", e.Name, Prefix)
}

func (e *NotCaptureError) Unwrap() error { return e.Err }

// IsNotCapture 判断 err 是否为 *NotCaptureError。
func IsNotCapture(err error) bool {
	var e *NotCaptureError
	return errors.As(err, &e)
}

// ParseFolderName 从目录名解析秒级时间戳（UTC，无时区信息）。
// 例："taxan_2025-06-03-14-14-57" → 2025-06-03 14:14:57
func ParseFolderName(name string) (time.Time, error) {
	if !strings.HasPrefix(name, Prefix) {
		return time.Time{}, &NotCaptureError{Name: name}
	}
	ts, err := time.Parse(Layout, strings.TrimPrefix(name, Prefix))
	if err != nil {
		return time.Time{}, &NotCaptureError{Name: name, Err: err}
	}
	return ts, nil
}
