package scan

import (
	"os"
	"sort"
	"strings"

	"github.com/florianehll/renamecode/internal/capture"
)

// CaptureDirs 列出 root 的直接子目录中带 taxan_ 前缀的目录名（按名字升序）。
//
// 规则（硬约束）：
// - 只看直接子目录，不递归
// - 非目录条目与不带前缀的目录一律忽略（不计数、不报告）
// - 时间戳解析留给上层：前缀合法但时间戳非法的目录也会返回，由上层记为 unmatched
//
// 注意：扫描阶段只做 ReadDir，不读文件内容。
func CaptureDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if !strings.HasPrefix(e.Name(), capture.Prefix) {
			continue
		}
		names = append(names, e.Name())
	}

	// 强制稳定排序：定宽日期格式下，名字序即时间序。
	sort.Strings(names)
	return names, nil
}

// PNGs 列出 dir 内的 .png 普通文件名（扩展名大小写不敏感），按名字升序。
// 排序保证 courbe1、courbe2… 的编号与平台/文件系统的列举顺序无关。
func PNGs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}

	sort.Strings(names)
	return names, nil
}
