package fsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// 通过可替换的函数指针，让测试能稳定模拟底层重命名失败。
var renameFunc = os.Rename

// ErrSameName 表示源与目标同名（文件已是正确命名，no-op）。
var ErrSameName = errors.New("fsx: 源与目标同名")

// TargetExistsError 表示目标名已被另一个条目占用。
// 按产品契约：本工具绝不覆盖已有文件；上层把它记为 collision 并跳过。
type TargetExistsError struct {
	Dst string
}

func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("目标文件已存在：%q（不覆盖，跳过）", e.Dst)
}

// IsTargetExists 判断 err 是否为目标占用错误。
func IsTargetExists(err error) bool {
	var e *TargetExistsError
	return errors.As(err, &e)
}

// RenameNoOverwrite 在 dir 内把 src 重命名为 dst（两者均为纯文件名，不含路径）。
//
// - src == dst：返回 ErrSameName（调用方记为已正确命名，不算成功也不算失败）
// - dst 已存在（无论文件还是目录）：返回 *TargetExistsError，不动 src
// - 其余错误原样返回（调用方记为文件级失败，继续处理后续文件）
//
// 注意：存在性检查与 rename 之间没有原子性；并发写同一目录不在支持范围内
// （整个运行是单线程顺序执行）。
func RenameNoOverwrite(dir, src, dst string) error {
	if src == dst {
		return ErrSameName
	}

	dstAbs := filepath.Join(dir, dst)
	if _, err := os.Lstat(dstAbs); err == nil {
		return &TargetExistsError{Dst: dstAbs}
	} else if !os.IsNotExist(err) {
		return err
	}

	return renameFunc(filepath.Join(dir, src), dstAbs)
}
