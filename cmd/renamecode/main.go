package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(runMain(os.Args[1:], os.Stderr))
}

// runMain 把退出码的决定集中在一处：
// - 0 正常结束（未匹配/冲突只进汇总，不影响退出码）
// - 1 致命前置条件失败（错误已由 RunE 输出）
// - 2 用法错误（未知子命令、非法 flag、多余参数；cobra 自身的
//   输出被静默，这里统一打印，保证用法错误绝不无声退出）
func runMain(args []string, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var re *runError
	if errors.As(err, &re) {
		return 1
	}
	fmt.Fprintf(stderr, "✖ 用法错误：%v\n", err)
	return 2
}

func isTTY(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
