package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/florianehll/renamecode/internal/app/run"
	"github.com/florianehll/renamecode/internal/config"
)

// runError 标记 RunE 内部已经输出过的运行期错误。
// Execute 返回的其他错误（cobra 的 flag 解析、未知子命令、参数校验）
// 一律按用法错误处理，由 runMain 打印并以退出码 2 结束。
type runError struct{ err error }

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renamecode",
		Short: "按注册表重命名 taxan_* 采集目录里的 .png 曲线图",
		Long: `renamecode 扫描采集根目录下形如 taxan_YYYY-MM-DD-HH-MM-SS 的子目录，
用目录名里的时间戳在注册表（.xlsx 或 .csv）中查找有效区间包含它的访客记录，
然后把目录内的 .png 文件按字典序重命名为 <ID>_courbe1.png、<ID>_courbe2.png…

已有同名文件绝不覆盖；目录级/文件级的问题只记账不中断，最后统一汇总。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRunCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		excel    string
		taxanDir string
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "执行一次匹配与重命名",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(os.Stderr, "✖ 错误：读取当前目录失败：%v\n", err)
				return &runError{err}
			}

			eff, err := config.LoadEffective(cwd, config.CLIArgs{
				Registry:  excel,
				Root:      taxanDir,
				DryRun:    dryRun,
				DryRunSet: cmd.Flags().Changed("dry-run"),
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "✖ 错误：%v\n", err)
				return &runError{err}
			}

			// 进度与逐条记录无条件写 stderr：重定向/批量运行的日志里
			// 同样要留下哪个目录未匹配、哪些文件因目标占用被跳过。
			obs := newProgressUI(os.Stderr)

			rr, err := run.Execute(cmd.Context(), eff, obs)
			if err != nil {
				// 只有致命前置条件会走到这里（注册表/根目录缺失、schema 不符）。
				fmt.Fprintf(os.Stderr, "✖ 错误：%v\n", err)
				return &runError{err}
			}

			emitSummary(os.Stdout, rr, isTTY(os.Stdout))
			emitWarnings(os.Stderr, rr)
			// 未匹配/冲突属于数据质量问题，已汇总报告；运行本身算成功。
			return nil
		},
	}

	cmd.Flags().StringVarP(&excel, "excel", "e", "",
		"注册表文件路径，.xlsx 或 .csv（默认 "+config.DefaultRegistry+"）")
	cmd.Flags().StringVarP(&taxanDir, "taxan-dir", "t", "",
		"采集根目录路径（默认 "+config.DefaultRoot+"）")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"只输出计划与统计，不做任何重命名")
	return cmd
}
