package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/florianehll/renamecode/internal/app/run"
	"github.com/florianehll/renamecode/internal/config"
	"github.com/florianehll/renamecode/internal/domain"
)

var _ run.Observer = (*progressUI)(nil)

// progressUI 把运行过程逐条写到 stderr（交互与重定向场景都启用，
// 批量运行的日志里要留得下哪个目录未匹配、哪些文件被跳过）。
//
// 设计目标：
// - 所有过程信息写 stderr，最终汇总另行输出到 stdout
// - 事件驱动：run 层只发事件，CLI 决定如何展示
// - 运行是单线程顺序执行，事件串行到达，无需加锁
type progressUI struct {
	w io.Writer
}

func newProgressUI(w io.Writer) *progressUI {
	return &progressUI{w: w}
}

func (p *progressUI) OnStart(eff config.EffectiveConfig) {
	mode := "rename"
	modeHint := ""
	if eff.DryRun {
		mode = "dry-run"
		modeHint = "（不做任何重命名）"
	}

	fmt.Fprintf(p.w, "[%s] renamecode run (%s)\n", time.Now().Format("15:04:05"), mode)
	fmt.Fprintln(p.w, "配置（生效）:")
	fmt.Fprintf(p.w, "  excel: %s\n", eff.Registry)
	fmt.Fprintf(p.w, "  taxan-dir: %s\n", eff.Root)
	if eff.Sheet != "" {
		fmt.Fprintf(p.w, "  sheet: %s\n", eff.Sheet)
	}
	fmt.Fprintf(p.w, "  colonnes: %s | %s | %s\n", eff.IDColumn, eff.FromColumn, eff.ToColumn)
	fmt.Fprintf(p.w, "  mode: %s%s\n", mode, modeHint)
	fmt.Fprintln(p.w)
}

func (p *progressUI) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	switch name {
	case "registry":
		dropped := intField(fields, "dropped")
		suffix := ""
		if dropped > 0 {
			suffix = fmt.Sprintf("（丢弃 %d 行缺陷数据）", dropped)
		}
		fmt.Fprintf(p.w, "注册表: records=%d%s (%s)\n",
			intField(fields, "records"), suffix, formatShortDuration(dur))
	case "scan":
		fmt.Fprintf(p.w, "扫描: folders=%d (%s)\n",
			intField(fields, "folders"), formatShortDuration(dur))
	}
}

func (p *progressUI) OnFolderDone(idx, total int, res domain.FolderResult, dur time.Duration) {
	prefix := fmt.Sprintf("[%d/%d]", idx, total)

	switch res.Status {
	case domain.StatusProcessed:
		renamed, planned, already, collisions, failed := tallyFiles(res.Files)
		mark := "✓"
		if failed > 0 || collisions > 0 {
			mark = "!"
		}
		fmt.Fprintf(p.w, "%s %s %s → ID=%s renamed=%d", prefix, mark, res.Folder, res.ID, renamed)
		if planned > 0 {
			fmt.Fprintf(p.w, " planned=%d", planned)
		}
		if already > 0 {
			fmt.Fprintf(p.w, " already=%d", already)
		}
		if collisions > 0 {
			fmt.Fprintf(p.w, " collisions=%d", collisions)
		}
		if failed > 0 {
			fmt.Fprintf(p.w, " failed=%d", failed)
		}
		fmt.Fprintf(p.w, " (%s)\n", formatShortDuration(dur))
		for _, f := range res.Files {
			switch f.Status {
			case domain.FileStatusTargetExists:
				fmt.Fprintf(p.w, "      占用：%s → %s 已存在，跳过\n", f.Src, f.Dst)
			case domain.FileStatusFailed:
				fmt.Fprintf(p.w, "      失败：%s → %s\n", f.Src, f.Dst)
			}
		}
	case domain.StatusSkipped:
		fmt.Fprintf(p.w, "%s - %s ID=%s（没有 .png，跳过）\n", prefix, res.Folder, res.ID)
	case domain.StatusUnmatched:
		fmt.Fprintf(p.w, "%s ✗ %s unmatched：%s\n", prefix, res.Folder, res.ErrorMsg)
	default:
		fmt.Fprintf(p.w, "%s ✗ %s %s：%s\n", prefix, res.Folder, res.ErrorCode, res.ErrorMsg)
	}

	if res.Conflict {
		fmt.Fprintf(p.w, "      冲突：候选 ID [%s]，已按加载顺序取第一条\n", strings.Join(res.Candidates, " "))
	}
}

func tallyFiles(files []domain.FileResult) (renamed, planned, already, collisions, failed int) {
	for _, f := range files {
		switch f.Status {
		case domain.FileStatusRenamed:
			renamed++
		case domain.FileStatusPlanned:
			planned++
		case domain.FileStatusAlreadyNamed:
			already++
		case domain.FileStatusTargetExists:
			collisions++
		case domain.FileStatusFailed:
			failed++
		}
	}
	return
}

func intField(fields map[string]any, key string) int {
	if v, ok := fields[key].(int); ok {
		return v
	}
	return 0
}

func formatShortDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
}
