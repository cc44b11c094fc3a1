package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/florianehll/renamecode/internal/domain"
)

// emitSummary 输出最终汇总：交互终端渲染成表格，非 TTY 退化为单行文本。
// 两种形态承载同一组计数，stdout 上没有机器可读格式。
func emitSummary(w io.Writer, rr domain.RunReport, tty bool) {
	s := rr.Summary

	if !tty {
		fmt.Fprintf(w, "完成：folders=%d renamed=%d planned=%d unmatched=%d conflicts=%d skipped=%d collisions=%d failed=%d\n",
			s.Folders, s.Renamed, s.Planned, s.Unmatched, s.Conflicts, s.Skipped, s.Collisions, s.Failed)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	title := "RÉCAPITULATIF"
	if rr.DryRun {
		title += "（dry-run）"
	}
	t.SetTitle(title)
	t.AppendHeader(table.Row{"指标", "数量"})
	t.AppendRow(table.Row{"处理的 taxan_* 目录", s.Folders})
	if rr.DryRun {
		t.AppendRow(table.Row{"将被重命名的 .png 文件", s.Planned})
	} else {
		t.AppendRow(table.Row{"重命名的 .png 文件", s.Renamed})
	}
	t.AppendRow(table.Row{"没有匹配记录的目录", s.Unmatched})
	t.AppendRow(table.Row{"匹配到多条记录的目录", s.Conflicts})
	if s.Skipped > 0 {
		t.AppendRow(table.Row{"没有 .png 的目录", s.Skipped})
	}
	if s.Collisions > 0 {
		t.AppendRow(table.Row{"因目标占用跳过的文件", s.Collisions})
	}
	if s.Failed > 0 {
		t.AppendRow(table.Row{"处理失败的目录", s.Failed})
	}
	t.Render()
}

// emitWarnings 在汇总之后输出操作者需要人工跟进的提示（与原有行为保持一致）。
func emitWarnings(w io.Writer, rr domain.RunReport) {
	s := rr.Summary
	if rr.RecordsDropped > 0 {
		fmt.Fprintf(w, "⚠ 注册表有 %d 行因时间戳无法解析或 ID 为空被丢弃。\n", rr.RecordsDropped)
	}
	if s.Unmatched > 0 {
		fmt.Fprintf(w, "⚠ %d 个目录没有匹配到任何记录；请检查注册表的时间区间是否覆盖目录时间戳。\n", s.Unmatched)
	}
	if s.Conflicts > 0 {
		fmt.Fprintf(w, "⚠ %d 个目录匹配到多条记录；已按加载顺序取第一条，请核对区间是否重叠。\n", s.Conflicts)
	}
	if s.Collisions > 0 {
		fmt.Fprintf(w, "⚠ %d 个文件因目标名已被占用而跳过（绝不覆盖已有文件）。\n", s.Collisions)
	}
}
