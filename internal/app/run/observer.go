package run

import (
	"time"

	"github.com/florianehll/renamecode/internal/config"
	"github.com/florianehll/renamecode/internal/domain"
)

// Observer 用于把"运行进度/阶段/目录结果"从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（展示策略完全由 CLI 决定）。
// - 运行是单线程顺序执行：事件按发生顺序串行到达。
type Observer interface {
	// OnStart 在 Execute 开始时调用（应尽量早，保证用户 1 秒内看到输出）。
	OnStart(eff config.EffectiveConfig)
	// OnPhaseDone 在阶段结束时调用（registry / scan），用于打印阶段统计与耗时。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnFolderDone 在某个采集目录处理完成时调用（用于每条结果的一行输出）。
	OnFolderDone(idx, total int, res domain.FolderResult, dur time.Duration)
}
