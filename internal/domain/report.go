package domain

import (
	"sort"
	"time"
)

const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
	StatusUnmatched = "unmatched"
	StatusFailed    = "failed"
)

const (
	FileStatusRenamed      = "renamed"
	FileStatusPlanned      = "planned"
	FileStatusAlreadyNamed = "already_named"
	FileStatusTargetExists = "target_exists"
	FileStatusFailed       = "failed"
)

const (
	ErrCodeConfigInvalid    = "config_invalid"
	ErrCodeRegistryMissing  = "registry_missing"
	ErrCodeRegistryInvalid  = "registry_invalid"
	ErrCodeSchemaMismatch   = "schema_mismatch"
	ErrCodeRootMissing      = "root_missing"
	ErrCodeNotCaptureFolder = "not_capture_folder"
	ErrCodeNoMatch          = "no_match"
	ErrCodeIOFailed         = "io_failed"
)

// RunReport 是一次运行的对外稳定结果。
// 输出只有人类可读文本（由 CLI 渲染），本结构不承担序列化契约。
type RunReport struct {
	Registry string
	Root     string
	DryRun   bool

	StartedAt  time.Time
	FinishedAt time.Time

	// RecordsLoaded/RecordsDropped 来自注册表加载阶段：
	// dropped 是因行级数据缺陷（时间戳无法解析、ID 为空）被丢弃的行数。
	RecordsLoaded  int
	RecordsDropped int

	Summary ReportSummary
	Folders []FolderResult
}

type ReportSummary struct {
	Folders    int // 进入处理的 taxan_* 目录总数
	Renamed    int // 成功重命名的 .png 文件数（dry-run 时恒为 0）
	Planned    int // dry-run 下会被重命名的文件数
	Unmatched  int // 目录名非法或没有任何记录匹配的目录数
	Conflicts  int // 匹配到多条记录的目录数
	Skipped    int // 没有 .png 文件的目录数
	Collisions int // 因目标名已被占用而跳过的文件数
	Failed     int // 读目录/重命名出错的目录数（文件级失败不计入）
}

type FolderResult struct {
	Folder    string
	Timestamp time.Time
	ID        string

	Status    string
	ErrorCode string
	ErrorMsg  string

	// Conflict 表示区间重叠导致的多重匹配；Candidates 按加载顺序保存全部候选 ID，
	// 实际采用的是第一条（ID 字段）。这是兼容性取舍，不是正确性保证。
	Conflict   bool
	Candidates []string

	Files []FileResult
}

type FileResult struct {
	Src    string
	Dst    string
	Status string
}

// Finalize 做三件事：
// 1) 时间统一为 UTC
// 2) Folders 稳定排序：按目录名字典序（与按时间升序一致，定宽日期格式保证）
// 3) Summary 由 Folders 重新计算得出（不依赖运行中的临时累加）
func (r *RunReport) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	sort.SliceStable(r.Folders, func(i, j int) bool {
		return r.Folders[i].Folder < r.Folders[j].Folder
	})

	var s ReportSummary
	s.Folders = len(r.Folders)
	for _, f := range r.Folders {
		switch f.Status {
		case StatusUnmatched:
			s.Unmatched++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
		if f.Conflict {
			s.Conflicts++
		}
		for _, fl := range f.Files {
			switch fl.Status {
			case FileStatusRenamed:
				s.Renamed++
			case FileStatusPlanned:
				s.Planned++
			case FileStatusTargetExists:
				s.Collisions++
			}
		}
	}
	r.Summary = s
}
