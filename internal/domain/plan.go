package domain

// RenameEntry 规划一次文件重命名（只描述 src/dst；真正执行由 run 层负责）。
// Src/Dst 均为目录内的文件名（不含路径）：重命名永远不会离开所在目录。
type RenameEntry struct {
	Src string
	Dst string
}

// FolderPlan 是对某个采集目录的最小执行计划。
//
// 不变量：Entries 的编号按 Src 字典序升序分配，从 1 开始；
// 同一文件集合下，计划在多次运行之间完全稳定。
type FolderPlan struct {
	Folder  string
	ID      string
	Entries []RenameEntry
}
