package planner

import (
	"fmt"
	"sort"

	"github.com/florianehll/renamecode/internal/domain"
)

// PlanFolder 基于匹配到的 ID 与目录内的 .png 文件名生成确定性的重命名计划
// （纯函数，不做任何读写）。
//
// - 编号按原始文件名字典序升序分配，从 1 开始；这里自行排序，计划与调用方的
//   传入顺序无关
// - 目标名固定为 <ID>_courbe<n>.png
// - Src == Dst 的条目照常生成：执行层把它记为"已是正确命名"的 no-op
func PlanFolder(folder, id string, files []string) domain.FolderPlan {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	entries := make([]domain.RenameEntry, 0, len(sorted))
	for i, src := range sorted {
		entries = append(entries, domain.RenameEntry{
			Src: src,
			Dst: fmt.Sprintf("%s_courbe%d.png", id, i+1),
		})
	}
	return domain.FolderPlan{Folder: folder, ID: id, Entries: entries}
}
