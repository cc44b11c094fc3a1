package registry

import (
	"time"

	"github.com/florianehll/renamecode/internal/domain"
)

// Match 返回有效区间包含 t 的全部记录，保持加载顺序。
//
// 多重匹配（区间重叠）的取舍不在这里做：上层按加载顺序取第一条并记账为 conflict。
// 这是对旧行为的兼容性选择，不是正确性保证——重叠区间本身是数据质量问题。
func Match(records []domain.Record, t time.Time) []domain.Record {
	matched := make([]domain.Record, 0, 1)
	for _, r := range records {
		if r.Contains(t) {
			matched = append(matched, r)
		}
	}
	return matched
}
