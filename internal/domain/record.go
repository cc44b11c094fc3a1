package domain

import "time"

// Record 是注册表中的一条访客记录（加载完成后不可变）。
//
// 不变量（由加载器保证）：
// - ID 非空（opaque token，不假设是数字）
// - ValidFrom/ValidTo 均为 UTC、秒级以上精度
//
// 注意：ValidFrom > ValidTo 属于上游数据缺陷，加载阶段不拒绝；
// 这种记录的区间判断天然不成立，永远不会匹配任何目录。
type Record struct {
	ID        string
	ValidFrom time.Time
	ValidTo   time.Time
}

// Contains 判断 t 是否落在 [ValidFrom, ValidTo] 闭区间内。
func (r Record) Contains(t time.Time) bool {
	return !t.Before(r.ValidFrom) && !t.After(r.ValidTo)
}
