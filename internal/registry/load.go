package registry

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/florianehll/renamecode/internal/domain"
)

// timeLayouts 是区间单元格接受的两种时间戳格式（与注册表导出工具保持一致）。
// 两种格式之外的值一律视为行级数据缺陷：该行被丢弃，加载继续。
var timeLayouts = []string{
	"2006-01-02T15:04:05.999999Z",
	"2006-01-02T15:04:05Z",
}

// Error 是注册表加载阶段的结构化错误（带 error_code，全部属于致命前置条件）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case domain.ErrCodeRegistryMissing:
		return fmt.Sprintf("%s：注册表文件 %q 不存在", e.Code, e.Path)
	case domain.ErrCodeSchemaMismatch:
		if e.Err != nil {
			return fmt.Sprintf("%s：注册表 %q 缺少必需列：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：注册表 %q 缺少必需列", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：注册表 %q 无法读取：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：注册表 %q 无法读取", e.Code, e.Path)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Columns 指定注册表中三列的列名（加载前一次性解析为下标，匹配热路径不再做列名查找）。
type Columns struct {
	ID   string
	From string
	To   string
}

// Load 读取注册表并解析为强类型记录列表（保持文件内的行序，供"取第一条"策略使用）。
//
// - 按扩展名分派：.csv 走 encoding/csv，其余交给 excelize（.xlsx）
// - schema 校验是 eager 的：三列缺任意一列都直接致命，错误信息点名缺失列
// - 行级缺陷（时间戳两种格式都解析不了、ID 为空）只丢弃该行，通过 dropped 计数反馈
func Load(path, sheet string, cols Columns) (records []domain.Record, dropped int, err error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, 0, &Error{Code: domain.ErrCodeRegistryMissing, Path: path, Err: err}
		}
		return nil, 0, &Error{Code: domain.ErrCodeRegistryInvalid, Path: path, Err: err}
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	default:
		rows, err = readWorkbook(path, sheet)
	}
	if err != nil {
		var le *Error
		if errors.As(err, &le) {
			return nil, 0, err
		}
		return nil, 0, &Error{Code: domain.ErrCodeRegistryInvalid, Path: path, Err: err}
	}

	return fromRows(path, rows, cols)
}

// readWorkbook 用 excelize 读出指定工作表的全部行。
// sheet 为空表示工作簿的第一个工作表。
func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	name := strings.TrimSpace(sheet)
	if name == "" {
		name = f.GetSheetName(0)
	}
	return f.GetRows(name)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// 行内列数交给 schema 下标判断（短行按空单元格处理）。
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// fromRows 做 schema 校验并把数据行转换为记录。
func fromRows(path string, rows [][]string, cols Columns) ([]domain.Record, int, error) {
	if len(rows) == 0 {
		return nil, 0, &Error{
			Code: domain.ErrCodeSchemaMismatch,
			Path: path,
			Err:  fmt.Errorf("空表（连标题行都没有）"),
		}
	}

	header := rows[0]
	idIdx := columnIndex(header, cols.ID)
	fromIdx := columnIndex(header, cols.From)
	toIdx := columnIndex(header, cols.To)

	var missing []string
	for _, c := range []struct {
		name string
		idx  int
	}{{cols.ID, idIdx}, {cols.From, fromIdx}, {cols.To, toIdx}} {
		if c.idx < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return nil, 0, &Error{
			Code: domain.ErrCodeSchemaMismatch,
			Path: path,
			Err:  fmt.Errorf("%v（可用列：%v）", missing, trimmedHeader(header)),
		}
	}

	records := make([]domain.Record, 0, len(rows)-1)
	dropped := 0
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, idIdx))
		from, okFrom := parseCell(cell(row, fromIdx))
		to, okTo := parseCell(cell(row, toIdx))

		if id == "" || !okFrom || !okTo {
			// 行级数据缺陷：丢弃该行，不中断整体加载（best-effort）。
			dropped++
			continue
		}
		records = append(records, domain.Record{ID: id, ValidFrom: from, ValidTo: to})
	}
	return records, dropped, nil
}

// columnIndex 在标题行中查找列名（两侧做 TrimSpace 后精确匹配）。
func columnIndex(header []string, name string) int {
	want := strings.TrimSpace(name)
	for i, h := range header {
		if strings.TrimSpace(h) == want {
			return i
		}
	}
	return -1
}

func trimmedHeader(header []string) []string {
	out := make([]string, 0, len(header))
	for _, h := range header {
		out = append(out, strings.TrimSpace(h))
	}
	return out
}

// cell 取第 idx 列的原始值；短行按空单元格处理（excelize 会裁掉行尾空单元格）。
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseCell(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
