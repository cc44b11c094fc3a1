package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/florianehll/renamecode/internal/domain"
)

var testCols = Columns{ID: "ID", From: "Date d'enregistrement", To: "Dernière mise à jour"}

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "visiteurs.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("写入 CSV 失败：%v", err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeCSV(t,
		`ID,Date d'enregistrement,Dernière mise à jour`,
		`42,2025-06-03T14:00:00Z,2025-06-03T15:00:00Z`,
		`  7 ,2025-05-28T14:14:21.712Z,2025-05-29T00:00:00Z`,
	)

	records, dropped, err := Load(path, "", testCols)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if dropped != 0 {
		t.Fatalf("期望 dropped=0，实际 %d", dropped)
	}
	if len(records) != 2 {
		t.Fatalf("期望 2 条记录，实际 %d", len(records))
	}
	if records[0].ID != "42" {
		t.Fatalf("期望首条 ID=42，实际 %q", records[0].ID)
	}
	// ID 统一规范化为去掉首尾空白的字符串。
	if records[1].ID != "7" {
		t.Fatalf("期望 ID 规范化为 \"7\"，实际 %q", records[1].ID)
	}
	wantFrom := time.Date(2025, 5, 28, 14, 14, 21, 712000000, time.UTC)
	if !records[1].ValidFrom.Equal(wantFrom) {
		t.Fatalf("期望带毫秒格式解析为 %v，实际 %v", wantFrom, records[1].ValidFrom)
	}
}

func TestLoad_DropsDefectiveRows(t *testing.T) {
	path := writeCSV(t,
		`ID,Date d'enregistrement,Dernière mise à jour`,
		`42,2025-06-03T14:00:00Z,2025-06-03T15:00:00Z`,
		`43,03/06/2025 14:00,2025-06-03T15:00:00Z`, // 两种格式之外：丢弃
		`44,2025-06-03T14:00:00Z,`,                 // 区间终点为空：丢弃
		`,2025-06-03T14:00:00Z,2025-06-03T15:00:00Z`, // ID 为空：丢弃
	)

	records, dropped, err := Load(path, "", testCols)
	if err != nil {
		t.Fatalf("行级缺陷不应中断加载：%v", err)
	}
	if len(records) != 1 || records[0].ID != "42" {
		t.Fatalf("期望只留下 42，实际 %+v", records)
	}
	if dropped != 3 {
		t.Fatalf("期望 dropped=3，实际 %d", dropped)
	}
}

func TestLoad_SchemaMismatchNamesMissingColumns(t *testing.T) {
	path := writeCSV(t,
		`ID,Début,Fin`,
		`42,2025-06-03T14:00:00Z,2025-06-03T15:00:00Z`,
	)

	_, _, err := Load(path, "", testCols)
	if err == nil {
		t.Fatalf("期望 schema 错误，实际成功")
	}
	if Code(err) != domain.ErrCodeSchemaMismatch {
		t.Fatalf("期望 error_code=%s，实际 %q（%v）", domain.ErrCodeSchemaMismatch, Code(err), err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "Date d'enregistrement") || !strings.Contains(msg, "Dernière mise à jour") {
		t.Fatalf("错误信息应点名缺失列：%s", msg)
	}
	if !strings.Contains(msg, "Début") {
		t.Fatalf("错误信息应列出可用列：%s", msg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "absent.xlsx"), "", testCols)
	if err == nil {
		t.Fatalf("期望 missing 错误，实际成功")
	}
	if Code(err) != domain.ErrCodeRegistryMissing {
		t.Fatalf("期望 error_code=%s，实际 %q", domain.ErrCodeRegistryMissing, Code(err))
	}
}

func writeXLSX(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("重命名工作表失败：%v", err)
		}
	} else {
		sheet = "Sheet1"
	}
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("计算单元格地址失败：%v", err)
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			t.Fatalf("写入行失败：%v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "visiteurs.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("保存 xlsx 失败：%v", err)
	}
	return path
}

func TestLoad_XLSX_FirstSheetByDefault(t *testing.T) {
	path := writeXLSX(t, "", [][]any{
		{"ID", "Date d'enregistrement", "Dernière mise à jour"},
		{"42", "2025-06-03T14:00:00Z", "2025-06-03T15:00:00Z"},
	})

	records, dropped, err := Load(path, "", testCols)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if dropped != 0 || len(records) != 1 || records[0].ID != "42" {
		t.Fatalf("加载结果不符合预期：records=%+v dropped=%d", records, dropped)
	}
	want := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	if !records[0].ValidFrom.Equal(want) {
		t.Fatalf("期望 ValidFrom=%v，实际 %v", want, records[0].ValidFrom)
	}
}

func TestLoad_XLSX_NamedSheet(t *testing.T) {
	path := writeXLSX(t, "Visiteurs ARESIA", [][]any{
		{"ID", "Date d'enregistrement", "Dernière mise à jour"},
		{"42", "2025-06-03T14:00:00Z", "2025-06-03T15:00:00Z"},
		{"43", "pas une date", "2025-06-03T15:00:00Z"},
	})

	records, dropped, err := Load(path, "Visiteurs ARESIA", testCols)
	if err != nil {
		t.Fatalf("不期望错误：%v", err)
	}
	if len(records) != 1 || dropped != 1 {
		t.Fatalf("期望 1 条记录 + 1 条丢弃，实际 records=%d dropped=%d", len(records), dropped)
	}
}

func TestLoad_XLSX_MissingSheet(t *testing.T) {
	path := writeXLSX(t, "", [][]any{
		{"ID", "Date d'enregistrement", "Dernière mise à jour"},
	})

	_, _, err := Load(path, "Inexistante", testCols)
	if err == nil {
		t.Fatalf("期望工作表缺失报错，实际成功")
	}
	if Code(err) != domain.ErrCodeRegistryInvalid {
		t.Fatalf("期望 error_code=%s，实际 %q（%v）", domain.ErrCodeRegistryInvalid, Code(err), err)
	}
}

func TestLoad_GarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visiteurs.xlsx")
	if err := os.WriteFile(path, []byte("pas un classeur"), 0o644); err != nil {
		t.Fatalf("写入文件失败：%v", err)
	}

	_, _, err := Load(path, "", testCols)
	if err == nil {
		t.Fatalf("期望解析失败，实际成功")
	}
	if Code(err) != domain.ErrCodeRegistryInvalid {
		t.Fatalf("期望 error_code=%s，实际 %q", domain.ErrCodeRegistryInvalid, Code(err))
	}
}
