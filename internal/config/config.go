package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/florianehll/renamecode/internal/domain"
)

// FileName 是可选配置文件的固定名字（在工作目录下查找）。
const FileName = "renamecode.json"

const (
	// DefaultRegistry/DefaultRoot 沿用历史脚本的默认路径。
	DefaultRegistry = "data/visiteurs-aresia.xlsx"
	DefaultRoot     = "data/taxan"

	// DefaultSheet 为空表示工作簿的第一个工作表。
	DefaultSheet = ""

	// 默认列名即注册表导出的原始表头。
	DefaultIDColumn   = "ID"
	DefaultFromColumn = "Date d'enregistrement"
	DefaultToColumn   = "Dernière mise à jour"
)

// CLIArgs 只包含 CLI 暴露的三项入口（excel/taxan-dir/dry-run），并保留
// dry-run "是否显式指定"的信息，保证 --dry-run=false 能覆盖配置中的 dry_run=true。
type CLIArgs struct {
	Registry string
	Root     string

	DryRun    bool
	DryRunSet bool
}

// FileConfig 对应 renamecode.json 的解析结构。
type FileConfig struct {
	Excel      string `json:"excel"`
	TaxanDir   string `json:"taxan_dir"`
	Sheet      string `json:"sheet"`
	IDColumn   string `json:"id_column"`
	FromColumn string `json:"from_column"`
	ToColumn   string `json:"to_column"`
	DryRun     *bool  `json:"dry_run"`
}

// EffectiveConfig 是合并并规范化后的最终配置（实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	// Registry/Root 均为 clean + absolute。
	Registry string
	Root     string

	Sheet      string
	IDColumn   string
	FromColumn string
	ToColumn   string

	DryRun bool
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
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

// LoadEffective 读取 <cwd>/renamecode.json（可选），并与 CLI 参数合并为最终配置。
//
// 覆盖优先级（固定）：
// - excel / taxan-dir：CLI > config > 默认
// - dry-run：CLI --dry-run[=false] > config > 默认 false
// - sheet 与列名：仅由 config 控制（CLI 不暴露）
// 相对路径一律相对 cwd 解析。
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: domain.ErrCodeConfigInvalid, Path: cwd, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, FileName)
	fc, _, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: domain.ErrCodeConfigInvalid, Path: cfgPath, Err: err}
	}

	registry := DefaultRegistry
	if strings.TrimSpace(fc.Excel) != "" {
		registry = fc.Excel
	}
	if strings.TrimSpace(cli.Registry) != "" {
		registry = cli.Registry
	}

	root := DefaultRoot
	if strings.TrimSpace(fc.TaxanDir) != "" {
		root = fc.TaxanDir
	}
	if strings.TrimSpace(cli.Root) != "" {
		root = cli.Root
	}

	dryRun := false
	if fc.DryRun != nil {
		dryRun = *fc.DryRun
	}
	if cli.DryRunSet {
		dryRun = cli.DryRun
	}

	idCol := pick(fc.IDColumn, DefaultIDColumn)
	fromCol := pick(fc.FromColumn, DefaultFromColumn)
	toCol := pick(fc.ToColumn, DefaultToColumn)
	if idCol == fromCol || idCol == toCol || fromCol == toCol {
		return EffectiveConfig{}, &Error{
			Code: domain.ErrCodeConfigInvalid,
			Path: cfgPath,
			Err:  fmt.Errorf("列名必须互不相同：%q / %q / %q", idCol, fromCol, toCol),
		}
	}

	return EffectiveConfig{
		Registry:   absCleanFrom(cwdAbs, registry),
		Root:       absCleanFrom(cwdAbs, root),
		Sheet:      strings.TrimSpace(fc.Sheet),
		IDColumn:   idCol,
		FromColumn: fromCol,
		ToColumn:   toCol,
		DryRun:     dryRun,
	}, nil
}

func pick(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
