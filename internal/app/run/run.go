package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/florianehll/renamecode/internal/app/planner"
	"github.com/florianehll/renamecode/internal/capture"
	"github.com/florianehll/renamecode/internal/config"
	"github.com/florianehll/renamecode/internal/domain"
	"github.com/florianehll/renamecode/internal/infra/fsx"
	"github.com/florianehll/renamecode/internal/registry"
	"github.com/florianehll/renamecode/internal/scan"
)

// PreconditionError 表示致命前置条件失败（采集根目录缺失/不可读）。
// 注册表侧的致命错误由 registry.Error 自带 error_code，原样向上传递。
type PreconditionError struct {
	Code string
	Path string
	Err  error
}

func (e *PreconditionError) Error() string {
	switch e.Code {
	case domain.ErrCodeRootMissing:
		return fmt.Sprintf("%s：采集根目录 %q 不存在或不是目录", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%q：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：%q", e.Code, e.Path)
	}
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code（覆盖 run 与 registry 两类致命错误）。
func Code(err error) string {
	var pe *PreconditionError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return registry.Code(err)
}

// Execute 执行一次运行并返回对外稳定的 RunReport。
//
// 错误传播策略（与错误分级一一对应）：
// - 返回值 error 非 nil 仅限致命前置条件（注册表缺失/不可读/schema 不符、根目录缺失）
// - 目录级缺陷（名字非法、无匹配、多重匹配、空文件集、读目录失败）降级进 FolderResult
// - 文件级缺陷（目标占用、底层 rename 失败）降级进 FileResult
// 窄作用域的错误永远不会升级中断更宽的作用域。
func Execute(ctx context.Context, eff config.EffectiveConfig, obs Observer) (domain.RunReport, error) {
	_ = ctx // 运行是同步顺序执行，没有挂起点；保留参数只为调用方接口稳定。

	started := time.Now().UTC()
	if obs != nil {
		obs.OnStart(eff)
	}

	rr := domain.RunReport{
		Registry:  eff.Registry,
		Root:      eff.Root,
		DryRun:    eff.DryRun,
		StartedAt: started,
	}

	regStarted := time.Now()
	records, dropped, err := registry.Load(eff.Registry, eff.Sheet, registry.Columns{
		ID:   eff.IDColumn,
		From: eff.FromColumn,
		To:   eff.ToColumn,
	})
	if err != nil {
		return rr, err
	}
	rr.RecordsLoaded = len(records)
	rr.RecordsDropped = dropped
	if obs != nil {
		obs.OnPhaseDone("registry", map[string]any{
			"records": len(records),
			"dropped": dropped,
		}, time.Since(regStarted))
	}

	if fi, err := os.Stat(eff.Root); err != nil {
		if os.IsNotExist(err) {
			return rr, &PreconditionError{Code: domain.ErrCodeRootMissing, Path: eff.Root, Err: err}
		}
		return rr, &PreconditionError{Code: domain.ErrCodeIOFailed, Path: eff.Root, Err: err}
	} else if !fi.IsDir() {
		return rr, &PreconditionError{Code: domain.ErrCodeRootMissing, Path: eff.Root}
	}

	scanStarted := time.Now()
	dirs, err := scan.CaptureDirs(eff.Root)
	if err != nil {
		return rr, &PreconditionError{Code: domain.ErrCodeIOFailed, Path: eff.Root, Err: err}
	}
	if obs != nil {
		obs.OnPhaseDone("scan", map[string]any{"folders": len(dirs)}, time.Since(scanStarted))
	}

	rr.Folders = make([]domain.FolderResult, 0, len(dirs))
	for i, name := range dirs {
		oneStarted := time.Now()
		res := processFolder(eff, records, name)
		rr.Folders = append(rr.Folders, res)
		if obs != nil {
			obs.OnFolderDone(i+1, len(dirs), res, time.Since(oneStarted))
		}
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	return rr, nil
}

// processFolder 处理单个采集目录；所有缺陷都降级为该目录的结果，不向外传播。
func processFolder(eff config.EffectiveConfig, records []domain.Record, name string) domain.FolderResult {
	res := domain.FolderResult{Folder: name}

	ts, err := capture.ParseFolderName(name)
	if err != nil {
		res.Status = domain.StatusUnmatched
		res.ErrorCode = domain.ErrCodeNotCaptureFolder
		res.ErrorMsg = err.Error()
		return res
	}
	res.Timestamp = ts

	matches := registry.Match(records, ts)
	if len(matches) == 0 {
		res.Status = domain.StatusUnmatched
		res.ErrorCode = domain.ErrCodeNoMatch
		res.ErrorMsg = fmt.Sprintf("没有任何记录的有效区间包含 %s", ts.Format("2006-01-02 15:04:05"))
		return res
	}
	if len(matches) > 1 {
		// 区间重叠：按加载顺序取第一条，记账为 conflict，继续处理。
		res.Conflict = true
		res.Candidates = make([]string, 0, len(matches))
		for _, m := range matches {
			res.Candidates = append(res.Candidates, m.ID)
		}
	}
	res.ID = matches[0].ID

	dir := filepath.Join(eff.Root, name)
	files, err := scan.PNGs(dir)
	if err != nil {
		res.Status = domain.StatusFailed
		res.ErrorCode = domain.ErrCodeIOFailed
		res.ErrorMsg = fmt.Sprintf("读取目录失败：%v", err)
		return res
	}
	if len(files) == 0 {
		res.Status = domain.StatusSkipped
		res.ErrorMsg = "目录内没有 .png 文件"
		return res
	}

	plan := planner.PlanFolder(name, res.ID, files)
	res.Files = make([]domain.FileResult, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		res.Files = append(res.Files, execEntry(dir, e, eff.DryRun))
	}
	res.Status = domain.StatusProcessed
	return res
}

// execEntry 执行单条重命名；任何文件级失败都只影响这一条。
func execEntry(dir string, e domain.RenameEntry, dryRun bool) domain.FileResult {
	fr := domain.FileResult{Src: e.Src, Dst: e.Dst}

	if e.Src == e.Dst {
		fr.Status = domain.FileStatusAlreadyNamed
		return fr
	}

	if dryRun {
		// dry-run 也做冲突判定，让计划输出尽量贴近真实执行。
		if _, err := os.Lstat(filepath.Join(dir, e.Dst)); err == nil {
			fr.Status = domain.FileStatusTargetExists
			return fr
		}
		fr.Status = domain.FileStatusPlanned
		return fr
	}

	err := fsx.RenameNoOverwrite(dir, e.Src, e.Dst)
	switch {
	case err == nil:
		fr.Status = domain.FileStatusRenamed
	case errors.Is(err, fsx.ErrSameName):
		fr.Status = domain.FileStatusAlreadyNamed
	case fsx.IsTargetExists(err):
		fr.Status = domain.FileStatusTargetExists
	default:
		fr.Status = domain.FileStatusFailed
	}
	return fr
}
