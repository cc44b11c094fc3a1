package domain

import (
	"testing"
	"time"
)

func TestFinalize_SummaryFromFolders(t *testing.T) {
	rr := RunReport{
		StartedAt:  time.Date(2025, 6, 3, 14, 0, 0, 0, time.Local),
		FinishedAt: time.Date(2025, 6, 3, 14, 0, 1, 0, time.Local),
		Folders: []FolderResult{
			{
				Folder: "taxan_2025-06-03-15-00-00",
				Status: StatusProcessed,
				Files: []FileResult{
					{Src: "a.png", Dst: "42_courbe1.png", Status: FileStatusRenamed},
					{Src: "b.png", Dst: "42_courbe2.png", Status: FileStatusTargetExists},
					{Src: "42_courbe3.png", Dst: "42_courbe3.png", Status: FileStatusAlreadyNamed},
				},
			},
			{
				Folder:     "taxan_2025-06-03-14-14-57",
				Status:     StatusProcessed,
				Conflict:   true,
				Candidates: []string{"42", "43"},
				Files: []FileResult{
					{Src: "c.png", Dst: "42_courbe1.png", Status: FileStatusRenamed},
				},
			},
			{Folder: "taxan_2025-06-03-16-00-00", Status: StatusUnmatched, ErrorCode: ErrCodeNoMatch},
			{Folder: "taxan_2025-06-03-17-00-00", Status: StatusSkipped},
			{Folder: "taxan_2025-06-03-18-00-00", Status: StatusFailed, ErrorCode: ErrCodeIOFailed},
		},
	}
	rr.Finalize()

	s := rr.Summary
	if s.Folders != 5 {
		t.Fatalf("期望 folders=5，实际 %d", s.Folders)
	}
	if s.Renamed != 2 {
		t.Fatalf("期望 renamed=2，实际 %d", s.Renamed)
	}
	if s.Collisions != 1 {
		t.Fatalf("期望 collisions=1，实际 %d", s.Collisions)
	}
	if s.Unmatched != 1 || s.Skipped != 1 || s.Failed != 1 || s.Conflicts != 1 {
		t.Fatalf("summary 不符合预期：%+v", s)
	}
	if s.Planned != 0 {
		t.Fatalf("非 dry-run 不应有 planned：%+v", s)
	}
}

func TestFinalize_SortsByFolderName(t *testing.T) {
	rr := RunReport{
		Folders: []FolderResult{
			{Folder: "taxan_2025-06-03-16-00-00", Status: StatusUnmatched},
			{Folder: "taxan_2025-06-03-14-14-57", Status: StatusProcessed},
			{Folder: "taxan_2025-06-03-15-00-00", Status: StatusSkipped},
		},
	}
	rr.Finalize()

	want := []string{
		"taxan_2025-06-03-14-14-57",
		"taxan_2025-06-03-15-00-00",
		"taxan_2025-06-03-16-00-00",
	}
	for i, w := range want {
		if rr.Folders[i].Folder != w {
			t.Fatalf("位置 %d 期望 %q，实际 %q", i, w, rr.Folders[i].Folder)
		}
	}
}

func TestFinalize_TimesUTC(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	rr := RunReport{
		StartedAt:  time.Date(2025, 6, 3, 14, 0, 0, 0, loc),
		FinishedAt: time.Date(2025, 6, 3, 14, 0, 2, 0, loc),
	}
	rr.Finalize()
	if rr.StartedAt.Location() != time.UTC || rr.FinishedAt.Location() != time.UTC {
		t.Fatalf("Finalize 后时间应为 UTC：%v / %v", rr.StartedAt, rr.FinishedAt)
	}
}
