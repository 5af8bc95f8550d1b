// Package version - сведения о сборке. Значения подставляются через ldflags:
//
//	go build -ldflags "-X accessible-tiles/internal/version.BuildDate=2026-03-01 -X accessible-tiles/internal/version.BuildCommit=abc123"
//
// Без ldflags коммит берется из VCS-меток Go toolchain, если они есть.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// buildEpoch - день нулевой сборки.
var buildEpoch = time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки для /version.
type VersionInfo struct {
	BuildID    int    `json:"build_id"`
	BuildDate  string `json:"build_date,omitempty"`
	Commit     string `json:"commit,omitempty"`
	Branch     string `json:"branch,omitempty"`
	CI         string `json:"ci,omitempty"`
	Dirty      bool   `json:"dirty,omitempty"`
	GoVersion  string `json:"go_version,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID - номер сборки: дни от buildEpoch до BuildDate.
func CalculateBuildID(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", date)
	}
	// Обе даты в UTC, часы делятся на 24 без сюрпризов с DST
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info можно вызывать в любой момент.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}
	fillFromBuildInfo(&info)

	id, err := CalculateBuildID(BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

func fillFromBuildInfo(info *VersionInfo) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
}

// String - строка для лога при старте.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("accessible-tiles build unknown (%s) commit[%s]", info.Error, coalesce(info.Commit, "unknown"))
	}
	return fmt.Sprintf(
		"accessible-tiles build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID,
		info.BuildDate,
		coalesce(info.Commit, "unknown"),
		coalesce(info.Branch, "unknown"),
		coalesce(info.CI, "local"),
	)
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
