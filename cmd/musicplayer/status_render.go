package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/deusvagus/musicplayer/internal/api"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusStyles = [...]struct{ tag, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

func (k statusKind) tag() string {
	if k < 0 || int(k) >= len(statusStyles) {
		return statusStyles[statusInfo].tag
	}
	return statusStyles[k].tag
}

func (k statusKind) color() string {
	if k < 0 || int(k) >= len(statusStyles) {
		return ""
	}
	return statusStyles[k].color
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + kind.tag() + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize && kind.color() != "" {
		return kind.color() + line + ansiReset
	}
	return line
}

// renderSectionHeader returns a title line and a rule of the same rune
// width, so Chinese titles get a matching underline.
func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len([]rune(line)))
	if colorize {
		return []string{ansiBlue + line + ansiReset, ansiBlue + rule + ansiReset}
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// loadReportLines renders a catalog load summary. Any tolerated failure or
// id collision downgrades the catalog line to WARN.
func loadReportLines(summary api.LoadSummary, colorize bool) []string {
	idKind := fileStatusKind(summary.IDFiles.Loaded, summary.IDFiles.Attempted)
	detailKind := fileStatusKind(summary.DetailFiles.Loaded, summary.DetailFiles.Attempted)

	overall := statusOK
	if len(summary.Failures) > 0 || summary.Collisions > 0 {
		overall = statusWarn
	}

	lines := []string{
		renderStatusLine("Catalog", overall,
			fmt.Sprintf("%d albums, %d tracks, %d fields", summary.Albums, summary.Tracks, summary.Fields), colorize),
		renderStatusLine("ID files", idKind,
			fmt.Sprintf("%d/%d loaded, %d lines skipped", summary.IDFiles.Loaded, summary.IDFiles.Attempted, summary.SkippedIDLines), colorize),
		renderStatusLine("Detail files", detailKind,
			fmt.Sprintf("%d/%d loaded", summary.DetailFiles.Loaded, summary.DetailFiles.Attempted), colorize),
	}
	if summary.Collisions > 0 {
		lines = append(lines, renderStatusLine("ID collisions", statusWarn,
			fmt.Sprintf("titles with conflicting ids: %d", summary.Collisions), colorize))
	}
	if summary.PersonnelAvailable {
		lines = append(lines, renderStatusLine("Personnel", statusOK, "", colorize))
	} else {
		lines = append(lines, renderStatusLine("Personnel", statusWarn, "unavailable", colorize))
	}
	for _, failure := range summary.Failures {
		lines = append(lines, renderStatusLine(failureLabel(failure.Kind), statusWarn, failure.URI+": "+failure.Err, colorize))
	}
	return lines
}

func fileStatusKind(loaded, attempted int) statusKind {
	switch {
	case attempted == 0:
		return statusInfo
	case loaded == attempted:
		return statusOK
	case loaded == 0:
		return statusError
	default:
		return statusWarn
	}
}

func failureLabel(kind string) string {
	switch kind {
	case "id_file":
		return "ID file"
	case "detail_file":
		return "Detail file"
	default:
		return kind
	}
}
