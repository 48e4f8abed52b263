package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LinkIssue is one problematic link found by diagnose.
type LinkIssue struct {
	Note   string `json:"note"`
	Raw    string `json:"raw"`
	Target string `json:"target"`
	Anchor string `json:"anchor,omitempty"`
}

// DiagnoseResult groups the issues reported by diagnose.
type DiagnoseResult struct {
	Missing    []LinkIssue `json:"missing"`     // no candidate file found
	Escaped    []LinkIssue `json:"escaped"`     // reference resolves outside the vault
	BadAnchors []LinkIssue `json:"bad_anchors"` // title anchor matches no heading in the target note
}

// Diagnose reads the scan index and reports unresolved links, out-of-bounds
// links, and anchors that don't match any heading in their resolved note.
func Diagnose(vaultPath string) (*DiagnoseResult, error) {
	dbp := dbPath(vaultPath)
	if _, err := os.Stat(dbp); os.IsNotExist(err) {
		return nil, fmt.Errorf("index not found: run 'vaultlink scan' first")
	}

	db, err := openDBAt(dbp)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	result := &DiagnoseResult{}

	rows, err := db.Query(
		`SELECT n.path, l.raw, l.target, l.status
		 FROM links l JOIN notes n ON n.id = l.note_id
		 WHERE l.status IN (?, ?)
		 ORDER BY n.path, l.id`,
		statusMissing, statusEscaped,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var issue LinkIssue
		var status string
		if err := rows.Scan(&issue.Note, &issue.Raw, &issue.Target, &status); err != nil {
			return nil, err
		}
		if status == statusEscaped {
			result.Escaped = append(result.Escaped, issue)
		} else {
			result.Missing = append(result.Missing, issue)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	anchored, err := db.Query(
		`SELECT n.path, l.raw, l.target, l.anchor, l.resolved_path
		 FROM links l JOIN notes n ON n.id = l.note_id
		 WHERE l.status = ? AND l.anchor != '' AND l.resolved_path LIKE '%.md'
		 ORDER BY n.path, l.id`,
		statusResolved,
	)
	if err != nil {
		return nil, err
	}
	defer anchored.Close()

	headingCache := make(map[string][]string)
	for anchored.Next() {
		var issue LinkIssue
		var resolved string
		if err := anchored.Scan(&issue.Note, &issue.Raw, &issue.Target, &issue.Anchor, &resolved); err != nil {
			return nil, err
		}
		headings, ok := headingCache[resolved]
		if !ok {
			content, err := os.ReadFile(filepath.Join(vaultPath, filepath.FromSlash(resolved)))
			if err != nil {
				// Note vanished since scan; covered by a rescan, not here.
				headingCache[resolved] = nil
				continue
			}
			headings = ExtractHeadings(content)
			if headings == nil {
				headings = []string{}
			}
			headingCache[resolved] = headings
		}
		if headings == nil || hasHeading(headings, issue.Anchor) {
			continue
		}
		result.BadAnchors = append(result.BadAnchors, issue)
	}
	if err := anchored.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Summary renders a short human-readable report.
func (r *DiagnoseResult) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "missing: %d, escaped: %d, bad anchors: %d",
		len(r.Missing), len(r.Escaped), len(r.BadAnchors))
	return b.String()
}
