package snapshot

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/alexanderramin/punch/internal/domain"
)

// Source reports where a decoded timesheet came from.
type Source string

const (
	SourceEmpty   Source = "empty"
	SourceCurrent Source = "current"
	SourceLegacy  Source = "legacy"
	SourceInvalid Source = "invalid"
)

// Result is the outcome of Decode. Problems lists every repair or rejection
// applied along the way; callers log them.
type Result struct {
	Timesheet domain.Timesheet
	Source    Source
	Problems  []string
}

// Migrated reports whether the timesheet was converted from the legacy schema.
func (r Result) Migrated() bool { return r.Source == SourceLegacy }

// legacyKeys mark the legacy document shape. Any one of them is enough:
// the legacy writer dropped empty entry lists.
var legacyKeys = []string{"entries", "activeSession", "activeBreak", "breakIndex"}

// docShape is the top-level view used to route a document before decoding it.
type docShape struct {
	version *int
	legacy  bool
}

func inspectDocument(data []byte) (docShape, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return docShape{}, err
	}
	var p docShape
	if raw, ok := top["version"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		var v int
		if err := json.Unmarshal(raw, &v); err != nil {
			return docShape{}, fmt.Errorf("version: %w", err)
		}
		p.version = &v
	}
	for _, k := range legacyKeys {
		if _, ok := top[k]; ok {
			p.legacy = true
			break
		}
	}
	return p, nil
}

// Decode parses a persisted document. It never fails: empty input yields an
// empty timesheet, malformed input yields an empty timesheet with a problem,
// and legacy documents are migrated. The result is always normalized against
// plan.
func Decode(data []byte, plan domain.BreakPlan) Result {
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{Source: SourceEmpty}
	}

	p, err := inspectDocument(data)
	if err != nil {
		return invalid(fmt.Sprintf("malformed document: %v", err))
	}

	var (
		ts       domain.Timesheet
		source   Source
		problems []string
	)
	switch {
	case (p.version == nil || *p.version == 1) && p.legacy:
		var st legacyState
		if err := json.Unmarshal(data, &st); err != nil {
			return invalid(fmt.Sprintf("malformed legacy document: %v", err))
		}
		ts, problems = migrateLegacy(st)
		source = SourceLegacy
	case p.version == nil || *p.version == CurrentVersion:
		var doc Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return invalid(fmt.Sprintf("malformed document: %v", err))
		}
		ts = doc.Timesheet()
		source = SourceCurrent
	default:
		return invalid(fmt.Sprintf("unsupported document version %d", *p.version))
	}

	ts, repairs := Normalize(ts, plan)
	return Result{Timesheet: ts, Source: source, Problems: append(problems, repairs...)}
}

func invalid(problem string) Result {
	return Result{Source: SourceInvalid, Problems: []string{problem}}
}

// Encode serializes a timesheet as a version 2 document.
func Encode(ts domain.Timesheet) ([]byte, error) {
	data, err := json.Marshal(FromTimesheet(ts))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Export is the envelope written by "punch export".
type Export struct {
	ExportedAt time.Time `json:"exportedAt"`
	State      Document  `json:"state"`
}

// EncodeExport renders the export envelope as indented JSON.
func EncodeExport(ts domain.Timesheet, exportedAt time.Time) ([]byte, error) {
	data, err := json.MarshalIndent(Export{ExportedAt: exportedAt, State: FromTimesheet(ts)}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ExportFileName is the default file name for an export taken at t.
func ExportFileName(t time.Time) string {
	return "time-tracker-export-" + t.Format("2006-01-02") + ".json"
}
