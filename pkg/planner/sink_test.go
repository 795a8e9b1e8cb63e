package planner

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSurveyJSONLExport(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLSampleWriter(&buf)

	s, err := testPlanner().SurveyWindowsTo("earth", "venus", epoch, 10, 3, w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kinds []string
	var last jsonlRecord
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var rec jsonlRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		kinds = append(kinds, rec.Kind)
		last = rec
	}
	if len(kinds) != 4 || kinds[0] != "sample" || kinds[3] != "summary" {
		t.Fatalf("record kinds = %v, want 3 samples then a summary", kinds)
	}
	if last.Summary == nil || last.Summary.MeanWaitDays != s.MeanWaitDays {
		t.Errorf("summary = %+v, want mean %v", last.Summary, s.MeanWaitDays)
	}
}

func TestJSONLSampleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.jsonl")
	w, err := CreateJSONLSampleFile(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := testPlanner().SurveyWindowsTo("earth", "mars", epoch, 30, 5, w); err != nil {
		t.Fatalf("survey: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n := bytes.Count(data, []byte("\n")); n != 6 {
		t.Errorf("lines = %d, want 6", n)
	}
}
