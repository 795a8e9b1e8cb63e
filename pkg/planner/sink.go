package planner

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/oxygene76/cycler-planner/internal/types"
)

// SampleSink receives survey samples as they are computed
type SampleSink interface {
	OnStart(samples int) error
	OnSample(s types.WindowSample) error
	OnEnd(summary types.WindowSurvey) error
}

// JSONLSampleWriter writes one JSON object per sample, then the summary
type JSONLSampleWriter struct {
	bw     *bufio.Writer
	closer io.Closer
}

// jsonlRecord tags each line so samples and the summary can be told apart
type jsonlRecord struct {
	Kind    string              `json:"kind"`
	Sample  *types.WindowSample `json:"sample,omitempty"`
	Summary *types.WindowSurvey `json:"summary,omitempty"`
}

// NewJSONLSampleWriter writes to w. The caller owns w.
func NewJSONLSampleWriter(w io.Writer) *JSONLSampleWriter {
	return &JSONLSampleWriter{bw: bufio.NewWriter(w)}
}

// CreateJSONLSampleFile creates (or truncates) path
func CreateJSONLSampleFile(path string) (*JSONLSampleWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &JSONLSampleWriter{bw: bufio.NewWriter(f), closer: f}, nil
}

func (w *JSONLSampleWriter) OnStart(samples int) error { return nil }

func (w *JSONLSampleWriter) OnSample(s types.WindowSample) error {
	return w.write(jsonlRecord{Kind: "sample", Sample: &s})
}

func (w *JSONLSampleWriter) OnEnd(summary types.WindowSurvey) error {
	if err := w.write(jsonlRecord{Kind: "summary", Summary: &summary}); err != nil {
		return err
	}
	return w.bw.Flush()
}

// Close flushes and closes the underlying file, if any.
func (w *JSONLSampleWriter) Close() error {
	if w.bw != nil {
		_ = w.bw.Flush()
	}
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}

func (w *JSONLSampleWriter) write(rec jsonlRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.bw.Write(b); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}
