// Package ui decides how command output is presented: whether markup becomes
// escape codes, and how split results are serialized.
package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ismawno/convoy/pkg/errors"
)

// SegmentWriter serializes split results, one record per input line.
type SegmentWriter struct {
	output  io.Writer
	format  Format
	records int
	yaml    *yaml.Encoder
}

// NewSegmentWriter creates a writer for the given format.
func NewSegmentWriter(output io.Writer, format Format) (*SegmentWriter, error) {
	switch format {
	case FormatLines, FormatJSON, FormatYAML:
	default:
		return nil, errors.Newf(errors.ErrOutputFormat, "unknown format: %v", format)
	}

	w := &SegmentWriter{output: output, format: format}
	if format == FormatYAML {
		w.yaml = yaml.NewEncoder(output)
		w.yaml.SetIndent(2)
	}
	return w, nil
}

// Write emits the segments of one record.
func (w *SegmentWriter) Write(segments []string) error {
	var err error
	switch w.format {
	case FormatJSON:
		err = w.writeJSON(segments)
	case FormatYAML:
		err = w.yaml.Encode(segments)
	default:
		err = w.writeLines(segments)
	}
	w.records++

	if err != nil {
		return errors.Wrap(err, errors.ErrOutputWrite, "failed to write segments")
	}
	return nil
}

// Close flushes any buffered output.
func (w *SegmentWriter) Close() error {
	if w.yaml != nil {
		return w.yaml.Close()
	}
	return nil
}

func (w *SegmentWriter) writeJSON(segments []string) error {
	if segments == nil {
		segments = []string{}
	}
	data, err := json.Marshal(segments)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.output, string(data))
	return err
}

// writeLines puts each segment on its own line and separates records with a
// blank line.
func (w *SegmentWriter) writeLines(segments []string) error {
	if w.records > 0 {
		if _, err := fmt.Fprintln(w.output); err != nil {
			return err
		}
	}
	for _, s := range segments {
		if _, err := fmt.Fprintln(w.output, s); err != nil {
			return err
		}
	}
	return nil
}
