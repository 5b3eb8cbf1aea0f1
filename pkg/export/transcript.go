package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// TranscriptRow is one course line in a transcript export.
type TranscriptRow struct {
	Code    string
	Name    string
	Credits string
	Grade   string
}

// Transcript carries everything the CSV rendering needs.
type Transcript struct {
	StudentCode string
	StudentName string
	Rows        []TranscriptRow
	GPA         string
}

// TranscriptCSV renders transcripts into CSV bytes.
type TranscriptCSV struct{}

// NewTranscriptCSV builds a transcript CSV exporter.
func NewTranscriptCSV() *TranscriptCSV {
	return &TranscriptCSV{}
}

// Render produces the CSV document. The last record carries the GPA so the
// file stands alone without the portal.
func (e *TranscriptCSV) Render(t Transcript) ([]byte, error) {
	if t.StudentCode == "" {
		return nil, fmt.Errorf("transcript requires a student code")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"Student", t.StudentCode, t.StudentName}); err != nil {
		return nil, fmt.Errorf("write transcript header: %w", err)
	}
	if err := writer.Write([]string{"Course Code", "Course Name", "Credits", "Grade"}); err != nil {
		return nil, fmt.Errorf("write column headers: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write([]string{row.Code, row.Name, row.Credits, row.Grade}); err != nil {
			return nil, fmt.Errorf("write course row: %w", err)
		}
	}
	if err := writer.Write([]string{"GPA", t.GPA, "", ""}); err != nil {
		return nil, fmt.Errorf("write gpa row: %w", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush transcript: %w", err)
	}
	return buf.Bytes(), nil
}
