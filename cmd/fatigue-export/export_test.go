package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fatiguelens/internal/models"
)

type fakeReader struct {
	records []models.AuditRecord
	err     error
}

func (f *fakeReader) ListAll(ctx context.Context) ([]models.AuditRecord, error) {
	return f.records, f.err
}

func (f *fakeReader) ListRecent(ctx context.Context, limit int) ([]models.AuditRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.records) {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func (f *fakeReader) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.records)), f.err
}

func sampleRecords() []models.AuditRecord {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.AuditRecord{
		{
			ID:              "11111111-1111-1111-1111-111111111111",
			Age:             25,
			SocialMediaTime: 2,
			ScreenTime:      9,
			Platform:        "Instagram",
			Prediction:      7.12,
			Category:        "High",
			CreatedAt:       created,
		},
		{
			ID:              "22222222-2222-2222-2222-222222222222",
			Age:             40,
			SocialMediaTime: 1.5,
			ScreenTime:      3,
			Platform:        "YouTube",
			Prediction:      2.4,
			Category:        "Low",
			CreatedAt:       created.Add(time.Minute),
		},
	}
}

func TestRunExportWritesCSV(t *testing.T) {
	reader := &fakeReader{records: sampleRecords()}
	var buf bytes.Buffer

	exported, err := runExport(context.Background(), reader, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if exported != 2 {
		t.Fatalf("exported = %d, want 2", exported)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d csv lines, want header + 2 rows: %q", len(lines), buf.String())
	}
	if lines[0] != "id,age,social_media_time,screen_time,platform,prediction,category,created_at" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Instagram") || !strings.Contains(lines[1], "7.12") {
		t.Errorf("first row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "2025-06-01T12:01:00Z") {
		t.Errorf("second row timestamp = %q", lines[2])
	}
}

func TestRunExportPropagatesReadError(t *testing.T) {
	reader := &fakeReader{err: errors.New("connection refused")}
	var buf bytes.Buffer

	if _, err := runExport(context.Background(), reader, &buf); err == nil {
		t.Fatal("read failure not propagated")
	}
}

func TestRunCheckPrintsCountAndRecentRows(t *testing.T) {
	reader := &fakeReader{records: sampleRecords()}
	var buf bytes.Buffer

	if err := runCheck(context.Background(), reader, &buf); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Total records in database: 2") {
		t.Errorf("count line missing: %q", out)
	}
	if !strings.Contains(out, "Latest 2 records:") {
		t.Errorf("recent header missing: %q", out)
	}
	if !strings.Contains(out, "platform=Instagram") || !strings.Contains(out, "prediction=7.12") {
		t.Errorf("recent row missing: %q", out)
	}
}

func TestRunCheckCapsSample(t *testing.T) {
	records := sampleRecords()
	for len(records) < checkSampleSize+3 {
		extra := records[0]
		extra.ID = "33333333-3333-3333-3333-333333333333"
		records = append(records, extra)
	}
	reader := &fakeReader{records: records}
	var buf bytes.Buffer

	if err := runCheck(context.Background(), reader, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Latest 5 records:") {
		t.Errorf("sample not capped at %d: %q", checkSampleSize, buf.String())
	}
}

func TestRunCheckPropagatesCountError(t *testing.T) {
	reader := &fakeReader{err: errors.New("connection refused")}
	var buf bytes.Buffer

	if err := runCheck(context.Background(), reader, &buf); err == nil {
		t.Fatal("count failure not propagated")
	}
}
