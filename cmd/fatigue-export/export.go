package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"fatiguelens/internal/models"
)

// predictionReader is the slice of the repository the export tool needs.
type predictionReader interface {
	ListAll(ctx context.Context) ([]models.AuditRecord, error)
	ListRecent(ctx context.Context, limit int) ([]models.AuditRecord, error)
	CountAll(ctx context.Context) (int64, error)
}

const checkSampleSize = 5

// runExport writes every persisted record as CSV and returns the row count.
func runExport(ctx context.Context, reader predictionReader, w io.Writer) (int, error) {
	records, err := reader.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("export: read predictions: %w", err)
	}

	writer := csv.NewWriter(w)
	header := []string{"id", "age", "social_media_time", "screen_time", "platform", "prediction", "category", "created_at"}
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("export: write header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ID,
			strconv.Itoa(rec.Age),
			strconv.FormatFloat(rec.SocialMediaTime, 'f', -1, 64),
			strconv.FormatFloat(rec.ScreenTime, 'f', -1, 64),
			rec.Platform,
			strconv.FormatFloat(rec.Prediction, 'f', 2, 64),
			rec.Category,
			rec.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return 0, fmt.Errorf("export: write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, fmt.Errorf("export: flush csv: %w", err)
	}
	return len(records), nil
}

// runCheck prints a quick store diagnostic: the total row count plus the
// newest few records.
func runCheck(ctx context.Context, reader predictionReader, w io.Writer) error {
	count, err := reader.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("check: count predictions: %w", err)
	}
	fmt.Fprintf(w, "Total records in database: %d\n", count)

	records, err := reader.ListRecent(ctx, checkSampleSize)
	if err != nil {
		return fmt.Errorf("check: read recent predictions: %w", err)
	}

	fmt.Fprintf(w, "Latest %d records:\n", len(records))
	for _, rec := range records {
		fmt.Fprintf(w, "age=%d screen_time=%gh platform=%s prediction=%.2f category=%s at=%s\n",
			rec.Age,
			rec.ScreenTime,
			rec.Platform,
			rec.Prediction,
			rec.Category,
			rec.CreatedAt.UTC().Format(time.RFC3339),
		)
	}
	return nil
}
