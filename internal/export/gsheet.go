package export

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shrimpsizemoose/trekker/logger"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/geckostudy/geckoden/internal/app"
)

var timestampEmoji = []string{"🦎", "📚", "✨", "🏆"}

// GSheetExporter pushes leaderboard snapshots into a spreadsheet on a cron
// schedule. One exporter per configured sheet.
type GSheetExporter struct {
	service       *app.Service
	scheduler     *gocron.Scheduler
	sheetsService *sheets.Service
}

// NewGSheetExporter schedules an export job for every [[gsheet]] block in the
// config and starts the shared scheduler.
func NewGSheetExporter(service *app.Service) (*gocron.Scheduler, error) {
	ctx := context.Background()
	scheduler := gocron.NewScheduler(time.UTC)

	for _, cfg := range service.Config.GSheet {
		svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service: %w", err)
		}

		exporter := &GSheetExporter{
			service:       service,
			scheduler:     scheduler,
			sheetsService: svc,
		}

		cfg := cfg
		_, err = scheduler.Cron(cfg.Schedule).Do(func() {
			if err := exporter.Export(&cfg); err != nil {
				logger.Error.Printf("Export to sheet %s failed: %v", cfg.SheetID, err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule export: %w", err)
		}
	}

	scheduler.StartAsync()
	return scheduler, nil
}

// Export writes one row per student starting at StartCell, ordered the way
// the leaderboard orders them, then stamps TimestampCell.
func (e *GSheetExporter) Export(cfg *app.GSheetConfig) error {
	entries, err := e.service.Leaderboard()
	if err != nil {
		return fmt.Errorf("failed to build leaderboard: %w", err)
	}

	rows := make([][]interface{}, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, []interface{}{
			i + 1,
			entry.Name,
			entry.Points,
			string(entry.Level),
			entry.Grade,
		})
	}

	writeRange := fmt.Sprintf("%s!%s", cfg.SheetName, cfg.StartCell)
	_, err = e.sheetsService.Spreadsheets.Values.Update(cfg.SheetID, writeRange,
		&sheets.ValueRange{Values: rows}).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write leaderboard: %w", err)
	}

	emoji := timestampEmoji[rand.Intn(len(timestampEmoji))]
	timestamp := fmt.Sprintf("UPD: %s %s", time.Now().Format("2 January 15:04"), emoji)

	tsRange := fmt.Sprintf("%s!%s", cfg.SheetName, cfg.TimestampCell)
	_, err = e.sheetsService.Spreadsheets.Values.Update(cfg.SheetID, tsRange,
		&sheets.ValueRange{Values: [][]interface{}{{timestamp}}}).ValueInputOption("RAW").Do()

	return err
}
