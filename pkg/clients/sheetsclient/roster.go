package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/services"
)

// RosterSheet publishes finished rosters to a spreadsheet, one tab per week
type RosterSheet struct {
	client        *Client
	spreadsheetID string
}

// NewRosterSheet creates a roster sink writing to the given spreadsheet
func NewRosterSheet(client *Client, spreadsheetID string) *RosterSheet {
	return &RosterSheet{
		client:        client,
		spreadsheetID: spreadsheetID,
	}
}

// PublishRoster writes the roster to a tab titled "Week of Mon Jan 02 2006".
// The tab is created if it doesn't exist and overwritten if it does.
func (r *RosterSheet) PublishRoster(ctx context.Context, roster *services.PublishedRoster) error {
	tabTitle := generateTabTitle(roster)

	exists, err := r.client.SheetExists(ctx, r.spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	if exists {
		r.client.logger.Debug("Overwriting existing roster tab", zap.String("tab", tabTitle))
		if err := r.client.ClearValues(ctx, r.spreadsheetID, fmt.Sprintf("'%s'!A1:ZZ", tabTitle)); err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else {
		r.client.logger.Debug("Creating roster tab", zap.String("tab", tabTitle))
		if _, err := r.client.CreateSheet(ctx, r.spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	rows := buildRosterRows(roster)
	if err := r.client.UpdateValues(ctx, r.spreadsheetID, fmt.Sprintf("'%s'!A1", tabTitle), rows); err != nil {
		return fmt.Errorf("failed to write roster to tab: %w", err)
	}

	r.client.logger.Info("Roster written to sheet",
		zap.String("tab", tabTitle),
		zap.Int("rows", len(rows)-1))

	return nil
}

// generateTabTitle creates a tab title in the format "Week of Mon Jun 16 2025"
func generateTabTitle(roster *services.PublishedRoster) string {
	return "Week of " + roster.WeekStart.Format("Mon Jan 02 2006")
}

// buildRosterRows lays out the header and one row per slot. The number of
// employee columns is the largest slot size, with blanks padding smaller slots.
func buildRosterRows(roster *services.PublishedRoster) [][]interface{} {
	maxEmployees := 0
	for _, row := range roster.Rows {
		maxEmployees = max(maxEmployees, len(row.Employees))
	}

	header := []interface{}{"Date", "Day", "Shift"}
	for i := 0; i < maxEmployees; i++ {
		header = append(header, fmt.Sprintf("Employee %d", i+1))
	}

	rows := make([][]interface{}, 0, len(roster.Rows)+1)
	rows = append(rows, header)

	for _, row := range roster.Rows {
		sheetRow := []interface{}{
			row.Date.Format("2006-01-02"),
			row.Day.String(),
			row.Shift.Title(),
		}
		for i := 0; i < maxEmployees; i++ {
			if i < len(row.Employees) {
				sheetRow = append(sheetRow, row.Employees[i])
			} else {
				sheetRow = append(sheetRow, "")
			}
		}
		rows = append(rows, sheetRow)
	}

	return rows
}
