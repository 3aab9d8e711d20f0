package sheetsclient

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// Expected column names in the preferences sheet
const (
	colEmployee     = "Employee"
	colDay          = "Day"
	colFirstChoice  = "1st choice"
	colSecondChoice = "2nd choice"
	colThirdChoice  = "3rd choice"
)

var preferenceFields = []string{
	colEmployee,
	colDay,
	colFirstChoice,
	colSecondChoice,
	colThirdChoice,
}

var choiceFields = []string{colFirstChoice, colSecondChoice, colThirdChoice}

// valueReader reads a range of cells; satisfied by *Client
type valueReader interface {
	GetValues(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// PreferenceSheet lists employee preferences from one tab of a spreadsheet.
// Each row holds one employee's ranking for one day.
type PreferenceSheet struct {
	reader        valueReader
	spreadsheetID string
	tab           string
	logger        *zap.Logger
}

// NewPreferenceSheet creates a preference source reading the given tab
func NewPreferenceSheet(client *Client, spreadsheetID, tab string) *PreferenceSheet {
	return &PreferenceSheet{
		reader:        client,
		spreadsheetID: spreadsheetID,
		tab:           tab,
		logger:        client.logger,
	}
}

// ListPreferences retrieves and parses employee preferences from the configured tab
func (p *PreferenceSheet) ListPreferences(ctx context.Context) ([]model.EmployeePreferences, error) {
	values, err := p.reader.GetValues(ctx, p.spreadsheetID, p.tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get preference data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	preferences, err := parsePreferences(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}

	p.logger.Debug("Parsed preference sheet",
		zap.String("tab", p.tab),
		zap.Int("rows", len(values)-1),
		zap.Int("employees", len(preferences)))

	return preferences, nil
}

// parsePreferences converts raw spreadsheet data into ordered employee
// preferences. Employees are kept in order of first appearance.
func parsePreferences(raw [][]interface{}) ([]model.EmployeePreferences, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	// Build field index map from header row
	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range preferenceFields {
		index := -1
		for i, cell := range headerRow {
			if cellStr, ok := cell.(string); ok && strings.TrimSpace(cellStr) == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index := fieldIndexes[field]
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return strings.TrimSpace(str)
		}
		return ""
	}

	var order []string
	byEmployee := make(map[string]model.Preferences)

	for i := 1; i < len(raw); i++ {
		row := raw[i]
		rowNumber := i + 1

		employeeID := getField(colEmployee, row)
		// Skip empty rows (rows with no employee)
		if employeeID == "" {
			continue
		}

		day, err := model.ParseDay(getField(colDay, row))
		if err != nil {
			return nil, fmt.Errorf("row %d (employee %s): %w", rowNumber, employeeID, err)
		}

		var ranking model.Ranking
		for _, field := range choiceFields {
			value := getField(field, row)
			if value == "" {
				continue
			}
			// Sheet users capitalise freely
			shift, err := model.ParseShiftPeriod(strings.ToLower(value))
			if err != nil {
				return nil, fmt.Errorf("row %d (employee %s) %s: %w", rowNumber, employeeID, field, err)
			}
			ranking = append(ranking, shift)
		}

		prefs, seen := byEmployee[employeeID]
		if !seen {
			prefs = make(model.Preferences)
			byEmployee[employeeID] = prefs
			order = append(order, employeeID)
		}

		if _, exists := prefs[day]; exists {
			return nil, fmt.Errorf("row %d: employee %s has more than one row for %s", rowNumber, employeeID, day)
		}
		prefs[day] = ranking
	}

	preferences := make([]model.EmployeePreferences, 0, len(order))
	for _, employeeID := range order {
		preferences = append(preferences, model.EmployeePreferences{
			EmployeeID:  employeeID,
			Preferences: byEmployee[employeeID],
		})
	}

	return preferences, nil
}
