package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
	"github.com/jakechorley/weekly-roster/pkg/core/services"
)

// ListEmployeesCmd creates the listEmployees command
func ListEmployeesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEmployees",
		Short: "List employees in registration order with their top choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := app.PreferenceSource()
			if err != nil {
				return err
			}

			employees, err := services.ListEmployees(app.Ctx, source, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n%d employees:\n\n", len(employees))
			fmt.Print(formatEmployeeTable(employees))
			fmt.Println()

			return nil
		},
	}
}

// formatEmployeeTable prints one row per employee with the top choice for each day
func formatEmployeeTable(employees []services.EmployeeSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-20s", "Employee")
	for _, day := range model.Days() {
		fmt.Fprintf(&sb, "  %-9s", day.String()[:3])
	}
	sb.WriteString("\n")

	for _, employee := range employees {
		fmt.Fprintf(&sb, "%-20s", employee.EmployeeID)
		for _, day := range model.Days() {
			choice := "-"
			if shift, ok := employee.TopChoices[day]; ok {
				choice = shift.String()
			}
			fmt.Fprintf(&sb, "  %-9s", choice)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
