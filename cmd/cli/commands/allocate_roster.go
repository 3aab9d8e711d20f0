package commands

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/weekly-roster/pkg/core/allocator"
	"github.com/jakechorley/weekly-roster/pkg/core/services"
)

// PublishTarget names an output sink for a finished roster
type PublishTarget string

const (
	PublishSheets   PublishTarget = "sheets"
	PublishPostgres PublishTarget = "postgres"
	PublishEmail    PublishTarget = "email"
)

var publishTargets = []PublishTarget{PublishSheets, PublishPostgres, PublishEmail}

// AllocateRosterCmd creates the allocateRoster command
func AllocateRosterCmd(app *AppContext) *cobra.Command {
	var (
		dryRun  bool
		week    string
		publish []string
	)

	cmd := &cobra.Command{
		Use:   "allocateRoster",
		Short: "Allocate employees to next week's shifts",
		Long: `Allocate employees to the morning, afternoon and evening shifts of a week
using their ranked preferences. The roster is printed and, unless --dry-run is
set, published to each --publish target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := parsePublishTargets(publish)
			if err != nil {
				return err
			}

			weekStart, err := parseWeek(week)
			if err != nil {
				return err
			}

			app.Logger.Debug("allocateRoster command",
				zap.Bool("dry_run", dryRun),
				zap.String("week", week),
				zap.Strings("publish", publish))

			source, err := app.PreferenceSource()
			if err != nil {
				return err
			}

			result, err := services.AllocateRoster(app.Ctx, source, services.AllocateRosterOptions{
				Config:    app.Cfg.Allocation(),
				WeekStart: weekStart,
				WeekRule:  app.Cfg.WeekRule,
			}, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to allocate roster: %w", err)
			}

			printAllocation(result)

			if dryRun || len(targets) == 0 {
				fmt.Println("Roster not published.")
				return nil
			}

			sinks, err := app.RosterSinks(targets)
			if err != nil {
				return err
			}

			if _, err := services.PublishRoster(app.Ctx, result, sinks, app.Logger); err != nil {
				return err
			}

			fmt.Printf("\n✅ Roster published to %s\n", joinTargets(targets))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Allocate and print the roster without publishing it")
	cmd.Flags().StringVar(&week, "week", "", "First day of the week to allocate (YYYY-MM-DD, a Monday). Defaults to next week")
	cmd.Flags().StringSliceVar(&publish, "publish", nil, "Targets to publish to: sheets, postgres, email")

	return cmd
}

func printAllocation(result *services.AllocateRosterResult) {
	if result.Success {
		fmt.Printf("\n✅ Roster allocated for the week of %s\n\n", result.WeekStart.Format("Mon Jan 02 2006"))
	} else {
		fmt.Printf("\n⚠️  Roster allocated with problems for the week of %s\n\n", result.WeekStart.Format("Mon Jan 02 2006"))
	}
	fmt.Printf("Run ID: %s\n\n", result.RunID)

	fmt.Print(services.FormatRoster(result.Roster))
	fmt.Println()

	fmt.Println("Workloads:")
	fmt.Print(services.FormatWorkloads(result))
	fmt.Println()

	if len(result.UnderstaffedSlots) > 0 {
		fmt.Printf("Understaffed slots: %d\n", len(result.UnderstaffedSlots))
		for _, slot := range result.UnderstaffedSlots {
			fmt.Printf("  %s %s (%d assigned)\n", slot.Day, slot.Shift.Title(), result.Roster.SlotSize(slot.Day, slot.Shift))
		}
		fmt.Println()
	}

	if len(result.Resolution.Unplaceable) > 0 {
		fmt.Printf("Assignments removed by conflict resolution: %d\n", len(result.Resolution.Unplaceable))
		for _, dropped := range result.Resolution.Unplaceable {
			if dropped.Reason == allocator.AlreadyAssigned {
				fmt.Printf("  %s %s (still works another shift that day)\n", dropped.EmployeeID, dropped.Day)
			} else {
				fmt.Printf("  %s %s (no shift had room, not working that day)\n", dropped.EmployeeID, dropped.Day)
			}
		}
		fmt.Println()
	}

	if len(result.ValidationErrors) > 0 {
		fmt.Printf("Validation errors: %d\n", len(result.ValidationErrors))
		for _, verr := range result.ValidationErrors {
			fmt.Printf("  [%s] %s\n", verr.CriterionName, verr.Description)
		}
		fmt.Println()
	}
}

// parsePublishTargets validates and de-duplicates the --publish values,
// keeping the order they were given in
func parsePublishTargets(values []string) ([]PublishTarget, error) {
	targets := []PublishTarget{}
	for _, value := range values {
		target := PublishTarget(strings.ToLower(strings.TrimSpace(value)))
		if target == "" {
			continue
		}
		if !slices.Contains(publishTargets, target) {
			return nil, fmt.Errorf("unknown publish target %q (expected sheets, postgres or email)", value)
		}
		if !slices.Contains(targets, target) {
			targets = append(targets, target)
		}
	}
	return targets, nil
}

// parseWeek parses the --week flag. An empty value returns the zero time so
// the service picks the next week.
func parseWeek(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	weekStart, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("week must be a date in YYYY-MM-DD format: %w", err)
	}
	if weekStart.Weekday() != time.Monday {
		return time.Time{}, fmt.Errorf("week must start on a Monday, %s is a %s", value, weekStart.Weekday())
	}

	return weekStart, nil
}

func joinTargets(targets []PublishTarget) string {
	names := make([]string, 0, len(targets))
	for _, target := range targets {
		names = append(names, string(target))
	}
	return strings.Join(names, ", ")
}
