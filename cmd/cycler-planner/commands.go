package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/oxygene76/cycler-planner/pkg/planner"
	"github.com/oxygene76/cycler-planner/pkg/propulsion"
)

const dateLayout = "2006-01-02"

var planCmd = &cobra.Command{
	Use:   "plan [origin] [destination]",
	Short: "Plan a Hohmann transfer between two bodies",
	Long: `Find the next favourable phase alignment on or after --date and
estimate delta-v, transit time, fuel and cost for the chosen propulsion.

Examples:
  cycler-planner plan earth mars --date 2026-11-01
  cycler-planner plan earth venus --propulsion nuclear_thermal --date 2040-01-01`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		propulsionID, _ := cmd.Flags().GetString("propulsion")

		date, err := parseDate(dateStr)
		if err != nil {
			return err
		}

		plan, err := engine.PlanTransfer(args[0], args[1], date, propulsionID)
		if err != nil {
			return fmt.Errorf("transfer planning failed: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), plan)
	},
}

var cyclerCmd = &cobra.Command{
	Use:   "cycler [origin] [destination]",
	Short: "Match cargo to the cycler serving a body pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cargo, _ := cmd.Flags().GetFloat64("cargo")
		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = time.Now().UTC().Year()
		}

		match, err := engine.FindCyclerRoute(args[0], args[1], cargo, year)
		if err != nil {
			return fmt.Errorf("cycler lookup failed: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), match)
	},
}

var surveyCmd = &cobra.Command{
	Use:   "survey [origin] [destination]",
	Short: "Summarise launch-window waits across a date range",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		startStr, _ := cmd.Flags().GetString("start")
		step, _ := cmd.Flags().GetFloat64("step")
		samples, _ := cmd.Flags().GetInt("samples")
		export, _ := cmd.Flags().GetString("export")

		start, err := parseDate(startStr)
		if err != nil {
			return err
		}

		var sink planner.SampleSink
		if export != "" {
			w, err := planner.CreateJSONLSampleFile(export)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer w.Close()
			sink = w
		}

		survey, err := engine.SurveyWindowsTo(args[0], args[1], start, step, samples, sink)
		if err != nil {
			return fmt.Errorf("window survey failed: %w", err)
		}
		return printJSON(cmd.OutOrStdout(), survey)
	},
}

var bodiesCmd = &cobra.Command{
	Use:   "bodies",
	Short: "List the orbital body catalog, or body positions with --date",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateStr, _ := cmd.Flags().GetString("date")
		if dateStr == "" {
			return printJSON(cmd.OutOrStdout(), engine.Catalogs().Bodies.All())
		}

		date, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), engine.BodyStates(date))
	},
}

// propulsionView adds the derived specific impulse to a listing
type propulsionView struct {
	propulsion.Profile
	SpecificImpulseS float64 `json:"specific_impulse_s"`
}

var propulsionCmd = &cobra.Command{
	Use:   "propulsion",
	Short: "List propulsion systems, optionally those available by --year",
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")

		cat := engine.Catalogs().Propulsion
		profiles := cat.All()
		if year != 0 {
			profiles = cat.Available(year)
		}

		views := make([]propulsionView, 0, len(profiles))
		for _, p := range profiles {
			views = append(views, propulsionView{Profile: p, SpecificImpulseS: p.SpecificImpulse()})
		}
		return printJSON(cmd.OutOrStdout(), views)
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List cycler routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), engine.Catalogs().Routes.All())
	},
}

func init() {
	planCmd.Flags().String("date", "", "Earliest launch date, YYYY-MM-DD or RFC3339 (default today)")
	planCmd.Flags().String("propulsion", "chemical_rocket", "Propulsion system id")

	cyclerCmd.Flags().Float64("cargo", 0, "Cargo mass in kg")
	cyclerCmd.Flags().Int("year", 0, "Technology year (default current year)")

	surveyCmd.Flags().String("start", "", "First request date (default today)")
	surveyCmd.Flags().Float64("step", 1, "Days between samples")
	surveyCmd.Flags().Int("samples", 365, "Number of request dates")
	surveyCmd.Flags().String("export", "", "Write every sample to this JSONL file")

	bodiesCmd.Flags().String("date", "", "Report heliocentric positions at this date")

	propulsionCmd.Flags().Int("year", 0, "Only list systems available by this year")
}

// parseDate accepts a calendar date or a full RFC3339 timestamp; empty means now
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	return t, nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
