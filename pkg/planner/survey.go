package planner

import (
	"fmt"
	"time"

	"cosmossdk.io/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/oxygene76/cycler-planner/internal/types"
	"github.com/oxygene76/cycler-planner/pkg/astronomy/orbital"
)

// MaxSurveySamples bounds a single survey
const MaxSurveySamples = 100000

// SurveyWindows evaluates the transfer window for samples request dates
// spaced stepDays apart, starting at start.
func (p *Planner) SurveyWindows(originID, destinationID string, start time.Time, stepDays float64, samples int) (types.WindowSurvey, error) {
	return p.SurveyWindowsTo(originID, destinationID, start, stepDays, samples, nil)
}

// SurveyWindowsTo is SurveyWindows that also streams every sample to sink.
// A nil sink is allowed.
func (p *Planner) SurveyWindowsTo(originID, destinationID string, start time.Time, stepDays float64, samples int, sink SampleSink) (types.WindowSurvey, error) {
	if samples <= 0 || samples > MaxSurveySamples {
		return types.WindowSurvey{}, errors.Wrapf(ErrInvalidRequest, "samples must be in [1, %d], got %d", MaxSurveySamples, samples)
	}
	if !(stepDays > 0) {
		return types.WindowSurvey{}, errors.Wrapf(ErrInvalidRequest, "step must be positive, got %v days", stepDays)
	}

	origin, dest, err := p.resolveBodies(originID, destinationID)
	if err != nil {
		return types.WindowSurvey{}, err
	}

	if sink != nil {
		if err := sink.OnStart(samples); err != nil {
			return types.WindowSurvey{}, fmt.Errorf("survey sink: %w", err)
		}
	}

	waits := make([]float64, samples)
	survey := types.WindowSurvey{
		OriginID:      origin.ID,
		DestinationID: dest.ID,
		Samples:       samples,
		StepDays:      stepDays,
	}
	for i := range waits {
		date, err := orbital.AddDays(start, float64(i)*stepDays)
		if err != nil {
			return types.WindowSurvey{}, err
		}
		w, err := p.window.ComputeWindow(origin, dest, date)
		if err != nil {
			return types.WindowSurvey{}, err
		}
		waits[i] = w.WaitDays
		survey.TransferType = w.TransferType
		survey.SynodicPeriodDays = w.SynodicPeriodDays

		if sink != nil {
			launch, err := orbital.AddDays(date, w.WaitDays)
			if err != nil {
				return types.WindowSurvey{}, err
			}
			err = sink.OnSample(types.WindowSample{
				RequestDate:   date,
				LaunchDate:    launch,
				WaitDays:      w.WaitDays,
				PhaseAngleRad: w.PhaseAngle,
			})
			if err != nil {
				return types.WindowSurvey{}, fmt.Errorf("survey sink: %w", err)
			}
		}
	}

	best := floats.MinIdx(waits)
	survey.MeanWaitDays = stat.Mean(waits, nil)
	if samples > 1 {
		survey.StdDevWaitDays = stat.StdDev(waits, nil)
	}
	survey.MinWaitDays = waits[best]
	survey.MaxWaitDays = floats.Max(waits)
	if survey.BestRequestDate, err = orbital.AddDays(start, float64(best)*stepDays); err != nil {
		return types.WindowSurvey{}, err
	}
	if survey.BestLaunchDate, err = orbital.AddDays(survey.BestRequestDate, waits[best]); err != nil {
		return types.WindowSurvey{}, err
	}

	if sink != nil {
		if err := sink.OnEnd(survey); err != nil {
			return types.WindowSurvey{}, fmt.Errorf("survey sink: %w", err)
		}
	}

	p.logger.Debug("window survey complete",
		"origin", survey.OriginID,
		"destination", survey.DestinationID,
		"samples", samples,
		"mean_wait_days", survey.MeanWaitDays,
	)
	return survey, nil
}
