package types

import (
	"time"

	sdkmath "cosmossdk.io/math"
)

// TransferType names the relative alignment a transfer departs on
type TransferType string

const (
	TransferOpposition  TransferType = "opposition"
	TransferConjunction TransferType = "conjunction"
)

// TransferPlan is the assembled result of a point-to-point transfer query
type TransferPlan struct {
	OriginID            string       `json:"origin_id"`
	DestinationID       string       `json:"destination_id"`
	RequestedDate       time.Time    `json:"requested_date"`
	LaunchDate          time.Time    `json:"launch_date"`
	WaitDays            float64      `json:"wait_days"`
	TransferTimeDays    int          `json:"transfer_time_days"`
	HohmannFlightDays   float64      `json:"hohmann_time_of_flight_days"`
	ArrivalDate         time.Time    `json:"arrival_date"`
	DeltaVRequiredKmS   float64      `json:"delta_v_required_km_s"`
	ExceedsCapacity     bool         `json:"exceeds_capacity"`
	PropulsionID        string       `json:"propulsion_id"`
	TransferType        TransferType `json:"transfer_type"`
	SynodicPeriodDays   float64      `json:"synodic_period_days"`
	LaunchSeparationAU  float64      `json:"launch_separation_au"`
	FuelMassKg          float64      `json:"fuel_mass_kg"`
	ReliabilityFactor   float64      `json:"reliability_factor"`
	CostEstimateCredits sdkmath.Int  `json:"cost_estimate_credits"`
}

// LaunchWindow describes the next departure opportunity of a cycler
type LaunchWindow struct {
	Start           time.Time `json:"start_date"`
	End             time.Time `json:"end_date"`
	Optimal         time.Time `json:"optimal_launch_date"`
	DurationDays    int       `json:"duration_days"`
	DaysUntilLaunch float64   `json:"days_until_launch"`
	Schedulable     bool      `json:"schedulable"`
}

// CyclerMatch is the result of a cycler route lookup
type CyclerMatch struct {
	RouteID                  string       `json:"route_id"`
	RouteName                string       `json:"route_name"`
	PeriodDays               float64      `json:"period_days"`
	CargoCapacityKg          float64      `json:"cargo_capacity_kg"`
	PassengerCapacity        int          `json:"passenger_capacity"`
	DeltaVRequirementKmS     float64      `json:"delta_v_requirement_km_s"`
	EligiblePropulsionIDs    []string     `json:"eligible_propulsion_ids"`
	CyclerPhase              float64      `json:"cycler_phase"`
	NextLaunchWindow         LaunchWindow `json:"next_launch_window"`
	CargoCapacityUtilization float64      `json:"cargo_capacity_utilization"` // > 1 means over capacity
	EstimatedTravelDays      float64      `json:"estimated_travel_days"`
}

// WindowSurvey summarises wait times across a sequence of requested launch dates
type WindowSurvey struct {
	OriginID          string       `json:"origin_id"`
	DestinationID     string       `json:"destination_id"`
	Samples           int          `json:"samples"`
	StepDays          float64      `json:"step_days"`
	TransferType      TransferType `json:"transfer_type"`
	SynodicPeriodDays float64      `json:"synodic_period_days"`
	MeanWaitDays      float64      `json:"mean_wait_days"`
	StdDevWaitDays    float64      `json:"stddev_wait_days"`
	MinWaitDays       float64      `json:"min_wait_days"`
	MaxWaitDays       float64      `json:"max_wait_days"`
	BestRequestDate   time.Time    `json:"best_request_date"`
	BestLaunchDate    time.Time    `json:"best_launch_date"`
}

// WindowSample is one request date evaluated by a window survey
type WindowSample struct {
	RequestDate   time.Time `json:"request_date"`
	LaunchDate    time.Time `json:"launch_date"`
	WaitDays      float64   `json:"wait_days"`
	PhaseAngleRad float64   `json:"phase_angle_rad"`
}
