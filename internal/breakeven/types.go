package breakeven

import (
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what the solver searches for
type OptimizationTarget string

const (
	OptimizeWithdrawal    OptimizationTarget = "withdrawal"     // largest sustainable monthly withdrawal
	OptimizeRetirementAge OptimizationTarget = "retirement_age" // earliest age sustaining a withdrawal
	OptimizeAll           OptimizationTarget = "all"
)

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	Input  domain.EPFProjectionInput `json:"input"`
	Target OptimizationTarget        `json:"target"`

	// MonthlyWithdrawal is required for OptimizeRetirementAge
	MonthlyWithdrawal *decimal.Decimal `json:"monthly_withdrawal,omitempty"`
}

// Validate checks that the request can be routed
func (r *OptimizationRequest) Validate() error {
	switch r.Target {
	case OptimizeWithdrawal:
	case OptimizeRetirementAge, OptimizeAll:
		if r.Target == OptimizeRetirementAge && r.MonthlyWithdrawal == nil {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "monthly_withdrawal is required for retirement_age",
			}
		}
		if r.MonthlyWithdrawal != nil && r.MonthlyWithdrawal.IsNegative() {
			return &BreakEvenError{
				Operation: "validate_request",
				Message:   "monthly_withdrawal cannot be negative",
			}
		}
	default:
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "unsupported optimization target: " + string(r.Target),
		}
	}
	return nil
}

// WithdrawalResult is the outcome of the sustainable withdrawal search
type WithdrawalResult struct {
	Input           domain.EPFProjectionInput `json:"input"`
	Success         bool                      `json:"success"`
	Iterations      int                       `json:"iterations"`
	ConvergenceInfo string                    `json:"convergence_info"`

	// MonthlyWithdrawal is the floor of the best accepted candidate
	MonthlyWithdrawal decimal.Decimal   `json:"monthly_withdrawal"`
	FinalBalance      decimal.Decimal   `json:"final_balance"`
	Projection        *domain.Projection `json:"projection,omitempty"`

	// Probe is the projection at MonthlyWithdrawal + ProbeIncrement
	ProbeWithdrawal   decimal.Decimal `json:"probe_withdrawal"`
	ProbeFinalBalance decimal.Decimal `json:"probe_final_balance"`
	ProbeDepletionAge *int            `json:"probe_depletion_age,omitempty"`
}

// RetirementAgeResult is the outcome of the earliest retirement age search
type RetirementAgeResult struct {
	MonthlyWithdrawal decimal.Decimal    `json:"monthly_withdrawal"`
	Found             bool               `json:"found"`
	RetirementAge     int                `json:"retirement_age"`
	Evaluated         int                `json:"evaluated"`
	ConvergenceInfo   string             `json:"convergence_info"`
	FinalBalance      decimal.Decimal    `json:"final_balance"`
	Projection        *domain.Projection `json:"projection,omitempty"`
}

// PlanResult contains results when searching every target
type PlanResult struct {
	Withdrawal      *WithdrawalResult    `json:"withdrawal"`
	RetirementAge   *RetirementAgeResult `json:"retirement_age,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Algorithm       string          // "binary_search"
	MaxIterations   int             // binary search halvings
	UpperBound      decimal.Decimal // largest monthly withdrawal considered
	MinFinalBalance decimal.Decimal // a final balance at or above this is sustainable
	ProbeIncrement  decimal.Decimal // overdraw probe above the solution
}

// DefaultSolverOptions returns default solver configuration.
// 20 halvings of RM1,000,000 resolve to under RM1.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Algorithm:       "binary_search",
		MaxIterations:   20,
		UpperBound:      decimal.NewFromInt(1_000_000),
		MinFinalBalance: decimal.NewFromInt(1),
		ProbeIncrement:  decimal.NewFromInt(1000),
	}
}

// Validate checks the options are usable
func (o SolverOptions) Validate() error {
	if o.MaxIterations <= 0 {
		return &BreakEvenError{Operation: "validate_options", Message: "max iterations must be positive"}
	}
	if !o.UpperBound.IsPositive() {
		return &BreakEvenError{Operation: "validate_options", Message: "upper bound must be positive"}
	}
	if o.MinFinalBalance.IsNegative() {
		return &BreakEvenError{Operation: "validate_options", Message: "min final balance cannot be negative"}
	}
	return nil
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
