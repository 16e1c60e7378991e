package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver searches projections for sustainable withdrawals and retirement ages
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// MaxSustainableWithdrawal returns the largest whole-ringgit monthly withdrawal
// that leaves at least RM1 at the target age, using the MY-2024 rules. The input's
// MonthlyExpenses is ignored. Empty ranges return 0. Invalid input also returns 0;
// callers that must tell the two apart use CheckedMaxSustainableWithdrawal.
func MaxSustainableWithdrawal(in domain.EPFProjectionInput) decimal.Decimal {
	w, err := CheckedMaxSustainableWithdrawal(in)
	if err != nil {
		return decimal.Zero
	}
	return w
}

// CheckedMaxSustainableWithdrawal is MaxSustainableWithdrawal with the validation
// error returned instead of folded into 0.
func CheckedMaxSustainableWithdrawal(in domain.EPFProjectionInput) (decimal.Decimal, error) {
	res, err := NewDefaultSolver(calculation.NewCalculationEngine()).SustainableWithdrawal(context.Background(), in)
	if err != nil {
		return decimal.Zero, err
	}
	return res.MonthlyWithdrawal, nil
}

// Optimize routes the request to the matching search
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*PlanResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Target {
	case OptimizeWithdrawal:
		w, err := s.SustainableWithdrawal(ctx, req.Input)
		if err != nil {
			return nil, err
		}
		return &PlanResult{Withdrawal: w, Recommendations: recommendations(w, nil)}, nil
	case OptimizeRetirementAge:
		r, err := s.EarliestRetirementAge(ctx, req.Input, *req.MonthlyWithdrawal)
		if err != nil {
			return nil, err
		}
		return &PlanResult{RetirementAge: r, Recommendations: recommendations(nil, r)}, nil
	default:
		return s.Plan(ctx, req.Input, req.MonthlyWithdrawal)
	}
}

// SustainableWithdrawal binary searches [0, UpperBound] for the largest monthly
// withdrawal whose final balance stays at or above MinFinalBalance.
func (s *Solver) SustainableWithdrawal(ctx context.Context, in domain.EPFProjectionInput) (*WithdrawalResult, error) {
	if err := s.Options.Validate(); err != nil {
		return nil, err
	}
	in = in.WithMonthlyExpenses(decimal.Zero)
	result := &WithdrawalResult{Input: in, MonthlyWithdrawal: decimal.Zero}

	if in.IsDegenerate() {
		result.ConvergenceInfo = "empty projection range"
		return result, nil
	}
	if err := calculation.ValidateProjectionInput(in); err != nil {
		return nil, &BreakEvenError{
			Operation: "sustainable_withdrawal",
			Message:   "invalid projection input",
			Cause:     err,
		}
	}

	lo := decimal.Zero
	hi := s.Options.UpperBound
	best := decimal.Zero
	accepted := false

	for result.Iterations < s.Options.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		mid := lo.Add(hi).Mul(decimal.NewFromFloat(0.5))
		records := s.CalcEngine.ProjectFund(in.WithMonthlyExpenses(mid))
		if len(records) == 0 {
			break
		}

		if records[len(records)-1].TotalAmount.GreaterThanOrEqual(s.Options.MinFinalBalance) {
			best = mid
			lo = mid
			accepted = true
		} else {
			hi = mid
		}
	}

	result.MonthlyWithdrawal = best.Floor()
	final := s.project(in.WithMonthlyExpenses(result.MonthlyWithdrawal))
	result.Projection = final
	result.FinalBalance = final.FinalBalance()
	result.Success = accepted

	result.ProbeWithdrawal = result.MonthlyWithdrawal.Add(s.Options.ProbeIncrement)
	probe := s.project(in.WithMonthlyExpenses(result.ProbeWithdrawal))
	result.ProbeFinalBalance = probe.FinalBalance()
	if age, ok := probe.DepletionAge(); ok {
		result.ProbeDepletionAge = &age
	}

	if accepted {
		result.ConvergenceInfo = fmt.Sprintf("converged within RM%s after %d iterations",
			hi.Sub(lo).StringFixed(2), result.Iterations)
	} else {
		result.ConvergenceInfo = "no withdrawal is sustainable"
	}

	s.CalcEngine.Logger().Debugf("sustainable withdrawal %s after %d iterations",
		result.MonthlyWithdrawal.String(), result.Iterations)
	return result, nil
}

// EarliestRetirementAge scans retirement ages from CurrentAge to TargetAge and returns
// the first that sustains monthlyWithdrawal to the target age.
func (s *Solver) EarliestRetirementAge(ctx context.Context, in domain.EPFProjectionInput, monthlyWithdrawal decimal.Decimal) (*RetirementAgeResult, error) {
	if monthlyWithdrawal.IsNegative() {
		return nil, &BreakEvenError{
			Operation: "earliest_retirement_age",
			Message:   "monthly withdrawal cannot be negative",
		}
	}
	result := &RetirementAgeResult{MonthlyWithdrawal: monthlyWithdrawal}
	if in.IsDegenerate() {
		result.ConvergenceInfo = "empty projection range"
		return result, nil
	}

	for age := in.CurrentAge; age <= in.TargetAge; age++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidate := in.WithMonthlyExpenses(monthlyWithdrawal)
		candidate.RetirementAge = age
		if age == in.CurrentAge {
			if err := calculation.ValidateProjectionInput(candidate); err != nil {
				return nil, &BreakEvenError{
					Operation: "earliest_retirement_age",
					Message:   "invalid projection input",
					Cause:     err,
				}
			}
		}
		result.Evaluated++

		proj := s.project(candidate)
		if proj.FinalBalance().GreaterThanOrEqual(s.Options.MinFinalBalance) {
			result.Found = true
			result.RetirementAge = age
			result.Projection = proj
			result.FinalBalance = proj.FinalBalance()
			result.ConvergenceInfo = fmt.Sprintf("sustainable from age %d", age)
			return result, nil
		}
	}

	result.ConvergenceInfo = fmt.Sprintf("not sustainable at any age up to %d", in.TargetAge)
	return result, nil
}

// Plan runs the withdrawal search and, when a target withdrawal is given, the retirement age search
func (s *Solver) Plan(ctx context.Context, in domain.EPFProjectionInput, targetWithdrawal *decimal.Decimal) (*PlanResult, error) {
	w, err := s.SustainableWithdrawal(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("withdrawal search failed: %w", err)
	}
	out := &PlanResult{Withdrawal: w}

	if targetWithdrawal != nil {
		r, err := s.EarliestRetirementAge(ctx, in, *targetWithdrawal)
		if err != nil {
			return nil, fmt.Errorf("retirement age search failed: %w", err)
		}
		out.RetirementAge = r
	}

	out.Recommendations = recommendations(out.Withdrawal, out.RetirementAge)
	return out, nil
}

func (s *Solver) project(in domain.EPFProjectionInput) *domain.Projection {
	return &domain.Projection{Input: in, Records: s.CalcEngine.ProjectFund(in)}
}
