package domain

import "github.com/shopspring/decimal"

// Dashboard is every calculator's output for one profile.
type Dashboard struct {
	ProfileName           string               `json:"profileName"`
	RulesName             string               `json:"rulesName"`
	Payroll               *PayrollResult       `json:"payroll"`
	Projection            *Projection          `json:"projection"`
	SustainableWithdrawal decimal.Decimal      `json:"sustainableWithdrawal"`
	MilestoneBalance      decimal.Decimal      `json:"milestoneBalance"`
	MilestoneAge          *int                 `json:"milestoneAge,omitempty"`
	DepletionAge          *int                 `json:"depletionAge,omitempty"`
	IncomeBasis           IncomeBasis          `json:"incomeBasis"`
	IncomeReality         *IncomeRealityResult `json:"incomeReality,omitempty"`
	Classification        IncomeClassification `json:"classification"`
}
