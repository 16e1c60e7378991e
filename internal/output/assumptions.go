package output

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Income tax: YA 2024 resident scale, individual relief RM9,000, EPF relief capped at RM4,000",
	"SOCSO/EIS: capped at the RM6,000 wage ceiling, waived from age 60",
	"EPF employer share: 13% up to RM5,000 wages, 12% above",
	"EPF dividend: constant rate, credited annually on the year-end balance",
	"Retirement spending: constant in ringgit terms (no inflation indexing)",
	"Cost of living: single adult in Kuala Lumpur is the 1.0 reference point",
}
