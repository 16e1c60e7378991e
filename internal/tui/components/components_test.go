package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/rmgo/internal/domain"
)

func TestMetricCard(t *testing.T) {
	card := NewAmountCard("Net pay", decimal.NewFromInt(4305)).WithDescription("monthly")
	out := card.Render()
	assert.Contains(t, out, "Net pay")
	assert.Contains(t, out, "RM4,305.00")
	assert.Contains(t, out, "monthly")

	short := NewAmountCard("Income", decimal.NewFromInt(4305)).WithBalance(decimal.NewFromInt(-195))
	assert.Contains(t, short.RenderCompact(), "RM195.00 shortfall")
	assert.False(t, short.Trend.IsPositive)

	ok := NewMetricCard("x", "y").WithBalance(decimal.NewFromInt(10))
	assert.True(t, ok.Trend.IsPositive)
	assert.Contains(t, ok.RenderCompact(), "surplus")
}

func TestMetricGrid(t *testing.T) {
	assert.Equal(t, "", MetricGrid(nil, 3))
	cards := []*MetricCard{NewMetricCard("a", "1"), NewMetricCard("b", "2"), NewMetricCard("c", "3")}
	two := MetricGrid(cards, 2)
	one := MetricGrid(cards[:2], 2)
	assert.Greater(t, lipgloss.Height(two), lipgloss.Height(one))
}

func TestCoverageBar(t *testing.T) {
	tests := []struct {
		percent string
		filled  int
	}{
		{"0", 0},
		{"-5", 0},
		{"50", 5},
		{"95.67", 9},
		{"150", 10},
	}
	for _, tt := range tests {
		bar := NewCoverageBar(decimal.RequireFromString(tt.percent)).WithWidth(10)
		assert.Equal(t, tt.filled, bar.Filled(), tt.percent)
	}
	assert.Contains(t, NewCoverageBar(decimal.NewFromInt(80)).WithLabel("Coverage").Render(), "80.0%")
}

func balanceProjection() *domain.Projection {
	return &domain.Projection{
		Input: domain.EPFProjectionInput{CurrentAge: 58, RetirementAge: 60, TargetAge: 62},
		Records: []domain.EPFYearRecord{
			{Age: 58, TotalAmount: decimal.NewFromInt(800000)},
			{Age: 59, TotalAmount: decimal.NewFromInt(900000)},
			{Age: 60, TotalAmount: decimal.NewFromInt(1200000)},
			{Age: 61, TotalAmount: decimal.NewFromInt(700000), IsPostRetirement: true},
			{Age: 62, TotalAmount: decimal.NewFromInt(400000), IsPostRetirement: true},
		},
	}
}

func TestBalanceChart_Empty(t *testing.T) {
	assert.Contains(t, NewBalanceChart(&domain.Projection{}).Render(), "No data")
	assert.Contains(t, NewBalanceChart(nil).Render(), "No data")
}

func TestBalanceChart_Render(t *testing.T) {
	out := NewBalanceChart(balanceProjection()).WithSize(40, 6).Render()

	assert.Contains(t, out, "EPF balance by age")
	assert.Contains(t, out, "RM1.2M")
	assert.Contains(t, out, "RM0")
	assert.Contains(t, out, string(workingCell))
	assert.Contains(t, out, string(retiredCell))
	assert.Contains(t, out, "retire at 60")
	assert.NotContains(t, out, string(milestoneRow))

	lines := strings.Split(out, "\n")
	var axis string
	for i, l := range lines {
		if strings.Contains(l, "└") {
			axis = lines[i+1]
			break
		}
	}
	assert.Equal(t, []string{"58", "62"}, strings.Fields(axis), "adjacent retirement label is dropped")
}

func TestBalanceChart_RetirementMarkerAboveShortBar(t *testing.T) {
	p := balanceProjection()
	p.Records[2].TotalAmount = decimal.NewFromInt(100000)
	out := NewBalanceChart(p).WithSize(40, 6).Render()
	assert.Contains(t, out, string(retireMarker))
}

func TestBalanceChart_Milestone(t *testing.T) {
	out := NewBalanceChart(balanceProjection()).WithSize(40, 6).
		WithMilestone(decimal.NewFromInt(1_000_000)).Render()
	assert.Contains(t, out, string(milestoneRow))
	assert.Contains(t, out, "RM1.0M")

	above := NewBalanceChart(balanceProjection()).WithMilestone(decimal.NewFromInt(5_000_000)).Render()
	assert.NotContains(t, above, string(milestoneRow))
}

func TestBalanceChart_SamplesLongProjections(t *testing.T) {
	p := &domain.Projection{Input: domain.EPFProjectionInput{CurrentAge: 30, RetirementAge: 60, TargetAge: 90}}
	for age := 30; age <= 90; age++ {
		p.Records = append(p.Records, domain.EPFYearRecord{Age: age, TotalAmount: decimal.NewFromInt(int64(age * 1000))})
	}
	c := NewBalanceChart(p)
	cols := c.columns(20)
	assert.LessOrEqual(t, len(cols), 21)
	assert.Equal(t, 0, cols[0])
	assert.Equal(t, 60, cols[len(cols)-1])

	out := c.WithSize(40, 6).Render()
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		if strings.Contains(l, "└") {
			assert.Equal(t, []string{"30", "60", "90"}, strings.Fields(lines[i+1]))
		}
	}
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "RM1.5M", formatChartValue(1_500_000))
	assert.Equal(t, "RM250K", formatChartValue(250_000))
	assert.Equal(t, "RM12", formatChartValue(12))
}
