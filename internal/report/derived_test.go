package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leak-diagnostic/internal/models"
)

func sampleResult() *models.Result {
	return &models.Result{
		Industry:            "Consulting",
		TotalLeakagePercent: 11.0,
		TotalLeakageDollars: 1_103_000,
		TopThreeLeaks: []models.Leak{
			{Category: "Pricing & Discounting", LeakagePercent: 5.0, LeakageDollars: 500_000},
			{Category: "Lead Follow-Up", LeakagePercent: 4.0, LeakageDollars: 400_000},
			{Category: "Billing & Collections", LeakagePercent: 1.0, LeakageDollars: 103_000},
		},
		Leaks: []models.Leak{
			{Category: "Billing & Collections", LeakagePercent: 1.0, LeakageDollars: 103_000},
			{Category: "Operational Waste", LeakagePercent: 0.5, LeakageDollars: 60_000},
			{Category: "Pricing & Discounting", LeakagePercent: 5.0, LeakageDollars: 500_000},
			{Category: "Customer Churn", LeakagePercent: 0.4, LeakageDollars: 40_000},
			{Category: "Lead Follow-Up", LeakagePercent: 4.0, LeakageDollars: 400_000},
		},
	}
}

func TestDeriveHeadlineFigures(t *testing.T) {
	d := Derive(sampleResult())

	assert.Equal(t, 3022.0, d.DailyLoss)
	assert.Equal(t, 21212.0, d.WeeklyLoss)
	assert.Equal(t, 91917.0, d.MonthlyLoss)
	assert.Equal(t, 551500.0, d.ConservativeRecovery)
	assert.Equal(t, 716950.0, d.ProbableRecovery)
}

func TestDeriveWaitCostsAreWeeklyMultiples(t *testing.T) {
	d := Derive(sampleResult())

	assert.Equal(t, d.WeeklyLoss, d.WaitOneWeek)
	assert.Equal(t, d.WeeklyLoss*4, d.WaitOneMonth)
	assert.Equal(t, d.WeeklyLoss*13, d.WaitNinetyDays)
}

func TestDeriveTopThreeShare(t *testing.T) {
	d := Derive(sampleResult())

	assert.Equal(t, 1_003_000.0, d.Top3Dollars)
	assert.Equal(t, 91.0, d.Top3Percent)
}

func TestDeriveSortsLeaksDescending(t *testing.T) {
	d := Derive(sampleResult())

	var prev float64 = 1 << 50
	for _, leak := range d.SortedLeaks {
		assert.LessOrEqual(t, leak.LeakageDollars, prev)
		prev = leak.LeakageDollars
	}
}

func TestDeriveLongTailExcludesTopThree(t *testing.T) {
	d := Derive(sampleResult())

	assert.Len(t, d.LongTail, 2)
	for _, leak := range d.LongTail {
		assert.NotContains(t, []string{"Pricing & Discounting", "Lead Follow-Up", "Billing & Collections"}, leak.Category)
	}
	assert.Equal(t, "Operational Waste", d.LongTail[0].Category)
}

func TestDeriveZeroTotal(t *testing.T) {
	d := Derive(&models.Result{})

	assert.Equal(t, 0.0, d.DailyLoss)
	assert.Equal(t, 0.0, d.Top3Percent)
	assert.Empty(t, d.LongTail)
}

func TestDeriveIsDeterministic(t *testing.T) {
	first := Derive(sampleResult())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Derive(sampleResult()))
	}
}
