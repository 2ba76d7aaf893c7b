package report

import (
	"math"
	"sort"

	"leak-diagnostic/internal/models"
)

// Recovery bands as fixed fractions of total leakage.
const (
	conservativeRecoveryRate = 0.50
	probableRecoveryRate     = 0.65
)

// Cost-of-waiting horizons expressed as multiples of weekly loss.
const (
	waitWeeksOneWeek    = 1
	waitWeeksOneMonth   = 4
	waitWeeksNinetyDays = 13
)

// Derived holds every figure computed from a Result. All dollar figures
// are rounded to whole dollars.
type Derived struct {
	DailyLoss   float64
	WeeklyLoss  float64
	MonthlyLoss float64

	ConservativeRecovery float64
	ProbableRecovery     float64

	WaitOneWeek    float64
	WaitOneMonth   float64
	WaitNinetyDays float64

	Top3Dollars float64
	Top3Percent float64

	SortedLeaks []models.Leak
	LongTail    []models.Leak
}

// Derive computes the full derived-figure set. Same Result, same output.
func Derive(result *models.Result) Derived {
	total := result.TotalLeakageDollars

	d := Derived{
		DailyLoss:            math.Round(total / 365),
		WeeklyLoss:           math.Round(total / 52),
		MonthlyLoss:          math.Round(total / 12),
		ConservativeRecovery: math.Round(total * conservativeRecoveryRate),
		ProbableRecovery:     math.Round(total * probableRecoveryRate),
	}
	d.WaitOneWeek = d.WeeklyLoss * waitWeeksOneWeek
	d.WaitOneMonth = d.WeeklyLoss * waitWeeksOneMonth
	d.WaitNinetyDays = d.WeeklyLoss * waitWeeksNinetyDays

	for _, leak := range result.TopThreeLeaks {
		d.Top3Dollars += leak.LeakageDollars
	}
	if total > 0 {
		d.Top3Percent = math.Round(d.Top3Dollars / total * 100)
	}

	d.SortedLeaks = make([]models.Leak, len(result.Leaks))
	copy(d.SortedLeaks, result.Leaks)
	sort.SliceStable(d.SortedLeaks, func(i, j int) bool {
		return d.SortedLeaks[i].LeakageDollars > d.SortedLeaks[j].LeakageDollars
	})

	top := make(map[string]bool, len(result.TopThreeLeaks))
	for _, leak := range result.TopThreeLeaks {
		top[leak.Category] = true
	}
	for _, leak := range d.SortedLeaks {
		if !top[leak.Category] {
			d.LongTail = append(d.LongTail, leak)
		}
	}
	return d
}
