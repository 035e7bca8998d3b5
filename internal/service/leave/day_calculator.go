package leave

import (
	"time"

	"github.com/nafeesnawab/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var hoursPerWorkday = decimal.NewFromInt(8)

// DayCalculator turns a requested date range (or partial-day hours) into a
// day quantity. It is a pure calculation with no side effects.
type DayCalculator struct{}

func NewDayCalculator() *DayCalculator {
	return &DayCalculator{}
}

// ComputeDays returns the day quantity for a request.
//
// Partial-day requests with hours convert as hours/8 regardless of the date
// range. Full requests count every calendar day in the range inclusively; no
// weekend or holiday exclusion is applied.
func (c *DayCalculator) ComputeDays(startDate, endDate time.Time, isPartialDay bool, partialHours *float64) (decimal.Decimal, error) {
	if endDate.Before(startDate) {
		return decimal.Zero, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}

	if isPartialDay && partialHours != nil {
		return decimal.NewFromFloat(*partialHours).Div(hoursPerWorkday), nil
	}

	days := int64(endDate.Sub(startDate).Hours()/24) + 1
	return decimal.NewFromInt(days), nil
}
