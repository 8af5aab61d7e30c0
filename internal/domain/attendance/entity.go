package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the closed set of attendance states. Leave here means the day
// was reclassified at check-out because less than the minimum duration was
// worked; it does not create a leave request.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
)

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // normalized to midnight, one record per employee per day
	CheckIn    time.Time
	CheckOut   *time.Time
	Status     Status
	WorkHours  decimal.Decimal
	ExtraHours decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// Work duration thresholds, in hours.
const (
	MinFullDayHours  = 6 // below this a check-out reclassifies the day as leave
	StandardDayHours = 8 // hours beyond this count as extra hours
)
