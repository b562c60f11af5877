package financing

import (
	"cloud.google.com/go/civil"
	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/datetime"
	"github.com/iwvelando/financing-sim/pkg/mathutil"
)

// InstallmentLine is one month of a payment schedule.
type InstallmentLine struct {
	Index             int        `json:"index"`
	DueDate           civil.Date `json:"dueDate"`
	InstallmentAmount float64    `json:"installmentAmount"`
	BalloonAmount     float64    `json:"balloonAmount"`
	TotalAmount       float64    `json:"totalAmount"`
}

// GenerateSchedule builds months installment lines starting one calendar
// month after start. A balloon is added to every twelfth line when
// includeBalloons is set.
func GenerateSchedule(installmentAmount, balloonAmount float64, start civil.Date, months int, includeBalloons bool) []InstallmentLine {
	if months <= 0 {
		return []InstallmentLine{}
	}

	schedule := make([]InstallmentLine, 0, months)
	for month := 1; month <= months; month++ {
		balloon := 0.0
		if includeBalloons && month%constants.BalloonFrequency == 0 {
			balloon = balloonAmount
		}
		schedule = append(schedule, InstallmentLine{
			Index:             month,
			DueDate:           datetime.AddMonths(start, month),
			InstallmentAmount: installmentAmount,
			BalloonAmount:     balloon,
			TotalAmount:       installmentAmount + balloon,
		})
	}
	return schedule
}

// ScheduleTotals holds cent-exact sums over a schedule.
type ScheduleTotals struct {
	Installments float64 `json:"installments"`
	Balloons     float64 `json:"balloons"`
	Total        float64 `json:"total"`
}

// SumSchedule totals the rounded amounts of each line in integer cents, which
// is what a buyer would actually be billed for the listed months.
func SumSchedule(schedule []InstallmentLine) ScheduleTotals {
	var installments, balloons int64
	for _, line := range schedule {
		installments += mathutil.ToCents(line.InstallmentAmount)
		balloons += mathutil.ToCents(line.BalloonAmount)
	}
	return ScheduleTotals{
		Installments: mathutil.FromCents(installments),
		Balloons:     mathutil.FromCents(balloons),
		Total:        mathutil.FromCents(installments + balloons),
	}
}
