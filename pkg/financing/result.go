package financing

// Mode identifies how a buyer pays for a unit.
type Mode string

const (
	ModeCash      Mode = "cash"
	ModeShortTerm Mode = "shortTerm"
	ModeFinanced  Mode = "financed"
)

// Modes lists every mode in comparison order.
var Modes = []Mode{ModeCash, ModeShortTerm, ModeFinanced}

// SimulationResult is implemented only by CashResult, ShortTermResult and
// FinancedResult. Consumers type-switch over the three.
type SimulationResult interface {
	Mode() Mode
	// ListPrice is the unit price before any discount or down payment.
	ListPrice() float64
	// AmountPaid is the nominal sum the buyer pays over the whole plan.
	AmountPaid() float64
	isSimulationResult()
}

// CashResult is a one-off payment with a discount.
type CashResult struct {
	OriginalPrice   float64 `json:"originalPrice"`
	DiscountPercent float64 `json:"discountPercent"`
	DiscountAmount  float64 `json:"discountAmount"`
	FinalPrice      float64 `json:"finalPrice"`
}

// ShortTermResult is a down payment followed by interest-free installments.
type ShortTermResult struct {
	OriginalPrice     float64 `json:"originalPrice"`
	DownPercent       float64 `json:"downPercent"`
	DownAmount        float64 `json:"downAmount"`
	InstallmentCount  int     `json:"installmentCount"`
	InstallmentAmount float64 `json:"installmentAmount"`
	TotalPaid         float64 `json:"totalPaid"`
}

// FinancedResult is a down payment followed by a Price-table amortization,
// optionally with annual balloons. Schedule holds at most MaxScheduleLines
// lines while TotalCost always spans the full term.
type FinancedResult struct {
	OriginalPrice        float64           `json:"originalPrice"`
	DownPercent          float64           `json:"downPercent"`
	DownAmount           float64           `json:"downAmount"`
	FinancedBalance      float64           `json:"financedBalance"`
	TermMonths           int               `json:"termMonths"`
	AnnualRate           float64           `json:"annualRate"`
	MonthlyRate          float64           `json:"monthlyRate"`
	IncludeBalloons      bool              `json:"includeBalloons"`
	BalloonAmount        float64           `json:"balloonAmount"`
	BalloonCount         int               `json:"balloonCount"`
	BalloonsPresentValue float64           `json:"balloonsPresentValue"`
	InstallmentAmount    float64           `json:"installmentAmount"`
	TotalCost            float64           `json:"totalCost"`
	Schedule             []InstallmentLine `json:"schedule"`
}

func (CashResult) Mode() Mode { return ModeCash }

func (r CashResult) ListPrice() float64 { return r.OriginalPrice }

func (r CashResult) AmountPaid() float64 { return r.FinalPrice }

func (CashResult) isSimulationResult() {}

func (ShortTermResult) Mode() Mode { return ModeShortTerm }

func (r ShortTermResult) ListPrice() float64 { return r.OriginalPrice }

func (r ShortTermResult) AmountPaid() float64 { return r.TotalPaid }

func (ShortTermResult) isSimulationResult() {}

func (FinancedResult) Mode() Mode { return ModeFinanced }

func (r FinancedResult) ListPrice() float64 { return r.OriginalPrice }

func (r FinancedResult) AmountPaid() float64 { return r.TotalCost }

func (FinancedResult) isSimulationResult() {}
