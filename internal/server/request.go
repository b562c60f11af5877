package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/iwvelando/financing-sim/pkg/datetime"
	"github.com/iwvelando/financing-sim/pkg/financing"
)

// amount accepts a JSON number or a decimal string typed by a user, such as
// "1.234,56". Strings go through the lenient parser, so garbage becomes 0.
type amount float64

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*a = amount(financing.ParseDecimalInput(text))
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	var number float64
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("amount must be a number or a decimal string: %w", err)
	}
	*a = amount(number)
	return nil
}

type simulateRequest struct {
	Mode             financing.Mode `json:"mode"`
	Price            amount         `json:"price"`
	StartDate        string         `json:"startDate"`
	DiscountPercent  amount         `json:"discountPercent"`
	DownPercent      amount         `json:"downPercent"`
	InstallmentCount int            `json:"installmentCount"`
	TermMonths       int            `json:"termMonths"`
	AnnualRate       amount         `json:"annualRate"`
	IncludeBalloons  bool           `json:"includeBalloons"`
	BalloonAmount    amount         `json:"balloonAmount"`
	Locale           string         `json:"locale"`
}

// unit wraps the request in a unit offering only the requested mode.
func (r simulateRequest) unit(now time.Time) (financing.Unit, error) {
	req := unitRequest{Name: string(r.Mode), Price: r.Price, StartDate: r.StartDate}
	switch r.Mode {
	case financing.ModeCash:
		req.Cash = &cashRequest{DiscountPercent: r.DiscountPercent}
	case financing.ModeShortTerm:
		req.ShortTerm = &shortTermRequest{DownPercent: r.DownPercent, InstallmentCount: r.InstallmentCount}
	case financing.ModeFinanced:
		req.Financed = &financedRequest{
			DownPercent:     r.DownPercent,
			TermMonths:      r.TermMonths,
			AnnualRate:      r.AnnualRate,
			IncludeBalloons: r.IncludeBalloons,
			BalloonAmount:   r.BalloonAmount,
		}
	default:
		return financing.Unit{}, fmt.Errorf("%w: %q", financing.ErrUnknownMode, r.Mode)
	}
	return req.unit(now)
}

type compareRequest struct {
	Locale string        `json:"locale"`
	Units  []unitRequest `json:"units"`
}

type unitRequest struct {
	Name      string            `json:"name"`
	Price     amount            `json:"price"`
	StartDate string            `json:"startDate"`
	Cash      *cashRequest      `json:"cash"`
	ShortTerm *shortTermRequest `json:"shortTerm"`
	Financed  *financedRequest  `json:"financed"`
}

type cashRequest struct {
	DiscountPercent amount `json:"discountPercent"`
}

type shortTermRequest struct {
	DownPercent      amount `json:"downPercent"`
	InstallmentCount int    `json:"installmentCount"`
}

type financedRequest struct {
	DownPercent     amount `json:"downPercent"`
	TermMonths      int    `json:"termMonths"`
	AnnualRate      amount `json:"annualRate"`
	IncludeBalloons bool   `json:"includeBalloons"`
	BalloonAmount   amount `json:"balloonAmount"`
}

func (r unitRequest) unit(now time.Time) (financing.Unit, error) {
	start, err := datetime.ParseDate(r.StartDate, now)
	if err != nil {
		return financing.Unit{}, fmt.Errorf("unit '%s': startDate: %w", r.Name, err)
	}

	unit := financing.Unit{Name: r.Name, Price: float64(r.Price), StartDate: start}
	if c := r.Cash; c != nil {
		unit.Cash = &financing.CashTerms{DiscountPercent: float64(c.DiscountPercent)}
	}
	if s := r.ShortTerm; s != nil {
		unit.ShortTerm = &financing.ShortTermTerms{
			DownPercent:      float64(s.DownPercent),
			InstallmentCount: s.InstallmentCount,
		}
	}
	if f := r.Financed; f != nil {
		if f.TermMonths < 1 {
			return financing.Unit{}, fmt.Errorf("unit '%s': financed termMonths %d: %w", r.Name, f.TermMonths, financing.ErrInvalidTerm)
		}
		unit.Financed = &financing.FinancedTerms{
			DownPercent:       float64(f.DownPercent),
			TermMonths:        f.TermMonths,
			AnnualRatePercent: float64(f.AnnualRate),
			IncludeBalloons:   f.IncludeBalloons,
			BalloonAmount:     float64(f.BalloonAmount),
		}
	}
	return unit, nil
}

func decodeJSON(r io.Reader, v interface{}) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
