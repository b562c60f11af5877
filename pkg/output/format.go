// Package output provides utilities for formatting and displaying comparison results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/financing-sim/pkg/datetime"
	"github.com/iwvelando/financing-sim/pkg/financing"
	"github.com/iwvelando/financing-sim/pkg/format"
	"github.com/iwvelando/financing-sim/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Row is the flattened view of one simulation result shown on a comparison card.
type Row struct {
	Mode             financing.Mode
	Upfront          float64
	InstallmentCount int
	Installment      float64
	AmountPaid       float64
	Notes            []string
}

// Summarize flattens a result into a Row.
func Summarize(result financing.SimulationResult, locale format.Locale) Row {
	row := Row{Mode: result.Mode(), AmountPaid: result.AmountPaid()}
	switch r := result.(type) {
	case financing.CashResult:
		row.Upfront = r.FinalPrice
		row.Notes = append(row.Notes, fmt.Sprintf("%s%% discount (%s)",
			strconv.FormatFloat(r.DiscountPercent, 'f', -1, 64), locale.Currency(r.DiscountAmount)))
	case financing.ShortTermResult:
		row.Upfront = r.DownAmount
		row.InstallmentCount = r.InstallmentCount
		row.Installment = r.InstallmentAmount
		row.Notes = append(row.Notes, "no interest")
	case financing.FinancedResult:
		row.Upfront = r.DownAmount
		row.InstallmentCount = r.TermMonths
		row.Installment = r.InstallmentAmount
		row.Notes = append(row.Notes, fmt.Sprintf("%s%% a year (%s%% a month)",
			strconv.FormatFloat(r.AnnualRate, 'f', -1, 64),
			strconv.FormatFloat(r.MonthlyRate*100, 'f', 4, 64)))
		if r.BalloonCount > 0 {
			row.Notes = append(row.Notes, fmt.Sprintf("%d balloons of %s", r.BalloonCount, locale.Currency(r.BalloonAmount)))
		}
	}
	return row
}

// PrettyFormat writes a human-readable rather than machine-readable table
// for each comparison, followed by the schedule of any financed result.
func PrettyFormat(w io.Writer, results []financing.Comparison, locale format.Locale) error {
	p := message.NewPrinter(locale.Tag)
	for i, comparison := range results {
		price := 0.0
		if len(comparison.Results) > 0 {
			price = comparison.Results[0].ListPrice()
		}
		if _, err := fmt.Fprintf(w, "--- Results for unit %s (%s) ---\n", comparison.Unit, locale.Currency(price)); err != nil {
			return err
		}

		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		fmt.Fprintln(tw, "Mode\t| Upfront\t| Installments\t| Total paid\t| Notes")
		fmt.Fprintln(tw, "____\t| _______\t| ____________\t| __________\t| _____")
		for _, result := range comparison.Results {
			row := Summarize(result, locale)
			installments := "-"
			if row.InstallmentCount > 0 {
				installments = p.Sprintf("%d x %s", row.InstallmentCount, locale.Currency(row.Installment))
			}
			notes := strings.Join(row.Notes, ", ")
			if row.Mode == comparison.Cheapest {
				notes = strings.TrimPrefix(notes+", cheapest", ", ")
			}
			fmt.Fprintf(tw, "%s\t| %s\t| %s\t| %s\t| %s\n",
				row.Mode, locale.Currency(row.Upfront), installments, locale.Currency(row.AmountPaid), notes)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		if financed, ok := financing.Find(comparison.Results, financing.ModeFinanced).(financing.FinancedResult); ok {
			if err := prettySchedule(w, p, financed, locale); err != nil {
				return err
			}
		}

		if i < len(results)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettySchedule(w io.Writer, p *message.Printer, result financing.FinancedResult, locale format.Locale) error {
	if _, err := p.Fprintf(w, "Schedule (first %d of %d months)\n", len(result.Schedule), result.TermMonths); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintln(tw, "#\t| Due date\t| Installment\t| Balloon\t| Total")
	for _, line := range result.Schedule {
		fmt.Fprintf(tw, "%d\t| %s\t| %s\t| %s\t| %s\n", line.Index, datetime.Format(line.DueDate),
			locale.Currency(line.InstallmentAmount), locale.Currency(line.BalloonAmount), locale.Currency(line.TotalAmount))
	}
	totals := financing.SumSchedule(result.Schedule)
	fmt.Fprintf(tw, "\t| listed\t| %s\t| %s\t| %s\n",
		locale.Currency(totals.Installments), locale.Currency(totals.Balloons), locale.Currency(totals.Total))
	return tw.Flush()
}

// CsvFormat writes one row per unit and mode in comma-separated value format.
// Amounts are plain decimals with two places.
func CsvFormat(w io.Writer, results []financing.Comparison) error {
	writer := csv.NewWriter(w)
	header := []string{"unit", "mode", "list price", "upfront", "installments", "installment", "total paid", "cheapest", "notes"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, comparison := range results {
		for _, result := range comparison.Results {
			row := Summarize(result, format.LocaleFor(language.AmericanEnglish))
			record := []string{
				comparison.Unit,
				string(row.Mode),
				money(result.ListPrice()),
				money(row.Upfront),
				strconv.Itoa(row.InstallmentCount),
				money(row.Installment),
				money(row.AmountPaid),
				strconv.FormatBool(row.Mode == comparison.Cheapest),
				strings.Join(row.Notes, "; "),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of results.
func CsvString(results []financing.Comparison) string {
	var b strings.Builder
	if err := CsvFormat(&b, results); err != nil {
		return ""
	}
	return b.String()
}

func money(amount float64) string {
	return mathutil.RoundMoney(amount).StringFixed(2)
}
