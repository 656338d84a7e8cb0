package domain

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PeriodRequest representa um intervalo de datas inclusivo (sem componente de hora)
type PeriodRequest struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// NewPeriodRequest valida e converte datas no formato YYYY-MM-DD
func NewPeriodRequest(startDate, endDate string) (PeriodRequest, error) {
	start, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return PeriodRequest{}, &InvalidPeriodError{Reason: fmt.Sprintf("start_date inválida %q", startDate)}
	}

	end, err := time.Parse(time.DateOnly, endDate)
	if err != nil {
		return PeriodRequest{}, &InvalidPeriodError{Reason: fmt.Sprintf("end_date inválida %q", endDate)}
	}

	period := PeriodRequest{StartDate: start, EndDate: end}
	if err := period.Validate(); err != nil {
		return PeriodRequest{}, err
	}

	return period, nil
}

// Validate garante que o período não está vazio nem invertido
func (p PeriodRequest) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return &InvalidPeriodError{Reason: "é necessário informar as datas de início e fim"}
	}

	if p.StartDate.After(p.EndDate) {
		return &InvalidPeriodError{Reason: fmt.Sprintf("a data de início %s é posterior à data de fim %s",
			p.StartDate.Format(time.DateOnly), p.EndDate.Format(time.DateOnly))}
	}

	return nil
}

// ShiftYears desloca as duas pontas do período em anos inteiros. 29/02 cai em 28/02
// quando o ano de destino não é bissexto.
func (p PeriodRequest) ShiftYears(years int) PeriodRequest {
	return PeriodRequest{
		StartDate: shiftDateByYears(p.StartDate, years),
		EndDate:   shiftDateByYears(p.EndDate, years),
	}
}

// Days retorna todas as datas do período no formato YYYY-MM-DD
func (p PeriodRequest) Days() []string {
	if p.StartDate.After(p.EndDate) {
		return []string{}
	}

	days := make([]string, 0)
	current := time.Date(p.StartDate.Year(), p.StartDate.Month(), p.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.EndDate.Year(), p.EndDate.Month(), p.EndDate.Day(), 0, 0, 0, 0, time.UTC)

	for !current.After(end) {
		days = append(days, current.Format(time.DateOnly))
		current = current.AddDate(0, 0, 1)
	}

	return days
}

type periodJSON struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MarshalJSON serializa as datas no formato YYYY-MM-DD
func (p PeriodRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(periodJSON{
		StartDate: p.StartDate.Format(time.DateOnly),
		EndDate:   p.EndDate.Format(time.DateOnly),
	})
}

func (p *PeriodRequest) UnmarshalJSON(data []byte) error {
	var raw periodJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	period, err := NewPeriodRequest(raw.StartDate, raw.EndDate)
	if err != nil {
		return err
	}

	*p = period
	return nil
}

func (p PeriodRequest) String() string {
	return p.StartDate.Format(time.DateOnly) + ".." + p.EndDate.Format(time.DateOnly)
}

func shiftDateByYears(date time.Time, years int) time.Time {
	year := date.Year() + years
	day := date.Day()

	if date.Month() == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}

	return time.Date(year, date.Month(), day, 0, 0, 0, 0, date.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
