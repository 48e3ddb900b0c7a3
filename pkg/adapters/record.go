package adapters

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/property-atlas/pkg/models/domain"
	"github.com/de-tools/property-atlas/pkg/models/store"
)

// groupedNumber matches amounts written with thousands separators, e.g. 1,250.50.
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006-01",
}

// MapStoreRecordToDomain parses the source fields of a raw row. Derived fields
// are left zero.
func MapStoreRecordToDomain(raw store.RawRecord) (domain.PeriodRecord, error) {
	var rec domain.PeriodRecord

	for _, col := range store.RequiredColumns {
		if _, ok := raw.Fields[col]; !ok {
			return rec, &domain.SchemaError{Line: raw.Line, Field: col, Reason: "missing field"}
		}
	}

	rec.Location = strings.TrimSpace(raw.Fields[store.ColumnLocation])
	if rec.Location == "" {
		return rec, &domain.SchemaError{Line: raw.Line, Field: store.ColumnLocation, Reason: "empty value"}
	}
	rec.PropertyType = strings.TrimSpace(raw.Fields[store.ColumnPropertyType])

	date, err := parseDate(raw.Fields[store.ColumnDate])
	if err != nil {
		return rec, &domain.SchemaError{
			Line:   raw.Line,
			Field:  store.ColumnDate,
			Value:  raw.Fields[store.ColumnDate],
			Reason: "not a calendar date",
		}
	}
	rec.Date = date

	amounts := []struct {
		column string
		dst    *float64
	}{
		{store.ColumnRentReceived, &rec.RentReceived},
		{store.ColumnAdditionalIncome, &rec.AdditionalIncome},
		{store.ColumnManagementFees, &rec.ManagementFees},
		{store.ColumnUtilities, &rec.Utilities},
		{store.ColumnStrataFees, &rec.StrataFees},
		{store.ColumnMaintenance, &rec.Maintenance},
		{store.ColumnCouncilRates, &rec.CouncilRates},
		{store.ColumnOtherMisc, &rec.OtherMisc},
	}
	for _, a := range amounts {
		v, err := parseNumber(raw, a.column)
		if err != nil {
			return rec, err
		}
		if v < 0 {
			return rec, &domain.SchemaError{
				Line:   raw.Line,
				Field:  a.column,
				Value:  raw.Fields[a.column],
				Reason: "must be non-negative",
			}
		}
		*a.dst = v
	}

	if rec.NetIncome, err = parseNumber(raw, store.ColumnNetIncome); err != nil {
		return rec, err
	}

	if rec.Vacancy, err = parseNumber(raw, store.ColumnVacancy); err != nil {
		return rec, err
	}
	if rec.Vacancy < 0 || rec.Vacancy > 1 {
		return rec, &domain.SchemaError{
			Line:   raw.Line,
			Field:  store.ColumnVacancy,
			Value:  raw.Fields[store.ColumnVacancy],
			Reason: "must be a fraction between 0 and 1",
		}
	}

	return rec, nil
}

func parseNumber(raw store.RawRecord, column string) (float64, error) {
	text := strings.TrimSpace(raw.Fields[column])
	number := text
	if groupedNumber.MatchString(text) {
		number = strings.ReplaceAll(text, ",", "")
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &domain.SchemaError{Line: raw.Line, Field: column, Value: text, Reason: "not a number"}
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
