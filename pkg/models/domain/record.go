package domain

import "time"

// PeriodRecord is one property's financials for one period. Source fields come
// straight from the input; derived fields are filled once at load.
type PeriodRecord struct {
	Location     string
	PropertyType string
	Date         time.Time

	RentReceived     float64
	AdditionalIncome float64
	ManagementFees   float64
	Utilities        float64
	StrataFees       float64
	Maintenance      float64
	CouncilRates     float64
	OtherMisc        float64
	NetIncome        float64
	Vacancy          float64 // fraction of the period vacant, 0..1

	GrossIncome       float64
	OperatingExpenses float64
	NOI               float64
	TotalIncome       float64
	TotalExpenses     float64 // operating expenses without OtherMisc

	Year        int
	Month       time.Month
	Quarter     int
	YearMonth   string // 2024-03
	YearQuarter string // 2024-Q1
}

// Field names a numeric column of a PeriodRecord that can be aggregated.
type Field string

const (
	FieldRentReceived      Field = "rent_received"
	FieldAdditionalIncome  Field = "additional_income"
	FieldManagementFees    Field = "property_management_fees"
	FieldUtilities         Field = "utilities"
	FieldStrataFees        Field = "strata_fees"
	FieldMaintenance       Field = "routine_maintenance"
	FieldCouncilRates      Field = "council_rates"
	FieldOtherMisc         Field = "other_misc_costs"
	FieldNetIncome         Field = "net_income"
	FieldVacancy           Field = "vacancy_status"
	FieldGrossIncome       Field = "gross_income"
	FieldOperatingExpenses Field = "operating_expenses"
	FieldNOI               Field = "noi"
	FieldTotalIncome       Field = "total_income"
	FieldTotalExpenses     Field = "total_expenses"
)

// Known reports whether f names a PeriodRecord column.
func (f Field) Known() bool {
	switch f {
	case FieldRentReceived, FieldAdditionalIncome, FieldManagementFees, FieldUtilities,
		FieldStrataFees, FieldMaintenance, FieldCouncilRates, FieldOtherMisc, FieldNetIncome,
		FieldVacancy, FieldGrossIncome, FieldOperatingExpenses, FieldNOI, FieldTotalIncome,
		FieldTotalExpenses:
		return true
	}
	return false
}

// Value reads the field from r. Unknown fields read as zero; check Known first.
func (f Field) Value(r PeriodRecord) float64 {
	switch f {
	case FieldRentReceived:
		return r.RentReceived
	case FieldAdditionalIncome:
		return r.AdditionalIncome
	case FieldManagementFees:
		return r.ManagementFees
	case FieldUtilities:
		return r.Utilities
	case FieldStrataFees:
		return r.StrataFees
	case FieldMaintenance:
		return r.Maintenance
	case FieldCouncilRates:
		return r.CouncilRates
	case FieldOtherMisc:
		return r.OtherMisc
	case FieldNetIncome:
		return r.NetIncome
	case FieldVacancy:
		return r.Vacancy
	case FieldGrossIncome:
		return r.GrossIncome
	case FieldOperatingExpenses:
		return r.OperatingExpenses
	case FieldNOI:
		return r.NOI
	case FieldTotalIncome:
		return r.TotalIncome
	case FieldTotalExpenses:
		return r.TotalExpenses
	}
	return 0
}

// ExpenseCategory is one of the six operating expense buckets.
type ExpenseCategory struct {
	Label string
	Field Field
}

// ExpenseCategories is fixed in both membership and order.
var ExpenseCategories = []ExpenseCategory{
	{Label: "Management", Field: FieldManagementFees},
	{Label: "Utilities", Field: FieldUtilities},
	{Label: "Strata", Field: FieldStrataFees},
	{Label: "Maintenance", Field: FieldMaintenance},
	{Label: "Council Rates", Field: FieldCouncilRates},
	{Label: "Other", Field: FieldOtherMisc},
}
