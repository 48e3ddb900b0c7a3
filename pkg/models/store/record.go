package store

import "strings"

// Source columns every record source must provide.
const (
	ColumnDate             = "date"
	ColumnLocation         = "location"
	ColumnPropertyType     = "property_type"
	ColumnRentReceived     = "rent_received"
	ColumnAdditionalIncome = "additional_income"
	ColumnManagementFees   = "property_management_fees"
	ColumnUtilities        = "utilities"
	ColumnStrataFees       = "strata_fees"
	ColumnMaintenance      = "routine_maintenance"
	ColumnCouncilRates     = "council_rates"
	ColumnOtherMisc        = "other_misc_costs"
	ColumnNetIncome        = "net_income"
	ColumnVacancy          = "vacancy_status"
)

var RequiredColumns = []string{
	ColumnDate,
	ColumnLocation,
	ColumnPropertyType,
	ColumnRentReceived,
	ColumnAdditionalIncome,
	ColumnManagementFees,
	ColumnUtilities,
	ColumnStrataFees,
	ColumnMaintenance,
	ColumnCouncilRates,
	ColumnOtherMisc,
	ColumnNetIncome,
	ColumnVacancy,
}

// columnAliases maps header spellings seen in exported spreadsheets to the
// canonical column name.
var columnAliases = map[string]string{
	"other_miscellaneous_costs": ColumnOtherMisc,
	"management_fees":           ColumnManagementFees,
	"vacancy":                   ColumnVacancy,
}

// CanonicalColumn lowercases name and resolves known aliases.
func CanonicalColumn(name string) string {
	n := normalize(name)
	if alias, ok := columnAliases[n]; ok {
		return alias
	}
	return n
}

func normalize(name string) string {
	n := strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	n = strings.ToLower(n)
	return strings.NewReplacer(" ", "_", "-", "_").Replace(n)
}

// RawRecord is one untyped input row as read from a source.
type RawRecord struct {
	Line   int
	Fields map[string]string
}
