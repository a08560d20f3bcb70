package account

import "strings"

// Kind classifies accounts into the four generation buckets.
type Kind string

const (
	KindRevenue          Kind = "revenue"
	KindOperatingExpense Kind = "operating_expense"
	KindCapex            Kind = "capex"
	KindAdmin            Kind = "admin"
)

// Class is the wire-level account type carried on every GL record.
type Class string

const (
	ClassRevenue Class = "REVENUE"
	ClassExpense Class = "EXPENSE"
)

// Account represents a single GL account. Accounts are immutable and defined
// once at startup by the Catalog.
type Account struct {
	Code string
	Name string
	Type Class
}

// IsRevenue reports whether the account books to the revenue side.
func (a Account) IsRevenue() bool {
	return a.Type == ClassRevenue
}

// IsCapex reports whether the account is a capital expenditure account.
// Capex accounts live in the 6xxx range.
func (a Account) IsCapex() bool {
	return strings.HasPrefix(a.Code, "6")
}

// Catalog is the static chart of accounts, grouped by kind.
type Catalog struct {
	byKind map[Kind][]Account
}

// NewCatalog builds the fixed QByte-style chart of accounts.
func NewCatalog() *Catalog {
	return &Catalog{
		byKind: map[Kind][]Account{
			KindRevenue: {
				{Code: "4100", Name: "Crude Oil Sales Revenue", Type: ClassRevenue},
				{Code: "4200", Name: "Natural Gas Sales Revenue", Type: ClassRevenue},
				{Code: "4300", Name: "NGL Sales Revenue", Type: ClassRevenue},
				{Code: "4400", Name: "Condensate Sales Revenue", Type: ClassRevenue},
				{Code: "4500", Name: "Gathering & Processing Revenue", Type: ClassRevenue},
			},
			KindOperatingExpense: {
				{Code: "5100", Name: "Lease Operating Expense", Type: ClassExpense},
				{Code: "5200", Name: "Workover Expense", Type: ClassExpense},
				{Code: "5300", Name: "Well Service Expense", Type: ClassExpense},
				{Code: "5400", Name: "Production Equipment Maintenance", Type: ClassExpense},
				{Code: "5500", Name: "Field Operations Expense", Type: ClassExpense},
				{Code: "5600", Name: "Gathering & Transportation", Type: ClassExpense},
				{Code: "5700", Name: "Processing & Treating", Type: ClassExpense},
			},
			KindCapex: {
				{Code: "6100", Name: "Drilling Costs", Type: ClassExpense},
				{Code: "6200", Name: "Completion Costs", Type: ClassExpense},
				{Code: "6300", Name: "Facilities & Equipment", Type: ClassExpense},
				{Code: "6400", Name: "Land & Lease Acquisition", Type: ClassExpense},
				{Code: "6500", Name: "Geological & Geophysical", Type: ClassExpense},
			},
			KindAdmin: {
				{Code: "7100", Name: "General & Administrative", Type: ClassExpense},
				{Code: "7200", Name: "Overhead Allocation", Type: ClassExpense},
				{Code: "7300", Name: "Insurance Expense", Type: ClassExpense},
				{Code: "7400", Name: "Property Tax", Type: ClassExpense},
			},
		},
	}
}

// ListByType returns the accounts of one kind, in catalog order.
func (c *Catalog) ListByType(kind Kind) []Account {
	return c.byKind[kind]
}

// All returns every account across all kinds.
func (c *Catalog) All() []Account {
	all := make([]Account, 0,
		len(c.byKind[KindRevenue])+len(c.byKind[KindOperatingExpense])+
			len(c.byKind[KindCapex])+len(c.byKind[KindAdmin]))

	for _, kind := range []Kind{KindRevenue, KindOperatingExpense, KindCapex, KindAdmin} {
		all = append(all, c.byKind[kind]...)
	}

	return all
}

// TypeInfo maps account code prefixes to a human description.
func (c *Catalog) TypeInfo() map[string]string {
	return map[string]string{
		"4xxx": "Revenue Accounts",
		"5xxx": "Operating Expense Accounts",
		"6xxx": "Capital Expenditure Accounts",
		"7xxx": "Administrative Accounts",
	}
}
