package generate

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	basins   = []string{"Permian", "Eagle Ford", "Bakken", "Marcellus", "Haynesville", "Utica", "Anadarko", "DJ Basin"}
	states   = []string{"TX", "ND", "PA", "LA", "OK", "CO", "WY", "NM"}
	counties = []string{"Midland", "Reeves", "Ward", "Loving", "Karnes", "DeWitt", "Mountrail", "Williams"}

	leasePrefixes = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	leaseSuffixes = []string{"Ranch", "Field", "Unit", "Lease", "Property", "Tract"}

	costCenterRegions = []string{"NORTH", "SOUTH", "EAST", "WEST", "CENTRAL"}
)

// WellID draws a well identifier: four-letter basin prefix plus a four-digit
// well number, e.g. PERM-1234.
func WellID(r *rand.Rand) string {
	basin := choose(r, basins)
	prefix := strings.ToUpper(basin)[:4]

	return fmt.Sprintf("%s-%d", prefix, intBetween(r, 1000, 9999))
}

// AFENumber draws an Authorization for Expenditure number.
func AFENumber(r *rand.Rand) string {
	return fmt.Sprintf("AFE-%d-%d", intBetween(r, 2020, 2024), intBetween(r, 1000, 9999))
}

// LeaseName draws a lease/property name from the fixed vocabularies.
func LeaseName(r *rand.Rand) string {
	return choose(r, leasePrefixes) + " " + choose(r, leaseSuffixes)
}

// PropertyID draws a property identifier keyed to a state.
func PropertyID(r *rand.Rand) string {
	return fmt.Sprintf("PROP-%s-%d", choose(r, states), intBetween(r, 10000, 99999))
}

// JIBNumber draws a Joint Interest Billing number incorporating the
// transaction's year-month.
func JIBNumber(r *rand.Rand, txDate time.Time) string {
	return fmt.Sprintf("JIB-%s-%d-%s", choose(r, states), intBetween(r, 1000, 9999), txDate.Format("200601"))
}

// CostCenter draws a regional cost center code.
func CostCenter(r *rand.Rand) string {
	return fmt.Sprintf("CC-%s-%d", choose(r, costCenterRegions), intBetween(r, 1, 9))
}

// Basin draws a basin name.
func Basin(r *rand.Rand) string {
	return choose(r, basins)
}

// State draws a two-letter state code.
func State(r *rand.Rand) string {
	return choose(r, states)
}

// County draws a county name.
func County(r *rand.Rand) string {
	return choose(r, counties)
}

// intBetween draws an integer in [min, max], both ends inclusive.
func intBetween(r *rand.Rand, min, max int) int {
	return min + r.Intn(max-min+1)
}
