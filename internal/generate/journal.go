package generate

import "math/rand"

var (
	journalSources   = []string{"AP", "AR", "JIB", "PA", "PROD", "MANUAL", "ADJ"}
	transactionTypes = []string{"INV", "PAY", "ADJ", "ALLOC", "ACCR", "REV"}
)

// JournalSource draws the subsystem the entry originated from.
func JournalSource(r *rand.Rand) string {
	return choose(r, journalSources)
}

// TransactionType draws the journal transaction type.
func TransactionType(r *rand.Rand) string {
	return choose(r, transactionTypes)
}

func choose(r *rand.Rand, options []string) string {
	return options[r.Intn(len(options))]
}
