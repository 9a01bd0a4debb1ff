package ledger

import "github.com/sheikh-saqib/accounts-transfer-service/internal/models"

// lockOrder returns a and b in canonical acquisition order. The order is the
// byte-wise order of the identifiers, so lockOrder(a, b) and lockOrder(b, a)
// always put the same account first.
func lockOrder(a, b *models.Account) (first, second *models.Account) {
	if a.ID() < b.ID() {
		return a, b
	}
	return b, a
}
