package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

func TestLockOrderIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Id-1", "Id-2"},
		{"Id-10", "Id-9"},
		{"alpha", "beta"},
		{"no-digits", "Id-123"},
		{"b", "ab"},
	}

	for _, p := range pairs {
		a := models.NewAccount(p[0], decimal.Zero)
		b := models.NewAccount(p[1], decimal.Zero)

		firstAB, secondAB := lockOrder(a, b)
		firstBA, secondBA := lockOrder(b, a)

		assert.Same(t, firstAB, firstBA, "pair %v", p)
		assert.Same(t, secondAB, secondBA, "pair %v", p)
		assert.NotSame(t, firstAB, secondAB, "pair %v", p)
		assert.Less(t, firstAB.ID(), secondAB.ID(), "pair %v", p)
	}
}
