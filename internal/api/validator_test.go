package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

func TestRegisterRulesReportsFailure(t *testing.T) {
	err := registerRules(validator.New(), map[string]validator.Func{"": func(validator.FieldLevel) bool { return true }})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "register validation")
}

func TestNewValidatorRules(t *testing.T) {
	v := newValidator()
	zero := decimal.Zero
	negative := decimal.NewFromInt(-1)

	assert.NoError(t, v.Struct(models.CreateAccountRequest{AccountID: "Id-1", Balance: &zero}))
	assert.Error(t, v.Struct(models.CreateAccountRequest{AccountID: "Id-1", Balance: &negative}))
	assert.Error(t, v.Struct(models.CreateAccountRequest{AccountID: "Id-1"}))

	assert.NoError(t, v.Struct(models.TransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: decimal.RequireFromString("0.01")}))
	assert.Error(t, v.Struct(models.TransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: decimal.Zero}))
}
