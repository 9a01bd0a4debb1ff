package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	errs "github.com/sheikh-saqib/accounts-transfer-service/internal/errors"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/models"
)

// AccountService is the ledger surface the HTTP layer needs.
type AccountService interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	Transfer(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal) error
}

// AccountsHandler exposes account and transfer endpoints.
type AccountsHandler struct {
	service  AccountService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAccountsHandler(service AccountService, logger *zap.Logger) *AccountsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountsHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger,
	}
}

// CreateAccount handles POST /v1/accounts.
func (h *AccountsHandler) CreateAccount(c *fiber.Ctx) error {
	var req models.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_FAILED", validationMessage(err))
	}

	account := models.NewAccount(req.AccountID, *req.Balance)
	if err := h.service.CreateAccount(c.UserContext(), account); err != nil {
		return h.domainError(c, err)
	}
	return success(c, fiber.StatusCreated, "account created", account)
}

// GetAccount handles GET /v1/accounts/:id.
func (h *AccountsHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.service.GetAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.domainError(c, err)
	}
	return success(c, fiber.StatusOK, "account found", account)
}

// Transfer handles POST /v1/accounts/transfer.
func (h *AccountsHandler) Transfer(c *fiber.Ctx) error {
	var req models.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_FAILED", validationMessage(err))
	}

	if err := h.service.Transfer(c.UserContext(), req.FromAccountID, req.ToAccountID, req.Amount); err != nil {
		return h.domainError(c, err)
	}
	return success(c, fiber.StatusOK, "transfer completed", req)
}

func (h *AccountsHandler) domainError(c *fiber.Ctx, err error) error {
	var domainErr *errs.DomainError
	if !errors.As(err, &domainErr) {
		h.logger.Error("unexpected error", zap.String("path", c.Path()), zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "internal server error")
	}

	status := fiber.StatusBadRequest
	if errors.Is(err, errs.ErrAccountNotFound) {
		status = fiber.StatusNotFound
	}
	return fail(c, status, domainErr.Code, domainErr.Message)
}
