package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/request"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/response"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/service"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/validation"
)

// AccountHandler handles HTTP requests for account endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the accountService.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Accounts handles GET requests to retrieve all accounts, seeded defaults first.
//
// Endpoint: GET /api/accounts
// Response: 200 OK with array of Account
// Error: 500 Internal Server Error if retrieval fails
func (h *AccountHandler) Accounts(w http.ResponseWriter, _ *http.Request) {
	accounts, err := h.accountService.GetAccounts()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, accounts)
}

// CreateAccount handles POST requests to create a new custom account.
//
// Endpoint: POST /api/accounts
// Request Body: CreateAccountRequest (name)
// Response: 201 Created with Account
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the account name is already taken
// Error: 500 Internal Server Error if creation fails
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(req.Name)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateAccountName) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateAccountName.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, account)
}

// RenameAccount handles PUT requests to rename an account. The rename
// cascades to every position referencing the old name in one transaction.
//
// Endpoint: PUT /api/accounts/{uuid}
// Request Body: RenameAccountRequest (name)
// Response: 200 OK with updated Account
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if account not found
// Error: 409 Conflict if the new name is already taken
// Error: 500 Internal Server Error if the rename fails
func (h *AccountHandler) RenameAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.RenameAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRenameAccount(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	account, err := h.accountService.RenameAccount(accountID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrDuplicateAccountName):
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateAccountName.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to rename account", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE requests to remove a custom account. Positions
// referencing it are reassigned to the default account; seeded accounts
// cannot be deleted.
//
// Endpoint: DELETE /api/accounts/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if account not found
// Error: 409 Conflict if the account is a protected default
// Error: 500 Internal Server Error if deletion fails
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "uuid")

	if err := h.accountService.DeleteAccount(accountID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAccountNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAccountNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrAccountProtected):
			response.RespondError(w, http.StatusConflict, apperrors.ErrAccountProtected.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to delete account", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
