package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ledgerline/company-transfer-service/internal/adapter/http/models"
	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
	"github.com/ledgerline/company-transfer-service/internal/logger"
	"github.com/ledgerline/company-transfer-service/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type TransferController struct {
	service service_interfaces.TransferService
}

func NewTransferController(service service_interfaces.TransferService) *TransferController {
	return &TransferController{service: service}
}

func (c *TransferController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	handler := http.Handler(http.HandlerFunc(c.createTransfer))
	if authMiddleware != nil {
		handler = authMiddleware(handler)
	}
	mux.Handle("/transfers", handler)
}

func (c *TransferController) createTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, commons.ErrorResponse[models.TransferResponse]("method not allowed"))
		return
	}

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("validation failed", err.Error()))
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.TransferResponse]("validation failed", "amount must be numeric"))
		return
	}

	transfer, err := c.service.Transfer(r.Context(), req.DebitAccountNumber, req.CreditCompanyCode, req.CreditAccountNumber, amount)
	if err != nil {
		status, message := transferErrorResponse(err)
		if status == http.StatusInternalServerError {
			logError(r, err, nil)
		} else {
			logger.Info("transfer rejected", logger.Fields{
				"reason": message,
			})
		}
		writeJSON(w, status, commons.ErrorResponse[models.TransferResponse](message))
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("transfer completed successfully", models.NewTransferResponse(transfer)))
	logResponse(r, http.StatusCreated, start)
}

func transferErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrSameCompanyTransfer),
		errors.Is(err, domain.ErrAccountMismatch),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "failed to process transfer"
	}
}
