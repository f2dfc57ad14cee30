package controller

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/ledgerline/company-transfer-service/internal/adapter/http/models"
	"github.com/ledgerline/company-transfer-service/internal/commons"
	"github.com/ledgerline/company-transfer-service/internal/domain"
)

// serializeCompanyResponse is the response serializer handed to the
// enrollment service. The JSON is canonicalized (RFC 8785) so the bytes
// captured for idempotent replay match the first response exactly,
// independent of map ordering or encoder quirks.
func serializeCompanyResponse(company domain.Company) ([]byte, error) {
	envelope := commons.SuccessResponse("company enrolled successfully", models.NewCompanyResponse(company))

	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("marshal company response: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize company response: %w", err)
	}

	return canonical, nil
}
