package service

import (
	"context"

	"go.uber.org/zap"
)

// SignatureService is a placeholder for the Autenti electronic-signature
// integration.
//
// Target flow:
//  1. Upload the rendered contract PDF to the Autenti API
//  2. Add signatories: the contractor and the client
//  3. Send the e-signature invitation
//  4. Handle the status webhook and move the contract to SIGNED
//
// Required environment once implemented: AUTENTI_API_KEY,
// AUTENTI_API_URL, AUTENTI_WEBHOOK_SECRET.
// API documentation: https://autenti.com/api-documentation/
type SignatureService struct {
	logger *zap.Logger
}

func NewSignatureService(logger *zap.Logger) *SignatureService {
	return &SignatureService{logger: logger}
}

// SignatureResult is the placeholder response of the signature workflow.
type SignatureResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ContractNumber string `json:"contract_number"`
}

// Send does not contact Autenti yet; it returns a fixed not-implemented
// response so the frontend can show the manual-upload instruction.
func (s *SignatureService) Send(_ context.Context, contractNumber string) (*SignatureResult, error) {
	s.logger.Info("Signature workflow requested (not yet implemented)",
		zap.String("contract_number", contractNumber),
	)

	return &SignatureResult{
		Success:        false,
		Message:        "Integracja z Autenti API w przygotowaniu. Pobierz PDF i wyślij ręcznie przez panel Autenti.",
		ContractNumber: contractNumber,
	}, nil
}
