package service

import (
	"context"
	"errors"
	"time"

	"nexbe-contract/internal/dto"
	"nexbe-contract/internal/models"
	"nexbe-contract/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrConsentRequired = errors.New("lead consent is required")

type LeadService struct {
	leadRepo *repository.LeadRepository
	logger   *zap.Logger
}

func NewLeadService(leadRepo *repository.LeadRepository, logger *zap.Logger) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		logger:   logger,
	}
}

func (s *LeadService) Capture(ctx context.Context, req *dto.CreateLeadRequest) (*models.Lead, error) {
	if !req.Consent {
		return nil, ErrConsentRequired
	}

	lead := &models.Lead{
		ID:            uuid.New(),
		Name:          req.Name,
		Phone:         req.Phone,
		Consent:       req.Consent,
		SourceMessage: req.SourceMessage,
		CreatedAt:     time.Now(),
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.logger.Info("Lead captured", zap.String("lead_id", lead.ID.String()))

	return lead, nil
}

func (s *LeadService) List(ctx context.Context) ([]*models.Lead, error) {
	return s.leadRepo.List(ctx)
}
