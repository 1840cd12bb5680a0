package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
)

// SettingsService manages the seller profile and payment methods
type SettingsService struct {
	profileRepo repository.BusinessProfileRepository
	paymentRepo repository.PaymentMethodRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(profileRepo repository.BusinessProfileRepository, paymentRepo repository.PaymentMethodRepository) *SettingsService {
	return &SettingsService{
		profileRepo: profileRepo,
		paymentRepo: paymentRepo,
	}
}

// GetProfile returns the business profile, empty when none was saved yet
func (s *SettingsService) GetProfile(ctx context.Context) (*entity.BusinessProfile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.BusinessProfile{}
	}
	return profile, nil
}

// ProfileInput represents the seller details printed on invoices
type ProfileInput struct {
	CompanyName    string
	CompanyAddress string
	CompanyContact string
	CompanyVatNo   string
	PlaceOfSupply  string
}

// UpdateProfile overwrites the business profile
func (s *SettingsService) UpdateProfile(ctx context.Context, input *ProfileInput) (*entity.BusinessProfile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	profile.CompanyName = strings.TrimSpace(input.CompanyName)
	profile.CompanyAddress = strings.TrimSpace(input.CompanyAddress)
	profile.CompanyContact = strings.TrimSpace(input.CompanyContact)
	profile.CompanyVatNo = strings.TrimSpace(input.CompanyVatNo)
	profile.PlaceOfSupply = strings.TrimSpace(input.PlaceOfSupply)

	if profile.CompanyName == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "company_name", Message: "Company name is required"},
		})
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// PaymentMethods lists every payment method
func (s *SettingsService) PaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error) {
	return s.paymentRepo.List(ctx)
}

// PaymentMethod returns a payment method by ID
func (s *SettingsService) PaymentMethod(ctx context.Context, id uuid.UUID) (*entity.PaymentMethod, error) {
	method, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, apperror.NewNotFoundError("Payment method")
	}
	return method, nil
}
