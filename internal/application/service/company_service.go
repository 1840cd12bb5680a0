package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/cache"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// CompanyService manages fleet customers and their vehicles
type CompanyService struct {
	companyRepo  repository.CompanyRepository
	vehicleRepo  repository.VehicleRepository
	categoryRepo repository.FuelCategoryRepository
	refCache     cache.ReferenceCache
	ttl          time.Duration
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo repository.CompanyRepository,
	vehicleRepo repository.VehicleRepository,
	categoryRepo repository.FuelCategoryRepository,
	refCache cache.ReferenceCache,
	ttl time.Duration,
) *CompanyService {
	return &CompanyService{
		companyRepo:  companyRepo,
		vehicleRepo:  vehicleRepo,
		categoryRepo: categoryRepo,
		refCache:     refCache,
		ttl:          ttl,
	}
}

// CompanyInput represents the fields of a company
type CompanyInput struct {
	Name          string
	NickName      string
	Address       string
	VatNo         string
	ContactNumber string
}

func (in *CompanyInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.NickName = strings.TrimSpace(in.NickName)
	in.Address = strings.TrimSpace(in.Address)
	in.VatNo = strings.TrimSpace(in.VatNo)
	in.ContactNumber = strings.TrimSpace(in.ContactNumber)
}

// CreateCompany creates a company after checking name, nickname and VAT
// number are not already in use
func (s *CompanyService) CreateCompany(ctx context.Context, input *CompanyInput) (*entity.Company, error) {
	input.normalize()
	if err := s.checkUnique(ctx, input, uuid.Nil); err != nil {
		return nil, err
	}

	company := &entity.Company{
		Name:          input.Name,
		NickName:      input.NickName,
		Address:       input.Address,
		VatNo:         input.VatNo,
		ContactNumber: input.ContactNumber,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	s.refCache.Invalidate(cache.KeyCompanies)
	return company, nil
}

// UpdateCompany replaces a company's fields
func (s *CompanyService) UpdateCompany(ctx context.Context, id uuid.UUID, input *CompanyInput) (*entity.Company, error) {
	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	input.normalize()
	if err := s.checkUnique(ctx, input, id); err != nil {
		return nil, err
	}

	company.Name = input.Name
	company.NickName = input.NickName
	company.Address = input.Address
	company.VatNo = input.VatNo
	company.ContactNumber = input.ContactNumber
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	s.refCache.Invalidate(cache.KeyCompanies)
	return company, nil
}

func (s *CompanyService) checkUnique(ctx context.Context, input *CompanyInput, self uuid.UUID) error {
	taken := func(c *entity.Company) bool { return c != nil && c.ID != self }

	existing, err := s.companyRepo.GetByName(ctx, input.Name)
	if err != nil {
		return err
	}
	if taken(existing) {
		return apperror.NewConflictError("Company name already exists")
	}

	if input.NickName != "" {
		existing, err = s.companyRepo.GetByNickName(ctx, input.NickName)
		if err != nil {
			return err
		}
		if taken(existing) {
			return apperror.NewConflictError("Company nick name already exists")
		}
	}

	if input.VatNo != "" {
		existing, err = s.companyRepo.GetByVatNo(ctx, input.VatNo)
		if err != nil {
			return err
		}
		if taken(existing) {
			return apperror.NewConflictError("Company VAT number already exists")
		}
	}
	return nil
}

// GetCompany retrieves a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, apperror.NewNotFoundError("Company")
	}
	return company, nil
}

// DeleteCompany soft-deletes a company
func (s *CompanyService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCompany(ctx, id); err != nil {
		return err
	}
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.refCache.Invalidate(cache.KeyCompanies, cache.VehiclesKey(id))
	return nil
}

// ListCompanies pages through companies
func (s *CompanyService) ListCompanies(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Company], error) {
	companies, total, err := s.companyRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(companies, pag), nil
}

// AllCompanies returns every active company, for pickers
func (s *CompanyService) AllCompanies(ctx context.Context) ([]entity.Company, error) {
	return cache.Remember(ctx, s.refCache, cache.KeyCompanies, s.ttl, s.companyRepo.ListAll)
}

// VehicleInput represents the fields of a vehicle
type VehicleInput struct {
	CompanyID      uuid.UUID
	VehicleNo      string
	Type           string
	FuelCategoryID uuid.UUID
}

// CreateVehicle registers a vehicle under a company
func (s *CompanyService) CreateVehicle(ctx context.Context, input *VehicleInput) (*entity.Vehicle, error) {
	if err := s.checkVehicleRefs(ctx, input, uuid.Nil); err != nil {
		return nil, err
	}

	vehicle := &entity.Vehicle{
		CompanyID:      input.CompanyID,
		VehicleNo:      strings.ToUpper(strings.TrimSpace(input.VehicleNo)),
		Type:           strings.TrimSpace(input.Type),
		FuelCategoryID: input.FuelCategoryID,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.refCache.Invalidate(cache.VehiclesKey(input.CompanyID))
	return vehicle, nil
}

// UpdateVehicle replaces a vehicle's fields. Moving it to another company
// invalidates both companies' vehicle lists.
func (s *CompanyService) UpdateVehicle(ctx context.Context, id uuid.UUID, input *VehicleInput) (*entity.Vehicle, error) {
	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkVehicleRefs(ctx, input, id); err != nil {
		return nil, err
	}

	previousCompany := vehicle.CompanyID
	vehicle.CompanyID = input.CompanyID
	vehicle.VehicleNo = strings.ToUpper(strings.TrimSpace(input.VehicleNo))
	vehicle.Type = strings.TrimSpace(input.Type)
	vehicle.FuelCategoryID = input.FuelCategoryID
	vehicle.Company = nil
	vehicle.FuelCategory = nil
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	s.refCache.Invalidate(cache.VehiclesKey(previousCompany), cache.VehiclesKey(input.CompanyID))
	return vehicle, nil
}

func (s *CompanyService) checkVehicleRefs(ctx context.Context, input *VehicleInput, self uuid.UUID) error {
	var fieldErrors []apperror.FieldError
	vehicleNo := strings.ToUpper(strings.TrimSpace(input.VehicleNo))
	switch {
	case vehicleNo == "":
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vehicle_no", Message: "Vehicle number is required"})
	case len(vehicleNo) > 15:
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vehicle_no", Message: "Vehicle number must be at most 15 characters"})
	default:
		existing, err := s.vehicleRepo.GetByVehicleNo(ctx, vehicleNo)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != self {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "vehicle_no", Message: "A vehicle with this number already exists"})
		}
	}

	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "company_id", Message: "Company not found"})
	}

	category, err := s.categoryRepo.GetByID(ctx, input.FuelCategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "fuel_category_id", Message: "Fuel category not found"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// GetVehicle retrieves a vehicle with its company and fuel category
func (s *CompanyService) GetVehicle(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, apperror.NewNotFoundError("Vehicle")
	}
	return vehicle, nil
}

// DeleteVehicle soft-deletes a vehicle
func (s *CompanyService) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	vehicle, err := s.GetVehicle(ctx, id)
	if err != nil {
		return err
	}
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.refCache.Invalidate(cache.VehiclesKey(vehicle.CompanyID))
	return nil
}

// ListVehicles pages through all vehicles
func (s *CompanyService) ListVehicles(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Vehicle], error) {
	vehicles, total, err := s.vehicleRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(vehicles, pag), nil
}

// CompanyVehicles returns a company's vehicles, for pickers
func (s *CompanyService) CompanyVehicles(ctx context.Context, companyID uuid.UUID) ([]entity.Vehicle, error) {
	return cache.Remember(ctx, s.refCache, cache.VehiclesKey(companyID), s.ttl, func(ctx context.Context) ([]entity.Vehicle, error) {
		return s.vehicleRepo.ListByCompany(ctx, companyID)
	})
}
