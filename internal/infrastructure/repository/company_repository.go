package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	domainRepo "github.com/sangkips/fuelinvoice-api/internal/domain/repository"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) domainRepo.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *companyRepository) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *companyRepository) GetByNickName(ctx context.Context, nickName string) (*entity.Company, error) {
	return r.first(ctx, "nick_name = ?", nickName)
}

func (r *companyRepository) GetByVatNo(ctx context.Context, vatNo string) (*entity.Company, error) {
	return r.first(ctx, "vat_no = ?", vatNo)
}

func (r *companyRepository) first(ctx context.Context, query string, arg interface{}) (*entity.Company, error) {
	var company entity.Company
	err := r.db.WithContext(ctx).First(&company, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &company, err
}

func (r *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *companyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Company{}, "id = ?", id).Error
}

func (r *companyRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error) {
	var companies []entity.Company
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Company{}).
		Scopes(Search(search, "name", "nick_name", "vat_no"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&companies).Error

	return companies, total, err
}

func (r *companyRepository) ListAll(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) domainRepo.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("FuelCategory").
		First(&vehicle, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) GetByVehicleNo(ctx context.Context, vehicleNo string) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := r.db.WithContext(ctx).First(&vehicle, "vehicle_no = ?", vehicleNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &vehicle, err
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	return r.db.WithContext(ctx).Omit("Company", "FuelCategory").Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Vehicle{}, "id = ?", id).Error
}

func (r *vehicleRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Vehicle, int64, error) {
	var vehicles []entity.Vehicle
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Vehicle{}).
		Scopes(Search(search, "vehicle_no", "type"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Company").
		Preload("FuelCategory").
		Order("created_at DESC").
		Find(&vehicles).Error

	return vehicles, total, err
}

func (r *vehicleRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Vehicle, error) {
	var vehicles []entity.Vehicle
	err := r.db.WithContext(ctx).
		Preload("FuelCategory").
		Where("company_id = ?", companyID).
		Order("vehicle_no ASC").
		Find(&vehicles).Error
	return vehicles, err
}
