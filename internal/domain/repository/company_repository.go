package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/fuelinvoice-api/internal/domain/entity"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
)

// CompanyRepository defines the interface for company data operations
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	GetByNickName(ctx context.Context, nickName string) (*entity.Company, error)
	GetByVatNo(ctx context.Context, vatNo string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Company, int64, error)
	// ListAll returns every active company ordered by name
	ListAll(ctx context.Context) ([]entity.Company, error)
}

// VehicleRepository defines the interface for vehicle data operations
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	// GetByID loads the vehicle with its company and fuel category
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	GetByVehicleNo(ctx context.Context, vehicleNo string) (*entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Vehicle, int64, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]entity.Vehicle, error)
}
