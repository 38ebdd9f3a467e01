package ports

import (
	"context"

	"github.com/estatehub/realty-platform/internal/core/domain"
)

// CreatePropertyInput carries the fields accepted when listing an object.
type CreatePropertyInput struct {
	Title        string
	Description  string
	City         string
	Address      string
	PriceEUR     float64
	PropertyType domain.PropertyType
	Rooms        int
	AreaM2       float64
	IsForSale    bool
	IsForRent    bool
	// PhotoPaths are file-storage paths already persisted by the media
	// collaborator; only the metadata is recorded here.
	PhotoPaths []string
}

// UpdatePropertyInput applies partial updates; nil fields are left untouched.
type UpdatePropertyInput struct {
	Title        *string
	Description  *string
	City         *string
	Address      *string
	PriceEUR     *float64
	PropertyType *domain.PropertyType
	Rooms        *int
	AreaM2       *float64
	IsForSale    *bool
	IsForRent    *bool
}

// PropertyRepository is the persistence interface for listings.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	FindByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
}

// PropertyService defines the listing use-cases.
type PropertyService interface {
	Create(ctx context.Context, in CreatePropertyInput) (*domain.Property, error)
	Get(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	Update(ctx context.Context, id int64, in UpdatePropertyInput) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
}
