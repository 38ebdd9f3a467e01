package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/api/metrics"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// PropertyNotifier broadcasts listing announcements; failures are
// swallowed at the call site.
type PropertyNotifier interface {
	Send(ctx context.Context, recipient, channel, message string) error
}

// PropertyService implements the listing use-cases.
type PropertyService struct {
	repo     ports.PropertyRepository
	notifier PropertyNotifier
	log      zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, notifier PropertyNotifier, log zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, notifier: notifier, log: log}
}

// Create validates and stores a listing, then fires a best-effort
// broadcast notification to all users.
func (s *PropertyService) Create(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
	title := strings.TrimSpace(in.Title)
	city := strings.TrimSpace(in.City)
	address := strings.TrimSpace(in.Address)
	if title == "" || city == "" || address == "" || in.PriceEUR <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PropertyType == "" {
		in.PropertyType = domain.TypeApartment
	}
	if !domain.ValidPropertyType(in.PropertyType) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	prop := &domain.Property{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		City:         city,
		Address:      address,
		PriceEUR:     in.PriceEUR,
		PropertyType: in.PropertyType,
		Rooms:        in.Rooms,
		AreaM2:       in.AreaM2,
		IsForSale:    in.IsForSale,
		IsForRent:    in.IsForRent,
		CreatedAt:    now,
		Photos:       make([]domain.Photo, 0, len(in.PhotoPaths)),
	}
	for i, path := range in.PhotoPaths {
		prop.Photos = append(prop.Photos, domain.Photo{
			ID:        int64(i + 1),
			FilePath:  path,
			CreatedAt: now,
		})
	}

	created, err := s.repo.Create(ctx, prop)
	if err != nil {
		return nil, err
	}
	metrics.PropertiesCreatedTotal.WithLabelValues(string(created.PropertyType)).Inc()

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, domain.RecipientAllUsers, domain.ChannelPush, newListingMessage(created)); err != nil {
			s.log.Warn().Err(err).Int64("property_id", created.ID).Msg("listing notification failed")
		}
	}
	return created, nil
}

func newListingMessage(p *domain.Property) string {
	modes := make([]string, 0, 2)
	if p.IsForSale {
		modes = append(modes, "sale")
	}
	if p.IsForRent {
		modes = append(modes, "rent")
	}
	return fmt.Sprintf("New listing: %s in %s, %.0f EUR (%s)", p.Title, p.City, p.PriceEUR, strings.Join(modes, ", "))
}

func (s *PropertyService) Get(ctx context.Context, id int64) (*domain.Property, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PropertyService) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return s.repo.List(ctx, filter)
}

// Update applies a partial update; absent fields keep their value.
func (s *PropertyService) Update(ctx context.Context, id int64, in ports.UpdatePropertyInput) (*domain.Property, error) {
	prop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		prop.Title = *in.Title
	}
	if in.Description != nil {
		prop.Description = *in.Description
	}
	if in.City != nil {
		prop.City = *in.City
	}
	if in.Address != nil {
		prop.Address = *in.Address
	}
	if in.PriceEUR != nil {
		prop.PriceEUR = *in.PriceEUR
	}
	if in.PropertyType != nil {
		if !domain.ValidPropertyType(*in.PropertyType) {
			return nil, domain.ErrInvalidInput
		}
		prop.PropertyType = *in.PropertyType
	}
	if in.Rooms != nil {
		prop.Rooms = *in.Rooms
	}
	if in.AreaM2 != nil {
		prop.AreaM2 = *in.AreaM2
	}
	if in.IsForSale != nil {
		prop.IsForSale = *in.IsForSale
	}
	if in.IsForRent != nil {
		prop.IsForRent = *in.IsForRent
	}

	if err := s.repo.Update(ctx, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
