// internal/interfaces/ad_repository.go
package interfaces

import (
	"context"

	"adcopy/internal/models"
)

// AdFilter defines the filter criteria for listing generation records.
type AdFilter struct {
	Platform string
	Limit    int
	Offset   int
}

// AdRepository defines the interface for ad record persistence.
type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	GetByID(ctx context.Context, id string) (*models.Ad, error)
	List(ctx context.Context, filter AdFilter) ([]*models.Ad, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	SetTags(ctx context.Context, id string, tags []string) error
	Delete(ctx context.Context, id string) error
}
