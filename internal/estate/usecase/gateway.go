package usecase

import (
	"context"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/adapter/api"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

// Gateway is the slice of the API client the usecases need. *api.Client
// satisfies it; tests substitute a mock.
type Gateway interface {
	Get(ctx context.Context, path string) (*api.Response, error)
	Post(ctx context.Context, path string, body any) (*api.Response, error)
	Put(ctx context.Context, path string, body any) (*api.Response, error)
	Delete(ctx context.Context, path string) (*api.Response, error)
	Upload(ctx context.Context, path string, attachments []domain.MediaAttachment) (*api.Response, error)
}
