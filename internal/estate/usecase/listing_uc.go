package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/adapter/api"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
)

const (
	listingsPath  = "/api/v1/listings/"
	favoritesPath = "/api/v1/favorites/"
)

// ProgressFunc receives coarse upload milestones (percent complete).
type ProgressFunc func(percent int)

// ListingUsecase covers listing reads, updates, favorites, and the
// two-phase create-then-attach-media protocol.
type ListingUsecase struct {
	gateway     Gateway
	resolver    *api.Resolver
	logger      *zap.Logger
	baseURL     string
	mediaPrefix string
	createPaths []string
}

func NewListingUsecase(gateway Gateway, resolver *api.Resolver, logger *zap.Logger, baseURL, mediaPrefix string, createPaths []string) *ListingUsecase {
	return &ListingUsecase{
		gateway:     gateway,
		resolver:    resolver,
		logger:      logger,
		baseURL:     baseURL,
		mediaPrefix: mediaPrefix,
		createPaths: createPaths,
	}
}

func (uc *ListingUsecase) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Listing, error) {
	path := listingsPath
	if query := filterQuery(filter); query != "" {
		path += "?" + query
	}
	resp, err := uc.gateway.Get(ctx, path)
	if err != nil {
		uc.logger.Warn("listing search failed", zap.Error(err))
		return nil, err
	}

	items := api.UnwrapList(resp.Body, "results", "listings", "data")
	listings := make([]domain.Listing, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			listings = append(listings, uc.parseListing(m))
		}
	}
	return listings, nil
}

func (uc *ListingUsecase) Get(ctx context.Context, id string) (*domain.Listing, error) {
	resp, err := uc.gateway.Get(ctx, listingsPath+id+"/")
	if err != nil {
		return nil, err
	}
	m := api.UnwrapObject(resp.Body, "listing", "data")
	if m == nil {
		return nil, fmt.Errorf("unexpected listing payload shape")
	}
	listing := uc.parseListing(m)
	return &listing, nil
}

// CreateWithMedia runs the two-phase creation protocol. Phase 1 creates
// the record, resolving the unstable creation route across the configured
// candidates; a failure here aborts with nothing created. Phase 2 uploads
// every attachment in one batched call. A phase-2 failure does NOT undo
// phase 1: the created listing is still returned, together with an error
// wrapping domain.ErrMediaUploadFailed, and no rollback is issued. Record
// creation and media attachment are independent units of durability.
func (uc *ListingUsecase) CreateWithMedia(ctx context.Context, draft *domain.ListingDraft, progress ProgressFunc) (*domain.Listing, error) {
	if len(draft.Attachments) == 0 {
		return nil, domain.ErrNoMediaAttached
	}
	draft.EnsurePrimary()
	report := func(pct int) {
		if progress != nil {
			progress(pct)
		}
	}

	report(30)
	payload := draftPayload(draft)
	resp, err := uc.resolver.Resolve(ctx, uc.createPaths, func(ctx context.Context, path string) (*api.Response, error) {
		return uc.gateway.Post(ctx, path, payload)
	})
	if err != nil {
		uc.logger.Error("listing creation failed", zap.Error(err))
		return nil, err
	}

	m := api.UnwrapObject(resp.Body, "listing", "data")
	listing := uc.parseListing(m)
	uc.logger.Info("listing created", zap.String("listing_id", listing.ID))
	if listing.ID == "" {
		// Created, but the response shape hid the id; uploading is
		// impossible, so surface it the same way as a failed phase 2.
		return &listing, fmt.Errorf("%w: creation response carried no listing id", domain.ErrMediaUploadFailed)
	}

	report(60)
	if _, err := uc.gateway.Upload(ctx, listingsPath+listing.ID+"/media/", draft.Attachments); err != nil {
		uc.logger.Warn("media upload failed after listing creation",
			zap.String("listing_id", listing.ID),
			zap.Int("attachments", len(draft.Attachments)),
			zap.Error(err))
		return &listing, fmt.Errorf("%w: %v", domain.ErrMediaUploadFailed, err)
	}

	report(100)
	return &listing, nil
}

func (uc *ListingUsecase) Update(ctx context.Context, id string, draft *domain.ListingDraft) (*domain.Listing, error) {
	resp, err := uc.gateway.Put(ctx, listingsPath+id+"/", draftPayload(draft))
	if err != nil {
		return nil, err
	}
	listing := uc.parseListing(api.UnwrapObject(resp.Body, "listing", "data"))
	return &listing, nil
}

func (uc *ListingUsecase) Delete(ctx context.Context, id string) error {
	_, err := uc.gateway.Delete(ctx, listingsPath+id+"/")
	return err
}

func (uc *ListingUsecase) SetStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	_, err := uc.gateway.Put(ctx, listingsPath+id+"/status/", map[string]string{"status": string(status)})
	return err
}

func (uc *ListingUsecase) AddFavorite(ctx context.Context, id string) error {
	_, err := uc.gateway.Post(ctx, listingsPath+id+"/favorite/", nil)
	return err
}

func (uc *ListingUsecase) RemoveFavorite(ctx context.Context, id string) error {
	_, err := uc.gateway.Delete(ctx, listingsPath+id+"/favorite/")
	return err
}

func (uc *ListingUsecase) Favorites(ctx context.Context) ([]domain.Listing, error) {
	resp, err := uc.gateway.Get(ctx, favoritesPath)
	if err != nil {
		return nil, err
	}
	items := api.UnwrapList(resp.Body, "results", "favorites", "data")
	listings := make([]domain.Listing, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			listings = append(listings, uc.parseListing(m))
		}
	}
	return listings, nil
}

// draftPayload builds the non-media creation payload. Category-conditional
// fields are included only for the matching category.
func draftPayload(draft *domain.ListingDraft) map[string]any {
	payload := map[string]any{
		"title":       draft.Title,
		"description": draft.Description,
		"category":    string(draft.Category),
		"price":       draft.Price,
		"address":     draft.Address,
		"city":        draft.City,
		"region":      draft.Region,
	}
	if draft.Category == domain.CategoryLand {
		payload["size_acres"] = draft.SizeAcres
	} else {
		payload["bedrooms"] = draft.Bedrooms
		payload["bathrooms"] = draft.Bathrooms
		payload["area_sqft"] = draft.AreaSqFt
	}
	return payload
}

func filterQuery(filter domain.SearchFilter) string {
	values := url.Values{}
	if filter.Query != "" {
		values.Set("q", filter.Query)
	}
	if filter.Category != "" {
		values.Set("category", string(filter.Category))
	}
	if filter.City != "" {
		values.Set("city", filter.City)
	}
	if filter.Region != "" {
		values.Set("region", filter.Region)
	}
	if filter.MinPrice > 0 {
		values.Set("min_price", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		values.Set("max_price", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}
	if filter.Status != "" {
		values.Set("status", string(filter.Status))
	}
	if filter.Page > 0 {
		values.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		values.Set("limit", strconv.Itoa(filter.Limit))
	}
	return values.Encode()
}

func (uc *ListingUsecase) parseListing(m map[string]any) domain.Listing {
	if m == nil {
		return domain.Listing{}
	}
	listing := domain.Listing{
		ID:          anyID(m, "id"),
		OwnerID:     anyID(m, "owner_id"),
		Title:       str(m, "title"),
		Description: str(m, "description"),
		Category:    domain.Category(str(m, "category")),
		Price:       num(m, "price"),
		Address:     str(m, "address"),
		City:        str(m, "city"),
		Region:      str(m, "region"),
		Bedrooms:    int(num(m, "bedrooms")),
		Bathrooms:   int(num(m, "bathrooms")),
		AreaSqFt:    num(m, "area_sqft"),
		SizeAcres:   num(m, "size_acres"),
		Status:      domain.ListingStatus(str(m, "status")),
		CreatedAt:   when(m, "created_at"),
		UpdatedAt:   when(m, "updated_at"),
	}
	if listing.OwnerID == "" {
		listing.OwnerID = anyID(m, "user_id")
	}

	for _, key := range []string{"media", "images"} {
		items, ok := m[key].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			switch v := item.(type) {
			case string:
				listing.Media = append(listing.Media, domain.MediaAsset{
					ListingID: listing.ID,
					URL:       api.NormalizeMediaURL(uc.baseURL, uc.mediaPrefix, v),
				})
			case map[string]any:
				ref := str(v, "url")
				if ref == "" {
					ref = str(v, "image")
				}
				listing.Media = append(listing.Media, domain.MediaAsset{
					ID:        anyID(v, "id"),
					ListingID: listing.ID,
					URL:       api.NormalizeMediaURL(uc.baseURL, uc.mediaPrefix, ref),
					Caption:   str(v, "caption"),
					Primary:   boolVal(v, "is_primary"),
				})
			}
		}
		break
	}
	return listing
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolVal(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// num tolerates numbers the server serializes as strings.
func num(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func anyID(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return ""
	}
}

func when(m map[string]any, key string) time.Time {
	s, ok := m[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
