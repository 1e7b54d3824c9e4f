package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/internal/infrastructure/geocoding"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/geo"
	"rentitforward/pkg/logger"
)

type ListingUseCase struct {
	listingRepo  repository.ListingRepository
	userRepo     repository.UserRepository
	favoriteRepo repository.FavoriteRepository
	geocoder     geocoding.Geocoder
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	favoriteRepo repository.FavoriteRepository,
	geocoder geocoding.Geocoder,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:  listingRepo,
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		geocoder:     geocoder,
	}
}

type CreateListingInput struct {
	Title       string              `json:"title" validate:"required,max=100"`
	Description string              `json:"description" validate:"required,max=2000"`
	Category    string              `json:"category" validate:"required"`
	Condition   string              `json:"condition" validate:"required"`
	Brand       string              `json:"brand,omitempty"`
	Model       string              `json:"model,omitempty"`
	Pricing     entity.Pricing      `json:"pricing" validate:"required"`
	Location    ListingLocationInput `json:"location" validate:"required"`
	Images      []ListingImageInput `json:"images" validate:"max=10"`
}

type ListingLocationInput struct {
	Address  string  `json:"address" validate:"required"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	Postcode string  `json:"postcode"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

type ListingImageInput struct {
	URL   string `json:"url" validate:"required,url"`
	Order int    `json:"order"`
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, ownerID string, input CreateListingInput) (*entity.Listing, error) {
	owner, err := uc.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, errors.BadRequest("Invalid owner", err)
	}
	if owner.Status != entity.UserStatusActive {
		return nil, errors.Forbidden("Account is not active", nil)
	}

	if !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest("Invalid listing category", nil)
	}
	if input.Pricing.BasePrice < 1 || input.Pricing.BasePrice > 10000 {
		return nil, errors.BadRequest("Price must be between $1 and $10,000", nil)
	}

	coords := geo.Coordinates{Latitude: input.Location.Lat, Longitude: input.Location.Lng}
	if !coords.Valid() || (coords.Latitude == 0 && coords.Longitude == 0) {
		// Resolve the address when the client did not supply coordinates.
		resolved, err := uc.geocoder.Geocode(ctx, input.Location.Address)
		if err != nil {
			logger.Warn("Geocoding failed for listing address: %v", err)
		} else {
			coords = resolved.Coordinates
			if input.Location.City == "" {
				input.Location.City = resolved.City
			}
			if input.Location.State == "" {
				input.Location.State = resolved.State
			}
			if input.Location.Postcode == "" {
				input.Location.Postcode = resolved.PostalCode
			}
		}
	}
	if coords.Valid() && !geo.WithinAustralia(coords) {
		return nil, errors.BadRequest("Listings must be located in Australia", nil)
	}

	images := make([]entity.ListingImage, len(input.Images))
	for i, img := range input.Images {
		images[i] = entity.ListingImage{
			ID:         uuid.New().String(),
			URL:        img.URL,
			Order:      img.Order,
			UploadedAt: time.Now(),
		}
	}

	listing := &entity.Listing{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Condition:   input.Condition,
		Brand:       input.Brand,
		Model:       input.Model,
		Pricing:     input.Pricing,
		Location: entity.ListingLocation{
			Address:     input.Location.Address,
			City:        input.Location.City,
			State:       input.Location.State,
			Postcode:    input.Location.Postcode,
			Coordinates: coords,
		},
		Images: images,
		Status: entity.ListingStatusDraft,
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	logger.Info("Listing created: %s by %s", listing.ID, ownerID)
	return listing, nil
}

type UpdateListingInput struct {
	Title       *string         `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Condition   *string         `json:"condition,omitempty"`
	Pricing     *entity.Pricing `json:"pricing,omitempty"`
	Status      *string         `json:"status,omitempty"`
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, ownerID, listingID string, input UpdateListingInput) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, errors.Forbidden("You do not own this listing", nil)
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Condition != nil {
		listing.Condition = *input.Condition
	}
	if input.Pricing != nil {
		if input.Pricing.BasePrice < 1 || input.Pricing.BasePrice > 10000 {
			return nil, errors.BadRequest("Price must be between $1 and $10,000", nil)
		}
		listing.Pricing = *input.Pricing
	}
	if input.Status != nil {
		switch *input.Status {
		case entity.ListingStatusDraft, entity.ListingStatusActive, entity.ListingStatusInactive:
			listing.Status = *input.Status
		default:
			return nil, errors.BadRequest("Invalid listing status", nil)
		}
	}

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (uc *ListingUseCase) GetListing(ctx context.Context, listingID string, viewerID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.DeletedAt != nil {
		return nil, errors.NotFound("Listing", nil)
	}

	// Owners browsing their own listing do not bump the counter.
	if viewerID != listing.OwnerID {
		if err := uc.listingRepo.IncrementViews(ctx, listingID); err != nil {
			logger.Warn("Failed to increment views for %s: %v", listingID, err)
		}
	}

	return listing, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, ownerID, listingID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.OwnerID != ownerID {
		return errors.Forbidden("You do not own this listing", nil)
	}

	return uc.listingRepo.SoftDelete(ctx, listingID)
}

type ListListingsInput struct {
	Category string
	Status   string
	Sort     string
	Limit    int
	Offset   int
}

func (uc *ListingUseCase) ListListings(ctx context.Context, input ListListingsInput) ([]*entity.Listing, int64, error) {
	filter := map[string]interface{}{}
	if input.Category != "" {
		filter["category"] = input.Category
	}
	status := input.Status
	if status == "" {
		status = entity.ListingStatusActive
	}
	filter["status"] = status

	return uc.listingRepo.List(ctx, filter, input.Sort, input.Limit, input.Offset)
}

func (uc *ListingUseCase) SearchListings(ctx context.Context, query, category string, limit, offset int) ([]*entity.Listing, int64, error) {
	filter := map[string]interface{}{
		"status": entity.ListingStatusActive,
	}
	if category != "" {
		filter["category"] = category
	}
	return uc.listingRepo.SearchByTitle(ctx, query, filter, "", limit, offset)
}

func (uc *ListingUseCase) ListByOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListByOwnerID(ctx, ownerID, status, limit, offset)
}

// NearbyListings filters active listings to those within radiusKm of
// the center, ordered nearest first.
func (uc *ListingUseCase) NearbyListings(ctx context.Context, center geo.Coordinates, radiusKm float64, limit int) ([]*entity.Listing, error) {
	if !center.Valid() {
		return nil, errors.BadRequest("Invalid coordinates", nil)
	}
	if radiusKm <= 0 || radiusKm > 100 {
		radiusKm = 10
	}

	listings, _, err := uc.listingRepo.List(ctx, map[string]interface{}{
		"status": entity.ListingStatusActive,
	}, "", 0, 0)
	if err != nil {
		return nil, err
	}

	places := make([]geo.Place, 0, len(listings))
	byID := make(map[string]*entity.Listing, len(listings))
	for _, listing := range listings {
		if !listing.Location.Coordinates.Valid() {
			continue
		}
		places = append(places, geo.Place{
			ID:          listing.ID,
			Coordinates: listing.Location.Coordinates,
		})
		byID[listing.ID] = listing
	}

	within := geo.WithinRadius(center, places, radiusKm)
	var nearby []*entity.Listing
	for _, place := range within {
		nearby = append(nearby, byID[place.ID])
		if limit > 0 && len(nearby) >= limit {
			break
		}
	}
	return nearby, nil
}

// FavoriteListing saves a listing for a user and keeps the listing's
// favorite counter in sync.
func (uc *ListingUseCase) FavoriteListing(ctx context.Context, userID, listingID string) error {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	favorite := &entity.Favorite{
		UserID:    userID,
		ListingID: listingID,
	}
	if err := uc.favoriteRepo.Add(ctx, favorite); err != nil {
		return err
	}

	listing.FavoriteCount++
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		logger.Warn("Failed to bump favorite count for %s: %v", listingID, err)
	}
	return nil
}

func (uc *ListingUseCase) UnfavoriteListing(ctx context.Context, userID, listingID string) error {
	if err := uc.favoriteRepo.Remove(ctx, userID, listingID); err != nil {
		return err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil
	}
	if listing.FavoriteCount > 0 {
		listing.FavoriteCount--
		if err := uc.listingRepo.Update(ctx, listing); err != nil {
			logger.Warn("Failed to drop favorite count for %s: %v", listingID, err)
		}
	}
	return nil
}

func (uc *ListingUseCase) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*entity.Listing, int64, error) {
	favorites, total, err := uc.favoriteRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	var listings []*entity.Listing
	for _, favorite := range favorites {
		listing, err := uc.listingRepo.GetByID(ctx, favorite.ListingID)
		if err != nil {
			continue
		}
		listings = append(listings, listing)
	}
	return listings, total, nil
}
