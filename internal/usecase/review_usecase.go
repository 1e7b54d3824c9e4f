package usecase

import (
	"context"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

type CreateReviewInput struct {
	BookingID string   `json:"booking_id" validate:"required"`
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Content   string   `json:"content" validate:"required,max=2000"`
	Images    []string `json:"images,omitempty" validate:"max=5"`
}

// CreateReview records a post-rental review. Renters review the owner
// and the listing; owners review the renter. One review per party per
// booking, and only after the rental completed.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != reviewerID && booking.OwnerID != reviewerID {
		return nil, errors.Forbidden("You are not part of this booking", nil)
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, errors.BadRequest("Reviews open once the rental is completed", nil)
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	if existing, err := uc.reviewRepo.GetByBookingAndReviewer(ctx, input.BookingID, reviewerID); err == nil && existing != nil {
		return nil, errors.Conflict("You have already reviewed this booking")
	}

	reviewType := "renter_review"
	targetID := booking.RenterID
	if reviewerID == booking.RenterID {
		reviewType = "owner_review"
		targetID = booking.OwnerID
	}

	review := &entity.Review{
		BookingID:  booking.ID,
		ListingID:  booking.ListingID,
		ReviewerID: reviewerID,
		TargetID:   targetID,
		Type:       reviewType,
		Rating:     input.Rating,
		Content:    input.Content,
		Images:     input.Images,
		Status:     "active",
	}
	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if reviewerID == booking.RenterID {
		booking.OwnerReviewID = review.ID
	} else {
		booking.RenterReviewID = review.ID
	}
	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		logger.Warn("Failed to link review %s to booking %s: %v", review.ID, booking.ID, err)
	}

	uc.recomputeUserRating(ctx, targetID)
	if reviewerID == booking.RenterID {
		uc.recomputeListingRating(ctx, booking.ListingID)
	}

	reviewerName := "Someone"
	if reviewer, rerr := uc.userRepo.GetByID(ctx, reviewerID); rerr == nil {
		reviewerName = reviewer.Name()
	}
	uc.notifier.Notify(ctx, targetID, entity.NotificationReviewReceived, map[string]interface{}{
		"reviewer_name": reviewerName,
		"rating":        input.Rating,
		"booking_id":    booking.ID,
	})

	logger.Info("Review %s created for booking %s", review.ID, booking.ID)
	return review, nil
}

func (uc *ReviewUseCase) GetReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.Status != "active" {
		return nil, errors.NotFound("Review", nil)
	}
	return review, nil
}

func (uc *ReviewUseCase) ListReviewsForUser(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListByTargetID(ctx, targetID, limit, offset)
}

func (uc *ReviewUseCase) ListReviewsForListing(ctx context.Context, listingID string, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListByListingID(ctx, listingID, limit, offset)
}

// ReportReview flags a review for moderation and hides the reporter's
// view of it.
func (uc *ReviewUseCase) ReportReview(ctx context.Context, reporterID, reviewID, reason string) error {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.ReviewerID == reporterID {
		return errors.BadRequest("You cannot report your own review", nil)
	}
	if review.Status != "active" {
		return errors.BadRequest("Review is not visible", nil)
	}
	review.Status = "reported"
	if err := uc.reviewRepo.Update(ctx, review); err != nil {
		return err
	}
	logger.Info("Review %s reported by %s: %s", reviewID, reporterID, reason)
	return nil
}

func (uc *ReviewUseCase) recomputeUserRating(ctx context.Context, userID string) {
	reviews, total, err := uc.reviewRepo.ListByTargetID(ctx, userID, 0, 0)
	if err != nil {
		logger.Warn("Failed to recompute rating for user %s: %v", userID, err)
		return
	}
	average := averageRating(reviews)
	if err := uc.userRepo.UpdateRating(ctx, userID, average, int(total)); err != nil {
		logger.Warn("Failed to store rating for user %s: %v", userID, err)
	}
}

func (uc *ReviewUseCase) recomputeListingRating(ctx context.Context, listingID string) {
	reviews, total, err := uc.reviewRepo.ListByListingID(ctx, listingID, 0, 0)
	if err != nil {
		logger.Warn("Failed to recompute rating for listing %s: %v", listingID, err)
		return
	}
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return
	}
	listing.Rating = averageRating(reviews)
	listing.ReviewCount = int(total)
	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		logger.Warn("Failed to store rating for listing %s: %v", listingID, err)
	}
}

func averageRating(reviews []*entity.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews))
}
