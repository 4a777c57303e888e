package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "decora/internal/errors"

	"decora/internal/model"
	"decora/internal/repository"
)

// ReviewService handles customer reviews.
type ReviewService interface {
	Create(ctx context.Context, name string, rating any, message string) (*model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

// NewReviewService creates a new review service.
func NewReviewService(reviewRepo repository.ReviewRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo}
}

// Create validates and persists a review. The rating may arrive as a JSON
// number or a numeric string; it must be a whole number from 1 to 5.
func (s *reviewService) Create(ctx context.Context, name string, rating any, message string) (*model.Review, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)
	if name == "" || message == "" || rating == nil {
		return nil, apperrors.ErrReviewInvalid
	}

	parsed, err := parseRating(rating)
	if err != nil {
		return nil, err
	}

	review := &model.Review{
		Name:    name,
		Rating:  parsed,
		Message: message,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

// parseRating coerces the submitted rating and checks it is a finite whole
// number in [1,5], both bounds inclusive.
func parseRating(v any) (int, error) {
	var r float64
	switch val := v.(type) {
	case float64:
		r = val
	case int:
		r = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, apperrors.ErrInvalidRating
		}
		r = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, apperrors.ErrInvalidRating
		}
		r = parsed
	default:
		return 0, apperrors.ErrInvalidRating
	}

	if math.IsNaN(r) || math.IsInf(r, 0) || r < 1 || r > 5 || r != math.Trunc(r) {
		return 0, apperrors.ErrInvalidRating
	}
	return int(r), nil
}

// List returns all reviews, newest first.
func (s *reviewService) List(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.reviewRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Delete removes a review by id.
func (s *reviewService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reviewRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return fmt.Errorf("find review: %w", err)
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
