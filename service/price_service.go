package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gf-server/dao/redis"
	"gf-server/models"
)

// Price submission errors.
var (
	ErrInvalidPrice  = errors.New("invalid price submission")
	ErrPriceNotFound = errors.New("no live prices for gym")
)

// PriceSubmission is the body accepted by the price endpoint.
type PriceSubmission struct {
	Prices      []models.LivePrice `json:"prices"`
	JoiningFees float64            `json:"joiningfees,omitempty"`
}

// PriceService feeds the live price store read by the ranking pipeline.
type PriceService struct {
	priceDao *redis.RedisPriceFeedDAO
}

// NewPriceService constructs a new PriceService.
func NewPriceService(priceDao *redis.RedisPriceFeedDAO) *PriceService {
	return &PriceService{priceDao: priceDao}
}

// Validate checks a submission: at least one positive price, every price named.
func (ps PriceSubmission) Validate() error {
	if len(ps.Prices) == 0 {
		return fmt.Errorf("%w: at least one price is required", ErrInvalidPrice)
	}
	for i, p := range ps.Prices {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: price %d has no name", ErrInvalidPrice, i)
		}
		if p.Price <= 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			return fmt.Errorf("%w: price %d must be positive", ErrInvalidPrice, i)
		}
	}
	if ps.JoiningFees < 0 || math.IsNaN(ps.JoiningFees) || math.IsInf(ps.JoiningFees, 0) {
		return fmt.Errorf("%w: joining fee must not be negative", ErrInvalidPrice)
	}
	return nil
}

// SubmitPrices validates and stores the live prices for gymID.
func (s *PriceService) SubmitPrices(gymID string, sub PriceSubmission) (*models.LiveFeedEntry, error) {
	gymID = strings.TrimSpace(gymID)
	if gymID == "" {
		return nil, fmt.Errorf("%w: gym id is required", ErrInvalidPrice)
	}
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	entry := models.LiveFeedEntry{Prices: sub.Prices, JoiningFees: sub.JoiningFees}
	if err := s.priceDao.SetLiveFeedEntry(gymID, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetPrices returns the stored live prices for gymID.
func (s *PriceService) GetPrices(gymID string) (*models.LiveFeedEntry, error) {
	entry, err := s.priceDao.GetLiveFeedEntry(gymID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrPriceNotFound
	}
	return entry, nil
}

// ListPricedGyms returns the ids of gyms with live prices.
func (s *PriceService) ListPricedGyms() ([]string, error) {
	return s.priceDao.ListLiveFeedIDs()
}
