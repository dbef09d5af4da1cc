package util

import (
	"encoding/json"
	"fmt"
	"os"

	"gf-server/models"
	"gf-server/models/places"
)

// ReadRawListingsFromJSON loads a slice of RawListing from JSON on disk. The
// file may hold either a bare array or an object with a "results" array.
func ReadRawListingsFromJSON(filePath string) ([]models.RawListing, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var listings []models.RawListing
	if err := json.Unmarshal(data, &listings); err == nil {
		return listings, nil
	}
	var wrapped struct {
		Results []models.RawListing `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to unmarshal raw listings: %w", err)
	}
	return wrapped.Results, nil
}

// ReadPlacesSearchResponseFromJSON loads an upstream places response from JSON on disk.
func ReadPlacesSearchResponseFromJSON(filePath string) (*places.SearchResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp places.SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal places SearchResponse: %w", err)
	}
	return &resp, nil
}

// ReadLiveFeedFromJSON loads a live price feed keyed by listing id.
func ReadLiveFeedFromJSON(filePath string) (models.LiveFeed, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var feed models.LiveFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LiveFeed: %w", err)
	}
	return feed, nil
}
