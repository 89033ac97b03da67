package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"signalboard/internal/domain"
)

// fngDataPoint models a single data point from alternative.me
type fngDataPoint struct {
	Value               string `json:"value"`
	ValueClassification string `json:"value_classification"`
	Timestamp           string `json:"timestamp"`
}

// fngResponse is the full API payload
type fngResponse struct {
	Data     []fngDataPoint `json:"data"`
	Metadata struct {
		Error *string `json:"error,omitempty"`
	} `json:"metadata"`
}

// SentimentService fetches the Fear & Greed index. It is decoupled from the
// signal refresh cycle: it only updates on an explicit Refresh call, and a
// failed fetch keeps the previous reading in place.
type SentimentService struct {
	mu         sync.RWMutex
	httpClient *http.Client
	apiURL     string
	last       *domain.SentimentReading
}

// NewSentimentService creates a new SentimentService against the given
// alternative.me-compatible base URL
func NewSentimentService(baseURL string) *SentimentService {
	if baseURL == "" {
		baseURL = "https://api.alternative.me"
	}
	return &SentimentService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		apiURL: baseURL + "/fng/?limit=1&format=json&date_format=iso",
	}
}

// Refresh fetches the current index and replaces the stored reading on
// success. On failure the previous reading stays untouched.
func (s *SentimentService) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return fmt.Errorf("sentiment: create request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sentiment: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sentiment: API returned status %d", resp.StatusCode)
	}

	var raw fngResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return fmt.Errorf("sentiment: decode failed: %w", err)
	}
	if raw.Metadata.Error != nil {
		return fmt.Errorf("sentiment: API error: %s", *raw.Metadata.Error)
	}
	if len(raw.Data) == 0 {
		return errors.New("sentiment: no data returned")
	}

	dp := raw.Data[0]
	value, err := strconv.Atoi(dp.Value)
	if err != nil {
		return fmt.Errorf("sentiment: invalid value %q: %w", dp.Value, err)
	}

	reading := domain.SentimentReading{
		Value:          value,
		Classification: dp.ValueClassification,
		Timestamp:      dp.Timestamp,
		// 0..100 maps linearly onto a -90..+90 degree gauge needle
		Rotation: -90 + float64(value)*1.8,
	}

	s.mu.Lock()
	s.last = &reading
	s.mu.Unlock()
	return nil
}

// Last returns the most recent successful reading, if any
func (s *SentimentService) Last() (domain.SentimentReading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return domain.SentimentReading{}, false
	}
	return *s.last, true
}
