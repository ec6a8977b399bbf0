package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vocabforge-be/pkg/vocab"
)

// CommunitySource is the crowd-sourced dictionary backend. Entries are voted
// on by users, so the best-voted definition wins and still goes through the
// quality gate downstream.
type CommunitySource struct {
	BaseURL string
	Client  *http.Client
}

var _ Source = &CommunitySource{}

func NewCommunitySource(baseURL string) *CommunitySource {
	if baseURL == "" {
		baseURL = "https://api.urbandictionary.com"
	}
	return &CommunitySource{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *CommunitySource) Name() string {
	return "community"
}

func (s *CommunitySource) Tier() vocab.SourceTier {
	return vocab.TierCommunity
}

// --- API response structs (internal to this package) ---

type communityDefineResponse struct {
	List []communityEntry `json:"list"`
}

type communityEntry struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
	ThumbsUp   int    `json:"thumbs_up"`
	Permalink  string `json:"permalink"`
}

func (s *CommunitySource) Lookup(ctx context.Context, term, topic string) (*Result, error) {
	endpoint := s.BaseURL + "/v0/define?term=" + url.QueryEscape(term)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("community request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("community error: status %d", resp.StatusCode)
	}

	var parsed communityDefineResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(parsed.List) == 0 {
		return nil, nil
	}

	best := parsed.List[0]
	for _, entry := range parsed.List[1:] {
		if entry.ThumbsUp > best.ThumbsUp {
			best = entry
		}
	}

	// Entries use square brackets for internal cross-links
	definition := vocab.CleanMarkup(strings.NewReplacer("[", "", "]", "").Replace(best.Definition))
	if definition == "" {
		return nil, nil
	}

	res := &Result{
		Definition: definition,
		Source:     s.Name(),
		SourceURL:  best.Permalink,
		Tier:       s.Tier(),
		Confidence: 0.7,
	}
	if ex := vocab.CleanMarkup(strings.NewReplacer("[", "", "]", "").Replace(best.Example)); ex != "" {
		res.Examples = []string{ex}
	}
	return res, nil
}
