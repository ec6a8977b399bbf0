package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"vocabforge-be/pkg/vocab"
)

// WikipediaSource is the encyclopedia-style backend. It queries the MediaWiki
// extracts API for the plain-text intro of the article matching the term.
type WikipediaSource struct {
	BaseURL string
	Client  *http.Client
}

var _ Source = &WikipediaSource{}

func NewWikipediaSource(baseURL string) *WikipediaSource {
	if baseURL == "" {
		baseURL = "https://en.wikipedia.org"
	}
	return &WikipediaSource{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *WikipediaSource) Name() string {
	return "wikipedia"
}

func (s *WikipediaSource) Tier() vocab.SourceTier {
	return vocab.TierEncyclopedia
}

// --- API response structs (internal to this package) ---

type wikiQueryResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	PageID  int       `json:"pageid"`
	Title   string    `json:"title"`
	Extract string    `json:"extract"`
	Missing *struct{} `json:"missing,omitempty"`
}

func (s *WikipediaSource) Lookup(ctx context.Context, term, topic string) (*Result, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("exintro", "1")
	params.Set("exsentences", "4")
	params.Set("redirects", "1")
	params.Set("format", "json")
	params.Set("titles", term)

	endpoint := s.BaseURL + "/w/api.php?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia error: status %d", resp.StatusCode)
	}

	var parsed wikiQueryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	for _, page := range parsed.Query.Pages {
		if page.Missing != nil || page.Extract == "" {
			continue
		}
		definition := vocab.CleanMarkup(page.Extract)
		if definition == "" {
			continue
		}
		return &Result{
			Definition: definition,
			Source:     s.Name(),
			SourceURL:  s.BaseURL + "/wiki/" + url.PathEscape(page.Title),
			Tier:       s.Tier(),
			Confidence: 0.85,
		}, nil
	}

	// Not found is not an error
	return nil, nil
}
