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

// DictionarySource is the curated-dictionary backend (dictionaryapi.dev
// shaped API over Wiktionary data).
type DictionarySource struct {
	BaseURL string
	Client  *http.Client
}

var _ Source = &DictionarySource{}

func NewDictionarySource(baseURL string) *DictionarySource {
	if baseURL == "" {
		baseURL = "https://api.dictionaryapi.dev"
	}
	return &DictionarySource{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *DictionarySource) Name() string {
	return "dictionary"
}

func (s *DictionarySource) Tier() vocab.SourceTier {
	return vocab.TierCurated
}

// --- API response structs (internal to this package) ---

type dictEntry struct {
	Word     string `json:"word"`
	Origin   string `json:"origin"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Example    string   `json:"example"`
			Synonyms   []string `json:"synonyms"`
		} `json:"definitions"`
	} `json:"meanings"`
	SourceURLs []string `json:"sourceUrls"`
}

func (s *DictionarySource) Lookup(ctx context.Context, term, topic string) (*Result, error) {
	endpoint := s.BaseURL + "/api/v2/entries/en/" + url.PathEscape(term)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary error: status %d", resp.StatusCode)
	}

	var entries []dictEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	entry := entries[0]
	res := &Result{
		Source:     s.Name(),
		Tier:       s.Tier(),
		Confidence: 0.95,
		Etymology:  entry.Origin,
	}
	if len(entry.SourceURLs) > 0 {
		res.SourceURL = entry.SourceURLs[0]
	}

	for _, meaning := range entry.Meanings {
		for _, def := range meaning.Definitions {
			if res.Definition == "" && def.Definition != "" {
				res.Definition = vocab.CleanMarkup(def.Definition)
			}
			if def.Example != "" && len(res.Examples) < 3 {
				res.Examples = append(res.Examples, vocab.CleanMarkup(def.Example))
			}
			res.Synonyms = append(res.Synonyms, def.Synonyms...)
		}
	}

	if res.Definition == "" {
		return nil, nil
	}
	return res, nil
}
