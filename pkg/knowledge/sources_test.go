package knowledge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vocabforge-be/pkg/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWikipediaSource_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/w/api.php", r.URL.Path)
		assert.Equal(t, "Blockchain", r.URL.Query().Get("titles"))
		w.Write([]byte(`{"query":{"pages":{"123":{"pageid":123,"title":"Blockchain","extract":"A blockchain is a distributed ledger with growing lists of records."}}}}`))
	}))
	defer srv.Close()

	src := NewWikipediaSource(srv.URL)
	res, err := src.Lookup(context.Background(), "Blockchain", "Cryptocurrency")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "A blockchain is a distributed ledger with growing lists of records.", res.Definition)
	assert.Equal(t, "wikipedia", res.Source)
	assert.Equal(t, vocab.TierEncyclopedia, res.Tier)
	assert.Equal(t, srv.URL+"/wiki/Blockchain", res.SourceURL)
}

func TestWikipediaSource_Lookup_Missing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"pages":{"-1":{"title":"Nonexistent","missing":{}}}}}`))
	}))
	defer srv.Close()

	src := NewWikipediaSource(srv.URL)
	res, err := src.Lookup(context.Background(), "Nonexistent", "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestWikipediaSource_Lookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewWikipediaSource(srv.URL)
	_, err := src.Lookup(context.Background(), "Blockchain", "")
	assert.Error(t, err)
}

func TestDictionarySource_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/entries/en/ledger", r.URL.Path)
		w.Write([]byte(`[{"word":"ledger","origin":"Middle English","meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"A book of financial accounts.","example":"She recorded the sale in the ledger.","synonyms":["register"]},{"definition":"A flat stone slab.","example":"","synonyms":[]}]}],"sourceUrls":["https://en.wiktionary.org/wiki/ledger"]}]`))
	}))
	defer srv.Close()

	src := NewDictionarySource(srv.URL)
	res, err := src.Lookup(context.Background(), "ledger", "Accounting")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "A book of financial accounts.", res.Definition)
	assert.Equal(t, []string{"She recorded the sale in the ledger."}, res.Examples)
	assert.Equal(t, []string{"register"}, res.Synonyms)
	assert.Equal(t, "Middle English", res.Etymology)
	assert.Equal(t, "https://en.wiktionary.org/wiki/ledger", res.SourceURL)
	assert.Equal(t, vocab.TierCurated, res.Tier)
	assert.InDelta(t, 0.95, res.Confidence, 1e-9)
}

func TestDictionarySource_Lookup_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewDictionarySource(srv.URL)
	res, err := src.Lookup(context.Background(), "asdfghjk", "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestCommunitySource_Lookup_PicksBestVoted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v0/define", r.URL.Path)
		assert.Equal(t, "hodl", r.URL.Query().Get("term"))
		w.Write([]byte(`{"list":[{"definition":"A typo of hold.","example":"","thumbs_up":10,"permalink":"https://example.com/a"},{"definition":"[Holding] a volatile asset instead of selling it.","example":"I will [hodl] through the dip.","thumbs_up":250,"permalink":"https://example.com/b"}]}`))
	}))
	defer srv.Close()

	src := NewCommunitySource(srv.URL)
	res, err := src.Lookup(context.Background(), "hodl", "Cryptocurrency")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "Holding a volatile asset instead of selling it.", res.Definition)
	assert.Equal(t, []string{"I will hodl through the dip."}, res.Examples)
	assert.Equal(t, "https://example.com/b", res.SourceURL)
	assert.Equal(t, vocab.TierCommunity, res.Tier)
}

func TestCommunitySource_Lookup_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[]}`))
	}))
	defer srv.Close()

	src := NewCommunitySource(srv.URL)
	res, err := src.Lookup(context.Background(), "zzzz", "")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResult_ToCandidate(t *testing.T) {
	res := &Result{
		Definition: "A book of financial accounts.",
		Source:     "dictionary",
		Tier:       vocab.TierCurated,
		Confidence: 0.95,
	}

	c := res.ToCandidate("ledger")

	assert.Equal(t, "ledger", c.Term)
	assert.True(t, c.Verified)
	assert.False(t, c.AIGenerated)
	assert.InDelta(t, 0.95, c.Confidence, 1e-9)
}
