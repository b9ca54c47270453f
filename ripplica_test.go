package ripplica

import (
	"context"
	"errors"
	"testing"

	"github.com/ripplica/ripplica/ai/mock"
	"github.com/ripplica/ripplica/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSearcher struct {
	urls []string
}

func (s *fixedSearcher) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if len(s.urls) > maxResults {
		return s.urls[:maxResults], nil
	}
	return s.urls, nil
}

type fixedScraper struct {
	pages map[string]string
}

func (s *fixedScraper) Scrape(ctx context.Context, url string) (string, error) {
	if text := s.pages[url]; text != "" {
		return text, nil
	}
	return "", errors.New("no content")
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine("",
		WithInMemoryStorage(),
		WithProvider(mock.NewMockProvider()),
		WithSearcher(&fixedSearcher{urls: []string{"https://a.example"}}),
		WithScraper(&fixedScraper{pages: map[string]string{
			"https://a.example": "reference text about the topic at hand",
		}}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngineAnswerAndCacheRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	query := "what is machine learning?"

	first, err := engine.Answer(ctx, query)
	require.NoError(t, err)
	assert.True(t, first.IsValid)
	assert.False(t, first.FromCache)
	assert.NotEmpty(t, first.Summary)

	second, err := engine.Answer(ctx, query)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Summary, second.Summary)

	stats, err := engine.Cache().Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Count)
}

func TestEngineRejectsCommands(t *testing.T) {
	engine := newTestEngine(t)

	resp, err := engine.Answer(context.Background(), "set alarm for 6am")
	require.NoError(t, err)
	assert.False(t, resp.IsValid)
}

func TestEngineClassify(t *testing.T) {
	engine := newTestEngine(t)

	c := engine.Classify(context.Background(), "what is the weather in Paris today?")
	assert.True(t, c.Valid)
	assert.True(t, c.TimeSensitive)
}

func TestEngineEventStream(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	query := "how does photosynthesis work?"

	runID := engine.NewRun(query)
	events, cancel := engine.Events().Subscribe(runID)
	defer cancel()

	resp, err := engine.Run(ctx, runID, query)
	require.NoError(t, err)
	assert.True(t, resp.IsValid)

	var steps []pipeline.Step
	for ev := range events {
		steps = append(steps, ev.Step)
	}
	require.NotEmpty(t, steps)
	assert.Equal(t, pipeline.StepValidating, steps[0])
	assert.Equal(t, pipeline.StepDone, steps[len(steps)-1])
}

func TestEngineClearCache(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Answer(ctx, "what is machine learning?")
	require.NoError(t, err)

	require.NoError(t, engine.Cache().Clear(ctx))

	stats, err := engine.Cache().Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Count)
}
