package engine_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/docsim/internal/config"
	"github.com/knowledge-engine/docsim/internal/engine"
	"github.com/knowledge-engine/docsim/internal/search"
)

// Mocks

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Read(id string) string {
	args := m.Called(id)
	return args.String(0)
}

// truncatingAnalyzer drops the last slot of vectors for texts containing
// "broken", so scoring those candidates fails with a dimension mismatch.
type truncatingAnalyzer struct {
	*search.Analyzer
}

func (a truncatingAnalyzer) MakeVector(text string, vocab *search.Vocabulary) []float64 {
	vec := a.Analyzer.MakeVector(text, vocab)
	if strings.Contains(text, "broken") && len(vec) > 0 {
		return vec[:len(vec)-1]
	}
	return vec
}

func testConfig(workers int) *config.Config {
	return &config.Config{
		Similarity: config.SimilarityConfig{Threshold: search.DefaultThreshold, Workers: workers},
		Analysis:   config.AnalysisConfig{Stemmer: "snowball"},
	}
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("test", "engine")
}

func newTestEngine(t *testing.T, workers int, docs map[string]string) *engine.Engine {
	t.Helper()
	source := new(MockSource)
	for id, content := range docs {
		source.On("Read", id).Return(content)
	}
	source.On("Read", mock.Anything).Return("")

	analyzer, err := engine.NewAnalyzer(config.AnalysisConfig{Stemmer: "snowball"})
	require.NoError(t, err)

	return engine.NewEngine(testConfig(workers), testLogger(), source, analyzer)
}

func score(t *testing.T, eng *engine.Engine, source, candidate string) float64 {
	t.Helper()
	matches, err := eng.Score(context.Background(), source, []string{candidate})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	return matches[0].Score
}

func TestEngine_FindSimilar(t *testing.T) {
	eng := newTestEngine(t, 1, map[string]string{
		"src":    "the cat sat on the mat",
		"cats":   "a cat sat on a mat",
		"space":  "completely unrelated content about spaceships",
		"absent": "",
	})

	similar, err := eng.FindSimilar(context.Background(), "src", []string{"cats", "space", "absent"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cats"}, similar)

	matches, err := eng.Score(context.Background(), "src", []string{"cats", "space", "absent"})
	require.NoError(t, err)
	assert.Greater(t, matches[0].Score, search.DefaultThreshold)
	assert.InDelta(t, 0.0, matches[1].Score, 1e-9)
	assert.Equal(t, 0.0, matches[2].Score)
}

func TestEngine_ReadsEveryDocument(t *testing.T) {
	source := new(MockSource)
	source.On("Read", "src").Return("roses are red").Once()
	source.On("Read", "a").Return("red roses").Once()
	source.On("Read", "b").Return("").Once()

	analyzer, err := engine.NewAnalyzer(config.AnalysisConfig{Stemmer: "snowball"})
	require.NoError(t, err)
	eng := engine.NewEngine(testConfig(1), testLogger(), source, analyzer)

	matches, err := eng.Score(context.Background(), "src", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{matches[0].ID, matches[1].ID})

	source.AssertExpectations(t)
}

func TestEngine_SelfSimilarity(t *testing.T) {
	text := "Shall I compare thee to a summer's day? Thou art more lovely and more temperate."
	eng := newTestEngine(t, 1, map[string]string{"a": text})

	assert.InDelta(t, 1.0, score(t, eng, "a", "a"), 1e-9)
}

func TestEngine_Symmetry(t *testing.T) {
	docs := map[string]string{
		"a": "Rough winds do shake the darling buds of May, and summer's lease hath all too short a date.",
		"b": "The darling winds of summer shake the buds; summer is short and the winds are rough.",
	}
	eng := newTestEngine(t, 1, docs)

	ab := score(t, eng, "a", "b")
	ba := score(t, eng, "b", "a")
	assert.InDelta(t, ab, ba, 1e-12)
	assert.Greater(t, ab, 0.0)
	assert.LessOrEqual(t, ab, 1.0)
}

func TestEngine_EmptyOrStopWordsOnly(t *testing.T) {
	eng := newTestEngine(t, 1, map[string]string{
		"poem":  "the cat sat on the mat",
		"stops": "The and of a to it is",
		"empty": "",
	})

	assert.Equal(t, 0.0, score(t, eng, "poem", "stops"))
	assert.Equal(t, 0.0, score(t, eng, "poem", "empty"))
	assert.Equal(t, 0.0, score(t, eng, "stops", "poem"))
	assert.Equal(t, 0.0, score(t, eng, "empty", "empty"))
}

func TestEngine_ThresholdFromConfig(t *testing.T) {
	docs := map[string]string{
		"src":  "the cat sat on the mat",
		"same": "a cat sat on a mat",
		"dog":  "a cat sat on a mat with a dog",
	}
	eng := newTestEngine(t, 1, docs)
	eng.Config.Similarity.Threshold = 0.99

	// "same" reduces to identical stems; "dog" scores 3/(sqrt(3)*2)
	similar, err := eng.FindSimilar(context.Background(), "src", []string{"dog", "same"})
	require.NoError(t, err)
	assert.Equal(t, []string{"same"}, similar)

	eng.Config.Similarity.Threshold = 0.5
	similar, err = eng.FindSimilar(context.Background(), "src", []string{"dog", "same"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "same"}, similar)
}

func TestEngine_ParallelMatchesSequential(t *testing.T) {
	docs := map[string]string{
		"src": "The woods are lovely, dark and deep, but I have promises to keep.",
		"c1":  "Whose woods these are I think I know.",
		"c2":  "Miles to go before I sleep, and miles to go before I sleep.",
		"c3":  "The darkest evening of the year, lovely and deep.",
		"c4":  "",
		"c5":  "He gives his harness bells a shake to ask if there is some mistake.",
		"c6":  "Promises kept in the deep dark woods.",
	}
	candidates := []string{"c1", "c2", "c3", "c4", "c5", "c6", "missing"}

	sequential, err := newTestEngine(t, 1, docs).Score(context.Background(), "src", candidates)
	require.NoError(t, err)
	parallel, err := newTestEngine(t, 4, docs).Score(context.Background(), "src", candidates)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)

	simSeq, err := newTestEngine(t, 1, docs).FindSimilar(context.Background(), "src", candidates)
	require.NoError(t, err)
	simPar, err := newTestEngine(t, 3, docs).FindSimilar(context.Background(), "src", candidates)
	require.NoError(t, err)
	assert.Equal(t, simSeq, simPar)
}

func TestEngine_Canceled(t *testing.T) {
	docs := map[string]string{"src": "cat", "a": "cat", "b": "cat"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := newTestEngine(t, workers, docs).Score(ctx, "src", []string{"a", "b"})
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestEngine_DimensionMismatch(t *testing.T) {
	docs := map[string]string{"src": "the cat sat on the mat"}
	candidates := make([]string, 0)
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("c%02d", i)
		docs[id] = "a cat sat on a mat"
		candidates = append(candidates, id)
	}
	docs["c07"] = "a broken cat"

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			eng := newTestEngine(t, workers, docs)
			eng.Analyzer = truncatingAnalyzer{eng.Analyzer.(*search.Analyzer)}

			matches, err := eng.Score(context.Background(), "src", candidates)
			require.Error(t, err)
			assert.ErrorIs(t, err, search.ErrDimensionMismatch)
			assert.NotErrorIs(t, err, context.Canceled)
			assert.Contains(t, err.Error(), "c07")
			assert.Nil(t, matches)

			similar, err := eng.FindSimilar(context.Background(), "src", candidates)
			assert.ErrorIs(t, err, search.ErrDimensionMismatch)
			assert.Nil(t, similar)
		})
	}
}

func TestNewAnalyzer(t *testing.T) {
	a, err := engine.NewAnalyzer(config.AnalysisConfig{Stemmer: "porter2"})
	require.NoError(t, err)
	assert.Equal(t, "porter2", a.StemmerName())
	assert.True(t, a.IsStopWord("The"))

	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat\n"), 0644))
	a, err = engine.NewAnalyzer(config.AnalysisConfig{StopWordsFile: path, Stemmer: "snowball"})
	require.NoError(t, err)
	assert.True(t, a.IsStopWord("cat"))
	assert.False(t, a.IsStopWord("the"))
}

func TestNewAnalyzer_Errors(t *testing.T) {
	_, err := engine.NewAnalyzer(config.AnalysisConfig{Stemmer: "unknown"})
	assert.Error(t, err)

	_, err = engine.NewAnalyzer(config.AnalysisConfig{StopWordsFile: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}
