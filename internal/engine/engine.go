package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/docsim/internal/config"
	"github.com/knowledge-engine/docsim/internal/search"
	"github.com/knowledge-engine/docsim/internal/storage"
)

// Analyzer builds the pair vocabulary and term vectors. *search.Analyzer
// implements it.
type Analyzer interface {
	BuildVocabulary(source, candidate []string) *search.Vocabulary
	MakeVector(text string, vocab *search.Vocabulary) []float64
}

// Engine compares a source document against candidate documents
type Engine struct {
	Config   *config.Config
	Logger   *logrus.Entry
	Source   storage.DocumentSource
	Analyzer Analyzer
}

// Match is the score of one candidate against the source
type Match struct {
	ID    string
	Score float64
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, source storage.DocumentSource, analyzer Analyzer) *Engine {
	return &Engine{
		Config:   cfg,
		Logger:   logger,
		Source:   source,
		Analyzer: analyzer,
	}
}

// NewAnalyzer loads the stop word list and stemmer named by cfg.
func NewAnalyzer(cfg config.AnalysisConfig) (*search.Analyzer, error) {
	stopWords := search.DefaultStopWords()
	if cfg.StopWordsFile != "" {
		sw, err := search.LoadStopWordsFile(cfg.StopWordsFile)
		if err != nil {
			return nil, err
		}
		stopWords = sw
	}

	stemmer, err := search.NewStemmer(cfg.Stemmer)
	if err != nil {
		return nil, err
	}

	return search.NewAnalyzer(stopWords, stemmer), nil
}

// FindSimilar returns the candidates whose score exceeds the configured
// threshold, in input order.
func (e *Engine) FindSimilar(ctx context.Context, sourceID string, candidateIDs []string) ([]string, error) {
	matches, err := e.Score(ctx, sourceID, candidateIDs)
	if err != nil {
		return nil, err
	}

	scores := make(map[int]float64, len(matches))
	for i, m := range matches {
		scores[i] = m.Score
	}

	similar := make([]string, 0)
	for _, i := range search.AboveThreshold(scores, e.Config.Similarity.Threshold) {
		similar = append(similar, matches[i].ID)
	}

	e.Logger.WithFields(logrus.Fields{
		"source":     sourceID,
		"candidates": len(candidateIDs),
		"similar":    len(similar),
		"threshold":  e.Config.Similarity.Threshold,
	}).Info("Similarity search complete")

	return similar, nil
}

// Score compares the source against every candidate and returns one Match
// per candidate, in input order.
func (e *Engine) Score(ctx context.Context, sourceID string, candidateIDs []string) ([]Match, error) {
	start := time.Now()

	// 1. Load documents; unreadable ones come back empty
	candidates := make([]search.Document, len(candidateIDs))
	for i, id := range candidateIDs {
		candidates[i] = search.Document{ID: id, Content: e.Source.Read(id)}
	}
	source := search.Document{ID: sourceID, Content: e.Source.Read(sourceID)}

	// 2. Tokenize the source once
	sourceTokens := search.Tokenize(source.Content)

	// 3. Score each candidate against its own pair vocabulary
	matches := make([]Match, len(candidates))
	var err error
	if e.Config.Similarity.Workers > 1 && len(candidates) > 1 {
		err = e.scoreParallel(ctx, source, sourceTokens, candidates, matches)
	} else {
		err = e.scoreSequential(ctx, source, sourceTokens, candidates, matches)
	}
	if err != nil {
		return nil, err
	}

	e.Logger.WithFields(logrus.Fields{
		"source":     sourceID,
		"candidates": len(candidates),
		"elapsed":    time.Since(start).String(),
	}).Debug("Scored candidates")

	return matches, nil
}

func (e *Engine) scoreSequential(ctx context.Context, source search.Document, sourceTokens []string, candidates []search.Document, matches []Match) error {
	for i, doc := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		score, err := e.compare(source, sourceTokens, doc)
		if err != nil {
			return err
		}
		matches[i] = Match{ID: doc.ID, Score: score}
	}
	return nil
}

func (e *Engine) scoreParallel(ctx context.Context, source search.Document, sourceTokens []string, candidates []search.Document, matches []Match) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	jobs := make(chan int)

	for w := 0; w < e.Config.Similarity.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				score, err := e.compare(source, sourceTokens, candidates[i])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					cancel()
					continue
				}
				// Each index is written by exactly one worker.
				matches[i] = Match{ID: candidates[i].ID, Score: score}
			}
		}()
	}

feed:
	for i := range candidates {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// compare scores one candidate. The vocabulary is rebuilt for every pair.
func (e *Engine) compare(source search.Document, sourceTokens []string, candidate search.Document) (float64, error) {
	vocab := e.Analyzer.BuildVocabulary(sourceTokens, search.Tokenize(candidate.Content))
	vec1 := e.Analyzer.MakeVector(source.Content, vocab)
	vec2 := e.Analyzer.MakeVector(candidate.Content, vocab)

	score, err := search.CosineSimilarity(vec1, vec2)
	if err != nil {
		return 0, fmt.Errorf("scoring %s: %w", candidate.ID, err)
	}

	e.Logger.WithFields(logrus.Fields{
		"candidate":  candidate.ID,
		"vocabulary": vocab.Len(),
		"score":      score,
	}).Debug("Compared candidate")

	return score, nil
}
