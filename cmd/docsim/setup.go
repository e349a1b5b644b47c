package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/knowledge-engine/docsim/internal/config"
	"github.com/knowledge-engine/docsim/internal/engine"
	"github.com/knowledge-engine/docsim/internal/storage"
)

func newLogger(cfg config.LogConfig, out io.Writer) (*logrus.Entry, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.ReportCaller)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger.WithField("service", "docsim"), nil
}

// buildEngine wires config, logging, the file source and the analyzer.
func buildEngine(cfg *config.Config, logOut io.Writer) (*engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entry, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	analyzer, err := engine.NewAnalyzer(cfg.Analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analyzer: %w", err)
	}
	entry.WithField("stemmer", analyzer.StemmerName()).Debug("Analyzer ready")

	return engine.NewEngine(cfg, entry, storage.NewFileSource(entry), analyzer), nil
}

// prepare loads configuration, builds the engine and lists the candidates
// for the [dir] [source] arguments of cmd. It returns the source path.
func prepare(cmd *cobra.Command, args []string) (*config.Config, *engine.Engine, string, []string, error) {
	cfg := config.Load()
	dir, source := corpusArgs(cfg, args)

	eng, err := buildEngine(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, "", nil, err
	}

	candidates, err := storage.ListCandidates(dir, source)
	if err != nil {
		return nil, nil, "", nil, err
	}

	return cfg, eng, filepath.Join(dir, source), candidates, nil
}

// corpusArgs resolves the optional [dir] [source] positional arguments.
func corpusArgs(cfg *config.Config, args []string) (dir, source string) {
	dir, source = cfg.Documents.Dir, cfg.Documents.Source
	if len(args) > 0 {
		dir = args[0]
	}
	if len(args) > 1 {
		source = args[1]
	}
	return dir, source
}
