package processor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"codeberg.org/snonux/leveltext/internal/ai"
	"codeberg.org/snonux/leveltext/internal/analyze"
	"codeberg.org/snonux/leveltext/internal/batch"
	"codeberg.org/snonux/leveltext/internal/cache"
	"codeberg.org/snonux/leveltext/internal/cli"
	"codeberg.org/snonux/leveltext/internal/engine"
	"codeberg.org/snonux/leveltext/internal/export"
	"codeberg.org/snonux/leveltext/internal/level"
	"codeberg.org/snonux/leveltext/internal/nlp"
	"codeberg.org/snonux/leveltext/internal/vocab"
)

// Processor handles the main text processing logic
type Processor struct {
	flags *cli.Flags
	log   *slog.Logger
}

// NewProcessor creates a new text processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{
		flags: flags,
		log:   slog.Default(),
	}
}

// Run executes the requested operation: a single-word lookup or the
// processing of one or more documents.
func (p *Processor) Run(ctx context.Context) error {
	store, err := p.loadVocabulary()
	if err != nil {
		return err
	}

	if p.flags.Lookup != "" {
		return p.lookupWord(store, p.flags.Lookup)
	}
	if p.flags.Input == "" {
		return fmt.Errorf("no input file or directory given")
	}
	return p.processDocuments(ctx, store)
}

func (p *Processor) loadVocabulary() (*vocab.Store, error) {
	opts := &vocab.Options{
		Strict: viper.GetBool("vocab.strict"),
		Logger: p.log,
	}
	store, err := vocab.LoadDir(viper.GetString("vocab.directory"), opts)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	if missing := store.Missing(); len(missing) > 0 {
		p.log.Warn("vocabulary levels missing, their words count as unclassified", "levels", missing)
	}

	if path := viper.GetString("vocab.stopwords"); path != "" {
		count, err := store.LoadStopwords(path)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
		p.log.Info("stopwords loaded", "count", count)
	}

	p.log.Info("vocabulary loaded", "entries", store.Size())
	return store, nil
}

// lookupWord prints the classification of a single word.
func (p *Processor) lookupWord(store *vocab.Store, word string) error {
	if store.IsExcluded(word) {
		fmt.Printf("%s: excluded from analysis (stopword or basic function word)\n", word)
		return nil
	}
	entry, ok := store.Entry(word)
	if !ok {
		fmt.Printf("%s: not in any vocabulary list (treated as above every level)\n", word)
		return nil
	}
	fmt.Printf("%s: %s", entry.Lemma, entry.Level)
	if entry.PartOfSpeech != "" {
		fmt.Printf(" (%s)", entry.PartOfSpeech)
	}
	if entry.Article != "" {
		fmt.Printf(", %s %s", entry.Article, entry.Lemma)
	}
	fmt.Println()
	return nil
}

func (p *Processor) processDocuments(ctx context.Context, store *vocab.Store) error {
	target, err := level.Parse(viper.GetString("analysis.target_level"))
	if err != nil {
		return err
	}
	mode, err := engine.ParseMode(viper.GetString("analysis.mode"))
	if err != nil {
		return err
	}
	language := viper.GetString("analysis.language")
	if mode == engine.ModeLabeling {
		if language, err = engine.ValidateLanguage(language); err != nil {
			return err
		}
	}

	adapter, err := p.buildAdapter(ctx)
	if err != nil {
		return err
	}
	translationCache, err := p.buildCache()
	if err != nil {
		return err
	}
	defer translationCache.Close()

	analyzer := nlp.NewBasicAnalyzer()
	classifier := analyze.NewClassifier(store)
	maxLen := viper.GetInt("analysis.max_text_length")
	ttl := time.Duration(viper.GetInt("cache.ttl_seconds")) * time.Second

	leveler := engine.NewLeveler(analyzer, classifier, adapter, maxLen)
	labeler := engine.NewLabeler(analyzer, classifier, adapter, translationCache, ttl, maxLen)

	sources, err := batch.CollectSources(p.flags.Input)
	if err != nil {
		return err
	}

	outcomes, err := batch.NewProcessor(leveler, labeler).Process(ctx, sources, batch.Options{
		Mode:        mode,
		Target:      target,
		Language:    language,
		Parallelism: viper.GetInt("analysis.parallelism"),
	})
	if err != nil {
		return err
	}

	writer := export.NewWriter(export.Options{OutputDir: viper.GetString("output.directory")})
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", outcome.ID, outcome.Err)
			failed++
			continue
		}
		if err := p.exportOutcome(writer, outcome, mode, target, language); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output for %s: %v\n", outcome.ID, err)
			failed++
		}
	}

	if failed == len(outcomes) {
		return fmt.Errorf("all %d documents failed", failed)
	}
	return nil
}

func (p *Processor) exportOutcome(writer *export.Writer, outcome batch.Outcome,
	mode engine.Mode, target level.Level, language string) error {
	result := outcome.Result

	var path string
	var err error
	switch mode {
	case engine.ModeLeveling:
		path, err = writer.WriteLeveledText(result, target)
	case engine.ModeLabeling:
		path, err = writer.WriteWordList(result, target, language)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d words, %d above %s", outcome.ID,
		result.Stats.TotalWords, result.Stats.AboveTarget, target)
	if result.Stats.NamedEntities > 0 {
		fmt.Printf(", %d named entities", result.Stats.NamedEntities)
	}
	fmt.Printf(" -> %s\n", path)

	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "  passage could not be simplified: %q: %v\n", failure.Text, failure.Err)
	}
	return nil
}

func (p *Processor) buildAdapter(ctx context.Context) (ai.Adapter, error) {
	provider := viper.GetString("ai.provider")
	adapter, err := ai.New(ctx, &ai.Config{
		Provider: provider,
		APIKey:   cli.ProviderKey(provider),
		Model:    viper.GetString("ai.model"),
		Timeout:  30 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	policy := ai.DefaultRetryPolicy()
	if attempts := viper.GetUint("ai.retry_attempts"); attempts > 0 {
		policy.Attempts = attempts
	}
	if baseDelay := viper.GetInt("ai.retry_base_delay_ms"); baseDelay > 0 {
		policy.BaseDelay = time.Duration(baseDelay) * time.Millisecond
	}
	return ai.WithBreaker(ai.WithRetry(adapter, policy)), nil
}

func (p *Processor) buildCache() (cache.Cache, error) {
	if !viper.GetBool("cache.enabled") {
		return cache.Disabled(), nil
	}
	if path := viper.GetString("cache.path"); path != "" {
		c, err := cache.NewSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("open translation cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemory(), nil
}
