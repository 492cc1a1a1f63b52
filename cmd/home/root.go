package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"recipe-lookup/internal/core/cache"
	"recipe-lookup/internal/core/lookup"
	"recipe-lookup/internal/infrastructure/config"
	"recipe-lookup/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	verbose    bool
	targetLang string
	cache      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "home [query]",
		Short: "Look up a recipe and show it in the configured language",
		Long: `home searches the recipe directory and translates the first match.

With a query argument it runs a single lookup. Without one it reads queries
from stdin, one per line, and starts each lookup as soon as the line arrives.
Only the result of the most recent query is shown; earlier lookups that finish
late are discarded.

Example usage:
  home arrabiata
  printf 'pasta\nchicken\n' | home`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging to stderr")
	cmd.Flags().StringVar(&opts.targetLang, "lang", "", "target language (default from TARGET_LANG)")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "enable the lookup cache (default from CACHE_ENABLED)")

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	common.InitConsoleLogger(level)
	defer common.Sync()

	if opts.targetLang != "" {
		cfg.Translate.TargetLang = opts.targetLang
	}
	if opts.cache {
		cfg.Cache.Enabled = true
	}

	store, err := cache.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	pipeline, closeClients := lookup.FromConfig(cfg, store)
	defer closeClients()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionID := common.GenerateUUID()
	ctx = common.WithRequestID(ctx, sessionID)
	common.LogDebug("Session started",
		zap.String("session_id", sessionID),
		zap.String("target_lang", cfg.Translate.TargetLang),
	)

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		var slot lookup.Slot
		result, _ := pipeline.LookupInto(ctx, &slot, args[0])
		render(out, result)
		if result.Status == lookup.StatusFailed {
			return result.Reason
		}
		return nil
	}

	return runSession(ctx, pipeline, cmd.InOrStdin(), out)
}

// runSession 每行輸入啟動一次查詢，只顯示被 slot 採用的結果
func runSession(ctx context.Context, pipeline *lookup.Pipeline, in io.Reader, out io.Writer) error {
	return newSession(pipeline, out).run(ctx, in)
}

// session 互動查詢的狀態
// 顯示前會在 outMu 內再次確認世代仍是最新，較舊的結果不會蓋掉較新的畫面
type session struct {
	pipeline *lookup.Pipeline
	out      io.Writer
	slot     lookup.Slot
	outMu    sync.Mutex
	// accepted 在結果被 slot 採用後、顯示前呼叫，可為 nil
	accepted func(generation uint64)
}

func newSession(pipeline *lookup.Pipeline, out io.Writer) *session {
	return &session{pipeline: pipeline, out: out}
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	var wg sync.WaitGroup

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		query := scanner.Text()
		if strings.TrimSpace(query) == "" {
			continue
		}

		// 世代號碼依輸入順序發出，查詢本身在背景執行
		generation := s.slot.Begin()
		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			s.complete(ctx, generation, query)
		}(query)
	}

	wg.Wait()
	return scanner.Err()
}

func (s *session) complete(ctx context.Context, generation uint64, query string) {
	result, accepted := s.pipeline.Complete(ctx, &s.slot, generation, query)
	if !accepted {
		s.discard(query, generation)
		return
	}
	if s.accepted != nil {
		s.accepted(generation)
	}

	s.outMu.Lock()
	defer s.outMu.Unlock()
	if s.slot.Latest() != generation {
		s.discard(query, generation)
		return
	}
	render(s.out, result)
}

func (s *session) discard(query string, generation uint64) {
	common.LogDebug("Discarding stale result",
		zap.String("query", query),
		zap.Uint64("generation", generation),
		zap.Uint64("latest", s.slot.Latest()),
	)
}

func render(w io.Writer, result lookup.Result) {
	switch result.Status {
	case lookup.StatusNotFound:
		fmt.Fprintln(w, "No recipe found.")
		return
	case lookup.StatusFailed:
		fmt.Fprintf(w, "Error: %v\n", result.Reason)
		return
	}

	r, ok := result.Display()
	if !ok {
		return
	}

	fmt.Fprintf(w, "== %s ==\n", r.Name)
	if result.Degraded {
		fmt.Fprintln(w, "(translation unavailable, showing original)")
	}
	if r.HasThumbnail() {
		fmt.Fprintln(w, r.Thumbnail)
	}
	fmt.Fprintln(w, "\nIngredients:")
	for _, ing := range r.DisplayIngredients() {
		if ing.Measure == "" {
			fmt.Fprintf(w, "  - %s\n", ing.Name)
			continue
		}
		fmt.Fprintf(w, "  - %s: %s\n", ing.Name, ing.Measure)
	}
	fmt.Fprintln(w, "\nInstructions:")
	fmt.Fprintln(w, r.Instructions)
	fmt.Fprintln(w)
}
