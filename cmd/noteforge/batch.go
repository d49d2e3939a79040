// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/noteforge/internal/engine"
	"github.com/pdiddy/noteforge/internal/pool"
	"github.com/pdiddy/noteforge/internal/recovery"
	"github.com/pdiddy/noteforge/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Format many files concurrently on the worker pool",
	Long: `Batch submits every input file to the worker pool and writes each
formatted document into the output directory. Failed tasks retry with
backoff; per-file progress goes to stderr with --progress.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringP("format", "f", string(types.FormatResearchNotes), "target format for all files")
	batchCmd.Flags().StringP("output-dir", "d", "formatted", "directory for formatted output files")
	batchCmd.Flags().Int("workers", 0, "worker count (default: pool configuration)")
	batchCmd.Flags().Duration("timeout", 0, "per-file processing timeout (0 = unbounded)")
	batchCmd.Flags().String("priority", string(types.PriorityNormal), "task priority: low, normal, high, or urgent")
	batchCmd.Flags().Bool("progress", false, "print per-file checkpoint progress")
	batchCmd.Flags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := parseFormat(formatFlag)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	workers, _ := cmd.Flags().GetInt("workers")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	priorityFlag, _ := cmd.Flags().GetString("priority")
	showProgress, _ := cmd.Flags().GetBool("progress")
	verbose, _ := cmd.Flags().GetBool("verbose")

	priority := types.Priority(priorityFlag)
	switch priority {
	case types.PriorityLow, types.PriorityNormal, types.PriorityHigh, types.PriorityUrgent:
	default:
		return fmt.Errorf("unknown priority %q (want low, normal, high, or urgent)", priorityFlag)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	cfg := loadConfig()
	if workers > 0 {
		cfg.Pool.MinWorkers = workers
		cfg.Pool.MaxWorkers = workers
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	eng := engine.New(cfg.Engine)
	workerPool := pool.New(cfg.Pool, eng, log)
	workerPool.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout())
		defer cancel()
		_ = workerPool.Shutdown(ctx)
	}()
	mgr := recovery.New(cfg.Recovery, workerPool, eng, log)

	failed := runBatchFiles(mgr, args, format, priority, timeout, showProgress, os.Stderr, outDir)

	status := workerPool.Status()
	status.Recovery = mgr.Stats()
	fmt.Fprintf(os.Stderr, "\n%d/%d files formatted (%d retries, %d fallbacks, %d cache hits)\n",
		len(args)-failed, len(args),
		status.Recovery.Retries, status.Recovery.Fallbacks, status.Recovery.CacheHits)

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// runBatchFiles submits every file and waits for all results, writing
// formatted output as tasks complete. Returns the failure count.
func runBatchFiles(mgr *recovery.Manager, files []string, format types.FormatType,
	priority types.Priority, timeout time.Duration, showProgress bool,
	progress io.Writer, outDir string) int {

	var progressMu sync.Mutex
	var wg sync.WaitGroup
	failures := make([]bool, len(files))

	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()

			data, err := os.ReadFile(file)
			if err != nil {
				progressMu.Lock()
				fmt.Fprintf(progress, "%s: %v\n", file, err)
				progressMu.Unlock()
				failures[i] = true
				return
			}

			task := types.ProcessingTask{
				TaskID:   file,
				Input:    types.NewTextInput(string(data), types.SourceUpload),
				Priority: priority,
				Timeout:  timeout,
				Options: types.TaskOptions{
					TargetFormat: format,
					Performance:  types.PerformanceOptions{EnableCaching: true},
				},
			}
			if showProgress {
				task.Options.OnProgress = func(taskID string, pct int) {
					progressMu.Lock()
					fmt.Fprintf(progress, "%s: %d%%\n", taskID, pct)
					progressMu.Unlock()
				}
			}

			res := mgr.Process(context.Background(), task)
			if res.Status != types.StatusCompleted {
				progressMu.Lock()
				fmt.Fprintf(progress, "%s: %s (%v)\n", file, res.Status, res.Err)
				progressMu.Unlock()
				failures[i] = true
				return
			}

			outPath := filepath.Join(outDir, outputName(file))
			if err := os.WriteFile(outPath, []byte(res.Output.Content), 0o644); err != nil {
				progressMu.Lock()
				fmt.Fprintf(progress, "%s: writing output: %v\n", file, err)
				progressMu.Unlock()
				failures[i] = true
			}
		}(i, file)
	}
	wg.Wait()

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}
	return failed
}

// outputName maps an input path to its formatted file name.
func outputName(file string) string {
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + ".formatted.txt"
}
