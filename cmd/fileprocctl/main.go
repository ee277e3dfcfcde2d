package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/docflex/gRPC-File-Processor/internal/api"
	"github.com/docflex/gRPC-File-Processor/internal/fileops"
	"github.com/docflex/gRPC-File-Processor/internal/metrics"
	"github.com/docflex/gRPC-File-Processor/internal/workerpool"
	"github.com/docflex/gRPC-File-Processor/internal/workflow"
	"github.com/docflex/gRPC-File-Processor/pkg/domain"
)

type ui struct {
	ok   func(a ...any) string
	fail func(a ...any) string
	dim  func(a ...any) string
}

func newUI() *ui {
	return &ui{
		ok:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		fail: color.New(color.FgRed, color.Bold).SprintFunc(),
		dim:  color.New(color.FgHiBlack).SprintFunc(),
	}
}

func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func buildService(storageDir string) (api.Service, *workerpool.Pool) {
	pool := workerpool.New(workerpool.Config{CoreWorkers: 2, MaxWorkers: 8, QueueCapacity: 64})
	ops := fileops.NewLibrary(storageDir, 0, nil)
	exec := workflow.NewExecutor(pool, ops, metrics.New(), nil)
	return api.NewService(exec), pool
}

func guessType(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "bin"
	}
	return ext
}

func loadFiles(paths []string) ([]domain.File, error) {
	files := make([]domain.File, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		id := filepath.Base(p) + "-" + fmt.Sprintf("%d", info.Size())
		files = append(files, domain.NewFile(id, filepath.Base(p), content, guessType(p), info.Size()))
	}
	return files, nil
}

func parseOperations(raw []string) []domain.OperationKind {
	if len(raw) == 0 {
		return []domain.OperationKind{domain.OpValidate}
	}
	ops := make([]domain.OperationKind, len(raw))
	for i, r := range raw {
		ops[i] = domain.ParseOperationKind(r)
	}
	return ops
}

func runBatch(ui *ui, svc api.Service, req domain.Request) error {
	var spin *spinner.Spinner
	if isTTY() {
		spin = spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		spin.Suffix = " Processing files..."
		spin.Start()
	}

	summary, err := svc.ProcessFile(context.Background(), req)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	for _, r := range summary.Results() {
		printResult(ui, r)
	}
	fmt.Printf("\n%d files, %d succeeded, %d failed\n", summary.TotalFiles, summary.SuccessfulCount, summary.FailedCount)
	return nil
}

func runStreamed(ui *ui, svc api.Service, req domain.Request, totalTasks int) error {
	var bar *progressbar.ProgressBar
	if isTTY() && totalTasks > 0 {
		bar = progressbar.NewOptions(totalTasks,
			progressbar.OptionSetDescription("Processing"),
			progressbar.OptionSetWidth(18),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	err := svc.StreamFileOperations(context.Background(), req, func(r domain.OperationResult) error {
		if bar != nil {
			_ = bar.Add(1)
		}
		printResult(ui, r)
		return nil
	})
	if bar != nil {
		_ = bar.Finish()
	}
	return err
}

func printResult(ui *ui, r domain.OperationResult) {
	if r.Succeeded() {
		fmt.Printf("%s %s %s %s\n", ui.ok("[OK]"), r.FileID, r.OperationKind, ui.dim(r.Details))
		return
	}
	fmt.Printf("%s %s %s %s\n", ui.fail("[FAILED]"), r.FileID, r.OperationKind, ui.dim(r.Details))
}

func main() {
	var storageDir string
	var operations []string
	var stream bool

	ui := newUI()

	root := &cobra.Command{
		Use:   "fileprocctl",
		Short: "fileprocctl CLI",
		Long:  "fileprocctl drives the file processing workflow engine directly, in-process, without a running server.",
	}
	root.SilenceUsage = true
	root.PersistentFlags().StringVar(&storageDir, "storage-dir", os.TempDir(), "Directory the storeFile operation writes into")

	process := &cobra.Command{
		Use:     "process <file> [file...]",
		Short:   "Run a workflow over one or more local files",
		Example: "fileprocctl process --op VALIDATE --op METADATA_EXTRACTION report.pdf photo.jpg",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := loadFiles(args)
			if err != nil {
				return err
			}
			ops := parseOperations(operations)

			req, err := domain.NewRequest(files, ops, nil)
			if err != nil {
				return err
			}

			svc, pool := buildService(storageDir)
			defer pool.Shutdown()

			if stream {
				return runStreamed(ui, svc, req, len(files)*len(ops))
			}
			return runBatch(ui, svc, req)
		},
	}
	process.Flags().StringArrayVar(&operations, "op", nil, "Operation to run (repeatable); defaults to VALIDATE")
	process.Flags().BoolVar(&stream, "stream", false, "Stream per-task results as they complete instead of waiting for the full summary")

	root.AddCommand(process)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("[ERROR]"), err.Error())
		os.Exit(1)
	}
}
