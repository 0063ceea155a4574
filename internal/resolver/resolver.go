package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"personmatch/internal/fileutil"
	"personmatch/internal/history"
	"personmatch/internal/logging"
	"personmatch/internal/matching"
	"personmatch/internal/services"
	"personmatch/internal/table"
)

const (
	stageValidate = "validate"
	stagePrepare  = "prepare"
	stageLoad     = "load"
	stageBuild    = "build"
	stageWrite    = "write"

	outputPrefix        = "output_"
	defaultOutputDir    = "output"
	defaultLargestLimit = 5
)

// Journal receives one entry per finished run.
type Journal interface {
	Record(ctx context.Context, run history.Run) error
}

// Options configures a Resolver.
type Options struct {
	InputPath string
	// Mode is the external spelling, e.g. same_email_or_phone.
	Mode      string
	OutputDir string
	// LockDir holds the advisory output locks. Empty means the system
	// temporary directory; the output directory itself is never used.
	LockDir string
	Table   table.Options
	Logger    *slog.Logger
	// Journal may be nil when history is disabled.
	Journal Journal
	// LargestClusters caps Summary.Largest. Zero means five.
	LargestClusters int
	Now             func() time.Time
}

// Resolver holds a validated request.
type Resolver struct {
	input      string
	mode       matching.Mode
	outputDir  string
	outputPath string
	lockDir    string
	tableOpts  table.Options
	logger     *slog.Logger
	journal    Journal
	largest    int
	now        func() time.Time
}

// Summary describes a completed run.
type Summary struct {
	RunID      string                 `json:"run_id"`
	InputPath  string                 `json:"input_path"`
	OutputPath string                 `json:"output_path"`
	Mode       string                 `json:"mode"`
	Records    int                    `json:"records"`
	Clusters   int                    `json:"clusters"`
	Merges     int                    `json:"merges"`
	Duplicates int                    `json:"duplicates"`
	Duration   time.Duration          `json:"duration_ns"`
	Largest    []matching.ClusterSize `json:"largest_clusters,omitempty"`
}

// New validates the input path and mode before any row is read.
func New(opts Options) (*Resolver, error) {
	input := strings.TrimSpace(opts.InputPath)
	if input == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, stageValidate, "input", "input file is required", nil)
	}
	exists, err := fileutil.RegularFileExists(input)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidArgument, stageValidate, "input", input, err)
	}
	if !exists {
		return nil, services.Wrap(services.ErrInvalidArgument, stageValidate, "input",
			fmt.Sprintf("input file not found: %s", input), nil)
	}

	if strings.TrimSpace(opts.Mode) == "" {
		return nil, services.Wrap(services.ErrInvalidArgument, stageValidate, "mode",
			"matching type is required: valid types are "+strings.Join(matching.Modes(), ", "), nil)
	}
	mode, err := matching.ParseMode(opts.Mode)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidArgument, stageValidate, "mode", "", err)
	}

	outputDir := strings.TrimSpace(opts.OutputDir)
	if outputDir == "" {
		outputDir = defaultOutputDir
	}

	lockDir := strings.TrimSpace(opts.LockDir)
	if lockDir == "" {
		lockDir = filepath.Join(os.TempDir(), "personmatch-locks")
	}

	largest := opts.LargestClusters
	if largest <= 0 {
		largest = defaultLargestLimit
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Resolver{
		input:      input,
		mode:       mode,
		outputDir:  outputDir,
		outputPath: OutputPath(outputDir, input),
		lockDir:    lockDir,
		tableOpts:  opts.Table,
		logger:     logging.NewComponentLogger(opts.Logger, "resolver"),
		journal:    opts.Journal,
		largest:    largest,
		now:        now,
	}, nil
}

// OutputPath derives the output location for input: output_<basename> inside outputDir.
func OutputPath(outputDir, input string) string {
	return filepath.Join(outputDir, outputPrefix+filepath.Base(input))
}

// LockPath names the lock guarding outputPath inside lockDir. The name
// carries the output basename plus a digest of its absolute path, so outputs
// with the same name in different directories never share a lock.
func LockPath(lockDir, outputPath string) string {
	abs := absolute(outputPath)
	digest := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)).String()[:8]
	return filepath.Join(lockDir, filepath.Base(abs)+"-"+digest+".lock")
}

// OutputPath returns where Run writes.
func (r *Resolver) OutputPath() string {
	return r.outputPath
}

// Mode returns the parsed matching mode.
func (r *Resolver) Mode() matching.Mode {
	return r.mode
}

// Run executes the pass. The run is journaled whether it succeeds or fails;
// journal failures are logged and never fail the run.
func (r *Resolver) Run(ctx context.Context) (*Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	started := r.now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)

	summary := &Summary{
		RunID:      runID,
		InputPath:  r.input,
		OutputPath: r.outputPath,
		Mode:       r.mode.String(),
	}
	logging.WithContext(ctx, r.logger).Info("run started",
		logging.String("input", r.input),
		logging.String("output", r.outputPath),
		logging.String("mode", summary.Mode),
	)

	err := r.execute(ctx, summary)
	summary.Duration = r.now().Sub(started)
	r.journalRun(ctx, summary, started, err)

	logger := logging.WithContext(ctx, r.logger)
	if err != nil {
		logger.Error("run failed",
			logging.String("error_kind", services.Kind(err)),
			logging.Error(err),
		)
		return nil, err
	}
	logger.Info("run complete",
		logging.Int("records", summary.Records),
		logging.Int("clusters", summary.Clusters),
		logging.Int("merges", summary.Merges),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (r *Resolver) execute(ctx context.Context, summary *Summary) error {
	if err := checkContext(ctx, stagePrepare); err != nil {
		return err
	}
	if err := fileutil.EnsureWritableDir(r.outputDir); err != nil {
		return services.Wrap(services.ErrOutput, stagePrepare, "output directory", r.outputDir, err)
	}

	if err := os.MkdirAll(r.lockDir, 0o755); err != nil {
		return services.Wrap(services.ErrOutput, stagePrepare, "lock directory", r.lockDir, err)
	}
	lock := flock.New(LockPath(r.lockDir, r.outputPath))
	locked, err := lock.TryLock()
	if err != nil {
		return services.Wrap(services.ErrOutput, stagePrepare, "lock", r.outputPath, err)
	}
	if !locked {
		return services.Wrap(services.ErrOutput, stagePrepare, "lock",
			fmt.Sprintf("%s is being written by another run", r.outputPath), nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			logging.WarnWithContext(r.logger, "failed to release output lock", "output_lock_release_failed",
				logging.String("lock", lock.Path()),
				logging.Error(unlockErr),
			)
		}
	}()

	if err := checkContext(ctx, stageLoad); err != nil {
		return err
	}
	stageCtx := services.WithStage(ctx, stageLoad)
	tbl, err := table.Load(r.input, r.tableOpts)
	if err != nil {
		return err
	}
	logging.WithContext(stageCtx, r.logger).Debug("table loaded",
		logging.Int("records", tbl.Len()),
		logging.Int("columns", len(tbl.Header)),
		logging.Bool("email_column", tbl.HasColumn(matching.FieldEmail)),
		logging.Bool("phone_column", tbl.HasColumn(matching.FieldPhone)),
	)

	if err := checkContext(ctx, stageBuild); err != nil {
		return err
	}
	result := matching.Assign(tbl.Records, r.mode)
	summary.Records = len(result.IDs)
	summary.Clusters = result.Clusters
	summary.Merges = result.Merges
	summary.Duplicates = result.Duplicates()
	summary.Largest = largestClusters(result.Sizes(), r.largest)
	logging.WithContext(services.WithStage(ctx, stageBuild), r.logger).Debug("identifiers assigned",
		logging.Int("clusters", result.Clusters),
		logging.Int("merges", result.Merges),
	)

	if err := checkContext(ctx, stageWrite); err != nil {
		return err
	}
	if err := table.WriteFile(r.outputPath, tbl, result.IDs, r.tableOpts); err != nil {
		return services.Wrap(services.ErrOutput, stageWrite, "write", r.outputPath, err)
	}
	return nil
}

func (r *Resolver) journalRun(ctx context.Context, summary *Summary, started time.Time, runErr error) {
	if r.journal == nil {
		return
	}
	run := history.Run{
		ID:        summary.RunID,
		InputPath: absolute(summary.InputPath),
		Mode:      summary.Mode,
		Records:   summary.Records,
		Clusters:  summary.Clusters,
		Merges:    summary.Merges,
		Status:    history.StatusSucceeded,
		StartedAt: started,
		Duration:  summary.Duration,
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.ErrorMessage = runErr.Error()
	} else {
		run.OutputPath = absolute(summary.OutputPath)
	}
	// The journal write is not cancellable by the run context so a cancelled
	// run is still recorded.
	if err := r.journal.Record(context.WithoutCancel(ctx), run); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, r.logger), "failed to journal run", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run is missing from `personmatch runs`"),
		)
	}
}

func checkContext(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return services.Wrap(nil, stage, "cancelled", "", err)
	}
	return nil
}

func largestClusters(sizes []matching.ClusterSize, limit int) []matching.ClusterSize {
	var out []matching.ClusterSize
	for _, size := range sizes {
		if size.Size < 2 || len(out) == limit {
			break
		}
		out = append(out, size)
	}
	return out
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
