package workflow

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cx-luo/molstack/internal/checkpoint"
	"github.com/cx-luo/molstack/internal/metrics"
	"github.com/cx-luo/molstack/internal/storage"
)

// Options configures a driver Run.
type Options struct {
	Logger           *zap.SugaredLogger
	Workers          int
	CheckpointPrefix string // empty disables checkpointing entirely
	Resume           bool   // attempt to load an existing checkpoint first
}

// Run drives file's steps to completion, one at a time (§5): each
// step's data-parallel phase fans out internally, but no two steps ever
// execute concurrently. On any step error, a checkpoint for the last
// successful step is written (unless checkpointing is disabled or the
// file opts out) and the error is returned. On success, the final
// WorkflowData is returned.
func Run(ctx context.Context, file *File, opts Options) (*WorkflowData, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	checkpointing := opts.CheckpointPrefix != "" && !file.NoCheckpoint

	wd := New(file.Base.Clone())
	skip := 0

	if checkpointing && opts.Resume {
		loaded := &WorkflowData{}
		n, ok, err := checkpoint.Load(opts.CheckpointPrefix, loaded)
		if err != nil {
			return nil, fmt.Errorf("workflow: resume: %w", err)
		}
		if ok {
			// gob decodes an empty stack path (such as the implicit base
			// stack) as nil; restore the empty path New seeds.
			for i, path := range loaded.Stacks {
				if path == nil {
					loaded.Stacks[i] = []int{}
				}
			}
			wd = loaded
			skip = n
			logger.Infof("resumed from checkpoint at step %d", skip)
		} else {
			logger.Infof("no checkpoint found at prefix %q, starting fresh", opts.CheckpointPrefix)
		}
	}

	mat := storage.NewMaterializer(wd.Storage, wd.Base)
	mat.OnCacheHit = metrics.MaterializeCacheHits.Inc
	mat.OnCacheMiss = metrics.MaterializeCacheMisses.Inc

	for idx := skip; idx < len(file.Steps); idx++ {
		step := file.Steps[idx]

		cursor := wd.Current
		if step.From != "" {
			var err error
			cursor, err = wd.Window(step.From)
			if err != nil {
				return nil, checkpointAndReturn(wd, idx, checkpointing, opts.CheckpointPrefix, errWrapped(err))
			}
		}

		runnerLabel := runnerKindLabel(step.Run.Kind)
		start := time.Now()
		output, err := step.Run.Execute(ctx, wd, mat, cursor, opts.Workers)
		metrics.StepDuration.WithLabelValues(runnerLabel).Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, checkpointAndReturn(wd, idx, checkpointing, opts.CheckpointPrefix, errWrapped(err))
		}

		stepLabel := step.Name
		if stepLabel == "" {
			stepLabel = strconv.Itoa(idx)
		}

		newWindow, err := applyOutput(wd, output, stepLabel, logger)
		if err != nil {
			return nil, checkpointAndReturn(wd, idx, checkpointing, opts.CheckpointPrefix, errWrapped(err))
		}
		if output.Kind != OutputNone {
			wd.Current = newWindow
		}

		if step.Name != "" {
			if _, exists := wd.Windows[step.Name]; exists {
				logger.Warnf("window name %q already bound, overwriting", step.Name)
			}
			wd.Windows[step.Name] = wd.Current
		}

		metrics.StepsExecuted.WithLabelValues(runnerLabel).Inc()
		logger.Infof("step %d (%s) done in %s, %d stacks in cursor", idx, runnerLabel, time.Since(start), len(wd.Current))

		if checkpointing {
			if err := checkpoint.Save(opts.CheckpointPrefix, idx+1, wd); err != nil {
				return nil, fmt.Errorf("workflow: checkpoint: %w", err)
			}
		}
	}

	return wd, nil
}

// applyOutput merges a step's RunnerOutput into wd, returning the new
// cursor window. Named subranges are additionally installed under
// "<stepLabel>_<subName>" regardless of whether the step itself names
// its combined window (§4.8).
func applyOutput(wd *WorkflowData, output RunnerOutput, stepLabel string, logger *zap.SugaredLogger) ([]int, error) {
	switch output.Kind {
	case OutputSerial:
		ids := make([]int, len(output.SerialPaths))
		for i, path := range output.SerialPaths {
			ids[i] = wd.AppendStack(path)
		}
		return ids, nil

	case OutputNamed:
		names := make([]string, 0, len(output.NamedPaths))
		for name := range output.NamedPaths {
			names = append(names, name)
		}
		sort.Strings(names)

		var combined []int
		for _, name := range names {
			groupIDs := make([]int, len(output.NamedPaths[name]))
			for i, path := range output.NamedPaths[name] {
				groupIDs[i] = wd.AppendStack(path)
			}
			label := stepLabel + "_" + name
			if _, exists := wd.Windows[label]; exists {
				logger.Warnf("window name %q already bound, overwriting", label)
			}
			wd.Windows[label] = groupIDs
			combined = append(combined, groupIDs...)
		}
		return combined, nil

	case OutputNone:
		return wd.Current, nil

	default:
		return nil, fmt.Errorf("workflow: malformed RunnerOutput")
	}
}

func runnerKindLabel(kind RunnerKind) string {
	switch kind {
	case RunnerAddLayers:
		return "add_layers"
	case RunnerSubstituent:
		return "substituent"
	case RunnerFunction:
		return "function"
	case RunnerOutputXYZ:
		return "output_xyz"
	default:
		return "unknown"
	}
}

// checkpointAndReturn saves a checkpoint pinned at the failed step (so
// resume retries it, not skips it) before propagating err.
func checkpointAndReturn(wd *WorkflowData, idx int, checkpointing bool, prefix string, err error) error {
	if checkpointing {
		if saveErr := checkpoint.Save(prefix, idx, wd); saveErr != nil {
			return fmt.Errorf("workflow: step %d failed: %w (checkpoint also failed: %s)", idx, err, saveErr)
		}
	}
	return fmt.Errorf("workflow: step %d: %w", idx, err)
}
