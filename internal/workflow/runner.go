package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cx-luo/molstack/internal/layer"
	"github.com/cx-luo/molstack/internal/molecule"
	"github.com/cx-luo/molstack/internal/storage"
	"github.com/cx-luo/molstack/internal/substituent"
	"github.com/cx-luo/molstack/internal/xyzio"
)

// RunnerKind discriminates the four Runner variants (§4.7).
type RunnerKind int

const (
	RunnerAddLayers RunnerKind = iota
	RunnerSubstituent
	RunnerFunction
	RunnerOutputXYZ
)

// Runner is one of the four step behaviors the driver can execute.
// Exactly one set of fields is populated, matching AddLayers/
// Substituent/Function/OutputXYZ in the original.
type Runner struct {
	Kind RunnerKind

	AddLayersLayers []layer.Layer

	SubstituentEntry       layer.SelectOne
	SubstituentExit        layer.SelectOne
	SubstituentFilePattern string

	FunctionCommand string
	FunctionArgs    []string

	OutputXYZOptions xyzio.Options
}

// OutputKind is the RunnerOutput discriminant controlling how a step's
// produced stacks merge back into Stacks/Windows.
type OutputKind int

const (
	OutputSerial OutputKind = iota
	OutputNamed
	OutputNone
)

// RunnerOutput is the result of a Runner's execution: a Serial list of
// new stack paths (order preserved), a Named map of paths keyed by
// group (applyOutput appends the groups in lexicographic name order), or
// None.
type RunnerOutput struct {
	Kind        OutputKind
	SerialPaths [][]int
	NamedPaths  map[string][][]int
}

// Execute runs the runner over window — the current cursor's list of
// stack ids — materializing as needed via mat, and returns the new
// stacks it produced.
func (r Runner) Execute(ctx context.Context, wd *WorkflowData, mat *storage.Materializer, window []int, workers int) (RunnerOutput, error) {
	switch r.Kind {
	case RunnerAddLayers:
		return r.executeAddLayers(wd, window)
	case RunnerSubstituent:
		return r.executeSubstituent(ctx, wd, mat, window, workers)
	case RunnerFunction:
		return r.executeFunction(ctx, wd, mat, window, workers)
	case RunnerOutputXYZ:
		return r.executeOutputXYZ(wd, mat, window, workers)
	default:
		return RunnerOutput{}, fmt.Errorf("workflow: malformed runner")
	}
}

func (r Runner) executeAddLayers(wd *WorkflowData, window []int) (RunnerOutput, error) {
	ids := wd.Storage.CreateLayers(r.AddLayersLayers)

	paths := make([][]int, len(window))
	for i, stackID := range window {
		path, err := wd.StackPath(stackID)
		if err != nil {
			return RunnerOutput{}, err
		}
		merged := make([]int, 0, len(path)+len(ids))
		merged = append(merged, path...)
		merged = append(merged, ids...)
		paths[i] = merged
	}
	return RunnerOutput{Kind: OutputSerial, SerialPaths: paths}, nil
}

func (r Runner) executeSubstituent(ctx context.Context, wd *WorkflowData, mat *storage.Materializer, window []int, workers int) (RunnerOutput, error) {
	files, err := filepath.Glob(r.SubstituentFilePattern)
	if err != nil {
		return RunnerOutput{}, errRunner(GlobError, err)
	}
	sort.Strings(files)

	subs := make([]*substituent.Substituent, len(files))
	for i, f := range files {
		sub, err := substituent.LoadFile(f)
		if err != nil {
			return RunnerOutput{}, errRunner(FileRead, err)
		}
		subs[i] = sub
	}

	type job struct {
		stackIdx, subIdx int
	}
	jobs := make([]job, 0, len(window)*len(subs))
	for si := range window {
		for bi := range subs {
			jobs = append(jobs, job{si, bi})
		}
	}

	results := make([]*molecule.MoleculeLayer, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			path, err := wd.StackPath(window[j.stackIdx])
			if err != nil {
				return err
			}
			current, err := mat.Materialize(path)
			if err != nil {
				return err
			}
			attached, err := substituent.Attach(current, r.SubstituentEntry, r.SubstituentExit, *subs[j.subIdx])
			if err != nil {
				return err
			}
			results[i] = attached
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunnerOutput{}, err
	}

	named := make(map[string][][]int, len(subs))
	for i, j := range jobs {
		path, err := wd.StackPath(window[j.stackIdx])
		if err != nil {
			return RunnerOutput{}, err
		}
		// Attach already returns the full combined molecule (target +
		// transformed substituent), not a fragment to append — wrap it in
		// Replace so materialization hands it back as-is instead of
		// re-offsetting it over the current stack as Fill would.
		replaceLayer := layer.NewReplace(results[i])
		ids := wd.Storage.CreateLayers([]layer.Layer{replaceLayer})
		merged := make([]int, 0, len(path)+1)
		merged = append(merged, path...)
		merged = append(merged, ids...)
		name := subs[j.subIdx].Name
		named[name] = append(named[name], merged)
	}

	return RunnerOutput{Kind: OutputNamed, NamedPaths: named}, nil
}

func (r Runner) executeFunction(ctx context.Context, wd *WorkflowData, mat *storage.Materializer, window []int, workers int) (RunnerOutput, error) {
	materialized := make([]*molecule.MoleculeLayer, len(window))
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, stackID := range window {
		i, stackID := i, stackID
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			path, err := wd.StackPath(stackID)
			if err != nil {
				return err
			}
			m, err := mat.Materialize(path)
			if err != nil {
				return err
			}
			materialized[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunnerOutput{}, err
	}

	tempDir, err := os.MkdirTemp("", "molstack-"+uuid.NewString())
	if err != nil {
		return RunnerOutput{}, errRunner(TempDirCreate, err)
	}
	defer os.RemoveAll(tempDir)

	stacksData, err := json.Marshal(materialized)
	if err != nil {
		return RunnerOutput{}, errRunner(SerializationError, err)
	}
	stacksPath := filepath.Join(tempDir, "stacks.json")
	if err := os.WriteFile(stacksPath, stacksData, 0o644); err != nil {
		return RunnerOutput{}, errRunner(FileWrite, err)
	}

	cmd := exec.CommandContext(ctx, r.FunctionCommand, r.FunctionArgs...)
	cmd.Dir = tempDir
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return RunnerOutput{}, errRunner(CommandExitStatus, err)
		}
		return RunnerOutput{}, errRunner(CommandSpawn, err)
	}

	outputPath := filepath.Join(tempDir, "output.json")
	outputData, err := os.ReadFile(outputPath)
	if err != nil {
		return RunnerOutput{}, errRunner(FileRead, err)
	}
	var output RunnerOutput
	if err := json.Unmarshal(outputData, &output); err != nil {
		return RunnerOutput{}, errRunner(SerializationError, err)
	}
	return output, nil
}

func (r Runner) executeOutputXYZ(wd *WorkflowData, mat *storage.Materializer, window []int, workers int) (RunnerOutput, error) {
	g := new(errgroup.Group)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, stackID := range window {
		stackID := stackID
		g.Go(func() error {
			path, err := wd.StackPath(stackID)
			if err != nil {
				return err
			}
			m, err := mat.Materialize(path)
			if err != nil {
				return err
			}
			if _, _, err := xyzio.Write(m, r.OutputXYZOptions); err != nil {
				return errRunner(FileWrite, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RunnerOutput{}, err
	}
	return RunnerOutput{Kind: OutputNone}, nil
}
