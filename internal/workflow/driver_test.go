package workflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cx-luo/molstack/internal/chemistry"
	"github.com/cx-luo/molstack/internal/layer"
	"github.com/cx-luo/molstack/internal/logging"
	"github.com/cx-luo/molstack/internal/molecule"
	"github.com/cx-luo/molstack/internal/storage"
	"github.com/cx-luo/molstack/internal/workflow"
)

func methylCarbon() *molecule.MoleculeLayer {
	m := molecule.New()
	m.ExtendTo(1)
	m.Atoms.SetAtoms(0, []*chemistry.Atom3D{{Element: 6}})
	return m
}

// TestRun_EmptyWorkflow is end-to-end scenario 2 from §8: zero steps
// leaves WorkflowData exactly as New seeded it — one stack, the empty
// path, with the cursor and the "base" window both pointed at it.
func TestRun_EmptyWorkflow(t *testing.T) {
	file := &workflow.File{Base: *methylCarbon()}
	wd, err := workflow.Run(context.Background(), file, workflow.Options{})
	require.NoError(t, err)

	require.Len(t, wd.Stacks, 1)
	assert.Empty(t, wd.Stacks[0])
	assert.Equal(t, []int{0}, wd.Current)
	base, err := wd.Window("base")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, base)
}

// TestRun_AddLayersFanIn is end-to-end scenario 3: a single AddLayers
// step over the implicit base window produces one new stack referencing
// both newly created layer ids, and the cursor becomes that one stack.
func TestRun_AddLayersFanIn(t *testing.T) {
	oxygen := chemistry.Atom3D{Element: 8}
	nitrogen := chemistry.Atom3D{Element: 7}
	file := &workflow.File{
		Base: *methylCarbon(),
		Steps: []workflow.Step{
			{
				Run: workflow.Runner{
					Kind:            workflow.RunnerAddLayers,
					AddLayersLayers: []layer.Layer{layer.NewSetAtom(1, &oxygen), layer.NewSetAtom(2, &nitrogen)},
				},
			},
		},
	}

	wd, err := workflow.Run(context.Background(), file, workflow.Options{})
	require.NoError(t, err)

	require.Len(t, wd.Current, 1)
	assert.NotEqual(t, 0, wd.Current[0], "a new stack must be appended, not the implicit base stack")
	path, err := wd.StackPath(wd.Current[0])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, path)
}

// TestRun_NamedSubstituentStep is end-to-end scenario 4: one stack fed
// through a Substituent step matching 3 fragment files produces a Named
// output with 3 keys, each holding 1 stack, for a combined window length
// of 3; sub-window names are additionally bound under
// "<stepName>_<fragName>".
func TestRun_NamedSubstituentStep(t *testing.T) {
	dir := t.TempDir()
	names := []string{"h", "f", "cl"}
	elements := map[string]int{"h": 1, "f": 9, "cl": 17}
	for _, name := range names {
		frag := molecule.New()
		frag.ExtendTo(2)
		frag.Atoms.SetAtoms(0, []*chemistry.Atom3D{
			{Element: elements[name]},
			{Element: elements[name], Position: chemistry.Vector3{X: 1}},
		})
		writeSubstituentFile(t, filepath.Join(dir, name+".yaml"), name, frag)
	}

	oxygen := chemistry.Atom3D{Element: 8}
	file := &workflow.File{
		Base: *methylCarbon(),
		Steps: []workflow.Step{
			{
				Run: workflow.Runner{
					Kind:            workflow.RunnerAddLayers,
					AddLayersLayers: []layer.Layer{layer.NewSetAtom(1, &oxygen)},
				},
			},
			{
				Name: "subs",
				Run: workflow.Runner{
					Kind:                   workflow.RunnerSubstituent,
					SubstituentEntry:       layer.SelectOneIndex(0),
					SubstituentExit:        layer.SelectOneIndex(1),
					SubstituentFilePattern: filepath.Join(dir, "*.yaml"),
				},
			},
		},
	}

	wd, err := workflow.Run(context.Background(), file, workflow.Options{})
	require.NoError(t, err)

	assert.Len(t, wd.Current, len(names))
	for _, name := range names {
		window, err := wd.Window("subs_" + name)
		require.NoError(t, err)
		assert.Len(t, window, 1)
	}
	combined, err := wd.Window("subs")
	require.NoError(t, err)
	assert.Len(t, combined, len(names))
}

// TestRun_NamedSubstituentStep_MaterializesCombinedMoleculeNotDuplicate
// closes the gap a prior review found: the earlier implementation stored
// a Substituent step's result as a second offset Layer::Fill over the
// current stack, which silently duplicated the target atoms instead of
// replacing the entry atom. This materializes the produced stack and
// checks the actual atom count, the entry replacement, and the title
// instead of only stack/window counts.
func TestRun_NamedSubstituentStep_MaterializesCombinedMoleculeNotDuplicate(t *testing.T) {
	dir := t.TempDir()
	frag := molecule.New()
	frag.ExtendTo(2)
	frag.Atoms.SetAtoms(0, []*chemistry.Atom3D{
		{Element: 9},
		{Element: 9, Position: chemistry.Vector3{X: 1}},
	})
	writeSubstituentFile(t, filepath.Join(dir, "f.yaml"), "f", frag)

	oxygen := chemistry.Atom3D{Element: 8}
	base := methylCarbon()
	file := &workflow.File{
		Base: *base,
		Steps: []workflow.Step{
			{
				Run: workflow.Runner{
					Kind:            workflow.RunnerAddLayers,
					AddLayersLayers: []layer.Layer{layer.NewSetAtom(1, &oxygen)},
				},
			},
			{
				Name: "subs",
				Run: workflow.Runner{
					Kind:                   workflow.RunnerSubstituent,
					SubstituentEntry:       layer.SelectOneIndex(0),
					SubstituentExit:        layer.SelectOneIndex(1),
					SubstituentFilePattern: filepath.Join(dir, "*.yaml"),
				},
			},
		},
	}

	wd, err := workflow.Run(context.Background(), file, workflow.Options{})
	require.NoError(t, err)
	require.Len(t, wd.Current, 1)

	mat := storage.NewMaterializer(wd.Storage, wd.Base)
	path, err := wd.StackPath(wd.Current[0])
	require.NoError(t, err)
	out, err := mat.Materialize(path)
	require.NoError(t, err)

	// target (methyl carbon + oxygen, length 2) + fragment (length 2) =
	// 4 sparse slots; not 2*2+2=6 as the old double-offset Fill bug
	// would have produced.
	require.Equal(t, 4, out.Len())
	assert.Equal(t, 9, out.Atoms.ReadAtom(0).Element, "entry atom must be replaced by the substituent's on_body atom in place, not left as a hole from a mis-offset duplicate")
	assert.NotNil(t, out.Atoms.ReadAtom(1), "the original target's other atoms must survive untouched, not be shifted into a second duplicated range")
	assert.Equal(t, "_f", out.Title[len(out.Title)-2:])
}

func addOneAtomSteps(n int) []workflow.Step {
	steps := make([]workflow.Step, n)
	for i := 0; i < n; i++ {
		atom := chemistry.Atom3D{Element: 6 + i}
		steps[i] = workflow.Step{
			Run: workflow.Runner{
				Kind:            workflow.RunnerAddLayers,
				AddLayersLayers: []layer.Layer{layer.NewSetAtom(i+1, &atom)},
			},
		}
	}
	return steps
}

// TestRun_ResumeFromCheckpoint is end-to-end scenario 5 from §8: a run
// checkpointed after 2 of 5 steps, then resumed, lands on exactly the
// same final state as running all 5 steps uninterrupted — the checkpoint
// stands in for steps 1-2, and only steps 3-5 run on resume.
func TestRun_ResumeFromCheckpoint(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "ckpt")
	fullFile := &workflow.File{Base: *methylCarbon(), Steps: addOneAtomSteps(5)}

	truncated := &workflow.File{Base: *methylCarbon(), Steps: addOneAtomSteps(5)[:2]}
	_, err := workflow.Run(context.Background(), truncated, workflow.Options{CheckpointPrefix: prefix, Logger: logging.Noop()})
	require.NoError(t, err)

	resumed, err := workflow.Run(context.Background(), fullFile, workflow.Options{CheckpointPrefix: prefix, Resume: true, Logger: logging.Noop()})
	require.NoError(t, err)

	uninterrupted, err := workflow.Run(context.Background(), fullFile, workflow.Options{Logger: logging.Noop()})
	require.NoError(t, err)

	assert.Equal(t, uninterrupted.Stacks, resumed.Stacks)
	assert.Equal(t, uninterrupted.Current, resumed.Current)
}

// substituentFileForm mirrors the substituent package's own (unexported)
// wire shape so tests can produce well-formed fragment files without
// reaching into that package.
type substituentFileForm struct {
	Direction       layer.SelectOne        `yaml:"direction"`
	OnBody          layer.SelectOne        `yaml:"on_body"`
	Structure       molecule.MoleculeLayer `yaml:"structure"`
	SubstituentName string                 `yaml:"substituent_name"`
}

func writeSubstituentFile(t *testing.T, path, name string, frag *molecule.MoleculeLayer) {
	t.Helper()
	form := substituentFileForm{
		Direction:       layer.SelectOneIndex(1),
		OnBody:          layer.SelectOneIndex(0),
		Structure:       *frag,
		SubstituentName: name,
	}
	data, err := yaml.Marshal(form)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}
