package workflow

import (
	"github.com/cx-luo/molstack/internal/molecule"
	"github.com/cx-luo/molstack/internal/storage"
)

// WorkflowData is the full persisted state of a run: the immutable base
// molecule, the monotonic layer table, every stack ever materialized (a
// stack is a list of layer ids, the path folded over base), the named
// windows a step can be resumed `from`, and the cursor — the window the
// next step without an explicit `from` reads.
type WorkflowData struct {
	Base    *molecule.MoleculeLayer
	Storage *storage.LayerStorage
	Stacks  [][]int
	Windows map[string][]int
	Current []int
}

// New returns a WorkflowData seeded with base and the implicit stack 0,
// the empty layer path (base itself, unmodified). The cursor starts
// pointed at that one stack, also bound under the "base" window name, so
// the first step of an otherwise-empty workflow has something to read
// from.
func New(base *molecule.MoleculeLayer) *WorkflowData {
	return &WorkflowData{
		Base:    base,
		Storage: storage.New(),
		Stacks:  [][]int{{}},
		Windows: map[string][]int{"base": {0}},
		Current: []int{0},
	}
}

// AppendStack records path as a new stack and returns its id.
func (w *WorkflowData) AppendStack(path []int) int {
	id := len(w.Stacks)
	w.Stacks = append(w.Stacks, path)
	return id
}

// StackPath returns the layer-id path for stack id.
func (w *WorkflowData) StackPath(id int) ([]int, error) {
	if id < 0 || id >= len(w.Stacks) {
		return nil, errStackIdOutOfRange(id)
	}
	return w.Stacks[id], nil
}

// Window resolves name to its stack-id list, or WindowNotFound.
func (w *WorkflowData) Window(name string) ([]int, error) {
	ids, ok := w.Windows[name]
	if !ok {
		return nil, errWindowNotFound(name)
	}
	return ids, nil
}

// ReferencedLayerIDs collects every layer id reachable from any stack
// currently recorded, for use with storage.LayerStorage.RemoveUnused.
func (w *WorkflowData) ReferencedLayerIDs() map[int]struct{} {
	out := map[int]struct{}{}
	for _, path := range w.Stacks {
		for _, id := range path {
			out[id] = struct{}{}
		}
	}
	return out
}
