package dfa

import (
	"sort"

	"github.com/coregx/rex/internal/rast"
	"github.com/coregx/rex/simd"
)

// Limits bounds what the compiler will attempt (spec §4.7).
type Limits struct {
	MaxStates      int // state-count budget before compilation fails
	MaxAltBranches int // alternation branches the compiler will determinize (default 8, mirrors rclass.DefaultLimits)
}

// DefaultLimits matches rclass.DefaultLimits's SIMPLE-tier bounds.
func DefaultLimits() Limits {
	return Limits{MaxStates: 4096, MaxAltBranches: 8}
}

// byteEdge is one labeled transition in the Thompson NFA under
// construction: every byte in [lo, hi] moves from the owning state to
// "to".
type byteEdge struct {
	lo, hi byte
	to     int32
}

// nfaState is one state of the intermediate NFA: a set of byte-range
// edges plus a set of epsilon transitions, built once per pattern and
// thrown away after subset construction.
type nfaState struct {
	edges []byteEdge
	eps   []int32
}

// frag is a fragment of the NFA under construction: an entry state and
// an exit state, with no edges leaving frag's internal states to the
// outside except through accept.
type frag struct {
	start, accept int32
}

type builder struct {
	states []nfaState
	limits Limits
}

func (b *builder) newState() int32 {
	b.states = append(b.states, nfaState{})
	return int32(len(b.states) - 1)
}

func (b *builder) addByteEdge(from int32, lo, hi byte, to int32) {
	b.states[from].edges = append(b.states[from].edges, byteEdge{lo, hi, to})
}

func (b *builder) epsilon(from, to int32) {
	b.states[from].eps = append(b.states[from].eps, to)
}

// Compile builds a DFA Table for root (spec §4.7). root must already
// have been classified SIMPLE; Compile returns *UnsupportedConstructError
// for shapes the classifier let through that this compiler does not
// attempt (mid-pattern anchors, alternations with more branches than
// limits.MaxAltBranches), and *PatternTooLargeError if subset
// construction would exceed limits.MaxStates.
func Compile(root *rast.Node, limits Limits) (*Table, error) {
	anchoredStart, anchoredEnd, core := stripFramingAnchors(root)

	b := &builder{limits: limits}
	f, err := b.build(core)
	if err != nil {
		return nil, err
	}

	table, err := subsetConstruct(b.states, f.start, f.accept, limits)
	if err != nil {
		return nil, err
	}
	table.AnchoredStart = anchoredStart
	table.AnchoredEnd = anchoredEnd
	annotateClassMatchers(table)
	return table, nil
}

// stripFramingAnchors peels a leading AnchorStart and/or trailing
// AnchorEnd off root's top-level sequence, the way rclass.stripAnchors
// does for classification, and reports them as table flags instead of
// NFA states (zero-width assertions have no byte-consuming
// representation in a DFA transition).
func stripFramingAnchors(root *rast.Node) (start, end bool, core *rast.Node) {
	if root.Kind != rast.KindGroup {
		if root.Kind == rast.KindAnchorStart {
			return true, false, &rast.Node{Kind: rast.KindGroup, Min: 1, Max: 1}
		}
		if root.Kind == rast.KindAnchorEnd {
			return false, true, &rast.Node{Kind: rast.KindGroup, Min: 1, Max: 1}
		}
		return false, false, root
	}
	children := append([]*rast.Node(nil), root.Children...)
	if len(children) > 0 && children[0].Kind == rast.KindAnchorStart {
		start = true
		children = children[1:]
	}
	if len(children) > 0 && children[len(children)-1].Kind == rast.KindAnchorEnd {
		end = true
		children = children[:len(children)-1]
	}
	cp := *root
	cp.Children = children
	return start, end, &cp
}

// build compiles n, including its quantifier, into a fragment.
func (b *builder) build(n *rast.Node) (frag, error) {
	first, err := b.buildOnce(n)
	if err != nil {
		return frag{}, err
	}
	return b.repeat(first, n, func() (frag, error) { return b.buildOnce(n) })
}

// buildOnce compiles the structural shape of n (ignoring its
// quantifier, which repeat applies) into a fragment matching exactly
// one occurrence.
func (b *builder) buildOnce(n *rast.Node) (frag, error) {
	switch n.Kind {
	case rast.KindLiteral:
		s, a := b.newState(), b.newState()
		b.addByteEdge(s, n.Byte, n.Byte, a)
		return frag{s, a}, nil

	case rast.KindWildcard:
		s, a := b.newState(), b.newState()
		for _, r := range rast.NewlineBitmap().Negated().Ranges() {
			b.addByteEdge(s, r[0], r[1], a)
		}
		return frag{s, a}, nil

	case rast.KindClass:
		s, a := b.newState(), b.newState()
		bm := n.Class.Bitmap
		if n.Class.Negated {
			bm = bm.Negated()
		}
		for _, r := range bm.Ranges() {
			b.addByteEdge(s, r[0], r[1], a)
		}
		return frag{s, a}, nil

	case rast.KindAnchorStart, rast.KindAnchorEnd:
		return frag{}, &UnsupportedConstructError{Reason: "anchor does not frame the whole pattern"}

	case rast.KindGroup:
		if len(n.Children) == 0 {
			s := b.newState()
			return frag{s, s}, nil
		}
		var cur frag
		for i, c := range n.Children {
			f, err := b.build(c)
			if err != nil {
				return frag{}, err
			}
			if i == 0 {
				cur = f
				continue
			}
			b.epsilon(cur.accept, f.start)
			cur.accept = f.accept
		}
		return cur, nil

	case rast.KindAlternation:
		branches := flattenAlternation(n)
		if len(branches) > b.limits.MaxAltBranches {
			return frag{}, &UnsupportedConstructError{Reason: "alternation has more branches than the DFA branch cap"}
		}
		s, a := b.newState(), b.newState()
		for _, br := range branches {
			f, err := b.build(br)
			if err != nil {
				return frag{}, err
			}
			b.epsilon(s, f.start)
			b.epsilon(f.accept, a)
		}
		return frag{s, a}, nil

	default:
		return frag{}, &UnsupportedConstructError{Reason: "unrecognized node kind"}
	}
}

func flattenAlternation(n *rast.Node) []*rast.Node {
	var out []*rast.Node
	var walk func(*rast.Node)
	walk = func(n *rast.Node) {
		if n.Kind != rast.KindAlternation {
			out = append(out, n)
			return
		}
		walk(n.Children[0])
		walk(n.Children[1])
	}
	walk(n)
	return out
}

// repeat wraps first/rebuild with the quantifier n carries (spec
// §4.7's {n,m} counting logic, generalized uniformly across node
// kinds since every Node carries its own Min/Max).
func (b *builder) repeat(first frag, n *rast.Node, rebuild func() (frag, error)) (frag, error) {
	min, max := int(n.Min), int(n.Max)
	if min == 1 && max == 1 {
		return first, nil
	}

	var start, cur int32
	if min == 0 {
		start = b.newState()
		cur = start
	} else {
		start = first.start
		cur = first.accept
		for i := 1; i < min; i++ {
			f, err := rebuild()
			if err != nil {
				return frag{}, err
			}
			b.epsilon(cur, f.start)
			cur = f.accept
		}
	}
	mandatoryEnd := cur

	if max == rast.Unbounded {
		loopStart := b.newState()
		b.epsilon(mandatoryEnd, loopStart)
		var f frag
		var err error
		if min == 0 {
			f = first
		} else if f, err = rebuild(); err != nil {
			return frag{}, err
		}
		b.epsilon(loopStart, f.start)
		b.epsilon(f.accept, loopStart)
		accept := b.newState()
		b.epsilon(loopStart, accept)
		return frag{start, accept}, nil
	}

	optionalCount := max - min
	if optionalCount == 0 {
		return frag{start, mandatoryEnd}, nil
	}
	finalAccept := b.newState()
	cur = mandatoryEnd
	for i := 0; i < optionalCount; i++ {
		var f frag
		var err error
		if i == 0 && min == 0 {
			f = first
		} else if f, err = rebuild(); err != nil {
			return frag{}, err
		}
		b.epsilon(cur, f.start)
		b.epsilon(cur, finalAccept)
		cur = f.accept
	}
	b.epsilon(cur, finalAccept)
	return frag{start, finalAccept}, nil
}

// dfaStateKey identifies a subset-construction state: the sorted set
// of NFA state ids it corresponds to.
type dfaStateKey string

func keyOf(set []int32) dfaStateKey {
	sorted := append([]int32(nil), set...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	buf := make([]byte, 0, len(sorted)*4)
	for _, s := range sorted {
		buf = append(buf, byte(s), byte(s>>8), byte(s>>16), byte(s>>24))
	}
	return dfaStateKey(buf)
}

// epsilonClosure returns the set of NFA states reachable from seed via
// zero or more epsilon transitions.
func epsilonClosure(states []nfaState, seed []int32) []int32 {
	seen := make(map[int32]bool)
	var stack []int32
	for _, s := range seed {
		if s >= 0 && !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range states[n].eps {
			if e >= 0 && !seen[e] {
				seen[e] = true
				stack = append(stack, e)
			}
		}
	}
	out := make([]int32, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	return out
}

// subsetConstruct determinizes the NFA (states, start..accept) into a
// dense byte-indexed transition table, failing if more than
// limits.MaxStates DFA states would be needed.
func subsetConstruct(states []nfaState, start, accept int32, limits Limits) (*Table, error) {
	startSet := epsilonClosure(states, []int32{start})

	var table Table
	seen := map[dfaStateKey]int32{}

	addState := func(set []int32) int32 {
		key := keyOf(set)
		if id, ok := seen[key]; ok {
			return id
		}
		id := int32(len(table.Transitions))
		seen[key] = id
		var row [256]int32
		for i := range row {
			row[i] = DeadState
		}
		table.Transitions = append(table.Transitions, row)
		isAccept := false
		for _, s := range set {
			if s == accept {
				isAccept = true
				break
			}
		}
		table.Accept = append(table.Accept, isAccept)
		return id
	}

	startID := addState(startSet)
	table.StartState = startID

	queue := []struct {
		id  int32
		set []int32
	}{{startID, startSet}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		// Partition outgoing edges of every NFA state in cur.set into
		// per-byte destination sets (a 256-entry table of epsilon
		// closures would be wasteful; instead collect boundary points
		// and process uniform byte ranges).
		var boundaries []int
		edgesByState := make([][]byteEdge, 0, len(cur.set))
		for _, s := range cur.set {
			edgesByState = append(edgesByState, states[s].edges)
			for _, e := range states[s].edges {
				boundaries = append(boundaries, int(e.lo), int(e.hi)+1)
			}
		}
		boundaries = append(boundaries, 0, 256)
		sort.Ints(boundaries)
		boundaries = dedupInts(boundaries)

		for bi := 0; bi+1 < len(boundaries); bi++ {
			lo := boundaries[bi]
			hi := boundaries[bi+1] - 1
			if lo > hi || lo > 255 {
				continue
			}
			var dest []int32
			for _, edges := range edgesByState {
				for _, e := range edges {
					if int(e.lo) <= lo && hi <= int(e.hi) {
						dest = append(dest, e.to)
					}
				}
			}
			if len(dest) == 0 {
				continue
			}
			closure := epsilonClosure(states, dest)
			closureKey := keyOf(closure)
			_, alreadySeen := seen[closureKey]
			if !alreadySeen && len(table.Transitions) >= limits.MaxStates {
				return nil, &PatternTooLargeError{NumStates: len(table.Transitions) + 1, Budget: limits.MaxStates}
			}
			destID := addState(closure)
			for b := lo; b <= hi; b++ {
				table.Transitions[cur.id][b] = destID
			}
			if !alreadySeen {
				queue = append(queue, struct {
					id  int32
					set []int32
				}{destID, closure})
			}
		}
	}

	return &table, nil
}

func dedupInts(xs []int) []int {
	out := xs[:0:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}

// annotateClassMatchers builds a SIMD ClassMatcher for every state
// whose only outgoing edges form a single self-loop over a byte class
// — the shape a quantified KindClass/KindWildcard atom produces — so
// the executor can bulk-skip runs of matching bytes (spec §4.8).
func annotateClassMatchers(table *Table) {
	table.ClassMatchers = make([]*simd.ClassMatcher, table.NumStates())
	for s := 0; s < table.NumStates(); s++ {
		row := table.Transitions[s]
		var member [256]bool
		isSelfLoop := true
		any := false
		for b := 0; b < 256; b++ {
			if row[b] == DeadState {
				continue
			}
			any = true
			if row[b] != int32(s) {
				isSelfLoop = false
				break
			}
			member[b] = true
		}
		if any && isSelfLoop {
			table.ClassMatchers[s] = simd.NewClassMatcher(member)
		}
	}
}
