package core

import "sync"

// internMu guards interned. The library itself is single-threaded and pure,
// but cost estimation over independent subtrees may run in parallel, so the
// cache must tolerate concurrent interning.
var (
	internMu sync.Mutex
	interned = make(map[string]Bloq)
)

// Intern returns the canonical instance for b's content key, registering b
// if the key is new. Equal-by-value bloqs thus collapse to one shared
// instance, which call-graph construction relies on to count repeated
// sub-circuits once per occurrence instead of re-expanding them.
func Intern(b Bloq) Bloq {
	internMu.Lock()
	defer internMu.Unlock()

	if canonical, ok := interned[b.Key()]; ok {
		return canonical
	}
	interned[b.Key()] = b

	return b
}
