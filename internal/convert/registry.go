package convert

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Registry maps conversion words to factories. It is safe for concurrent use;
// lookups normally happen only during compilation.
type Registry[E any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[E]
}

func NewRegistry[E any]() *Registry[E] {
	return &Registry[E]{factories: make(map[string]Factory[E])}
}

// Register binds f to every given word. A later registration of the same
// word replaces the earlier one.
func (r *Registry[E]) Register(f Factory[E], words ...string) error {
	if f == nil {
		return fmt.Errorf("register %v: nil factory", words)
	}
	if len(words) == 0 {
		return fmt.Errorf("register: no conversion words given")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range words {
		if w == "" {
			return fmt.Errorf("register: empty conversion word")
		}
		r.factories[w] = f
	}
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry[E]) MustRegister(f Factory[E], words ...string) {
	if err := r.Register(f, words...); err != nil {
		panic(err)
	}
}

// Lookup returns the factory bound to word.
func (r *Registry[E]) Lookup(word string) (Factory[E], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[word]
	return f, ok
}

// Names returns every registered word in sorted order.
func (r *Registry[E]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered words.
func (r *Registry[E]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Clone returns an independent copy, so callers can layer their own words
// over a shared base table.
func (r *Registry[E]) Clone() *Registry[E] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := &Registry[E]{factories: make(map[string]Factory[E], len(r.factories))}
	for k, v := range r.factories {
		out.factories[k] = v
	}
	return out
}

// Suggest returns registered words close to word (edit distance ≤ 2),
// closest first. Used for "did you mean" notes.
func (r *Registry[E]) Suggest(word string) []string {
	type cand struct {
		name string
		dist int
	}
	var cands []cand
	for _, name := range r.Names() {
		if d := distance(word, name); d <= 2 {
			cands = append(cands, cand{name, d})
		}
	}
	slices.SortStableFunc(cands, func(a, b cand) int { return a.dist - b.dist })
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.name
	}
	return out
}

// distance — расстояние Левенштейна по рунам.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
