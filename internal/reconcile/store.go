package reconcile

import (
	"time"

	"sketchbook/internal/transition"
)

// Attrs are the numeric visual attributes of an element (x, y, r, opacity...).
type Attrs map[string]float64

// Options configure how a Store turns data into attributes.
type Options[K comparable, T any] struct {
	Key   func(T) K
	Attrs func(T) Attrs
	// Enter gives the attributes an entering element starts from. Nil means
	// entering elements appear at their final attributes.
	Enter func(T) Attrs
	// Exit gives the attributes an exiting element fades to before removal.
	// Nil removes exiting elements immediately.
	Exit func(T, Attrs) Attrs

	Duration time.Duration
	Ease     transition.Ease
}

type element[K comparable, T any] struct {
	id      int
	key     K
	datum   T
	tweens  map[string]transition.Tween
	exiting bool
}

// Element is a point-in-time view of a bound element.
type Element[K comparable, T any] struct {
	ID      int
	Key     K
	Datum   T
	Attrs   Attrs
	Exiting bool
}

// Store keeps bound elements across rebinds. Elements with a persisting key
// keep their ID and transition between attribute sets.
type Store[K comparable, T any] struct {
	opts   Options[K, T]
	els    map[K]*element[K, T]
	order  []K
	nextID int
}

func NewStore[K comparable, T any](opts Options[K, T]) *Store[K, T] {
	return &Store[K, T]{opts: opts, els: make(map[K]*element[K, T])}
}

// Keys returns the keys currently bound, exiting ones included.
func (s *Store[K, T]) Keys() []K { return append([]K(nil), s.order...) }

func (s *Store[K, T]) Len() int { return len(s.order) }

// Bind reconciles next against the bound elements and returns the diff it
// applied.
func (s *Store[K, T]) Bind(next []T, now time.Time) Result[K, T] {
	s.Prune(now)
	res := Diff(s.order, next, s.opts.Key)

	var order []K
	for _, d := range res.Update {
		k := s.opts.Key(d)
		el := s.els[k]
		el.datum = d
		el.exiting = false
		s.retarget(el, s.opts.Attrs(d), now)
	}
	for _, d := range res.Enter {
		k := s.opts.Key(d)
		final := s.opts.Attrs(d)
		start := final
		if s.opts.Enter != nil {
			start = s.opts.Enter(d)
		}
		el := &element[K, T]{id: s.nextID, key: k, datum: d, tweens: make(map[string]transition.Tween, len(final))}
		s.nextID++
		for name, to := range final {
			from, ok := start[name]
			if !ok {
				from = to
			}
			el.tweens[name] = transition.Tween{From: from, To: to, Start: now, Duration: s.opts.Duration, Ease: s.opts.Ease}
		}
		s.els[k] = el
	}
	// new data order first, then exiting elements
	seen := make(map[K]bool, len(next))
	for _, d := range next {
		k := s.opts.Key(d)
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}
	// elements already exiting keep their running exit and are not reported
	// again
	exit := res.Exit[:0]
	for _, k := range res.Exit {
		el := s.els[k]
		if el.exiting {
			order = append(order, k)
			continue
		}
		exit = append(exit, k)
		if s.opts.Exit == nil {
			delete(s.els, k)
			continue
		}
		el.exiting = true
		s.retarget(el, s.opts.Exit(el.datum, el.attrs(now)), now)
		order = append(order, k)
	}
	res.Exit = exit
	s.order = order
	return res
}

func (s *Store[K, T]) retarget(el *element[K, T], to Attrs, now time.Time) {
	for name, v := range to {
		tw, ok := el.tweens[name]
		if !ok {
			tw = transition.Hold(v)
		}
		el.tweens[name] = tw.Retarget(v, now, s.opts.Duration, s.opts.Ease)
	}
}

// Set transitions a single attribute of the element bound to key. It is the
// hook for interaction state (hover) that does not touch the data.
func (s *Store[K, T]) Set(key K, name string, v float64, now time.Time, d time.Duration) bool {
	el, ok := s.els[key]
	if !ok {
		return false
	}
	tw, ok := el.tweens[name]
	if !ok {
		tw = transition.Hold(v)
	}
	el.tweens[name] = tw.Retarget(v, now, d, transition.CubicInOut)
	return true
}

// Animate replaces the tween of one attribute outright, for staged entrances.
func (s *Store[K, T]) Animate(key K, name string, tw transition.Tween) bool {
	el, ok := s.els[key]
	if !ok {
		return false
	}
	el.tweens[name] = tw
	return true
}

// Prune drops exiting elements whose exit transition has finished.
func (s *Store[K, T]) Prune(now time.Time) {
	kept := s.order[:0]
	for _, k := range s.order {
		el := s.els[k]
		if el.exiting && el.settled(now) {
			delete(s.els, k)
			continue
		}
		kept = append(kept, k)
	}
	s.order = kept
}

// Elements returns every bound element with its attributes at now.
func (s *Store[K, T]) Elements(now time.Time) []Element[K, T] {
	out := make([]Element[K, T], 0, len(s.order))
	for _, k := range s.order {
		el := s.els[k]
		out = append(out, Element[K, T]{ID: el.id, Key: k, Datum: el.datum, Attrs: el.attrs(now), Exiting: el.exiting})
	}
	return out
}

// Get returns the element bound to key.
func (s *Store[K, T]) Get(key K, now time.Time) (Element[K, T], bool) {
	el, ok := s.els[key]
	if !ok {
		return Element[K, T]{}, false
	}
	return Element[K, T]{ID: el.id, Key: key, Datum: el.datum, Attrs: el.attrs(now), Exiting: el.exiting}, true
}

// Settled reports whether every transition has finished.
func (s *Store[K, T]) Settled(now time.Time) bool {
	for _, el := range s.els {
		if !el.settled(now) {
			return false
		}
	}
	return true
}

func (el *element[K, T]) attrs(now time.Time) Attrs {
	a := make(Attrs, len(el.tweens))
	for name, tw := range el.tweens {
		a[name] = tw.At(now)
	}
	return a
}

func (el *element[K, T]) settled(now time.Time) bool {
	for _, tw := range el.tweens {
		if !tw.Done(now) {
			return false
		}
	}
	return true
}
