package reconcile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchbook/internal/transition"
)

type datum struct {
	Key   string
	Value float64
}

func keyOf(d datum) string { return d.Key }

func TestDiff(t *testing.T) {
	prev := []string{"a", "b", "c"}
	next := []datum{{"c", 3}, {"d", 4}, {"a", 1}, {"d", 40}}

	got := Diff(prev, next, keyOf)
	want := Result[string, datum]{
		Enter:  []datum{{"d", 4}},
		Update: []datum{{"c", 3}, {"a", 1}},
		Exit:   []string{"b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiffEmpty(t *testing.T) {
	assert.True(t, Diff(nil, []datum(nil), keyOf).Empty())
	r := Diff([]string{"x"}, []datum(nil), keyOf)
	assert.Equal(t, []string{"x"}, r.Exit)
}

func newStore(exit bool) *Store[string, datum] {
	opts := Options[string, datum]{
		Key:      keyOf,
		Attrs:    func(d datum) Attrs { return Attrs{"r": d.Value, "opacity": 1} },
		Enter:    func(d datum) Attrs { return Attrs{"r": 0, "opacity": 0} },
		Duration: time.Second,
		Ease:     transition.Linear,
	}
	if exit {
		opts.Exit = func(_ datum, cur Attrs) Attrs { return Attrs{"r": cur["r"], "opacity": 0} }
	}
	return NewStore(opts)
}

func TestStoreRebindPreservesIdentity(t *testing.T) {
	s := newStore(false)
	t0 := time.Unix(100, 0)
	s.Bind([]datum{{"a", 10}, {"b", 20}}, t0)

	els := s.Elements(t0.Add(2 * time.Second))
	require.Len(t, els, 2)
	idA := els[0].ID
	assert.Equal(t, 10.0, els[0].Attrs["r"])

	t1 := t0.Add(2 * time.Second)
	res := s.Bind([]datum{{"c", 5}, {"a", 30}}, t1)
	assert.Equal(t, []string{"b"}, res.Exit)
	assert.Equal(t, []datum{{"c", 5}}, res.Enter)
	assert.Equal(t, []string{"c", "a"}, s.Keys())

	a, ok := s.Get("a", t1.Add(500*time.Millisecond))
	require.True(t, ok)
	assert.Equal(t, idA, a.ID, "persisting key keeps its element")
	assert.InDelta(t, 20, a.Attrs["r"], 1e-9, "persisting element transitions instead of jumping")

	_, ok = s.Get("b", t1)
	assert.False(t, ok, "exiting element without exit transition is removed")

	c, _ := s.Get("c", t1)
	assert.NotEqual(t, idA, c.ID)
	assert.Equal(t, 0.0, c.Attrs["r"], "entering element starts from its enter state")
}

func TestStoreExitTransition(t *testing.T) {
	s := newStore(true)
	t0 := time.Unix(0, 0)
	s.Bind([]datum{{"a", 10}, {"b", 20}}, t0)
	t1 := t0.Add(2 * time.Second)
	s.Bind([]datum{{"a", 10}}, t1)

	b, ok := s.Get("b", t1.Add(500*time.Millisecond))
	require.True(t, ok)
	assert.True(t, b.Exiting)
	assert.InDelta(t, 0.5, b.Attrs["opacity"], 1e-9)

	s.Prune(t1.Add(2 * time.Second))
	assert.Equal(t, []string{"a"}, s.Keys())

	s.Bind([]datum{{"a", 10}, {"b", 20}}, t1.Add(3*time.Second))
	assert.Equal(t, 2, s.Len())
}

func TestStoreExitingStaysOnCourse(t *testing.T) {
	s := newStore(true)
	t0 := time.Unix(0, 0)
	s.Bind([]datum{{"a", 10}, {"b", 20}}, t0)
	res := s.Bind([]datum{{"a", 10}}, t0.Add(100*time.Millisecond))
	assert.Equal(t, []string{"b"}, res.Exit)

	res = s.Bind([]datum{{"a", 10}, {"c", 5}}, t0.Add(900*time.Millisecond))
	assert.Empty(t, res.Exit)
	assert.Equal(t, []string{"a", "c", "b"}, s.Keys())

	s.Prune(t0.Add(1200 * time.Millisecond))
	_, ok := s.Get("b", t0.Add(1200*time.Millisecond))
	assert.False(t, ok, "the exit started at 100ms ends at 1.1s")
}

func TestStoreReviveExiting(t *testing.T) {
	s := newStore(true)
	t0 := time.Unix(0, 0)
	s.Bind([]datum{{"a", 10}}, t0)
	first, _ := s.Get("a", t0)
	s.Bind(nil, t0.Add(2*time.Second))
	s.Bind([]datum{{"a", 12}}, t0.Add(2500*time.Millisecond))

	again, ok := s.Get("a", t0.Add(5*time.Second))
	require.True(t, ok)
	assert.Equal(t, first.ID, again.ID)
	assert.False(t, again.Exiting)
	assert.Equal(t, 1.0, again.Attrs["opacity"])
}

func TestStoreSetAndSettled(t *testing.T) {
	s := newStore(false)
	t0 := time.Unix(0, 0)
	s.Bind([]datum{{"a", 10}}, t0)
	assert.False(t, s.Settled(t0.Add(100*time.Millisecond)))
	assert.True(t, s.Settled(t0.Add(time.Second)))

	t1 := t0.Add(time.Second)
	assert.True(t, s.Set("a", "opacity", 0.2, t1, 200*time.Millisecond))
	assert.False(t, s.Set("zz", "opacity", 0.2, t1, 0))
	a, _ := s.Get("a", t1.Add(time.Second))
	assert.InDelta(t, 0.2, a.Attrs["opacity"], 1e-9)
}
