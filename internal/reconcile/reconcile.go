// Package reconcile diffs a new data set against previously bound elements by
// stable key and applies the result as enter, update and exit sets.
package reconcile

// Result lists what a rebinding must do. Enter and Update keep the order of
// the new data; Exit keeps the order of the previous keys.
type Result[K comparable, T any] struct {
	Enter  []T
	Update []T
	Exit   []K
}

func (r Result[K, T]) Empty() bool {
	return len(r.Enter) == 0 && len(r.Update) == 0 && len(r.Exit) == 0
}

// Diff partitions next by whether its key was present in prev. When next
// holds the same key more than once only the first occurrence is bound.
func Diff[K comparable, T any](prev []K, next []T, key func(T) K) Result[K, T] {
	had := make(map[K]bool, len(prev))
	for _, k := range prev {
		had[k] = true
	}
	var r Result[K, T]
	seen := make(map[K]bool, len(next))
	for _, d := range next {
		k := key(d)
		if seen[k] {
			continue
		}
		seen[k] = true
		if had[k] {
			r.Update = append(r.Update, d)
		} else {
			r.Enter = append(r.Enter, d)
		}
	}
	for _, k := range prev {
		if !seen[k] {
			r.Exit = append(r.Exit, k)
			seen[k] = true
		}
	}
	return r
}
