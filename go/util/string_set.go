package util

import "sort"

// StringSet is a set of strings represented by the keys of a map.
type StringSet map[string]bool

// NewStringSet returns the given list(s) of strings as a StringSet.
func NewStringSet(lists ...[]string) StringSet {
	ret := StringSet{}
	for _, list := range lists {
		for _, s := range list {
			ret[s] = true
		}
	}
	return ret
}

// Keys returns the keys of a StringSet, in no particular order.
func (s StringSet) Keys() []string {
	ret := make([]string, 0, len(s))
	for v := range s {
		ret = append(ret, v)
	}
	return ret
}

// SortedKeys returns the keys of a StringSet in sorted order.
func (s StringSet) SortedKeys() []string {
	ret := s.Keys()
	sort.Strings(ret)
	return ret
}
