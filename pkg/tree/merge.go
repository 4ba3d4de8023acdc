package tree

import "github.com/matzehuels/jsongraph/pkg/jsonvalue"

// Resolve returns the value to store when candidate is written over existing.
// Pass nil for an absent existing value.
//
// If both are objects the result is a copy of existing with candidate merged
// in recursively; otherwise the result is candidate. Neither input is
// modified and the result shares no object with existing.
func Resolve(existing, candidate jsonvalue.Value) jsonvalue.Value {
	cand, ok := candidate.(*jsonvalue.Object)
	if !ok || cand == nil {
		return candidate
	}
	base, ok := existing.(*jsonvalue.Object)
	if !ok || base == nil {
		return candidate
	}
	return mergeObjects(base, cand)
}

func mergeObjects(base, cand *jsonvalue.Object) *jsonvalue.Object {
	out := jsonvalue.Clone(base).(*jsonvalue.Object)
	for _, k := range cand.Keys() {
		cv, _ := cand.Get(k)
		bv, _ := out.Get(k)
		if jsonvalue.IsObject(cv) && jsonvalue.IsObject(bv) {
			out.Set(k, mergeObjects(bv.(*jsonvalue.Object), cv.(*jsonvalue.Object)))
			continue
		}
		out.Set(k, cv)
	}
	return out
}
