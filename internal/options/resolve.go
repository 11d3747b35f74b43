package options

import "github.com/gameden/gameden-backend/pkg/enums"

// Resolve maps a shopper's (possibly partial) selection onto the item's
// variant table. It is a pure function of its inputs and holds no memory of
// prior calls, so every selection edit, including removals, is a fresh
// computation.
//
// A SelectionError means the request itself was malformed; Unavailable and
// Partial are normal outcomes, not errors.
func Resolve(opts []Option, variants []Variant, sel Selection, policy enums.AvailabilityPolicy) (*Resolution, *SelectionError) {
	if err := checkSelection(opts, sel); err != nil {
		return nil, err
	}

	// An item without options resolves to itself; the binder prices it from
	// the item's base price and stock.
	if len(opts) == 0 {
		return &Resolution{State: StateResolved, Policy: policy, Selection: cloneSelection(sel)}, nil
	}

	candidates := make([]Variant, 0, len(variants))
	for _, v := range variants {
		if matchesSelection(v, sel) {
			candidates = append(candidates, v)
		}
	}

	if policy == enums.AvailabilityHideSoldOut {
		kept := candidates[:0]
		for _, v := range candidates {
			if v.Stock > 0 {
				kept = append(kept, v)
			}
		}
		candidates = kept
	}

	if len(sel) == len(opts) {
		if len(candidates) == 0 {
			return &Resolution{State: StateUnavailable, Policy: policy, Selection: cloneSelection(sel)}, nil
		}
		// duplicate combinations are rejected at write time, so at most one
		// candidate survives a complete selection
		matched := candidates[0]
		return &Resolution{
			State:     StateResolved,
			Policy:    policy,
			Variant:   &matched,
			Selection: cloneSelection(sel),
		}, nil
	}

	remaining := make(map[string][]ValueState, len(opts)-len(sel))
	for _, opt := range opts {
		if _, chosen := sel[opt.ID]; chosen {
			continue
		}
		remaining[opt.ID] = valueStates(opt, candidates, policy)
	}

	return &Resolution{
		State:     StatePartial,
		Policy:    policy,
		Remaining: remaining,
		Selection: cloneSelection(sel),
	}, nil
}

func checkSelection(opts []Option, sel Selection) *SelectionError {
	declared := make(map[string][]string, len(opts))
	for _, opt := range opts {
		declared[opt.ID] = opt.Values
	}

	for _, opt := range opts {
		value, ok := sel[opt.ID]
		if !ok {
			continue
		}
		if !containsValue(opt.Values, value) {
			return &SelectionError{Kind: SelectionValueNotInDomain, OptionID: opt.ID, Value: value}
		}
	}

	for key := range sel {
		if _, ok := declared[key]; !ok {
			return &SelectionError{Kind: SelectionUnknownOption, OptionID: key}
		}
	}

	return nil
}

// matchesSelection is a filter, not an equality check: the variant must agree
// with the selection on every selected key and is unconstrained elsewhere.
func matchesSelection(v Variant, sel Selection) bool {
	for key, value := range sel {
		if v.Selected[key] != value {
			return false
		}
	}
	return true
}

// valueStates walks the option's declared domain in order and marks each value
// reachable when at least one candidate still carries it. Under
// show_sold_out_disabled a reachable value whose carriers are all sold out is
// additionally flagged.
func valueStates(opt Option, candidates []Variant, policy enums.AvailabilityPolicy) []ValueState {
	states := make([]ValueState, 0, len(opt.Values))
	for _, value := range opt.Values {
		state := ValueState{Value: value}
		for _, v := range candidates {
			if v.Selected[opt.ID] != value {
				continue
			}
			state.Reachable = true
			if v.Stock > 0 {
				state.SoldOut = false
				break
			}
			state.SoldOut = true
		}
		if policy != enums.AvailabilityShowSoldOutDisabled {
			state.SoldOut = false
		}
		states = append(states, state)
	}
	return states
}

func cloneSelection(sel Selection) Selection {
	out := make(Selection, len(sel))
	for key, value := range sel {
		out[key] = value
	}
	return out
}
