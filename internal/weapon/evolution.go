package weapon

import "github.com/nightfall/cryptcore/internal/data"

// IsReady reports whether rule can be applied to an arsenal with the given
// weapon levels: both required weapons at max level and the evolved weapon
// not yet owned.
func IsReady(levels map[string]int, rule data.EvolutionRule) bool {
	if _, owned := levels[rule.Evolved]; owned {
		return false
	}
	return levels[rule.Requires[0]] >= MaxLevel && levels[rule.Requires[1]] >= MaxLevel
}

// ReadyRules appends every ready rule to dst in rule order. A weapon consumed
// by an earlier ready rule is not offered again.
func ReadyRules(levels map[string]int, rules []data.EvolutionRule, dst []data.EvolutionRule) []data.EvolutionRule {
	for _, r := range rules {
		if !IsReady(levels, r) || claimed(dst, r) {
			continue
		}
		dst = append(dst, r)
	}
	return dst
}

func claimed(ready []data.EvolutionRule, r data.EvolutionRule) bool {
	for _, q := range ready {
		for _, a := range q.Requires {
			if a == r.Requires[0] || a == r.Requires[1] {
				return true
			}
		}
	}
	return false
}
