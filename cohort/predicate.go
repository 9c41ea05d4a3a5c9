// SPDX-License-Identifier: MIT

package cohort

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Predicate decides group membership from an entity identifier.
// It returns true for the control cohort and false for the case cohort.
// Predicates must be pure: the same identifier always yields the same answer.
type Predicate func(id string) bool

// ContainsMarker selects identifiers containing marker (e.g. "C" in NENAHC004).
func ContainsMarker(marker string) Predicate {
	return func(id string) bool { return strings.Contains(id, marker) }
}

// HasPrefix selects identifiers starting with prefix.
func HasPrefix(prefix string) Predicate {
	return func(id string) bool { return strings.HasPrefix(id, prefix) }
}

// HasSuffix selects identifiers ending with suffix.
func HasSuffix(suffix string) Predicate {
	return func(id string) bool { return strings.HasSuffix(id, suffix) }
}

// MatchRegexp selects identifiers matching expr.
func MatchRegexp(expr string) (Predicate, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("regexp %q: %v: %w", expr, err, ErrInvalidPredicate)
	}

	return re.MatchString, nil
}

// InSet selects identifiers listed in ids.
func InSet(ids ...string) Predicate {
	set := lo.SliceToMap(ids, func(id string) (string, struct{}) { return id, struct{}{} })

	return func(id string) bool {
		_, ok := set[id]
		return ok
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(id string) bool { return !p(id) }
}

// ParsePredicate builds a Predicate from a "kind:argument" rule string.
//
// Supported kinds:
//
//	contains:C        identifier contains "C"
//	prefix:NENAHC     identifier starts with "NENAHC"
//	suffix:_ctl       identifier ends with "_ctl"
//	regexp:^N.*C\d+$  identifier matches the expression
//	set:A,B,C         identifier is one of A, B, C
//
// A leading "!" negates the rule ("!contains:P").
func ParsePredicate(rule string) (Predicate, error) {
	rule = strings.TrimSpace(rule)
	negate := strings.HasPrefix(rule, "!")
	rule = strings.TrimPrefix(rule, "!")

	kind, arg, ok := strings.Cut(rule, ":")
	if !ok || arg == "" {
		return nil, fmt.Errorf("%q: want kind:argument: %w", rule, ErrInvalidPredicate)
	}

	var p Predicate
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "contains":
		p = ContainsMarker(arg)
	case "prefix":
		p = HasPrefix(arg)
	case "suffix":
		p = HasSuffix(arg)
	case "regexp", "regex":
		var err error
		if p, err = MatchRegexp(arg); err != nil {
			return nil, err
		}
	case "set":
		ids := lo.Compact(lo.Map(strings.Split(arg, ","), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
		if len(ids) == 0 {
			return nil, fmt.Errorf("%q: empty set: %w", rule, ErrInvalidPredicate)
		}
		p = InSet(ids...)
	default:
		return nil, fmt.Errorf("%q: unknown kind %q: %w", rule, kind, ErrInvalidPredicate)
	}
	if negate {
		p = Not(p)
	}

	return p, nil
}
