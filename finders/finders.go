// Package finders translates finder-style names such as "by_name_and_age"
// or "find_by_role_and_not_name" into refdata scope queries. It is a
// convenience layer over Scope.Filter and Scope.Negate; nothing in the core
// depends on it.
package finders

import (
	"fmt"
	"strings"

	"github.com/andreyvit/refdata"
)

// Cond is one parsed finder condition.
type Cond struct {
	Field  string
	Negate bool
}

// Request is a parsed finder name, ready to run against a scope with
// positional argument values matching Conds order.
type Request struct {
	Conds []Cond
}

// Parse converts a finder name into a request. The name is an optional
// "find_" prefix, then "by_", then field names joined with "_and_", each
// optionally prefixed with "not_".
func Parse(name string) (Request, error) {
	s := strings.TrimPrefix(name, "find_")
	s, ok := strings.CutPrefix(s, "by_")
	if !ok {
		return Request{}, fmt.Errorf("finders: %q does not start with by_", name)
	}
	var req Request
	for _, comp := range strings.Split(s, "_and_") {
		if comp == "" {
			return Request{}, fmt.Errorf("finders: %q has an empty condition", name)
		}
		field, negate := strings.CutPrefix(comp, "not_")
		req.Conds = append(req.Conds, Cond{Field: field, Negate: negate})
	}
	return req, nil
}

// Run applies the request to a scope, pairing each condition with the
// argument at the same position.
func (req Request) Run(scope refdata.Scope, args ...any) (refdata.Scope, error) {
	if len(args) != len(req.Conds) {
		return refdata.Scope{}, fmt.Errorf("finders: %d conditions but %d arguments", len(req.Conds), len(args))
	}
	filter := make(refdata.Predicates)
	negate := make(refdata.Predicates)
	for i, cond := range req.Conds {
		if cond.Negate {
			negate[cond.Field] = args[i]
		} else {
			filter[cond.Field] = args[i]
		}
	}
	if len(filter) > 0 {
		scope = scope.Filter(filter)
	}
	if len(negate) > 0 {
		scope = scope.Negate(negate)
	}
	return scope, nil
}

// First parses and runs a finder name, returning the first match or nil.
func First(scope refdata.Scope, name string, args ...any) (*refdata.Record, error) {
	req, err := Parse(name)
	if err != nil {
		return nil, err
	}
	s, err := req.Run(scope, args...)
	if err != nil {
		return nil, err
	}
	return s.First(), nil
}

// FirstStrict is First, except an empty result is a *refdata.NotFoundError.
func FirstStrict(scope refdata.Scope, name string, args ...any) (*refdata.Record, error) {
	r, err := First(scope, name, args...)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &refdata.NotFoundError{Type: scope.Schema().Name(), ID: args}
	}
	return r, nil
}
