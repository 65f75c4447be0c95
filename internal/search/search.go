// Package search is the query side of the record index. The migration engine
// only ever needs exact-match term filters over indexed record fields, the
// way the target system's search collaborator exposes them.
package search

import (
	"context"
	"sort"

	"github.com/bibkit/ilsmigrate/internal/model"
	"github.com/bibkit/ilsmigrate/internal/record"
)

// Filter is an exact-match condition on an indexed field. Nested fields use
// dotted paths ("_migration.children"); multi-valued fields match when any
// element matches.
type Filter struct {
	Field string
	Value string
}

// Term builds a filter from any JSON scalar, rendered canonically so dump
// values and indexed values compare equal.
func Term(field string, value any) Filter {
	return Filter{Field: field, Value: record.Stringify(value)}
}

// Hit is a single search result: the record pid plus the source as it
// looked when indexed.
type Hit struct {
	PID    string
	Source record.Record
}

type Result struct {
	Total int
	Hits  []Hit
}

type Index interface {
	// Query returns all records of the rectype matching every filter.
	Query(ctx context.Context, rectype model.RecType, filters ...Filter) (Result, error)
	// Scan returns the matching hits of an unbounded sweep.
	Scan(ctx context.Context, rectype model.RecType, filters ...Filter) ([]Hit, error)
}

// Flatten renders a record into its index terms. Scalars index under their
// dotted path; array elements index under the array's path, objects recurse.
// Arrays of objects flatten element-wise under the same path, the way the
// original index mapped nested migration metadata.
func Flatten(rec record.Record) []Filter {
	var terms []Filter
	flattenInto("", map[string]any(rec), &terms)
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Field != terms[j].Field {
			return terms[i].Field < terms[j].Field
		}
		return terms[i].Value < terms[j].Value
	})
	return terms
}

func flattenInto(prefix string, value any, terms *[]Filter) {
	switch val := value.(type) {
	case map[string]any:
		for key, item := range val {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			flattenInto(path, item, terms)
		}
	case []any:
		for _, item := range val {
			flattenInto(prefix, item, terms)
		}
	case nil:
		// absent values are not indexed
	default:
		*terms = append(*terms, Filter{Field: prefix, Value: record.Stringify(val)})
	}
}
