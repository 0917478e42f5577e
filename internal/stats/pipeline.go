package stats

import (
	"fmt"

	"github.com/DiasStein2/NeHazars/internal/identity"
	"github.com/DiasStein2/NeHazars/internal/parse"
	"github.com/DiasStein2/NeHazars/internal/records"
	"github.com/DiasStein2/NeHazars/internal/scan"
)

// Analyze runs the whole batch pipeline over the exports in dir: discovery,
// per-file parsing with the sender continuation threaded across file
// boundaries, table derivation, aggregation. Single pass, single goroutine;
// the continuation state makes file order load-bearing.
func Analyze(dir string, res *identity.Resolver, opts Options) (*Result, error) {
	files, err := scan.FindExports(dir)
	if err != nil {
		return nil, err
	}

	var recs []parse.Record
	var cont parse.Continuation
	for _, path := range files {
		fileRecs, next, err := parse.ParseFile(path, res, cont)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cont = next
		recs = append(recs, fileRecs...)
	}

	table, err := records.Build(recs)
	if err != nil {
		return nil, err
	}
	return Compute(table, opts), nil
}
