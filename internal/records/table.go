package records

import (
	"errors"
	"strings"
	"time"

	"github.com/DiasStein2/NeHazars/internal/parse"
)

// Row is one message with the derived columns every aggregation reads.
type Row struct {
	parse.Record

	WordCount int
	CharCount int
	Day       string // 2006-01-02
	Hour      int
	Weekday   string // English weekday name, e.g. "Monday"
	Reply     bool
	// Identity is the canonical sender with fallback applied: when
	// canonicalization failed it holds the raw sender name.
	Identity string
}

// Table holds the full row set and the participant subset used by most
// statistics (service rows and rows without a resolvable identity removed).
type Table struct {
	Rows         []Row
	Participants []Row
}

var (
	ErrNoRecords      = errors.New("no parseable messages in export")
	ErrNoParticipants = errors.New("no user messages in export")
)

// Build derives the table from the ordered record sequence. Records without a
// parsed timestamp are dropped silently; an empty participant subset is a
// fatal ingestion failure.
func Build(recs []parse.Record) (*Table, error) {
	if len(recs) == 0 {
		return nil, ErrNoRecords
	}

	t := &Table{}
	for _, rec := range recs {
		if rec.Timestamp.IsZero() {
			continue
		}
		row := derive(rec)
		t.Rows = append(t.Rows, row)
		if rec.ContentType != parse.TypeService && row.Identity != "" {
			t.Participants = append(t.Participants, row)
		}
	}

	if len(t.Rows) == 0 {
		return nil, ErrNoRecords
	}
	if len(t.Participants) == 0 {
		return nil, ErrNoParticipants
	}
	return t, nil
}

func derive(rec parse.Record) Row {
	identity := rec.Canonical
	if identity == "" {
		identity = rec.Sender
	}
	if identity == "" {
		identity = "Unknown"
	}

	return Row{
		Record:    rec,
		WordCount: len(strings.Fields(rec.Text)),
		CharCount: len([]rune(rec.Text)),
		Day:       rec.Timestamp.Format(time.DateOnly),
		Hour:      rec.Timestamp.Hour(),
		Weekday:   rec.Timestamp.Weekday().String(),
		Reply:     rec.IsReply(),
		Identity:  identity,
	}
}
