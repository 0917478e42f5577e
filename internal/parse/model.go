package parse

import "time"

// ContentType tags for MessageRecord. Media kinds map straight from the
// export's media_* class names.
const (
	TypeService = "service"
	TypeText    = "text"
	TypeUnknown = "unknown"
	TypeMedia   = "media" // unrecognized media_* class
)

// Record is one normalized message from an export file.
type Record struct {
	ID          int64 // 0 when the element carried no numeric id
	Timestamp   time.Time
	Sender      string // raw display name, possibly inherited
	Canonical   string // canonical identity, "" when unresolved
	Text        string
	ContentType string
	ReplyTo     int64 // 0 when not a reply
}

func (r Record) IsReply() bool { return r.ReplyTo != 0 }

// Continuation carries the last seen sender across consecutive nodes. The
// export omits the sender header on follow-up messages from the same person,
// so this state must be threaded in strict document-then-file order. Service
// messages pass it through untouched.
type Continuation struct {
	Sender    string
	Canonical string
}
