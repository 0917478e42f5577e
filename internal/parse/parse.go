package parse

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/DiasStein2/NeHazars/internal/identity"
)

// mediaTypes maps the export's media_* class names to content-type tags.
var mediaTypes = map[string]string{
	"media_audio_file":    "audio",
	"media_file":          "document",
	"media_game":          "game",
	"media_live_location": "live_location",
	"media_location":      "location",
	"media_photo":         "photo",
	"media_poll":          "poll",
	"media_video":         "video",
	"media_voice_message": "voice",
}

var (
	firstInt       = regexp.MustCompile(`(\d+)`)
	firstSignedInt = regexp.MustCompile(`(-?\d+)`)
	wsRun          = regexp.MustCompile(`\s+`)
)

// ParseFile extracts every message record from one export file, threading the
// sender continuation state through in document order. The updated state is
// returned so callers can carry it into the next file.
func ParseFile(path string, res *identity.Resolver, cont Continuation) ([]Record, Continuation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cont, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, cont, fmt.Errorf("parse export %s: %w", path, err)
	}

	var records []Record
	doc.Find("div.message").Each(func(_ int, sel *goquery.Selection) {
		rec, next := ParseMessage(sel, res, cont)
		cont = next
		if rec != nil {
			records = append(records, *rec)
		}
	})
	return records, cont, nil
}

// ParseMessage converts one div.message element into a Record, or nil when
// the element carries no timestamp and therefore is not a message. The
// returned Continuation equals the input for service entries and rejected
// nodes; only real user messages update it.
func ParseMessage(sel *goquery.Selection, res *identity.Resolver, cont Continuation) (*Record, Continuation) {
	isService := sel.HasClass("service")

	var id int64
	if raw, ok := sel.Attr("id"); ok {
		if m := firstInt.FindString(raw); m != "" {
			id, _ = strconv.ParseInt(m, 10, 64)
		}
	}

	title, ok := sel.Find("div.pull_right.date.details").First().Attr("title")
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		return nil, cont
	}
	ts := parseTimestamp(title)
	if ts.IsZero() {
		return nil, cont
	}

	sender := cont.Sender
	if from := sel.Find("div.from_name").First(); from.Length() > 0 {
		sender = nodeText(from)
	}
	canonical := cont.Canonical
	if sender != "" {
		canonical, _ = res.Canonicalize(sender)
	}
	if sender == "" {
		sender = "Unknown"
	}

	replyTo := extractReplyTo(sel.Find("div.reply_to").First())

	text := ""
	if body := sel.Find("div.text").First(); body.Length() > 0 {
		text = nodeText(body)
	}

	mediaType := detectMediaType(sel.Find("div.media_wrap").First())

	var contentType string
	switch {
	case isService:
		contentType = TypeService
		if text == "" {
			text = nodeText(sel)
		}
	case mediaType != "":
		contentType = mediaType
	case text != "":
		contentType = TypeText
	default:
		contentType = TypeUnknown
	}

	next := cont
	if !isService {
		next = Continuation{Sender: sender, Canonical: canonical}
	}

	return &Record{
		ID:          id,
		Timestamp:   ts,
		Sender:      sender,
		Canonical:   canonical,
		Text:        text,
		ContentType: contentType,
		ReplyTo:     replyTo,
	}, next
}

// nodeText joins the element's text content with single spaces, stripped.
func nodeText(sel *goquery.Selection) string {
	return strings.TrimSpace(wsRun.ReplaceAllString(sel.Text(), " "))
}

// extractReplyTo scans the reply link's href and onclick attributes for the
// first signed integer and returns its absolute value. Zero means no reply.
func extractReplyTo(reply *goquery.Selection) int64 {
	if reply.Length() == 0 {
		return 0
	}
	link := reply.Find("a").First()
	if link.Length() == 0 {
		return 0
	}
	href, _ := link.Attr("href")
	onclick, _ := link.Attr("onclick")
	m := firstSignedInt.FindString(href + " " + onclick)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	if n < 0 {
		n = -n
	}
	return n
}

// detectMediaType finds the first element inside the media wrapper with a
// media_* class (the wrapper's own media_wrap class excluded) and maps it
// through mediaTypes. Unrecognized kinds fall back to the generic tag.
func detectMediaType(wrap *goquery.Selection) string {
	if wrap.Length() == 0 {
		return ""
	}

	found := ""
	wrap.Find("div, a").EachWithBreak(func(_ int, node *goquery.Selection) bool {
		raw, ok := node.Attr("class")
		if !ok {
			return true
		}
		for _, cls := range strings.Fields(raw) {
			if strings.HasPrefix(cls, "media_") && cls != "media_wrap" {
				found = cls
				return false
			}
		}
		return true
	})
	if found == "" {
		return ""
	}
	if kind, ok := mediaTypes[found]; ok {
		return kind
	}
	return TypeMedia
}

// timestampLayouts covers the export's title attribute format, day first
// with an optional UTC offset suffix.
var timestampLayouts = []string{
	"02.01.2006 15:04:05 UTC-07:00",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
