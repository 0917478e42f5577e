package stats

import (
	"math"
	"strconv"
)

// Payload is the transport shape of a Result: a fixed set of named groups,
// each an ordered list of small records. Field order and per-group ordering
// are the only contract the HTTP layer and the dashboard rely on.
type Payload struct {
	Meta                 Meta           `json:"meta"`
	MessagesPerUser      []UserValue    `json:"messages_per_user"`
	MessagesPerDay       []DayValue     `json:"messages_per_day"`
	MessagesPerHour      []HourValue    `json:"messages_per_hour"`
	AvgLength            []UserAvg      `json:"avg_length"`
	RepliesPerUser       []UserReplies  `json:"replies_per_user"`
	ConversationStarters []UserStarters `json:"conversation_starters"`
	TopWords             []WordCount    `json:"top_words"`
	TopEmojis            []EmojiCount   `json:"top_emojis"`
	InactiveDays         []string       `json:"inactive_days"`
	ContentTypes         []NameValue    `json:"content_types"`
	LengthDistribution   []RangeCount   `json:"length_distribution"`
	WeekdayCounts        []WeekdayCount `json:"weekday_counts"`
}

type Meta struct {
	TotalMessages int      `json:"total_messages"`
	UserMessages  int      `json:"user_messages"`
	Users         []string `json:"users"`
}

type UserValue struct {
	User  string `json:"user"`
	Value int    `json:"value"`
}

type DayValue struct {
	Day   string `json:"day"`
	Value int    `json:"value"`
}

type HourValue struct {
	Hour  int `json:"hour"`
	Value int `json:"value"`
}

type UserAvg struct {
	User     string  `json:"user"`
	AvgWords float64 `json:"avg_words"`
}

type UserReplies struct {
	User       string `json:"user"`
	ReplyCount int    `json:"reply_count"`
}

type UserStarters struct {
	User  string `json:"user"`
	Count int    `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type EmojiCount struct {
	Emoji string `json:"emoji"`
	Count int    `json:"count"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type RangeCount struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type WeekdayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Payload flattens the result for transport and storage. Averages are rounded
// to two decimals; replies and averages follow the per-user rank order.
func (r *Result) Payload() *Payload {
	p := &Payload{
		Meta: Meta{
			TotalMessages: r.TotalMessages,
			UserMessages:  r.UserMessages,
			Users:         r.Users,
		},
		InactiveDays: r.InactiveDays,
		ContentTypes: []NameValue{
			{Name: "Text", Value: r.TextCount},
			{Name: "Media/Other", Value: r.OtherCount},
		},
	}

	for _, kc := range r.MessagesPerUser {
		p.MessagesPerUser = append(p.MessagesPerUser, UserValue{User: kc.Key, Value: kc.Count})
		p.AvgLength = append(p.AvgLength, UserAvg{User: kc.Key, AvgWords: round2(r.AvgLength[kc.Key])})
		p.RepliesPerUser = append(p.RepliesPerUser, UserReplies{User: kc.Key, ReplyCount: r.RepliesPerUser[kc.Key]})
	}

	for _, kc := range r.MessagesPerDay {
		p.MessagesPerDay = append(p.MessagesPerDay, DayValue{Day: kc.Key, Value: kc.Count})
	}
	for _, kc := range r.MessagesPerHour {
		hour, _ := strconv.Atoi(kc.Key)
		p.MessagesPerHour = append(p.MessagesPerHour, HourValue{Hour: hour, Value: kc.Count})
	}
	for _, kc := range r.ConversationStarters {
		p.ConversationStarters = append(p.ConversationStarters, UserStarters{User: kc.Key, Count: kc.Count})
	}
	for _, kc := range r.TopWords {
		p.TopWords = append(p.TopWords, WordCount{Word: kc.Key, Count: kc.Count})
	}
	for _, kc := range r.TopEmojis {
		p.TopEmojis = append(p.TopEmojis, EmojiCount{Emoji: kc.Key, Count: kc.Count})
	}
	for _, b := range r.LengthDistribution {
		p.LengthDistribution = append(p.LengthDistribution, RangeCount{Range: b.Label, Count: b.Count})
	}
	for _, day := range WeekdayOrder {
		p.WeekdayCounts = append(p.WeekdayCounts, WeekdayCount{Day: day, Count: r.WeekdayCounts[day]})
	}

	return p
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
