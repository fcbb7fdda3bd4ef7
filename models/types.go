package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// SteemTimeLayout is the timestamp format used by the condenser API (always UTC)
const SteemTimeLayout = "2006-01-02T15:04:05"

// Command type constants
const (
	CommandBid    = "bid"
	CommandJoin   = "join"
	CommandSubmit = "submit"
)

// Upstream types

// Post is a root post of a frog account.
// It serialises back to the verbatim upstream record when one is present.
type Post struct {
	Author       string          `json:"author"`
	Permlink     string          `json:"permlink"`
	Title        string          `json:"title"`
	Body         string          `json:"body"`
	Created      string          `json:"created"`
	ParentAuthor string          `json:"parent_author"`
	JSONMetadata string          `json:"json_metadata"`
	Raw          json.RawMessage `json:"-"`
}

// UnmarshalJSON keeps a copy of the upstream record next to the parsed fields
func (p *Post) UnmarshalJSON(data []byte) error {
	type plain Post
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Post(v)
	p.Raw = append(json.RawMessage(nil), data...)
	return nil
}

func (p Post) MarshalJSON() ([]byte, error) {
	if len(p.Raw) > 0 {
		return compactRaw(p.Raw)
	}
	type plain Post
	return json.Marshal(plain(p))
}

// CreatedAt parses Created, returning the zero time when it is malformed
func (p Post) CreatedAt() time.Time {
	t, err := time.Parse(SteemTimeLayout, p.Created)
	if err != nil {
		return time.Time{}
	}
	return t
}

type Comment struct {
	Author   string `json:"author"`
	Permlink string `json:"permlink"`
	Body     string `json:"body"`
	Created  string `json:"created"`
}

// Delegator is one record of the delegator API.
// Like Post it serialises back to the verbatim upstream record.
type Delegator struct {
	Delegator string          `json:"delegator"`
	SP        float64         `json:"sp"`
	Vests     float64         `json:"vests"`
	Time      string          `json:"time"`
	Raw       json.RawMessage `json:"-"`
}

// UnmarshalJSON accepts sp and vests as numbers or numeric strings.
// Anything unparsable reads as 0.
func (d *Delegator) UnmarshalJSON(data []byte) error {
	rec := gjson.ParseBytes(data)
	if !rec.IsObject() {
		return fmt.Errorf("delegator record is not an object: %.40s", data)
	}
	*d = Delegator{
		Delegator: rec.Get("delegator").String(),
		SP:        rec.Get("sp").Float(),
		Vests:     rec.Get("vests").Float(),
		Time:      rec.Get("time").String(),
		Raw:       append(json.RawMessage(nil), data...),
	}
	return nil
}

func (d Delegator) MarshalJSON() ([]byte, error) {
	if len(d.Raw) > 0 {
		return compactRaw(d.Raw)
	}
	type plain Delegator
	return json.Marshal(plain(d))
}

// Domain types

// Story is one round of the game: a marker post and every post up to the next marker
type Story struct {
	Number int    `json:"number"` // 1-indexed
	Posts  []Post `json:"-"`
}

// StorySummary is the wire form of a Story, represented by its latest post
type StorySummary struct {
	Number        int    `json:"number"`
	PostCount     int    `json:"post_count"`
	FirstPermlink string `json:"first_permlink"`
	LatestPost    Post   `json:"latest_post"`
}

func (s Story) MarshalJSON() ([]byte, error) {
	summary := StorySummary{Number: s.Number, PostCount: len(s.Posts)}
	if len(s.Posts) > 0 {
		summary.FirstPermlink = s.Posts[0].Permlink
		summary.LatestPost = s.Posts[len(s.Posts)-1]
	}
	return json.Marshal(summary)
}

// Command is a directive parsed from a reply, e.g. "!bid 5"
type Command struct {
	User         string  `json:"user"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Text         string  `json:"text,omitempty"`
	Permlink     string  `json:"permlink"`
	PostPermlink string  `json:"post_permlink"`
}

type Contribution struct {
	Commands int     `json:"commands"`
	Bids     int     `json:"bids"`
	Amount   float64 `json:"amount"`
}

// Contributors maps user → Contribution and remembers first-appearance order
type Contributors struct {
	order  []string
	byUser map[string]*Contribution
}

func NewContributors() *Contributors {
	return &Contributors{byUser: make(map[string]*Contribution)}
}

// Entry returns the contribution for user, creating it on first use
func (c *Contributors) Entry(user string) *Contribution {
	if e, ok := c.byUser[user]; ok {
		return e
	}
	e := &Contribution{}
	c.byUser[user] = e
	c.order = append(c.order, user)
	return e
}

// Get returns a copy of the contribution for user
func (c *Contributors) Get(user string) (Contribution, bool) {
	e, ok := c.byUser[user]
	if !ok {
		return Contribution{}, false
	}
	return *e, true
}

// Users lists users in the order they first contributed
func (c *Contributors) Users() []string {
	return append([]string(nil), c.order...)
}

func (c *Contributors) Len() int {
	return len(c.order)
}

// MarshalJSON writes a JSON object whose keys keep first-appearance order
func (c *Contributors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, user := range c.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(user)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(c.byUser[user])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Response types

type PotResponse struct {
	StoryNumber int     `json:"story_number"`
	Pot         float64 `json:"pot"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func compactRaw(raw json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
