// Package spamcheck defines wire types of the detection api, shared by the server and clients.
package spamcheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPlatform used when request has no platform
const DefaultPlatform = "email"

// Text is a message text accepting any json scalar. Numbers and booleans are kept in their
// json form, null is an empty string, objects and arrays are kept as compact json.
type Text string

// UnmarshalJSON coerces non-string values to string. Numbers, booleans and compact json of objects
// and arrays are kept as written, so true becomes "true". A null text becomes an empty string.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("can't decode text: %w", err)
		}
		*t = Text(s)
		return nil
	case data[0] == '{' || data[0] == '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return fmt.Errorf("can't decode text: %w", err)
		}
		*t = Text(buf.String())
		return nil
	}
	if bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")) {
		*t = Text(data)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("can't decode text %q: %w", data, err)
	}
	*t = Text(data)
	return nil
}

// Request is a request to classify a message
type Request struct {
	Text     *Text  `json:"text"`     // message to check, required
	Platform string `json:"platform"` // platform the message came from, DefaultPlatform if empty
}

// Validate checks the request has text and sets default platform
func (r *Request) Validate() error {
	if r.Text == nil {
		return fmt.Errorf("missing text parameter")
	}
	r.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
	if r.Platform == "" {
		r.Platform = DefaultPlatform
	}
	return nil
}

// Message returns request text, empty if not set
func (r *Request) Message() string {
	if r.Text == nil {
		return ""
	}
	return string(*r.Text)
}

func (r *Request) String() string {
	return fmt.Sprintf("msg:%q, platform:%s", r.Message(), r.Platform)
}

// Response is a result of classification
type Response struct {
	Label       string  `json:"label"`                 // spam or ham
	Prediction  string  `json:"prediction"`            // same as label
	Probability float64 `json:"probability"`           // spam probability from the model, label confidence for the keyword rule
	Explanation string  `json:"explanation"`           // human-readable explanation
	AnalysisID  int64   `json:"analysis_id,omitempty"` // id of the stored detection, if stored
	Fallback    bool    `json:"fallback"`              // made by the keyword rule or minimal model
	Diagnostic  string  `json:"diagnostic,omitempty"`  // recovered failure of the model
	ModelID     string  `json:"model_id,omitempty"`    // model made the prediction
}

// IsSpam checks if response label is spam
func (r *Response) IsSpam() bool { return r.Label == "spam" }

func (r *Response) String() string {
	res := fmt.Sprintf("%s: %.3f", r.Label, r.Probability)
	if r.Fallback {
		res += ", fallback"
	}
	if r.Diagnostic != "" {
		res += ", " + r.Diagnostic
	}
	return res
}

// Detection is a classified message kept in history
type Detection struct {
	ID         int64     `json:"id" db:"id"`
	Content    string    `json:"content" db:"content"`
	Platform   string    `json:"platform" db:"platform"`
	Prediction string    `json:"prediction" db:"prediction"`
	Confidence float64   `json:"confidence" db:"confidence"`
	Fallback   bool      `json:"fallback" db:"fallback"`
	ModelID    string    `json:"model_id,omitempty" db:"model_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// HistoryPage is a page of detection history, newest first
type HistoryPage struct {
	History     []Detection `json:"history"`
	Total       int         `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
}

// Pages returns number of pages for total records, at least 1 page
func Pages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
