package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	EventWalletCreated = "wallet_created"
)

// Envelope is the canonical form of every inbound webhook body.
type Envelope struct {
	Event string  `json:"event"`
	Data  Payload `json:"data"`
}

// Payload is the loosely typed data object of an envelope.
type Payload map[string]any

// String returns the value at key rendered as a string, or "" when absent.
// Numbers keep their original textual form.
func (p Payload) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// FirstString returns the first non-blank value among keys.
func (p Payload) FirstString(keys ...string) string {
	for _, k := range keys {
		if s := p.String(k); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Has reports whether key is present with a non-blank value.
func (p Payload) Has(key string) bool {
	return strings.TrimSpace(p.String(key)) != ""
}

// Decimal parses the value at key as a decimal. Absent values yield zero.
func (p Payload) Decimal(key string) (decimal.Decimal, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return decimal.Zero, nil
	}
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		s := strings.TrimSpace(p.String(key))
		if s == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%s: %w", key, err)
		}
		return d, nil
	}
}

// JSON returns the value at key encoded as JSON, or "{}" when absent.
func (p Payload) JSON(key string) (json.RawMessage, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return json.RawMessage("{}"), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}
