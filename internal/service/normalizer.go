package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/internal/core/ports"
	"client-wallet-service/pkg/apperror"
)

// payloadNormalizer implements ports.PayloadNormalizer.
type payloadNormalizer struct{}

// NewPayloadNormalizer creates a normalizer for webhook bodies.
func NewPayloadNormalizer() ports.PayloadNormalizer {
	return &payloadNormalizer{}
}

// Normalize decodes raw as a JSON object and falls back to form fields.
// form may be nil, in which case raw is parsed as a urlencoded body.
func (n *payloadNormalizer) Normalize(raw []byte, form url.Values) (*domain.Envelope, error) {
	if obj, err := decodeObject(raw); err == nil {
		return envelopeFromObject(obj)
	}

	if form == nil {
		parsed, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, apperror.ErrMalformedRequestWrap(err)
		}
		form = parsed
	}

	event := form.Get("event")
	rawData := form.Get("data")
	if event == "" && rawData == "" {
		return nil, apperror.ErrMalformedRequest()
	}

	data := domain.Payload{}
	if strings.TrimSpace(rawData) != "" {
		obj, err := decodeObject([]byte(rawData))
		if err != nil {
			return nil, apperror.ErrMalformedRequestWrap(fmt.Errorf("form field data: %w", err))
		}
		data = obj
	}

	return &domain.Envelope{Event: event, Data: data}, nil
}

func envelopeFromObject(obj domain.Payload) (*domain.Envelope, error) {
	env := &domain.Envelope{Event: obj.String("event"), Data: domain.Payload{}}

	switch v := obj["data"].(type) {
	case nil:
	case map[string]any:
		env.Data = domain.Payload(v)
	case string:
		// Some providers double-encode the data object.
		if strings.TrimSpace(v) == "" {
			break
		}
		inner, err := decodeObject([]byte(v))
		if err != nil {
			return nil, apperror.ErrMalformedRequestWrap(fmt.Errorf("data: %w", err))
		}
		env.Data = inner
	default:
		return nil, apperror.ErrMalformedRequestWrap(fmt.Errorf("data must be an object, got %T", v))
	}

	return env, nil
}

// decodeObject decodes exactly one JSON object, keeping numbers as json.Number.
func decodeObject(raw []byte) (domain.Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("not a JSON object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after JSON object")
	}
	return domain.Payload(obj), nil
}
