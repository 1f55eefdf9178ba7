package service

import (
	"fmt"
	"strings"

	"client-wallet-service/internal/core/domain"
	"client-wallet-service/pkg/apperror"
)

// IdentityOutcomeKind classifies a supplied identity number.
type IdentityOutcomeKind int

const (
	IdentityAbsent IdentityOutcomeKind = iota
	IdentityValid
	IdentityInvalid
)

// IdentityOutcome is the result of ValidateIdentityNumber.
type IdentityOutcome struct {
	Kind    IdentityOutcomeKind
	Value   string // cleaned digits when Kind is IdentityValid
	Warning string // set when Kind is IdentityInvalid
}

// ValidateIdentityNumber strips non-digit characters and classifies the rest.
// It never fails; an unusable value is reported as IdentityInvalid.
func ValidateIdentityNumber(raw string) IdentityOutcome {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case cleaned == "" && strings.TrimSpace(raw) == "":
		return IdentityOutcome{Kind: IdentityAbsent}
	case len(cleaned) == domain.IdentityNumberLength:
		return IdentityOutcome{Kind: IdentityValid, Value: cleaned}
	default:
		return IdentityOutcome{
			Kind: IdentityInvalid,
			Warning: fmt.Sprintf("BVN must be exactly %d digits, got %d; the wallet was saved without it",
				domain.IdentityNumberLength, len(cleaned)),
		}
	}
}

// IdentityPolicy decides what happens to an invalid identity number on webhook writes.
type IdentityPolicy string

const (
	IdentityPolicyLenient IdentityPolicy = "lenient"
	IdentityPolicyStrict  IdentityPolicy = "strict"
)

// Resolve maps an outcome to the value to store and an optional warning.
// Under the strict policy an invalid number is an InvalidIdentityFormat error.
func (p IdentityPolicy) Resolve(o IdentityOutcome) (value string, warning string, err error) {
	switch o.Kind {
	case IdentityValid:
		return o.Value, "", nil
	case IdentityInvalid:
		if p == IdentityPolicyStrict {
			return "", "", apperror.ErrInvalidIdentityFormat()
		}
		return "", o.Warning, nil
	default:
		return "", "", nil
	}
}

// isIdentityNumber reports whether s is exactly the required number of ASCII digits.
func isIdentityNumber(s string) bool {
	if len(s) != domain.IdentityNumberLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
