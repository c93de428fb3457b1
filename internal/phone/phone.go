package phone

import "strings"

const DefaultCountryCode = "55"

// Numbers with a country code already attached are longer than this.
const maxNationalLength = 11

type Normalizer struct {
	countryCode string
}

func NewNormalizer(countryCode string) *Normalizer {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return &Normalizer{countryCode: countryCode}
}

// Normalize turns a raw phone string into the digit-only, country-code-prefixed
// form the provider APIs expect. Plausibility of the digit count is not checked
// here; an unusable number is rejected by the provider downstream.
func (n *Normalizer) Normalize(raw string) string {
	digits := Digits(raw)
	if digits == "" {
		return ""
	}

	digits = strings.TrimPrefix(digits, "0")

	if len(digits) <= maxNationalLength {
		digits = n.countryCode + digits
	}

	return digits
}

// Digits strips everything except decimal digits from a phone string.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
