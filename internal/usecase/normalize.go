package usecase

import (
	"regexp"
	"strings"
)

// The field-aware ruleset is the canonical normalization: it strips variable
// content from an error message so messages differing only in numbers,
// addresses, or indices collapse to one structural signature. Rules run in
// order; each is a plain regexp substitution.
var (
	hexLiteralRe  = regexp.MustCompile(`0[xX][0-9a-fA-F]+`)
	bracketIdxRe  = regexp.MustCompile(`\[\d+\]`)
	keyedNumberRe = regexp.MustCompile(`(?i)\b([a-z_]+)(\s*[:=]\s*)-?\d+(\.\d+)?`)
	longDigitsRe  = regexp.MustCompile(`\d{6,}`)
	negativeNumRe = regexp.MustCompile(`-\d+(\.\d+)?`)
	plainNumberRe = regexp.MustCompile(`\b\d+(\.\d+)?\b`)
	comparisonRe  = regexp.MustCompile(`N\s*([><=!]+)\s*N`)
	logicalOpRe   = regexp.MustCompile(`N\s*(&&|\|\|)\s*N`)
)

// NormalizeErrorMessage reduces a free-text error message to its structural
// signature. Two messages normalizing to the same string are considered the
// same error pattern. Uniqueness across all message formats is not
// guaranteed; distinct errors can collide on a shared signature.
func NormalizeErrorMessage(message string) string {
	m := strings.TrimSpace(message)
	if m == "" {
		return ""
	}
	m = hexLiteralRe.ReplaceAllString(m, "0xHEX")
	m = bracketIdxRe.ReplaceAllString(m, "[N]")
	m = keyedNumberRe.ReplaceAllString(m, "${1}${2}N")
	m = longDigitsRe.ReplaceAllString(m, "N")
	m = negativeNumRe.ReplaceAllString(m, "N")
	m = plainNumberRe.ReplaceAllString(m, "N")
	m = comparisonRe.ReplaceAllString(m, "N $1 N")
	m = logicalOpRe.ReplaceAllString(m, "N $1 N")
	return m
}
