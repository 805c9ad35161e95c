package ledger

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	compositeKeyNamespace = "\x00"
	minUnicodeRuneValue   = 0
	maxUnicodeRuneValue   = utf8.MaxRune
)

// CreateCompositeKey joins an object type and its attributes into a single
// ledger key. The encoding is "\x00" + objectType + "\x00" + attr + "\x00" ...
// so keys of one object type share a prefix and never collide with simple keys.
func CreateCompositeKey(objectType string, attributes []string) (string, error) {
	if objectType == "" {
		return "", fmt.Errorf("composite key object type is empty")
	}
	if err := validateCompositeKeyAttribute(objectType); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(compositeKeyNamespace)
	b.WriteString(objectType)
	b.WriteString(compositeKeyNamespace)
	for _, attr := range attributes {
		if err := validateCompositeKeyAttribute(attr); err != nil {
			return "", err
		}
		b.WriteString(attr)
		b.WriteString(compositeKeyNamespace)
	}
	return b.String(), nil
}

// SplitCompositeKey reverses CreateCompositeKey.
func SplitCompositeKey(key string) (string, []string, error) {
	if !strings.HasPrefix(key, compositeKeyNamespace) || !strings.HasSuffix(key, compositeKeyNamespace) || len(key) < 2 {
		return "", nil, fmt.Errorf("%q is not a composite key", key)
	}
	parts := strings.Split(key[1:len(key)-1], compositeKeyNamespace)
	return parts[0], parts[1:], nil
}

// PrintableKey renders a composite key as namespace/segment for logs and
// responses. Plain keys are returned unchanged.
func PrintableKey(key string) string {
	ns, attrs, err := SplitCompositeKey(key)
	if err != nil {
		return key
	}
	return strings.Join(append([]string{ns}, attrs...), "/")
}

func validateCompositeKeyAttribute(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("composite key attribute %q is not valid UTF-8", s)
	}
	for _, r := range s {
		if r == minUnicodeRuneValue || r == maxUnicodeRuneValue {
			return fmt.Errorf("composite key attribute %q contains U+%04X, which is reserved", s, r)
		}
	}
	return nil
}
