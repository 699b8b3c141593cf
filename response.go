package generatepdfs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var requiredFields = []string{"id", "name", "status", "download_url", "created_at"}

// createdAtLayouts are tried in order when parsing created_at.
var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toDocument maps a `{"data": {...}}` API response onto a Document bound to c.
func toDocument(body []byte, c *Client) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: invalid API response: %w", ErrInvalidArgument, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, invalidArgument("invalid API response: trailing data after JSON object")
	}

	data, ok := normalizeObject(raw)["data"].(map[string]any)
	if !ok {
		return nil, invalidArgument("invalid API response: missing data")
	}
	for _, k := range requiredFields {
		if data[k] == nil {
			return nil, invalidArgument("invalid PDF data structure")
		}
	}

	id, err := toInt64(data["id"])
	if err != nil || id <= 0 {
		return nil, invalidArgument("invalid PDF data structure")
	}
	createdAtRaw := toString(data["created_at"])
	createdAt, err := parseCreatedAt(createdAtRaw)
	if err != nil {
		return nil, invalidArgument("invalid created_at format: %s", createdAtRaw)
	}

	return &Document{
		id:          id,
		name:        toString(data["name"]),
		status:      Status(toString(data["status"])),
		downloadURL: toString(data["download_url"]),
		createdAt:   createdAt,
		client:      c,
	}, nil
}

// normalizeObject rewrites object keys to lower snake_case, recursively.
// When several keys collapse to the same name, a key already in canonical
// form wins; otherwise the lexically smallest source key does.
func normalizeObject(m map[string]any) map[string]any {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(m))
	exact := make(map[string]bool, len(m))
	for _, k := range keys {
		ck := canonicalKey(k)
		if _, seen := out[ck]; seen && (exact[ck] || k != ck) {
			continue
		}
		out[ck] = normalizeKeys(m[k])
		exact[ck] = k == ck
	}
	return out
}

func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeObject(t)
	case []any:
		for i := range t {
			t[i] = normalizeKeys(t[i])
		}
		return t
	default:
		return v
	}
}

// canonicalKey maps downloadUrl, DownloadURL, download-url and
// DOWNLOAD_URL to download_url.
func canonicalKey(k string) string {
	k = strings.TrimPrefix(strings.TrimSpace(k), ":")
	runes := []rune(k)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && runes[i-1] != '_' && runes[i-1] != '-' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, fmt.Errorf("id %q is not an integer", t)
		}
		return int64(f), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	case float64:
		return int64(t), nil
	default:
		return 0, fmt.Errorf("id of type %T is not an integer", v)
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func parseCreatedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range createdAtLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
