package utils

import (
	"strings"
	"time"
)

// GetString safely extracts a string value from a document map
func GetString(doc map[string]interface{}, field string) string {
	if v, ok := doc[field]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// FirstString returns the first non-empty string among the given field name
// variants. Historical documents saved the same value under different names
// (photoURL/photoUrl, fullName/name), so reads normalize through this.
func FirstString(doc map[string]interface{}, fields ...string) string {
	for _, f := range fields {
		if s := GetString(doc, f); s != "" {
			return s
		}
	}
	return ""
}

// GetBool safely extracts a boolean value from a document map
func GetBool(doc map[string]interface{}, field string) bool {
	if v, ok := doc[field]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// GetTime extracts a timestamp stored either as time.Time or as an RFC3339 string
func GetTime(doc map[string]interface{}, field string) time.Time {
	v, ok := doc[field]
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// GetStringSlice extracts a list of strings; a comma-separated string is
// accepted for documents written by older clients.
func GetStringSlice(doc map[string]interface{}, field string) []string {
	v, ok := doc[field]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, 0, len(list))
		for _, s := range list {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	case string:
		var out []string
		for _, s := range strings.Split(list, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Slugify converts a display name into a short document id segment
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return slug
}
