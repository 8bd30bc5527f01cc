package pagination

import (
	"encoding/base64"
	"strings"
	"time"
)

// Cursors are opaque to callers. A time cursor encodes the sort key of the
// last item on the previous page as "RFC3339Nano|id"; the id tiebreaks
// equal timestamps so ties never skip or duplicate items across pages.
// The cursor is a pure order boundary: it keeps working even if the row it
// was derived from has since been deleted.

// EncodeTimeCursor encodes a (timestamp, id) sort position
func EncodeTimeCursor(t time.Time, id string) string {
	raw := t.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeTimeCursor decodes a cursor produced by EncodeTimeCursor. Anything
// unparseable reports ok=false; callers treat that as "start from the
// beginning" rather than an error.
func DecodeTimeCursor(cursor string) (time.Time, string, bool) {
	if cursor == "" {
		return time.Time{}, "", false
	}
	b, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", false
	}
	raw, id, found := strings.Cut(string(b), "|")
	if !found || id == "" {
		return time.Time{}, "", false
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, "", false
	}
	return t, id, true
}

// EncodeIDCursor encodes an identity-ordered sort position
func EncodeIDCursor(id string) string {
	return base64.URLEncoding.EncodeToString([]byte(id))
}

// DecodeIDCursor decodes a cursor produced by EncodeIDCursor; malformed
// input reports ok=false and pagination restarts from the beginning.
func DecodeIDCursor(cursor string) (string, bool) {
	if cursor == "" {
		return "", false
	}
	b, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil || len(b) == 0 {
		return "", false
	}
	return string(b), true
}
