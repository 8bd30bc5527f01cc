package pagination

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsPageSize(t *testing.T) {
	tests := []struct {
		name     string
		pageSize int
		want     int
	}{
		{"zero defaults", 0, DefaultPageSize},
		{"negative defaults", -5, DefaultPageSize},
		{"in range untouched", 10, 10},
		{"ceiling untouched", 50, 50},
		{"above ceiling clamped", 51, MaxPageSize},
		{"far above ceiling clamped", 10000, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageRequest{PageSize: tt.pageSize}.Normalize()
			assert.Equal(t, tt.want, got.PageSize)
		})
	}
}

func TestSliceTrimsOverFetchedWindow(t *testing.T) {
	cursorOf := func(s string) string { return "cur:" + s }

	// 4 rows fetched for a page of 3: the extra row only signals more pages
	page := Slice([]string{"a", "b", "c", "d"}, 3, cursorOf)
	assert.Equal(t, []string{"a", "b", "c"}, page.Items)
	assert.Equal(t, "cur:c", page.NextCursor, "next cursor comes from the last returned item")

	// Exactly pageSize rows: last page, no cursor
	page = Slice([]string{"a", "b", "c"}, 3, cursorOf)
	assert.Equal(t, []string{"a", "b", "c"}, page.Items)
	assert.Empty(t, page.NextCursor)

	// Fewer than pageSize rows
	page = Slice([]string{"a"}, 3, cursorOf)
	assert.Equal(t, []string{"a"}, page.Items)
	assert.Empty(t, page.NextCursor)
}

func TestSliceEmptySource(t *testing.T) {
	page := Slice(nil, 3, func(s string) string { return s })
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Empty(t, page.NextCursor)
}

func TestTimeCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC)
	cursor := EncodeTimeCursor(at, "activity-42")

	gotTime, gotID, ok := DecodeTimeCursor(cursor)
	require.True(t, ok)
	assert.True(t, at.Equal(gotTime))
	assert.Equal(t, "activity-42", gotID)
}

func TestTimeCursorPreservesNanoseconds(t *testing.T) {
	at := time.Date(2025, 6, 14, 18, 30, 0, 123456789, time.UTC)
	gotTime, _, ok := DecodeTimeCursor(EncodeTimeCursor(at, "x"))
	require.True(t, ok)
	assert.True(t, at.Equal(gotTime))
}

func TestMalformedCursorsAreNotErrors(t *testing.T) {
	// Anything unparseable means "start from the beginning", never a failure
	for _, cursor := range []string{"", "not-base64!!!", "aGVsbG8=", "fHw=", EncodeIDCursor("")} {
		_, _, ok := DecodeTimeCursor(cursor)
		assert.False(t, ok, "cursor %q should not decode", cursor)
	}

	_, ok := DecodeIDCursor("###")
	assert.False(t, ok)
	_, ok = DecodeIDCursor("")
	assert.False(t, ok)
}

func TestIDCursorRoundTrip(t *testing.T) {
	id, ok := DecodeIDCursor(EncodeIDCursor("user-7"))
	require.True(t, ok)
	assert.Equal(t, "user-7", id)
}

func TestCursorsAreOpaque(t *testing.T) {
	// The raw sort key must not leak into the cursor text
	cursor := EncodeTimeCursor(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), "id-1")
	assert.NotContains(t, cursor, "2025")
	assert.NotContains(t, cursor, "id-1")
}

func TestSliceLargeWalk(t *testing.T) {
	// Concatenating page after page must reproduce the source exactly
	var source []string
	for i := 0; i < 103; i++ {
		source = append(source, "item-"+strconv.Itoa(i))
	}

	var got []string
	remaining := source
	for {
		window := remaining
		if len(window) > 11 {
			window = window[:11]
		}
		page := Slice(window, 10, func(s string) string { return s })
		got = append(got, page.Items...)
		if page.NextCursor == "" {
			break
		}
		remaining = remaining[len(page.Items):]
	}

	assert.Equal(t, source, got)
}
