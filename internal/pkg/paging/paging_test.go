package paging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	cursor := EncodeCursor(at, 42)

	gotT, gotID, err := DecodeCursor(cursor)
	require.NoError(t, err)
	assert.True(t, at.Equal(gotT))
	assert.Equal(t, int64(42), gotID)
}

func TestDecodeCursor_Bad(t *testing.T) {
	for _, cursor := range []string{"", "not-base64!!", "bm9waXBl", "MTIzfGFiYw"} {
		_, _, err := DecodeCursor(cursor)
		assert.ErrorIs(t, err, ErrBadCursor, "cursor %q", cursor)
	}
}
