package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_RoundTrip(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2025, 6, 12, 9, 30, 15, 123456789, time.UTC)
	token := Encode(createdAt, "row-42")

	cursor, err := Decode(token)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.True(t, cursor.CreatedAt.Equal(createdAt))
	assert.Equal(t, "row-42", cursor.ID)
}

func TestDecode_EmptyMeansFirstPage(t *testing.T) {
	t.Parallel()

	cursor, err := Decode("")
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"not-base64!!!",
		base64.URLEncoding.EncodeToString([]byte("no-separator")),
		base64.URLEncoding.EncodeToString([]byte("2025-06-12T09:30:15Z|")),
		base64.URLEncoding.EncodeToString([]byte("not-a-time|some-id")),
	}
	for _, token := range cases {
		_, err := Decode(token)
		assert.Error(t, err, "token %q should not decode", token)
	}
}

func TestClampLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPageSize, ClampLimit(0))
	assert.Equal(t, DefaultPageSize, ClampLimit(-5))
	assert.Equal(t, 25, ClampLimit(25))
	assert.Equal(t, MaxPageSize, ClampLimit(1000))
}
