package utils

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateIn(t *testing.T) {
	instant := time.Date(2025, 1, 4, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-01-05", DateIn(instant, LoadLocation("Europe/Copenhagen")))
	assert.Equal(t, "2025-01-04", DateIn(instant, LoadLocation("")))
	assert.Equal(t, "2025-01-04", DateIn(instant, LoadLocation("Invalid/Zone")))
}

func TestReadResponse(t *testing.T) {
	ok := &http.Response{StatusCode: http.StatusOK, Status: "200 OK", Body: io.NopCloser(strings.NewReader(`{"ok":true}`))}

	data, err := ReadResponse(ok)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	unauthorized := &http.Response{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized", Body: io.NopCloser(strings.NewReader(`denied`))}

	_, err = ReadResponse(unauthorized)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "denied", string(httpErr.Body))
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()

	require.NoError(t, err)
	assert.Len(t, id, idLength)
}
