package kameleoon

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var hex16 = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestTrackConversion_SendsQueryAndPayload(t *testing.T) {
	var (
		gotQuery  map[string][]string
		gotPath   string
		gotMethod string
		gotType   string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL+"/", "dnkd8eslzh", WithNonceSource(func() string { return "00112233aabbccdd" }))
	require.NoError(t, err)

	revenue := 199.98
	require.NoError(t, client.TrackConversion(context.Background(), "visitor a+b", 406352, &revenue))

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/visit/events", gotPath)
	require.Equal(t, []string{"dnkd8eslzh"}, gotQuery["siteCode"])
	require.Equal(t, []string{"visitor a+b"}, gotQuery["visitorCode"])
	require.Equal(t, "application/json", gotType)
	require.Equal(t, map[string]any{
		"nonce":     "00112233aabbccdd",
		"eventType": "CONVERSION",
		"goalID":    float64(406352),
		"revenue":   199.98,
	}, gotBody)
}

func TestTrackConversion_OmitsNilRevenue(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "site")
	require.NoError(t, err)
	require.NoError(t, client.TrackConversion(context.Background(), "abc", 1, nil))

	require.NotContains(t, gotBody, "revenue")
	require.Regexp(t, hex16, gotBody["nonce"])
}

func TestTrackConversion_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "invalid site", http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "site")
	require.NoError(t, err)

	err = client.TrackConversion(context.Background(), "abc", 1, nil)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	require.Equal(t, "invalid site", statusErr.Body)
}

func TestTrackConversion_RequiresVisitorCode(t *testing.T) {
	client, err := NewClient("", "site")
	require.NoError(t, err)
	require.Error(t, client.TrackConversion(context.Background(), " ", 1, nil))
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("https://eu-data.kameleoon.io", "")
	require.Error(t, err)

	_, err = NewClient("not a url", "site")
	require.Error(t, err)
}

func TestNewVisitorCode(t *testing.T) {
	a, b := NewVisitorCode(), NewVisitorCode()
	require.Regexp(t, hex16, a)
	require.Regexp(t, hex16, b)
	require.NotEqual(t, a, b)
	require.Regexp(t, hex16, NewNonce())
}

func TestNewVisitorCode_EveryPositionVaries(t *testing.T) {
	seen := make([]map[byte]struct{}, VisitorCodeLength)
	for i := range seen {
		seen[i] = map[byte]struct{}{}
	}
	for i := 0; i < 64; i++ {
		code := NewVisitorCode()
		for pos := 0; pos < len(code); pos++ {
			seen[pos][code[pos]] = struct{}{}
		}
	}
	for pos, chars := range seen {
		require.Greater(t, len(chars), 1, "position %d is constant", pos)
	}
}

func TestStatusError_Temporary(t *testing.T) {
	require.True(t, (&StatusError{StatusCode: http.StatusServiceUnavailable}).Temporary())
	require.True(t, (&StatusError{StatusCode: http.StatusTooManyRequests}).Temporary())
	require.False(t, (&StatusError{StatusCode: http.StatusBadRequest}).Temporary())
}
