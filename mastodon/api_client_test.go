package mastodon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fediwatch/trollhunter/pkg/robusthttp"

	"github.com/google/go-querystring/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func testClient(host string) *APIClient {
	c := NewAPIClient(host)
	c.HTTPClient = robusthttp.TestingHTTPClient()
	c.WriteClient = robusthttp.TestingHTTPClient()
	c.UserAgent = "trollhunter-test"
	return c
}

func instanceHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trollhunter-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		switch r.URL.Path {
		case "/api/v1/accounts/lookup":
			assert.Empty(t, r.Header.Get("Authorization"))
			switch r.URL.Query().Get("acct") {
			case "alice@example.social":
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]any{
					"id":              "42",
					"username":        "alice",
					"acct":            "alice@example.social",
					"note":            "<p>hi</p>",
					"created_at":      "2020-05-01T00:00:00.000Z",
					"followers_count": 12,
					"following_count": 3,
					"statuses_count":  900,
					"last_status_at":  nil,
				})
			case "noid":
				fmt.Fprintln(w, `{"username":"noid"}`)
			case "empty":
				w.WriteHeader(http.StatusOK)
			case "garbage":
				fmt.Fprintln(w, `<html>not json</html>`)
			default:
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprintln(w, `{"error":"Record not found"}`)
			}
		case "/api/v1/accounts/42/statuses":
			assert.Equal(t, "false", r.URL.Query().Get("exclude_replies"))
			fmt.Fprintln(w, `[{"id":"100","content":"<p>one</p>","replies_count":0},{"id":"101","content":"two","replies_count":1}]`)
		case "/api/v1/statuses/101/context":
			fmt.Fprintln(w, `{"ancestors":[],"descendants":[{"id":"201","content":"a"},{"id":"202","content":"b"}]}`)
		case "/api/v1/statuses/500/context":
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, `oops`)
		case "/api/v1/reports":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			if r.Header.Get("Authorization") != "Bearer tok1" {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintln(w, `{"error":"The access token is invalid"}`)
				return
			}
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "42", r.PostForm.Get("account_id"))
			assert.Equal(t, []string{"201"}, r.PostForm["status_ids[]"])
			assert.Equal(t, "rude reply", r.PostForm.Get("comment"))
			assert.Equal(t, "spam", r.PostForm.Get("category"))
			assert.Equal(t, "false", r.PostForm.Get("forward"))
			fmt.Fprintln(w, `{"id":"9001","action_taken":false,"category":"spam"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"error":"Not found"}`)
		}
	}
}

func TestLookupAccount(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	srv := httptest.NewServer(instanceHandler(t))
	defer srv.Close()
	c := testClient(srv.URL)

	acct, err := c.LookupAccount(ctx, "@alice@example.social")
	require.NoError(t, err)
	assert.Equal("42", acct.ID)
	assert.Equal("alice", acct.Username)
	assert.Equal(int64(12), acct.FollowersCount)
	assert.Equal("", acct.LastStatusAt)

	_, err = c.LookupAccount(ctx, "   ")
	assert.Error(err)
}

func TestLookupAccountErrors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	srv := httptest.NewServer(instanceHandler(t))
	defer srv.Close()
	c := testClient(srv.URL)

	var nf *NotFoundError
	var apiErr *APIError
	_, err := c.LookupAccount(ctx, "nobody@example.social")
	assert.True(errors.As(err, &nf))
	assert.True(errors.As(err, &apiErr))
	assert.Equal(http.StatusNotFound, apiErr.StatusCode)
	assert.Equal("Record not found", apiErr.Name)

	_, err = c.LookupAccount(ctx, "noid")
	assert.True(errors.As(err, &nf))
	assert.Nil(nf.Err)

	var empty *EmptyResponseError
	_, err = c.LookupAccount(ctx, "empty")
	assert.True(errors.As(err, &empty))

	var malformed *MalformedResponseError
	_, err = c.LookupAccount(ctx, "garbage")
	assert.True(errors.As(err, &malformed))
	assert.Contains(malformed.Excerpt, "not json")
}

func TestAccountStatusesAndContext(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	srv := httptest.NewServer(instanceHandler(t))
	defer srv.Close()
	c := testClient(srv.URL)

	statuses, err := c.AccountStatuses(ctx, "42", 0)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal("100", statuses[0].ID)
	assert.Equal("101", statuses[1].ID)

	sctx, err := c.StatusContext(ctx, "101")
	require.NoError(t, err)
	require.Len(t, sctx.Descendants, 2)
	assert.Equal("201", sctx.Descendants[0].ID)
	assert.Equal("202", sctx.Descendants[1].ID)

	var apiErr *APIError
	_, err = c.StatusContext(ctx, "500")
	assert.True(errors.As(err, &apiErr))
	assert.Equal(http.StatusInternalServerError, apiErr.StatusCode)
}

func TestFileReport(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	srv := httptest.NewServer(instanceHandler(t))
	defer srv.Close()

	params := ReportParams{
		AccountID: "42",
		StatusIDs: []string{"201"},
		Comment:   "rude reply",
		Category:  "spam",
		Forward:   false,
	}

	c := testClient(srv.URL).WithToken("tok1")
	rep, err := c.FileReport(ctx, params)
	require.NoError(t, err)
	assert.Equal("9001", rep.ID)

	var apiErr *APIError
	_, err = testClient(srv.URL).WithToken("wrong").FileReport(ctx, params)
	assert.True(errors.As(err, &apiErr))
	assert.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(err.Error(), "access token is invalid")

	// no credentials configured at all
	_, err = testClient(srv.URL).FileReport(ctx, params)
	assert.Error(err)
}

func TestTransportErrors(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprintln(w, `{}`)
	}))
	defer slow.Close()

	c := testClient(slow.URL)
	c.HTTPClient = &http.Client{Timeout: 50 * time.Millisecond}

	var te *TransportError
	_, err := c.StatusContext(ctx, "1")
	require.True(t, errors.As(err, &te))
	assert.True(te.Timeout)

	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()
	_, err = testClient(closed.URL).StatusContext(ctx, "1")
	require.True(t, errors.As(err, &te))
	assert.False(te.Timeout)
}

func TestLimiterRespectsContext(t *testing.T) {
	srv := httptest.NewServer(instanceHandler(t))
	defer srv.Close()

	c := testClient(srv.URL)
	c.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := c.AccountStatuses(context.Background(), "42", 0)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	var te *TransportError
	_, err = c.AccountStatuses(ctx, "42", 0)
	assert.True(t, errors.As(err, &te))
}

func TestHTTPRequestPaths(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	req := NewAPIRequest(http.MethodGet, "/api/v1/statuses/"+"a%2Fb"+"/context", nil)
	hr, err := req.HTTPRequest(ctx, "https://example.social/", nil)
	require.NoError(t, err)
	assert.Equal("https://example.social/api/v1/statuses/a%2Fb/context", hr.URL.String())

	_, err = req.HTTPRequest(ctx, "example.social", nil)
	assert.Error(err)

	req = NewAPIRequest(http.MethodGet, "api/v1/x", nil)
	_, err = req.HTTPRequest(ctx, "https://example.social", nil)
	assert.Error(err)

	req = NewAPIRequest(http.MethodGet, "/api/v1/accounts/lookup", nil)
	req.QueryParams.Set("acct", "alice@example.social")
	req.Headers.Set("Accept", "text/plain")
	hr, err = req.HTTPRequest(ctx, "https://example.social", map[string][]string{"Accept": {"application/json"}, "X-Extra": {"1"}})
	require.NoError(t, err)
	assert.True(strings.HasSuffix(hr.URL.String(), "acct=alice%40example.social"))
	assert.Equal("text/plain", hr.Header.Get("Accept"))
	assert.Equal("1", hr.Header.Get("X-Extra"))
}

func TestReportParamsForm(t *testing.T) {
	assert := assert.New(t)

	form, err := query.Values(ReportParams{
		AccountID: "42",
		StatusIDs: []string{"201", "202"},
		Comment:   "",
		Forward:   true,
	})
	require.NoError(t, err)
	assert.Equal("42", form.Get("account_id"))
	assert.Equal([]string{"201", "202"}, form["status_ids[]"])
	assert.Equal("true", form.Get("forward"))
	_, hasComment := form["comment"]
	assert.True(hasComment)
	_, hasCategory := form["category"]
	assert.False(hasCategory)

	form, err = query.Values(ReportParams{AccountID: "42", Category: "legal"})
	require.NoError(t, err)
	assert.Equal("false", form.Get("forward"))
	assert.Equal("legal", form.Get("category"))
}

func TestAccountStatusesLimit(t *testing.T) {
	assert := assert.New(t)

	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("false", r.URL.Query().Get("exclude_replies"))
		seen = append(seen, r.URL.Query().Get("limit"))
		fmt.Fprintln(w, `[]`)
	}))
	defer srv.Close()
	c := testClient(srv.URL)

	for _, limit := range []int{0, 20, -1} {
		_, err := c.AccountStatuses(context.Background(), "42", limit)
		require.NoError(t, err)
	}
	assert.Equal([]string{"", "20", ""}, seen)
}
