package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"golang.org/x/time/rate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(srv.URL, WithRateLimit(1000, 1000), WithMaxRetries(2))
	require.NoError(t, err)
	return client
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient("  ")
	assert.Error(t, err)
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client, err := NewClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", client.baseURL)
}

func TestNewClient_ZeroRateLimitKeepsDefault(t *testing.T) {
	client, err := NewClient("http://localhost:8080", WithRateLimit(0, 1))
	require.NoError(t, err)

	// a zero configured rate must not build a limiter that starves requests
	assert.Equal(t, rate.Limit(10), client.limiter.Limit())
	assert.Equal(t, 20, client.limiter.Burst())
}

func TestClient_ListMail_UnifiedPath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`[{"id":"m1","subject":"hello"}]`))
	})

	emails, err := client.ListMail(context.Background(), "inbox", "")
	require.NoError(t, err)
	assert.Equal(t, "/api/mail/unified/inbox", gotPath)
	require.Len(t, emails, 1)
	assert.Equal(t, "m1", emails[0].ID)
}

func TestClient_ListMail_AccountScopedQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"success":true,"data":[]}`))
	})

	_, err := client.ListMail(context.Background(), "sent", "acct-1")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "accountId=acct-1")
	assert.Contains(t, gotQuery, "folder=sent")
}

func TestClient_ListMail_EmptyFolder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.ListMail(context.Background(), "", "")
	assert.Error(t, err)
}

func TestClient_DecodesEnvelopeAndBarePayloads(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/accounts":
			w.Write([]byte(`{"success":true,"data":[{"id":"a1","name":"Work","protocol":"IMAP","isActive":true}]}`))
		case "/api/preferences":
			w.Write([]byte(`{"autoSync":true,"syncInterval":300}`))
		}
	})

	accounts, err := client.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, ProtocolIMAP, accounts[0].Protocol)

	prefs, err := client.GetPreferences(context.Background())
	require.NoError(t, err)
	assert.True(t, prefs.AutoSync)
	assert.Equal(t, 300, prefs.SyncInterval)
}

func TestClient_EnvelopeFailureSurfacesServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"data":{},"error":"folder not found"}`))
	})

	_, err := client.ListMail(context.Background(), "bogus", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folder not found")
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "try again", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	})

	_, err := client.ListMail(context.Background(), "inbox", "")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "no such message", http.StatusNotFound)
	})

	err := client.Archive(context.Background(), "missing")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_UpdateMail_PatchesBooleanFields(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	})

	read := true
	require.NoError(t, client.UpdateMail(context.Background(), "m1", EmailUpdates{IsRead: &read}))
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/mail/m1", gotPath)
	assert.JSONEq(t, `{"isRead":true}`, gotBody)
}

func TestClient_MailSubRoutes(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{}`))
	})
	ctx := context.Background()

	require.NoError(t, client.ToggleStar(ctx, "m1"))
	require.NoError(t, client.Archive(ctx, "m1"))
	require.NoError(t, client.Delete(ctx, "m1"))
	assert.Equal(t, []string{"/api/mail/m1/star", "/api/mail/m1/archive", "/api/mail/m1/delete"}, paths)
}

func TestClient_SendMail(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	err := client.SendMail(context.Background(), OutgoingMessage{To: "a@example.com", Subject: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "/api/mail/send", gotPath)

	assert.Error(t, client.SendMail(context.Background(), OutgoingMessage{}))
}

func TestClient_TriggerSync(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})

	require.NoError(t, client.TriggerSync(context.Background(), "acct-1", SyncRequest{Folder: "inbox", Limit: 50}))
	assert.Equal(t, "/api/accounts/acct-1/sync", gotPath)

	assert.Error(t, client.TriggerSync(context.Background(), " ", SyncRequest{}))
}

func TestClient_UnifiedCounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unified":{"inbox":{"unread":5,"total":20}},"accounts":{"a1":{"inbox":{"unread":2,"total":8}}}}`))
	})

	counts, err := client.UnifiedCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FolderCounts{Unread: 5, Total: 20}, counts.Unified["inbox"])
	assert.Equal(t, FolderCounts{Unread: 2, Total: 8}, counts.Accounts["a1"]["inbox"])
}
