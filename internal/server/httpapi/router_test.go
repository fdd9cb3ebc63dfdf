package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/auth"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/docstore"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/events"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/identity"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/realtime"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/profiles"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "hook-key"
	testSecret = "jwt-secret"
)

// fakeProvisioner answers with errs in order, then with out.
type fakeProvisioner struct {
	mu     sync.Mutex
	out    identity.Outcome
	errs   []error
	events []identity.Event
}

func (p *fakeProvisioner) Provision(_ context.Context, ev identity.Event) (identity.Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		return identity.OutcomeFailed, err
	}
	if p.out == "" {
		return identity.OutcomeCreated, nil
	}
	return p.out, nil
}

func newTestRouter(p Provisioner, f Feed) http.Handler {
	h := NewHandler(p, f, logging.NewDiscardLogger())
	return NewRouter(h, testKey, []byte(testSecret))
}

func doRequest(h http.Handler, method, path, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(headerAPIKey, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(newTestRouter(&fakeProvisioner{}, nil), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIdentityCreated(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		body       string
		out        identity.Outcome
		errs       []error
		wantStatus int
		wantEvents []identity.Event
	}{
		{
			name:       "created",
			key:        testKey,
			body:       `{"id":"u1","email":"u1@example.com"}`,
			wantStatus: http.StatusCreated,
			wantEvents: []identity.Event{{UserID: "u1", Email: "u1@example.com"}},
		},
		{
			name:       "email optional",
			key:        testKey,
			body:       `{"id":"u2"}`,
			wantStatus: http.StatusCreated,
			wantEvents: []identity.Event{{UserID: "u2"}},
		},
		{
			name:       "duplicate delivery",
			key:        testKey,
			body:       `{"id":"u1"}`,
			out:        identity.OutcomeAlreadyExists,
			wantStatus: http.StatusOK,
			wantEvents: []identity.Event{{UserID: "u1"}},
		},
		{
			name:       "store failure",
			key:        testKey,
			body:       `{"id":"u1"}`,
			errs:       []error{errors.New("unavailable")},
			wantStatus: http.StatusServiceUnavailable,
			wantEvents: []identity.Event{{UserID: "u1"}},
		},
		{
			name:       "rejected by hook",
			key:        testKey,
			body:       `{"id":"u1"}`,
			errs:       []error{fmt.Errorf("%w: bad id", common.ErrorInvalidArgument)},
			wantStatus: http.StatusBadRequest,
			wantEvents: []identity.Event{{UserID: "u1"}},
		},
		{name: "missing key", body: `{"id":"u1"}`, wantStatus: http.StatusUnauthorized},
		{name: "wrong key", key: "nope", body: `{"id":"u1"}`, wantStatus: http.StatusUnauthorized},
		{name: "missing id", key: testKey, body: `{"email":"x@example.com"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", key: testKey, body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvisioner{out: tt.out, errs: tt.errs}
			rec := doRequest(newTestRouter(p, nil), http.MethodPost, "/hooks/identity-created", tt.key, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantEvents, p.events)
		})
	}
}

func TestIdentityCreated_FailureIsRedelivered(t *testing.T) {
	store := docstore.NewMemoryStore()
	repo := &flakyProfiles{Repository: profiles.NewDocstoreRepository(store)}
	hook := identity.NewHook(repo, nil, logging.NewDiscardLogger())
	router := newTestRouter(hook, nil)

	rec := doRequest(router, http.MethodPost, "/hooks/identity-created", testKey, `{"id":"u1","email":"a@x"}`)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, 0, store.Len())

	rec = doRequest(router, http.MethodPost, "/hooks/identity-created", testKey, `{"id":"u1","email":"a@x"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":"created"}`, rec.Body.String())

	got, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x", got.Email)

	rec = doRequest(router, http.MethodPost, "/hooks/identity-created", testKey, `{"id":"u1","email":"b@x"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"already_exists"}`, rec.Body.String())
}

// flakyProfiles fails the first CreateIfAbsent and then delegates.
type flakyProfiles struct {
	profiles.Repository
	calls int
}

func (f *flakyProfiles) CreateIfAbsent(ctx context.Context, p *models.Profile) error {
	f.calls++
	if f.calls == 1 {
		return errors.New("unavailable")
	}
	return f.Repository.CreateIfAbsent(ctx, p)
}

func TestIdentityCreated_EmptyKeyNeverMatches(t *testing.T) {
	h := NewRouter(NewHandler(&fakeProvisioner{}, nil, logging.NewDiscardLogger()), "", []byte(testSecret))
	rec := doRequest(h, http.MethodPost, "/hooks/identity-created", "", `{"id":"u1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRealtime_RequiresToken(t *testing.T) {
	router := newTestRouter(&fakeProvisioner{}, realtime.NewHub(logging.NewDiscardLogger()))

	rec := doRequest(router, http.MethodGet, "/ws", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodGet, "/ws?access_token=garbage", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, rec.Body.String())

	expired, err := auth.GenerateToken("u1", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	rec = doRequest(router, http.MethodGet, "/ws?access_token="+expired, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"token expired"}`, rec.Body.String())
}

func TestRealtime_StreamsChanges(t *testing.T) {
	hub := realtime.NewHub(logging.NewDiscardLogger())
	srv := httptest.NewServer(newTestRouter(&fakeProvisioner{}, hub))
	defer srv.Close()

	token, err := auth.GenerateToken("u1", []byte(testSecret), time.Minute)
	require.NoError(t, err)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("u1") == 1 }, time.Second, 10*time.Millisecond)

	hub.Notify(context.Background(), events.Change{UserID: "u1", Kind: events.KindShoppingListCreated, DocumentID: "l1"})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"shopping_list.created"`)
	assert.Contains(t, string(data), `"documentId":"l1"`)
}
