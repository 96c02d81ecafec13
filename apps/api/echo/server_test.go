package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/analytics"
	"github.com/Akr1040317/hiveUniDash/core/board"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/core/calendar"
	"github.com/Akr1040317/hiveUniDash/core/content"
	"github.com/Akr1040317/hiveUniDash/core/event"
	"github.com/Akr1040317/hiveUniDash/core/feature"
	"github.com/Akr1040317/hiveUniDash/core/quiz"
	"github.com/Akr1040317/hiveUniDash/core/user"
	"github.com/Akr1040317/hiveUniDash/services/calcom"
	emailsvc "github.com/Akr1040317/hiveUniDash/services/email"
	"github.com/Akr1040317/hiveUniDash/storage/document/inmem"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

var initValidatorsOnce sync.Once

func testConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		AppName:   "Hive Admin Dashboard",
		SecretKey: "test-secret-key",
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 72 * time.Hour,
		},
		Database: core.DatabaseConfig{
			DefaultRegion: "us",
			Regions: map[string]core.RegionConfig{
				"us":    {Name: "hive_us"},
				"dubai": {Name: "hive_dubai"},
			},
		},
	}
}

type testEnv struct {
	server *Server
	store  *inmem.Store
	conf   *core.Config

	usrSvc     *user.Service
	bugSvc     *bug.Service
	featureSvc *feature.Service
	eventSvc   *event.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	initValidatorsOnce.Do(func() { core.InitValidators(core.Validate, core.Translator) })

	conf := testConfig()
	logger := nopLogger{}
	store := inmem.NewStore()
	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	usrSvc := user.NewService(inmem.NewUserRepository(store), conf, logger)
	contentSvc := content.NewService(inmem.NewContentRepository(store), logger)
	bugSvc := bug.NewService(inmem.NewBugRepository(store), mailSvc, conf, logger)
	featureSvc := feature.NewService(inmem.NewFeatureRepository(store), logger)
	eventSvc := event.NewService(inmem.NewEventRepository(store), logger)
	quizSvc := quiz.NewService(inmem.NewQuizRepository(store), logger)
	analyticsSvc := analytics.NewService(inmem.NewAnalyticsRepository(store), logger)
	calcomClient := calcom.NewClient(conf.Calcom, logger)

	server := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		UserSvc:      usrSvc,
		ContentSvc:   contentSvc,
		BugSvc:       bugSvc,
		FeatureSvc:   featureSvc,
		EventSvc:     eventSvc,
		QuizSvc:      quizSvc,
		AnalyticsSvc: analyticsSvc,
		Aggregator:   calendar.NewAggregator(featureSvc, bugSvc, quizSvc, eventSvc, calcomClient, logger),
		Boards:       board.NewManager(featureSvc, bugSvc, logger),
		Calcom:       calcomClient,
		ResolveRegion: func(region string) string {
			if _, ok := conf.Database.Regions[region]; ok {
				return region
			}
			return conf.Database.DefaultRegion
		},
		DisableReqLogs: true,
	})

	return &testEnv{
		server:     server,
		store:      store,
		conf:       conf,
		usrSvc:     usrSvc,
		bugSvc:     bugSvc,
		featureSvc: featureSvc,
		eventSvc:   eventSvc,
	}
}

func (env *testEnv) seedUser(t *testing.T, region, email, password, role string) user.User {
	t.Helper()
	usr, err := env.usrSvc.Create(context.Background(), region, user.NewUser{
		Name:     "Test User",
		Email:    email,
		Role:     role,
		Password: password,
	})
	require.NoError(t, err)
	return usr
}

func (env *testEnv) tokenFor(t *testing.T, usr user.User, region string) string {
	t.Helper()
	token, err := GenerateToken(env.conf, GetUserClaims(env.conf, usr, region))
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echoHeaderContentType, echoMIMEJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

const (
	echoHeaderContentType = "Content-Type"
	echoMIMEJSON          = "application/json"
)

func TestAPI_public(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), "Welcome")

	code, body = env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	var health map[string]string
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health["status"])
}

func TestAPI_requiresToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/v1/content", "/v1/bugs", "/v1/features", "/v1/events",
		"/v1/calendar", "/v1/quizzes", "/v1/dashboard", "/v1/users",
	} {
		code, _ := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestAuthAPI_login(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	env.seedUser(t, "dubai", "dubai@hivespelling.com", "s3cret!", "editor")

	t.Run("success", func(t *testing.T) {
		code, body := env.do(t, http.MethodPost, "/v1/auth/login", "",
			user.Credentials{Email: "admin@hivespelling.com", Password: "s3cret!"})
		require.Equal(t, http.StatusOK, code, string(body))

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "us", resp.Region, "blank region falls back to the default")
	})

	t.Run("tenant region", func(t *testing.T) {
		code, body := env.do(t, http.MethodPost, "/v1/auth/login", "",
			user.Credentials{Region: "dubai", Email: "dubai@hivespelling.com", Password: "s3cret!"})
		require.Equal(t, http.StatusOK, code, string(body))

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "dubai", resp.Region)
	})

	t.Run("failure messages", func(t *testing.T) {
		tests := []struct {
			name  string
			creds user.Credentials
			want  string
		}{
			{"wrong password",
				user.Credentials{Email: "admin@hivespelling.com", Password: "nope"},
				"Incorrect password. Please try again."},
			{"unknown email",
				user.Credentials{Email: "nobody@hivespelling.com", Password: "s3cret!"},
				"No account found with this email address."},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				code, body := env.do(t, http.MethodPost, "/v1/auth/login", "", tt.creds)
				assert.Equal(t, http.StatusBadRequest, code)

				var resp map[string]string
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, tt.want, resp["error"])
			})
		}
	})

	t.Run("invalid payload", func(t *testing.T) {
		code, body := env.do(t, http.MethodPost, "/v1/auth/login", "",
			user.Credentials{Email: "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, code)

		var fields map[string]string
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "password")
	})
}

func TestAuthAPI_me(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	code, body := env.do(t, http.MethodGet, "/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var me user.User
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, usr.ID, me.ID)
	assert.Equal(t, "admin@hivespelling.com", me.Email)
}

func TestAuthAPI_refreshToken(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	code, body := env.do(t, http.MethodPost, "/v1/auth/token-refresh", token, nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestUserAPI_adminOnly(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	editor := env.seedUser(t, "us", "editor@hivespelling.com", "s3cret!", "editor")

	code, _ := env.do(t, http.MethodGet, "/v1/users", env.tokenFor(t, editor, "us"), nil)
	assert.Equal(t, http.StatusForbidden, code)

	adminToken := env.tokenFor(t, admin, "us")
	code, body := env.do(t, http.MethodGet, "/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var users []user.User
	require.NoError(t, json.Unmarshal(body, &users))
	assert.Len(t, users, 2)

	// admins cannot delete themselves
	code, _ = env.do(t, http.MethodDelete, "/v1/users?id="+admin.ID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = env.do(t, http.MethodDelete, "/v1/users?id="+editor.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, body = env.do(t, http.MethodGet, "/v1/users", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &users))
	assert.Len(t, users, 1)
}

func TestContentAPI_crud(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	code, body := env.do(t, http.MethodPost, "/v1/content", token, content.NewContent{
		Title: "Latin Roots 101",
		Type:  content.TypeLesson,
	})
	require.Equal(t, http.StatusCreated, code, string(body))
	var created content.Content
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, content.StatusDraft, created.Status, "status defaults to draft")

	code, body = env.do(t, http.MethodGet, "/v1/content/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, code, string(body))

	code, body = env.do(t, http.MethodPut, "/v1/content/"+created.ID, token,
		content.UpdateContent{Status: content.StatusPublished})
	require.Equal(t, http.StatusOK, code, string(body))
	var updated content.Content
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, content.StatusPublished, updated.Status)
	assert.Equal(t, "Latin Roots 101", updated.Title, "empty fields left untouched")

	code, body = env.do(t, http.MethodGet, "/v1/content", token, nil)
	require.Equal(t, http.StatusOK, code)
	var items []content.Content
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Len(t, items, 1)

	code, _ = env.do(t, http.MethodDelete, "/v1/content/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = env.do(t, http.MethodGet, "/v1/content/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestContentAPI_validation(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	code, body := env.do(t, http.MethodPost, "/v1/content", token, content.NewContent{})
	assert.Equal(t, http.StatusBadRequest, code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "type")
}

func TestBugAPI_board(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")
	ctx := context.Background()

	open, err := env.bugSvc.Create(ctx, "us", bug.NewBug{Title: "Crash on save", Description: "boom"})
	require.NoError(t, err)
	started, err := env.bugSvc.Create(ctx, "us", bug.NewBug{Title: "Slow word list", Description: "slow"})
	require.NoError(t, err)
	require.NoError(t, env.bugSvc.UpdateStatus(ctx, "us", started.ID, bug.StatusInProgress))

	code, body := env.do(t, http.MethodGet, "/v1/bugs/board", token, nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var columns map[string][]board.Item
	require.NoError(t, json.Unmarshal(body, &columns))
	require.Len(t, columns, len(bug.Statuses))
	require.Len(t, columns[bug.StatusNew], 1)
	assert.Equal(t, open.ID, columns[bug.StatusNew][0].ID)
	assert.Equal(t, "Crash on save", columns[bug.StatusNew][0].Title)
	require.Len(t, columns[bug.StatusInProgress], 1)
	assert.Equal(t, started.ID, columns[bug.StatusInProgress][0].ID)
}

func TestBugAPI_statusPatch(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	b, err := env.bugSvc.Create(context.Background(), "us", bug.NewBug{Title: "Crash", Description: "boom"})
	require.NoError(t, err)

	code, _ := env.do(t, http.MethodPatch, "/v1/bugs/"+b.ID+"/status", token,
		StatusRequest{Status: bug.StatusResolved})
	assert.Equal(t, http.StatusNoContent, code)

	code, body := env.do(t, http.MethodGet, "/v1/bugs/"+b.ID, token, nil)
	require.Equal(t, http.StatusOK, code)
	var fetched bug.Bug
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, bug.StatusResolved, fetched.Status)

	code, _ = env.do(t, http.MethodPatch, "/v1/bugs/"+b.ID+"/status", token,
		StatusRequest{Status: "bogus"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodPatch, "/v1/bugs/missing/status", token,
		StatusRequest{Status: bug.StatusResolved})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBugAPI_fieldPatch(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	b, err := env.bugSvc.Create(context.Background(), "us", bug.NewBug{Title: "Crash", Description: "boom"})
	require.NoError(t, err)

	code, _ := env.do(t, http.MethodPatch, "/v1/bugs/"+b.ID+"/field", token,
		FieldRequest{Field: "assignee", Value: "akshar"})
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = env.do(t, http.MethodPatch, "/v1/bugs/"+b.ID+"/field", token,
		FieldRequest{Value: "akshar"})
	assert.Equal(t, http.StatusBadRequest, code, "field name is required")
}

func TestBugAPI_statusPatch_revertOnFailure(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	b, err := env.bugSvc.Create(context.Background(), "us", bug.NewBug{Title: "Crash", Description: "boom"})
	require.NoError(t, err)

	code, _ := env.do(t, http.MethodPatch, "/v1/bugs/"+b.ID+"/status", token,
		StatusRequest{Status: bug.StatusInProgress})
	require.Equal(t, http.StatusNoContent, code)

	// a failed write surfaces and the card snaps back to its last
	// persisted column
	env.store.SetError(errors.New("db down"))
	code, _ = env.do(t, http.MethodPatch, "/v1/bugs/"+b.ID+"/status", token,
		StatusRequest{Status: bug.StatusResolved})
	assert.Equal(t, http.StatusInternalServerError, code)

	env.store.SetError(nil)
	code, body := env.do(t, http.MethodGet, "/v1/bugs/"+b.ID, token, nil)
	require.Equal(t, http.StatusOK, code)
	var fetched bug.Bug
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, bug.StatusInProgress, fetched.Status)

	code, body = env.do(t, http.MethodGet, "/v1/bugs/board", token, nil)
	require.Equal(t, http.StatusOK, code)
	var columns map[string][]board.Item
	require.NoError(t, json.Unmarshal(body, &columns))
	require.Len(t, columns[bug.StatusInProgress], 1)
	assert.Empty(t, columns[bug.StatusResolved])
}

func TestAPI_regionRouting(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")

	code, body := env.do(t, http.MethodPost, "/v1/content?region=dubai", token, content.NewContent{
		Title: "Dubai Orientation",
		Type:  content.TypeArticle,
	})
	require.Equal(t, http.StatusCreated, code, string(body))

	// the token's region sees nothing
	code, body = env.do(t, http.MethodGet, "/v1/content", token, nil)
	require.Equal(t, http.StatusOK, code)
	var items []content.Content
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Empty(t, items)

	// an explicit region query lands on the other workspace
	code, body = env.do(t, http.MethodGet, "/v1/content?region=dubai", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Dubai Orientation", items[0].Title)

	// unknown regions resolve to the default workspace
	code, body = env.do(t, http.MethodGet, "/v1/content?region=mars", token, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Empty(t, items)
}

func TestCalendarAPI(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")
	ctx := context.Background()

	_, err := env.featureSvc.Create(ctx, "us", feature.NewFeature{
		Title: "Practice mode", Description: "d", Category: feature.CategorySoftware, DueDate: "2026-09-10",
	})
	require.NoError(t, err)
	_, err = env.eventSvc.Create(ctx, "us", event.NewEvent{
		Title: "Team sync", Date: "2026-09-08", StartTime: "10:00", EndTime: "10:30", Type: event.TypeTeamSync,
	})
	require.NoError(t, err)

	code, body := env.do(t, http.MethodGet, "/v1/calendar", token, nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var events []calendar.Event
	require.NoError(t, json.Unmarshal(body, &events))
	require.Len(t, events, 2)
	sources := map[string]int{}
	for _, evt := range events {
		sources[evt.SourceType]++
	}
	assert.Equal(t, 1, sources[calendar.SourceFeature])
	assert.Equal(t, 1, sources[calendar.SourceEvent])

	// a bounded view without external bookings serves from the same
	// per-region loader
	code, body = env.do(t, http.MethodGet,
		"/v1/calendar?from=2026-09-01&to=2026-09-30&include_external=false", token, nil)
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, &events))
	assert.Len(t, events, 2)
}

func TestDashboardAPI_summary(t *testing.T) {
	env := newTestEnv(t)
	usr := env.seedUser(t, "us", "admin@hivespelling.com", "s3cret!", "admin")
	token := env.tokenFor(t, usr, "us")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := env.bugSvc.Create(ctx, "us", bug.NewBug{
			Title: fmt.Sprintf("Bug %d", i), Description: "d", Severity: bug.SeverityCritical,
		})
		require.NoError(t, err)
	}
	resolved, err := env.bugSvc.Create(ctx, "us", bug.NewBug{Title: "Fixed already", Description: "d"})
	require.NoError(t, err)
	require.NoError(t, env.bugSvc.UpdateStatus(ctx, "us", resolved.ID, bug.StatusResolved))

	code, body := env.do(t, http.MethodGet, "/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code, string(body))

	var summary DashboardSummary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, "us", summary.Region)
	assert.Equal(t, 2, summary.OpenBugs)
	assert.Equal(t, 2, summary.CriticalBugs)
	assert.Len(t, summary.CriticalOpenBugs, 2, "resolved criticals are excluded")
	assert.Equal(t, 0, summary.Content.Total)
	assert.Empty(t, summary.RecentContent)
}
