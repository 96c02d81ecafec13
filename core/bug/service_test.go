package bug_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	emailsvc "github.com/Akr1040317/hiveUniDash/services/email"
	"github.com/Akr1040317/hiveUniDash/storage/document/inmem"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func newTestService(t *testing.T) (*bug.Service, *inmem.Store) {
	t.Helper()
	conf := &core.Config{
		AppName:    "Hive Admin Dashboard",
		TeamEmails: []string{"arastogi@hivespelling.com", "erastogi@hivespelling.com"},
	}
	store := inmem.NewStore()
	svc := bug.NewService(inmem.NewBugRepository(store), emailsvc.NewConsoleServiceMock(conf), conf, nopLogger{})
	return svc, store
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService(t)

	nb := bug.NewBug{Title: "Crash on save", Description: "boom"}
	require.NoError(t, nb.Validate())

	b, err := svc.Create(context.Background(), "us", nb)
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, bug.StatusNew, b.Status)
	assert.Equal(t, bug.SeverityLow, b.Severity, "severity defaults to low")
	assert.Equal(t, bug.Unassigned, b.Assignee)
	assert.Equal(t, "us", b.Region)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestService_Create_notifiesTeamOnCritical(t *testing.T) {
	svc, _ := newTestService(t)
	before := len(emailsvc.SentMessages)

	_, err := svc.Create(context.Background(), "dubai", bug.NewBug{
		Title:       "Word lists gone",
		Description: "nothing loads",
		Severity:    bug.SeverityCritical,
		Reporter:    "QA",
	})
	require.NoError(t, err)

	require.Len(t, emailsvc.SentMessages, before+1)
	msg := emailsvc.SentMessages[len(emailsvc.SentMessages)-1]
	require.Len(t, msg.To, 2)
	assert.Equal(t, "arastogi@hivespelling.com", msg.To[0].Address)
	assert.Contains(t, msg.Subject, "Critical bug")
	assert.Contains(t, msg.Subject, "Word lists gone")
	assert.Contains(t, msg.TextContent, "dubai")

	// non-critical bugs stay quiet
	_, err = svc.Create(context.Background(), "dubai", bug.NewBug{
		Title: "Typo", Description: "d", Severity: bug.SeverityLow,
	})
	require.NoError(t, err)
	assert.Len(t, emailsvc.SentMessages, before+1)
}

func TestService_Filter(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, nb := range []bug.NewBug{
		{Title: "A", Description: "d", Severity: bug.SeverityHigh, Assignee: "akshar"},
		{Title: "B", Description: "d", Severity: bug.SeverityLow},
		{Title: "C", Description: "d", Severity: bug.SeverityHigh},
	} {
		_, err := svc.Create(ctx, "us", nb)
		require.NoError(t, err)
	}

	assert.Len(t, svc.Filter(ctx, "us", bug.QueryFilter{}), 3)
	assert.Len(t, svc.Filter(ctx, "us", bug.QueryFilter{Severity: bug.SeverityHigh}), 2)
	assert.Len(t, svc.Filter(ctx, "us", bug.QueryFilter{Assignee: "akshar"}), 1)
	assert.Len(t, svc.Filter(ctx, "us", bug.QueryFilter{Status: "all"}), 3, `"all" means unconstrained`)
	assert.Empty(t, svc.Filter(ctx, "dubai", bug.QueryFilter{}), "regions are isolated")
}

func TestService_Filter_failSoft(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "us", bug.NewBug{Title: "A", Description: "d"})
	require.NoError(t, err)

	store.SetError(errors.New("backend down"))
	defer store.SetError(nil)

	items := svc.Filter(ctx, "us", bug.QueryFilter{})
	assert.Empty(t, items, "reads degrade to an empty listing")
	assert.NotNil(t, items)
}

func TestService_UpdateStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "us", bug.NewBug{Title: "A", Description: "d"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, "us", b.ID, bug.StatusTesting))
	fetched, err := svc.GetByID(ctx, "us", b.ID)
	require.NoError(t, err)
	assert.Equal(t, bug.StatusTesting, fetched.Status)

	err = svc.UpdateStatus(ctx, "us", b.ID, "wontfix")
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)

	assert.Equal(t, bug.ErrNotFound, svc.UpdateStatus(ctx, "us", "missing", bug.StatusTesting))
}

func TestService_UpdateField(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, "us", bug.NewBug{Title: "A", Description: "d"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateField(ctx, "us", b.ID, "assignee", "akshar"))
	fetched, err := svc.GetByID(ctx, "us", b.ID)
	require.NoError(t, err)
	assert.Equal(t, "akshar", fetched.Assignee)
}
