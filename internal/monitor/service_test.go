package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aleister1102/seatwatch/internal/common"
	"github.com/aleister1102/seatwatch/internal/datastore"
	"github.com/aleister1102/seatwatch/internal/differ"
	"github.com/aleister1102/seatwatch/internal/filter"
	"github.com/aleister1102/seatwatch/internal/httpclient"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/aleister1102/seatwatch/internal/notifier"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	snapshot *models.Snapshot
	saves    int
	saveErr  error
}

func (m *memoryStore) Load(context.Context) (*models.Snapshot, error) {
	if m.snapshot == nil {
		return models.NewSnapshot(), nil
	}
	return m.snapshot.Clone(), nil
}

func (m *memoryStore) Save(_ context.Context, snapshot *models.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snapshot = snapshot.Clone()
	return nil
}

func (m *memoryStore) Location() string { return "memory" }
func (m *memoryStore) Close() error     { return nil }

type fixture struct {
	pages   map[string]string
	store   *memoryStore
	console *bytes.Buffer
}

func newFixture(page string) *fixture {
	return &fixture{
		pages:   map[string]string{"https://portal/GEN.html": page},
		store:   &memoryStore{},
		console: &bytes.Buffer{},
	}
}

func (f *fixture) service(t *testing.T, opts ServiceOptions) *MonitoringService {
	t.Helper()
	opts.URLs = []string{"https://portal/GEN.html"}
	opts.Fetcher = pagesFetcher(f.pages, nil)
	opts.Store = f.store
	opts.Notifications = notifier.NewNotificationHelper(zerolog.Nop(), notifier.NewConsoleNotifier(f.console))
	if opts.DifferConfig == (differ.CourseDifferConfig{}) {
		opts.DifferConfig = differ.DefaultCourseDifferConfig()
	}
	svc, err := NewMonitoringService(opts, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func (f *fixture) setPage(page string) {
	f.pages["https://portal/GEN.html"] = page
}

func TestMonitoringService_FirstRunSilent(t *testing.T) {
	f := newFixture(coursePage("ABC123:5"))

	summary, err := f.service(t, ServiceOptions{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, OutcomeInitialized, summary.Outcome)
	assert.True(t, summary.Persisted)
	assert.Equal(t, "Initialized baseline (no notifications).", summary.Message())
	assert.Empty(t, f.console.String())
	assert.Equal(t, 1, f.store.saves)
	record, _ := f.store.snapshot.Get("ABC123")
	assert.Equal(t, models.CourseRecord{Code: "ABC123", Open: true, Seats: 5}, record)
}

func TestMonitoringService_FirstRunInitialNotify(t *testing.T) {
	f := newFixture(coursePage("ABC123:5"))

	summary, err := f.service(t, ServiceOptions{
		DifferConfig: differ.CourseDifferConfig{InitialNotify: true, ResetGoneOnReappear: true},
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "📌 Initial ABC123: open=true, LEFT=5\n", f.console.String())
	assert.Empty(t, summary.Message())
	assert.True(t, summary.Persisted)
}

func TestMonitoringService_ChangeThenNoChange(t *testing.T) {
	f := newFixture(coursePage("ABC123:0"))
	svc := f.service(t, ServiceOptions{})

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	f.setPage(coursePage("ABC123:3"))
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeChanged, summary.Outcome)
	assert.Equal(t, 1, summary.Events[models.EventOpened])
	assert.Equal(t, "✅ Course ABC123 is now OPEN! LEFT 0→3\n", f.console.String())
	assert.Equal(t, 2, f.store.saves)

	summary, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoChanges, summary.Outcome)
	assert.Equal(t, "No changes.", summary.Message())
	assert.False(t, summary.Persisted)
	assert.Equal(t, 2, f.store.saves)
}

func TestMonitoringService_FilterScopesLatestAndDisappearance(t *testing.T) {
	f := newFixture(coursePage("ABC123:5", "XYZ999:1"))
	f.store.snapshot = models.NewSnapshot()
	f.store.snapshot.Set(models.NewCourseRecord("ABC123", 5))
	f.store.snapshot.Set(models.NewCourseRecord("OLD100", 2))
	f.store.snapshot.Set(models.NewCourseRecord("ABC999", 2))

	summary, err := f.service(t, ServiceOptions{Rule: filter.NewRule(nil, []string{"ABC"})}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, 1, summary.Watched)
	assert.Equal(t, map[models.EventKind]int{models.EventDisappeared: 1}, summary.Events)
	assert.Contains(t, f.console.String(), "ABC999")
	assert.False(t, f.store.snapshot.Has("XYZ999"))
	old, _ := f.store.snapshot.Get("OLD100")
	assert.False(t, old.GoneNotified)
}

func TestMonitoringService_FetchErrorIsFatal(t *testing.T) {
	f := newFixture("")
	f.pages = map[string]string{}
	f.store.snapshot = models.NewSnapshot()
	f.store.snapshot.Set(models.NewCourseRecord("ABC123", 5))

	summary, err := f.service(t, ServiceOptions{}).Run(context.Background())

	require.Error(t, err)
	assert.Nil(t, summary)
	assert.True(t, common.IsFetchError(err))
	assert.Empty(t, f.console.String())
	assert.Equal(t, 0, f.store.saves)
}

func TestMonitoringService_SaveErrorIsFatal(t *testing.T) {
	f := newFixture(coursePage("ABC123:5"))
	f.store.saveErr = errors.New("read-only file system")

	summary, err := f.service(t, ServiceOptions{}).Run(context.Background())

	require.Error(t, err)
	var saveErr *common.StateSaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, "memory", saveErr.Location)
	require.NotNil(t, summary)
	assert.False(t, summary.Persisted)
}

func TestMonitoringService_DryRunDoesNotSave(t *testing.T) {
	f := newFixture(coursePage("ABC123:5"))

	summary, err := f.service(t, ServiceOptions{DryRun: true}).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.False(t, summary.Persisted)
	assert.Equal(t, 0, f.store.saves)
}

func TestMonitoringService_DeliveryFailureDoesNotAbort(t *testing.T) {
	f := newFixture(coursePage("ABC123:2"))
	f.store.snapshot = models.NewSnapshot()
	f.store.snapshot.Set(models.NewCourseRecord("ABC123", 5))

	failing := notifierFunc(func(context.Context, string) error { return errors.New("boom") })
	svc, err := NewMonitoringService(ServiceOptions{
		URLs:          []string{"https://portal/GEN.html"},
		Fetcher:       pagesFetcher(f.pages, nil),
		Store:         f.store,
		DifferConfig:  differ.DefaultCourseDifferConfig(),
		Notifications: notifier.NewNotificationHelper(zerolog.Nop(), failing),
	}, zerolog.Nop())
	require.NoError(t, err)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Delivery.Failed)
	assert.True(t, summary.Persisted)
}

func TestNewMonitoringService_RequiresCollaborators(t *testing.T) {
	_, err := NewMonitoringService(ServiceOptions{Store: &memoryStore{}}, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = NewMonitoringService(ServiceOptions{Fetcher: pagesFetcher(nil, nil)}, zerolog.Nop())
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestMonitoringService_EndToEnd(t *testing.T) {
	page := coursePage("ABC123:5")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, page)
	}))
	defer server.Close()

	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	var console bytes.Buffer
	store := datastore.NewJSONStateStore(filepath.Join(t.TempDir(), "state.json"), zerolog.Nop())
	svc, err := NewMonitoringService(ServiceOptions{
		URLs:          []string{server.URL},
		Fetcher:       NewPageFetcher(client, zerolog.Nop()),
		Store:         store,
		DifferConfig:  differ.DefaultCourseDifferConfig(),
		Notifications: notifier.NewNotificationHelper(zerolog.Nop(), notifier.NewConsoleNotifier(&console)),
	}, zerolog.Nop())
	require.NoError(t, err)

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeInitialized, summary.Outcome)

	page = coursePage("ABC123:4", "XYZ999:0")
	summary, err = svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeChanged, summary.Outcome)
	assert.Equal(t, "↔️ Course ABC123 seats changed: LEFT 5→4\n🆕 New course XYZ999: open=false, LEFT=0\n", console.String())

	saved, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC123", "XYZ999"}, saved.Codes())
}

type notifierFunc func(ctx context.Context, text string) error

func (f notifierFunc) Name() string                                  { return "func" }
func (f notifierFunc) Notify(ctx context.Context, text string) error { return f(ctx, text) }
