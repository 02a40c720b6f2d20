package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dechbar/kpause/internal/config"
	"github.com/dechbar/kpause/internal/domain"
	"github.com/dechbar/kpause/internal/repository"
	"github.com/dechbar/kpause/internal/service"
	"github.com/dechbar/kpause/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// testApp wires an App over an in-memory database.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteMeasurementRepo(database)
	now := testutil.MorningAt(0).Add(30 * time.Minute)

	return &App{
		Measurements: service.NewMeasurementService(repo, testutil.NewTestUoW(database)),
		Config:       config.Default(t.TempDir()),
		Now:          func() time.Time { return now },
	}
}

// seed saves a measurement taken daysAgo mornings back.
func seed(t *testing.T, app *App, daysAgo int, attempts ...int) *domain.Measurement {
	t.Helper()
	slots := make([]*int, len(attempts))
	for i, a := range attempts {
		slots[i] = domain.IntPtr(a)
	}
	m, err := app.Measurements.Save(context.Background(), service.SaveRequest{
		Attempts:   slots,
		Configured: len(attempts),
		MeasuredAt: testutil.MorningAt(daysAgo),
	})
	require.NoError(t, err)
	return m
}

// executeCmd runs a command line and captures its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func TestList_Empty(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No measurements")
}

func TestList_ShowsRecentOnly(t *testing.T) {
	app := testApp(t)
	recent := seed(t, app, 1, 33, 36, 36)
	old := seed(t, app, 40, 20, 22)

	out, err := executeCmd(t, app, "list", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, recent.ID[:8])
	assert.Contains(t, out, "33 · 36 · 36")
	assert.NotContains(t, out, old.ID[:8])

	out, err = executeCmd(t, app, "ls", "-d", "60")
	require.NoError(t, err)
	assert.Contains(t, out, old.ID[:8])
}

func TestList_RejectsNonPositiveDays(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "list", "--days", "0")
	assert.ErrorContains(t, err, "--days must be positive")
}

func TestShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	m := seed(t, app, 0, 30, 35)

	out, err := executeCmd(t, app, "show", m.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, m.ID)
	assert.Contains(t, out, "30 · 35")
	assert.Contains(t, out, "33s", "[30,35] rounds half up")
}

func TestShow_NotFound(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "show", "deadbeef")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRemove_NeedsConfirmationWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	m := seed(t, app, 0, 30)

	_, err := executeCmd(t, app, "remove", m.ID)
	assert.ErrorContains(t, err, "--yes")

	_, err = app.Measurements.Get(context.Background(), m.ID)
	assert.NoError(t, err, "measurement must survive")
}

func TestRemove_Yes(t *testing.T) {
	app := testApp(t)
	m := seed(t, app, 0, 30)

	out, err := executeCmd(t, app, "rm", "--yes", m.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted measurement "+m.ID)

	_, err = app.Measurements.Get(context.Background(), m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRemove_InteractiveConfirmation(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	m := seed(t, app, 0, 30)

	var asked []string
	answer := false
	app.ConfirmDelete = func(got *domain.Measurement) (bool, error) {
		asked = append(asked, got.ID)
		return answer, nil
	}

	out, err := executeCmd(t, app, "remove", m.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Kept.")
	_, err = app.Measurements.Get(context.Background(), m.ID)
	require.NoError(t, err)

	answer = true
	_, err = executeCmd(t, app, "remove", m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{m.ID, m.ID}, asked)
	_, err = app.Measurements.Get(context.Background(), m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStats(t *testing.T) {
	app := testApp(t)
	seed(t, app, 0, 40, 42)
	seed(t, app, 2, 30, 30)

	out, err := executeCmd(t, app, "stats", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "LAST 7 DAYS")
	assert.Contains(t, out, "2 (2 morning)")
	assert.Contains(t, out, "41s")
}

func TestExport_YAML(t *testing.T) {
	app := testApp(t)
	m := seed(t, app, 0, 33, 36, 36)

	out, err := executeCmd(t, app, "export", "--format", "yaml")
	require.NoError(t, err)

	var doc struct {
		Count        int `yaml:"count"`
		Measurements []struct {
			ID    string `yaml:"id"`
			Score int    `yaml:"score"`
		} `yaml:"measurements"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1, doc.Count)
	require.Len(t, doc.Measurements, 1)
	assert.Equal(t, m.ID, doc.Measurements[0].ID)
	assert.Equal(t, 35, doc.Measurements[0].Score)
}

func TestExport_RejectsUnknownFormat(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "export", "--format", "csv")
	assert.ErrorContains(t, err, "unknown format")
}

func TestClassify(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "classify", "--at", "2025-06-15T06:40:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "is morning")
	assert.Contains(t, out, "valid measurement window")

	out, err = executeCmd(t, app, "classify", "--at", "23:15")
	require.NoError(t, err)
	assert.Contains(t, out, "is night")

	_, err = executeCmd(t, app, "classify", "--at", "noon")
	assert.Error(t, err)
}

func TestServeMetrics_RequiresGatherer(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "serve-metrics")
	assert.ErrorContains(t, err, "not configured")
}
