package screen

import (
	"context"
	"testing"
	"time"

	"github.com/Sternrassler/employee-directory/internal/testutil"
	"github.com/Sternrassler/employee-directory/pkg/client"
	"github.com/Sternrassler/employee-directory/pkg/directory"
	"github.com/Sternrassler/employee-directory/pkg/loader"
	"github.com/Sternrassler/employee-directory/pkg/pagination"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	state   loader.State
	records []directory.Record
}

func (f fakeSource) State() loader.State { return f.state }
func (f fakeSource) Records() []directory.Record { return f.records }

func ready(n int) fakeSource {
	return fakeSource{state: loader.StateReady, records: testutil.Records(n)}
}

func TestView_Loading(t *testing.T) {
	s := New(fakeSource{state: loader.StateLoading}, 0)

	v := s.View(1)
	assert.Equal(t, ModeLoading, v.Mode)
	assert.Equal(t, LoadingText, v.Message)
	assert.False(t, v.Controls.Visible)
	assert.Empty(t, v.Rows)
	assert.Equal(t, "loading", v.State)
}

func TestView_ScenarioA_TwentyFiveRecords(t *testing.T) {
	src := ready(25)
	s := New(src, pagination.DefaultPageSize)

	v := s.View(1)
	require.Equal(t, ModeTable, v.Mode)
	assert.Equal(t, Title, v.Title)
	assert.Equal(t, []string{"ID", "Name", "Email", "Role"}, v.Columns)
	assert.Equal(t, src.records[0:10], v.Rows)
	assert.Equal(t, pagination.Controls{Visible: true, NextEnabled: true, Page: 1, TotalPages: 3}, v.Controls)
	assert.Equal(t, 25, v.Total)

	assert.Equal(t, src.records[10:20], s.View(2).Rows)

	last := s.View(3)
	assert.Equal(t, src.records[20:25], last.Rows)
	assert.True(t, last.Controls.PreviousEnabled)
	assert.False(t, last.Controls.NextEnabled)
}

func TestView_ScenarioB_Empty(t *testing.T) {
	v := New(ready(0), 0).View(1)

	assert.Equal(t, ModeEmpty, v.Mode)
	assert.Equal(t, EmptyText, v.Message)
	assert.False(t, v.Controls.Visible)
	assert.Equal(t, 0, v.Controls.TotalPages)
}

func TestView_ScenarioC_SinglePage(t *testing.T) {
	v := New(ready(5), 0).View(1)

	assert.Equal(t, ModeTable, v.Mode)
	assert.Len(t, v.Rows, 5)
	assert.False(t, v.Controls.Visible)
	assert.Equal(t, 1, v.Controls.TotalPages)
}

func TestView_FailedFallsBackToEmpty(t *testing.T) {
	v := New(fakeSource{state: loader.StateFailed}, 0).View(1)

	assert.Equal(t, ModeEmpty, v.Mode)
	assert.Equal(t, "failed", v.State)
}

func TestView_ClampsPage(t *testing.T) {
	s := New(ready(25), 0)

	assert.Equal(t, 3, s.View(99).Controls.Page)
	assert.Equal(t, 1, s.View(-1).Controls.Page)
}

func TestNavigation(t *testing.T) {
	s := New(ready(25), 0)

	assert.Equal(t, 2, s.Next(1))
	assert.Equal(t, 3, s.Next(3))
	assert.Equal(t, 1, s.Previous(1))
	assert.Equal(t, 2, s.Previous(3))
	assert.Equal(t, 3, s.Next(50), "out-of-range page is clamped before stepping")
}

func TestNavigation_NotReady(t *testing.T) {
	s := New(fakeSource{state: loader.StateLoading}, 0)

	assert.Equal(t, 1, s.Next(1))
	assert.Equal(t, 1, s.Previous(1))
}

func TestSession(t *testing.T) {
	sess := NewSession(New(ready(25), 0))
	assert.Equal(t, 1, sess.Page())

	assert.Equal(t, 1, sess.Previous().Controls.Page)
	assert.Equal(t, 2, sess.Next().Controls.Page)
	assert.Equal(t, 3, sess.Next().Controls.Page)
	assert.Equal(t, 3, sess.Next().Controls.Page)
	assert.Equal(t, 3, sess.Page())
	assert.Len(t, sess.View().Rows, 5)
	assert.Equal(t, 2, sess.Previous().Controls.Page)
}

type countingNotifier struct{ n int }

func (c *countingNotifier) Notify(string) { c.n++ }

func TestScenarioD_ServerError(t *testing.T) {
	mock := testutil.NewMockDirectory()
	defer mock.Close()
	mock.SetResponse(testutil.NewServerErrorResponse())

	c, err := client.New(client.Config{Endpoint: mock.URL(), UserAgent: "test/1.0"})
	require.NoError(t, err)

	notifier := &countingNotifier{}
	l := loader.New(c, notifier, zerolog.Nop())
	l.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := l.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, loader.StateFailed, state)
	assert.Equal(t, 1, notifier.n)

	v := New(l, 0).View(1)
	assert.Equal(t, ModeEmpty, v.Mode)
	assert.Empty(t, v.Rows)
	assert.Equal(t, 0, v.Total)
}
