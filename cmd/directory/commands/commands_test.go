package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/employee-directory/internal/testutil"
	"github.com/Sternrassler/employee-directory/pkg/client"
	"github.com/Sternrassler/employee-directory/pkg/loader"
	"github.com/Sternrassler/employee-directory/pkg/screen"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "directory dev\n", out)
}

func TestBrowse_PagesThroughDirectory(t *testing.T) {
	mock := testutil.NewMockDirectory()
	defer mock.Close()
	mock.SetResponse(testutil.NewRecordsResponse(25))

	out, _, err := execute(t, "n\nnext\nn\np\nq\n", "browse", "--endpoint", mock.URL(), "--log-level", "error")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, screen.LoadingText+"\n"))
	assert.Contains(t, out, "(Previous)  1  [Next]")
	assert.Contains(t, out, "[Previous]  2  [Next]")
	assert.Contains(t, out, "[Previous]  3  (Next)")
	assert.Contains(t, out, "Member 25")
	assert.Equal(t, 5, strings.Count(out, browsePrompt))
	assert.Equal(t, 1, mock.RequestCount())
}

func TestBrowse_FailureShowsEmptyView(t *testing.T) {
	mock := testutil.NewMockDirectory()
	defer mock.Close()
	mock.SetResponse(testutil.NewServerErrorResponse())

	out, errOut, err := execute(t, "n\nq\n", "browse", "--endpoint", mock.URL(), "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, errOut, loader.FailureMessage)
	assert.Contains(t, out, screen.EmptyText)
	assert.NotContains(t, out, "Next")
	assert.Equal(t, 1, mock.RequestCount())
}

func TestBrowse_InvalidEndpoint(t *testing.T) {
	_, _, err := execute(t, "", "browse", "--endpoint", "not a url")
	assert.Error(t, err)
}

func TestBrowseLoop(t *testing.T) {
	mock := testutil.NewMockDirectory()
	defer mock.Close()
	mock.SetResponse(testutil.NewRecordsResponse(12))

	c, err := client.New(client.Config{Endpoint: mock.URL(), UserAgent: "test/1.0"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"eof ends the loop", "", []string{"(Previous)  1  [Next]"}},
		{"previous at first page stays", "p\nq\n", []string{"(Previous)  1  [Next]"}},
		{"unknown command", "x\nq\n", []string{`unknown command "x"`}},
		{"blank line redraws", "\nq\n", []string{"Member 10"}},
		{"last page", "n\nn\nq\n", []string{"[Previous]  2  (Next)", "Member 12"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ld := loader.New(c, nil, zerolog.Nop())

			var out bytes.Buffer
			require.NoError(t, browse(context.Background(), ld, strings.NewReader(tt.input), &out))
			for _, want := range tt.want {
				assert.Contains(t, out.String(), want)
			}
			assert.Equal(t, loader.StateReady, ld.State())
		})
	}
}

func TestBrowseLoop_ContextCancelledWhileLoading(t *testing.T) {
	mock := testutil.NewMockDirectory()
	defer mock.Close()
	release := make(chan struct{})
	defer close(release)
	mock.SetResponse(testutil.MockResponse{StatusCode: 200, Body: "[]", Release: release})

	c, err := client.New(client.Config{Endpoint: mock.URL(), UserAgent: "test/1.0"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	err = browse(ctx, loader.New(c, nil, zerolog.Nop()), strings.NewReader("q\n"), &out)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, screen.LoadingText+"\n", out.String())
}
