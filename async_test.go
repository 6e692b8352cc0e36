package formbridge

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmissionServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true,"submissionId":"s1","intakeId":"v","state":"draft","fields":{}}`)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCall_WaitFromPlainContext(t *testing.T) {
	server := newSubmissionServer(t)
	client := newTestClient(t, server.URL)

	call := client.GetSubmissionAsync(context.Background(), "v", "s1")

	sub, err := call.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s1", sub.SubmissionID)
}

func TestCall_WaitFromConcurrentContext(t *testing.T) {
	server := newSubmissionServer(t)
	client := newTestClient(t, server.URL)

	// Waiting from inside already-concurrent code must behave exactly
	// like waiting from a plain context.
	direct, directErr := client.GetSubmission(context.Background(), "v", "s1")

	var nested *Submission
	var nestedErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		call := client.GetSubmissionAsync(context.Background(), "v", "s1")
		nested, nestedErr = call.Wait(context.Background())
	}()
	wg.Wait()

	require.NoError(t, directErr)
	require.NoError(t, nestedErr)
	assert.Equal(t, direct.SubmissionID, nested.SubmissionID)
	assert.Equal(t, direct.State, nested.State)
}

func TestCall_WaitReturnsExactError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"ok":false,"error":{"type":"unauthorized","message":"bad key"}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	call := client.GetSubmissionAsync(context.Background(), "v", "s1")
	_, err := call.Wait(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Every waiter observes the same error.
	_, again := call.Wait(context.Background())
	assert.Equal(t, err, again)
}

func TestCall_Done(t *testing.T) {
	server := newSubmissionServer(t)
	client := newTestClient(t, server.URL)

	call := client.GetSubmissionAsync(context.Background(), "v", "s1")

	select {
	case <-call.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("call did not complete")
	}

	sub, err := call.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "s1", sub.SubmissionID)
}

func TestCall_WaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server.URL)

	call := client.GetSubmissionAsync(context.Background(), "v", "s1")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := call.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAsyncVariants_MatchBlockingResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/intake/v/submissions":
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"ok":true,"submissionId":"s1","state":"draft","resumeToken":"tok1"}`)
		case r.Method == http.MethodPatch:
			fmt.Fprint(w, `{"ok":true,"submissionId":"s1","state":"in_progress","resumeToken":"tok2"}`)
		case r.Method == http.MethodPost:
			fmt.Fprint(w, `{"ok":true,"submissionId":"s1","intakeId":"v","state":"submitted"}`)
		default:
			fmt.Fprint(w, `{"ok":true,"submissionId":"s1","intakeId":"v","state":"submitted"}`)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()

	sub, err := client.CreateSubmissionAsync(ctx, "v").Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v", sub.IntakeID, "create back-fills the intake ID asynchronously too")

	fields, err := client.SetFieldsAsync(ctx, "v", sub.SubmissionID, sub.ResumeToken,
		map[string]any{"email": "a@b.com"}).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok2", fields.ResumeToken)

	final, err := client.SubmitAsync(ctx, "v", sub.SubmissionID, fields.ResumeToken).Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "submitted", final.State)
}
