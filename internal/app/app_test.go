package app

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUnblocksWithServerClosedOnShutdown(t *testing.T) {
	cleaned := false
	a := &App{
		httpServer: &http.Server{
			Addr:    "127.0.0.1:0",
			Handler: http.NewServeMux(),
		},
		cleanup: func() error {
			cleaned = true
			return nil
		},
	}

	runErr := make(chan error, 1)
	go func() { runErr <- a.Run() }()

	// Give the listener a moment; Shutdown before or after bind both
	// end with ErrServerClosed.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))
	assert.True(t, cleaned)

	select {
	case err := <-runErr:
		assert.True(t, errors.Is(err, http.ErrServerClosed),
			"clean shutdown must surface ErrServerClosed, got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
}
