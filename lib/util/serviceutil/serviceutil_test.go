package serviceutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 1, ExitCode(errors.New("disk full")))
	require.Equal(t, 2, ExitCode(Exit(2, errors.New("1 of 3 dates failed"))))

	wrapped := fmt.Errorf("collect: %w", Exit(2, errors.New("1 of 3 dates failed")))
	require.Equal(t, 2, ExitCode(wrapped))
	require.Equal(t, "collect: 1 of 3 dates failed", wrapped.Error())
}

func TestSignalContextCancel(t *testing.T) {
	ctx, cancel := SignalContext(context.Background())
	cancel()
	<-ctx.Done()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}
