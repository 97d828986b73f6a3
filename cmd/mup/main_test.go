package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dxbednarczyk/mup/internal/adapters/loader"
	"github.com/dxbednarczyk/mup/internal/adapters/lockfile"
	"github.com/dxbednarczyk/mup/internal/app"
	"github.com/dxbednarczyk/mup/internal/core/domain"
	"github.com/dxbednarczyk/mup/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T, log *mocks.MockLogger) ComponentProvider {
	t.Helper()
	ctrl := gomock.NewController(t)
	root := t.TempDir()

	hist := mocks.NewMockHistoryStore(ctrl)
	hist.EXPECT().Record(gomock.Any()).Return(nil).AnyTimes()

	application := app.New(
		root,
		lockfile.NewStore(filepath.Join(root, domain.LockfileName), log),
		nil,
		nil,
		loader.NewRegistry(),
		hist,
		mocks.NewMockVerifier(ctrl),
		log,
		1,
	)

	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: log,
		}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, newComponents(t, mockLogger))
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs the error when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	// Adding a project before the server is initialized fails.
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.True(t, errors.Is(err, domain.ErrNotInitialized))
	})

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"project", "add", "luckperms"}, stderr, newComponents(t, mockLogger))
	assert.Equal(t, 1, exitCode)
}
