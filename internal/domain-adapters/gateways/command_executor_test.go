package gateways

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandExecutor_Run(t *testing.T) {
	ce := NewCommandExecutor(nil)

	tests := []struct {
		name       string
		config     ExecuteCommandConfig
		wantOK     bool
		wantExit   int
		wantStdout string
	}{
		{
			name:       "success",
			config:     ExecuteCommandConfig{Name: "echo", Args: []string{"Hello, World!"}, Description: "test echo"},
			wantOK:     true,
			wantStdout: "Hello, World!\n",
		},
		{
			name:     "non-zero exit",
			config:   ExecuteCommandConfig{Name: "/bin/sh", Args: []string{"-c", "exit 42"}},
			wantExit: 42,
		},
		{
			name: "environment",
			config: ExecuteCommandConfig{
				Name: "/bin/sh",
				Args: []string{"-c", "echo $TEST_VAR"},
				Env:  map[string]string{"TEST_VAR": "test_value"},
			},
			wantOK:     true,
			wantStdout: "test_value\n",
		},
		{
			name:       "stdin",
			config:     ExecuteCommandConfig{Name: "cat", Stdin: "secret-password"},
			wantOK:     true,
			wantStdout: "secret-password",
		},
		{
			name:     "missing binary",
			config:   ExecuteCommandConfig{Name: "definitely-not-a-real-binary-4242"},
			wantExit: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ce.Run(context.Background(), tt.config)

			assert.Equal(t, tt.wantOK, result.Success, "error: %v", result.Error)
			assert.Equal(t, tt.wantExit, result.ExitCode)
			if tt.wantOK {
				assert.NoError(t, result.Error)
				assert.Equal(t, tt.wantStdout, result.Stdout)
			} else {
				assert.Error(t, result.Error)
			}
		})
	}
}

func TestCommandExecutor_Run_WorkingDir(t *testing.T) {
	ce := NewCommandExecutor(nil)
	dir := t.TempDir()

	result := ce.Run(context.Background(), ExecuteCommandConfig{Name: "pwd", WorkingDir: dir})

	assert.True(t, result.Success)
	assert.Contains(t, result.Stdout, dir)
}

func TestCommandExecutor_Run_Timeout(t *testing.T) {
	ce := NewCommandExecutor(nil)

	result := ce.Run(context.Background(), ExecuteCommandConfig{
		Name:    "sleep",
		Args:    []string{"5"},
		Timeout: 100 * time.Millisecond,
	})

	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ExitCode)
	assert.Less(t, result.Duration, 5*time.Second)
	require.Error(t, result.Error)
	assert.True(t, errors.Is(result.Error, context.DeadlineExceeded))
	assert.Contains(t, result.Error.Error(), "execution timeout after 100ms")
}

func TestCommandExecutor_Run_NoTimeoutByDefault(t *testing.T) {
	ce := NewCommandExecutor(nil)

	result := ce.Run(context.Background(), ExecuteCommandConfig{Name: "sleep", Args: []string{"0.3"}})

	assert.True(t, result.Success)
	assert.NoError(t, result.Error)
	assert.GreaterOrEqual(t, result.Duration, 300*time.Millisecond)
}

func TestCommandExecutor_Run_CallerCancellation(t *testing.T) {
	ce := NewCommandExecutor(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result := ce.Run(ctx, ExecuteCommandConfig{Name: "sleep", Args: []string{"5"}})

	assert.False(t, result.Success)
	assert.Error(t, result.Error)
	assert.NotContains(t, result.Error.Error(), "execution timeout")
	assert.Less(t, result.Duration, 5*time.Second)
}
