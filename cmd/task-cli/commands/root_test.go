package commands_test

import (
	"bytes"
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Bostads-AB-Mimer/onecore-keys/cmd/task-cli/commands"
)

func TestRootCmdHasSleepFlag(t *testing.T) {
	ctx := context.Background()
	cmd := commands.NewRootCmd(ctx)

	assert.NotNil(t, cmd.PersistentFlags().Lookup("sleep"))
}

func TestRootCmdSleepModeBlocksUntilSignalled(t *testing.T) {
	ctx := context.Background()
	cmd := commands.NewRootCmd(ctx)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--sleep"})

	done := make(chan error, 1)
	go func() {
		done <- cmd.Execute()
	}()

	time.Sleep(10 * time.Millisecond)
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGINT)

	err := <-done
	assert.NoError(t, err)
	got := out.String()
	assert.Contains(t, got, "Waiting for a termination signal...")
	assert.Contains(t, got, "Signal received, shutting down...")
}
