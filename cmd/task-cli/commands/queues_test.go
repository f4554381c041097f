package commands_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bostads-AB-Mimer/onecore-keys/cmd/task-cli/commands"
)

func TestQueuesCmd(t *testing.T) {
	cmd := commands.NewQueuesCmd(t.Context(), &commands.MockInspector{})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Task queues:")
	assert.Contains(t, out.String(), "- default")
	assert.Contains(t, out.String(), "- maintenance")
}
