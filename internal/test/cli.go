package test

import (
	"bytes"
	"context"
	"testing"

	"github.com/dbsnap/dbsnap/pkg/cli/cmd"
	"github.com/dbsnap/dbsnap/pkg/config"
	"github.com/dbsnap/dbsnap/pkg/snapshots"
	"github.com/spf13/cobra"
)

type TestCLI struct {
	Adapter      *MemoryAdapter
	Cmd          *cobra.Command
	Config       *config.Config
	outputBuffer *bytes.Buffer
}

// NewTestCLI builds the full command tree against a temporary snapshot
// directory and an in-memory engine adapter, capturing all output.
func NewTestCLI(t *testing.T) *TestCLI {
	t.Helper()

	c := Setup(t)

	memoryAdapter := NewMemoryAdapter(c)

	factory := func(factoryConfig *config.Config) (*snapshots.Controller, error) {
		return snapshots.NewController(factoryConfig, NewStore(t, factoryConfig), memoryAdapter), nil
	}

	cli := &TestCLI{
		Adapter:      memoryAdapter,
		Config:       c,
		outputBuffer: bytes.NewBuffer(make([]byte, 0)),
	}

	root := cmd.RootCmd(c, factory)
	root.SetOut(cli.outputBuffer)
	root.SetErr(cli.outputBuffer)

	cli.Cmd = root

	return cli
}

// ClearOutput resets the output buffer for the CLI
func (c *TestCLI) ClearOutput() {
	c.outputBuffer.Reset()
}

// GetOutput returns the current output buffer content for debugging
func (c *TestCLI) GetOutput() string {
	return c.outputBuffer.String()
}

// Run executes the CLI command with the provided arguments
func (c *TestCLI) Run(args ...string) error {
	args = append(args, "--no-interaction")

	c.Cmd.SetArgs(args)

	return cmd.Execute(context.Background(), c.Cmd)
}

// Check if the output buffer does not contain the expected text
func (c *TestCLI) DoesntSee(text string) bool {
	return !c.Sees(text)
}

// Check if the output buffer contains the expected text
func (c *TestCLI) Sees(text string) bool {
	return bytes.Contains(c.outputBuffer.Bytes(), []byte(text))
}
