package test

import (
	"context"
	"io"

	"github.com/dbsnap/dbsnap/pkg/adapter"
	"github.com/dbsnap/dbsnap/pkg/config"
)

// MemoryAdapter implements the execution adapter against an in-memory map of
// databases so controller behavior can be verified without an engine. Tests
// seed database content directly and inject failures per operation.
type MemoryAdapter struct {
	Calls     []string
	Databases map[string][]byte
	Running   bool

	FailCreate   error
	FailDrop     error
	FailDump     error
	FailRestore  error
	FailStart    error
	FailRenameTo map[string]error

	config *config.Config
}

func NewMemoryAdapter(c *config.Config) *MemoryAdapter {
	return &MemoryAdapter{
		Databases:    map[string][]byte{},
		FailRenameTo: map[string]error{},
		config:       c,
	}
}

// Live returns the content of the configured live database.
func (m *MemoryAdapter) Live() []byte {
	return m.Databases[m.config.Database]
}

// Seed sets the content of the configured live database.
func (m *MemoryAdapter) Seed(content []byte) {
	m.Databases[m.config.Database] = content
}

func (m *MemoryAdapter) CreateDatabase(ctx context.Context, name string) error {
	m.Calls = append(m.Calls, "create "+name)

	if m.FailCreate != nil {
		return m.FailCreate
	}

	if _, exists := m.Databases[name]; exists {
		return &adapter.Error{Op: "create database", Reason: adapter.ReasonCommand, Stderr: "database already exists"}
	}

	m.Databases[name] = []byte{}

	return nil
}

func (m *MemoryAdapter) DropDatabaseIfExists(ctx context.Context, name string) error {
	m.Calls = append(m.Calls, "drop "+name)

	if m.FailDrop != nil {
		return m.FailDrop
	}

	delete(m.Databases, name)

	return nil
}

func (m *MemoryAdapter) Dump(ctx context.Context, output io.Writer) error {
	m.Calls = append(m.Calls, "dump "+m.config.Database)

	if m.FailDump != nil {
		return m.FailDump
	}

	_, err := output.Write(m.Databases[m.config.Database])

	return err
}

func (m *MemoryAdapter) EnsureRunning(ctx context.Context) error {
	m.Calls = append(m.Calls, "start "+m.config.Container)

	if m.FailStart != nil {
		return m.FailStart
	}

	m.Running = true

	return nil
}

func (m *MemoryAdapter) RenameDatabase(ctx context.Context, oldName, newName string) error {
	m.Calls = append(m.Calls, "rename "+oldName+" "+newName)

	if err := m.FailRenameTo[newName]; err != nil {
		return err
	}

	content, exists := m.Databases[oldName]

	if !exists {
		return &adapter.Error{Op: "rename database", Reason: adapter.ReasonCommand, Stderr: "database does not exist"}
	}

	if _, exists := m.Databases[newName]; exists {
		return &adapter.Error{Op: "rename database", Reason: adapter.ReasonCommand, Stderr: "database already exists"}
	}

	m.Databases[newName] = content

	delete(m.Databases, oldName)

	return nil
}

func (m *MemoryAdapter) RestoreInto(ctx context.Context, name string, input io.Reader) error {
	m.Calls = append(m.Calls, "restore "+name)

	if m.FailRestore != nil {
		return m.FailRestore
	}

	content, err := io.ReadAll(input)

	if err != nil {
		return err
	}

	if _, exists := m.Databases[name]; !exists {
		return &adapter.Error{Op: "restore", Reason: adapter.ReasonCommand, Stderr: "database does not exist"}
	}

	m.Databases[name] = content

	return nil
}
