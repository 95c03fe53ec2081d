package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dbsnap/dbsnap/pkg/config"
)

// The database used for administrative statements that cannot run while
// connected to the database they operate on.
const MaintenanceDatabase = "postgres"

const readinessInterval = time.Second

type commandFunc func(ctx context.Context, stdin io.Reader, stdout io.Writer, name string, args ...string) error

// Postgres runs administrative commands against a PostgreSQL instance inside
// a Docker container, shelling out to the engine's own tooling through
// docker exec.
type Postgres struct {
	config            *config.Config
	readinessAttempts int
	run               commandFunc
}

func NewPostgres(c *config.Config) *Postgres {
	return &Postgres{
		config:            c,
		readinessAttempts: 30,
		run:               runCommand,
	}
}

func (p *Postgres) CreateDatabase(ctx context.Context, name string) error {
	return p.psql(ctx, "create database", MaintenanceDatabase, nil, "-c", fmt.Sprintf("CREATE DATABASE %s", quoteIdentifier(name)))
}

func (p *Postgres) DropDatabaseIfExists(ctx context.Context, name string) error {
	return p.psql(ctx, "drop database", MaintenanceDatabase, nil, "-c", fmt.Sprintf("DROP DATABASE IF EXISTS %s", quoteIdentifier(name)))
}

func (p *Postgres) Dump(ctx context.Context, output io.Writer) error {
	ctx, cancel := p.commandContext(ctx)
	defer cancel()

	args := p.execArgs()
	args = append(args,
		"pg_dump",
		"--no-owner",
		"--no-acl",
		"-h", p.config.Host,
		"-p", p.config.Port,
		"-U", p.config.User,
		p.config.Database,
	)

	err := p.run(ctx, nil, output, "docker", args...)

	if err != nil {
		return p.classify(ctx, "dump", err)
	}

	return nil
}

func (p *Postgres) EnsureRunning(ctx context.Context) error {
	ctx, cancel := p.commandContext(ctx)
	defer cancel()

	// Starting a container that is already running is a no-op.
	err := p.run(ctx, nil, io.Discard, "docker", "start", p.config.Container)

	if err != nil {
		return p.classify(ctx, "container start", err)
	}

	args := p.execArgs()
	args = append(args,
		"pg_isready",
		"-h", p.config.Host,
		"-p", p.config.Port,
		"-U", p.config.User,
	)

	for attempt := 1; ; attempt++ {
		err = p.run(ctx, nil, io.Discard, "docker", args...)

		if err == nil {
			return nil
		}

		if attempt >= p.readinessAttempts {
			return p.classify(ctx, "readiness check", err)
		}

		slog.Debug("Waiting for database to accept connections", "container", p.config.Container, "attempt", attempt)

		select {
		case <-ctx.Done():
			return p.classify(ctx, "readiness check", ctx.Err())
		case <-time.After(readinessInterval):
		}
	}
}

func (p *Postgres) RenameDatabase(ctx context.Context, oldName, newName string) error {
	return p.psql(ctx, "rename database", MaintenanceDatabase, nil,
		"-c", fmt.Sprintf("ALTER DATABASE %s RENAME TO %s", quoteIdentifier(oldName), quoteIdentifier(newName)),
	)
}

func (p *Postgres) RestoreInto(ctx context.Context, name string, input io.Reader) error {
	return p.psql(ctx, "restore", name, input, "-f", "-")
}

func (p *Postgres) classify(ctx context.Context, op string, err error) error {
	adapterError := &Error{Op: op, Err: err}

	var exitError *exec.ExitError

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		adapterError.Reason = ReasonTimeout
	case errors.As(err, &exitError):
		adapterError.Reason = ReasonCommand
		adapterError.Stderr = strings.TrimSpace(string(exitError.Stderr))
	default:
		adapterError.Reason = ReasonConnection
	}

	return adapterError
}

func (p *Postgres) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.config.CommandTimeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, p.config.CommandTimeout)
}

func (p *Postgres) execArgs() []string {
	args := []string{"exec", "-i"}

	if p.config.Password != "" {
		args = append(args, "-e", fmt.Sprintf("PGPASSWORD=%s", p.config.Password))
	}

	return append(args, p.config.Container)
}

func (p *Postgres) psql(ctx context.Context, op, database string, stdin io.Reader, extraArgs ...string) error {
	ctx, cancel := p.commandContext(ctx)
	defer cancel()

	args := p.execArgs()
	args = append(args,
		"psql",
		"-v", "ON_ERROR_STOP=1",
		"-h", p.config.Host,
		"-p", p.config.Port,
		"-U", p.config.User,
		"-d", database,
		"-q",
	)
	args = append(args, extraArgs...)

	err := p.run(ctx, stdin, io.Discard, "docker", args...)

	if err != nil {
		return p.classify(ctx, op, err)
	}

	return nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func runCommand(ctx context.Context, stdin io.Reader, stdout io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout

	stderr := bytes.NewBuffer(nil)
	cmd.Stderr = stderr

	err := cmd.Run()

	if err != nil {
		var exitError *exec.ExitError

		// Attach the captured stderr the same way exec.Cmd.Output does.
		if errors.As(err, &exitError) {
			exitError.Stderr = stderr.Bytes()
		}

		return err
	}

	return nil
}
