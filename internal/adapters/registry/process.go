package registry

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Command describes how to start the registry child process.
type Command struct {
	Path string
	Args []string
	// Env replaces the child's environment when non-nil.
	Env []string
}

// ProcessQuery forwards membership requests to a child process speaking the
// Serve line protocol. Candidate files are only ever read by the child.
type ProcessQuery struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Scanner
	pipes  *errgroup.Group
	closed bool
}

var _ ports.RegistryQuery = (*ProcessQuery)(nil)

// StartProcess launches the child described by command.
// Everything the child writes to stderr is logged at debug level.
func StartProcess(ctx context.Context, command Command, logger ports.Logger) (*ProcessQuery, error) {
	cmd := exec.CommandContext(ctx, command.Path, command.Args...) //nolint:gosec // path is our own executable
	if command.Env != nil {
		cmd.Env = command.Env
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, startError(err, command)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, startError(err, command)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, startError(err, command)
	}
	if err := cmd.Start(); err != nil {
		return nil, startError(err, command)
	}

	pipes := new(errgroup.Group)
	pipes.Go(func() error {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			logger.Debug("registry: " + scanner.Text())
		}
		return nil
	})

	return &ProcessQuery{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewScanner(stdout),
		pipes:  pipes,
	}, nil
}

// IsProvidedByRegistry sends path to the child and waits for its answer.
func (q *ProcessQuery) IsProvidedByRegistry(path string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false, zerr.With(zerr.Wrap(domain.ErrRegistryQueryFailed, "registry process is closed"), "path", path)
	}
	if strings.ContainsAny(path, "\r\n") {
		return false, zerr.With(zerr.Wrap(domain.ErrRegistryQueryFailed, "path cannot be sent to the registry process"), "path", path)
	}

	if _, err := io.WriteString(q.stdin, path+"\n"); err != nil {
		return false, zerr.With(zerr.Wrap(errors.Join(domain.ErrRegistryQueryFailed, err), "failed to send registry request"), "path", path)
	}
	if !q.stdout.Scan() {
		cause := q.stdout.Err()
		if cause == nil {
			cause = io.ErrUnexpectedEOF
		}
		return false, zerr.With(zerr.Wrap(errors.Join(domain.ErrRegistryQueryFailed, cause), "registry process stopped answering"), "path", path)
	}

	switch reply := q.stdout.Text(); {
	case reply == replyMember:
		return true, nil
	case reply == replyNotMember:
		return false, nil
	case strings.HasPrefix(reply, replyError):
		err := zerr.Wrap(domain.ErrRegistryQueryFailed, strings.TrimPrefix(reply, replyError))
		return false, zerr.With(err, "path", path)
	default:
		err := zerr.With(zerr.Wrap(domain.ErrRegistryQueryFailed, "unexpected registry reply"), "reply", reply)
		return false, zerr.With(err, "path", path)
	}
}

// Close ends the child's input and waits for it to exit.
// Calls after the first return nil.
func (q *ProcessQuery) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	closeErr := q.stdin.Close()

	q.pipes.Go(func() error {
		for q.stdout.Scan() { //nolint:revive // discard unread replies
		}
		return nil
	})
	drainErr := q.pipes.Wait()

	if err := q.cmd.Wait(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "registry process failed"), "exit_code", exitCode)
	}
	if closeErr != nil {
		return zerr.Wrap(closeErr, "failed to close registry process input")
	}
	return drainErr
}

func startError(err error, command Command) error {
	wrapped := zerr.Wrap(errors.Join(domain.ErrRegistryUnavailable, err), "failed to start registry process")
	return zerr.With(wrapped, "command", command.Path)
}
