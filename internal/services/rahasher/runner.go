package rahasher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"romhash/internal/platform"
)

// Request is the input for one RAHasher invocation.
type Request struct {
	Code platform.Code
	Path string
}

// Args returns the argument vector passed to RAHasher: the platform code
// followed by the file path.
func (r Request) Args() []string {
	return []string{strconv.Itoa(int(r.Code)), r.Path}
}

// ProcessOutcome captures how a RAHasher process finished. A stream that could
// not be captured has a nil slice and its Captured flag unset, which is distinct
// from an empty capture.
type ProcessOutcome struct {
	ExitCode       int
	Stdout         []byte
	Stderr         []byte
	StdoutCaptured bool
	StderrCaptured bool
}

// Runner launches RAHasher and reports its outcome. A non-zero exit status is
// reported through ProcessOutcome; the error is reserved for processes that
// could not be started or waited on, including cancellation.
type Runner interface {
	Run(ctx context.Context, req Request) (ProcessOutcome, error)
}

// defaultWaitDelay bounds how long output pipes may stay open after the
// process exits or is killed.
const defaultWaitDelay = 2 * time.Second

// CommandRunner runs the RAHasher binary directly, without a shell.
type CommandRunner struct {
	Binary    string
	WaitDelay time.Duration
}

// Run executes Binary with the request arguments and captures both streams.
// A stream still open WaitDelay after the process exits, typically because a
// descendant inherited it, is reported as not captured whatever the exit code.
func (r *CommandRunner) Run(ctx context.Context, req Request) (ProcessOutcome, error) {
	binary := strings.TrimSpace(r.Binary)
	if binary == "" {
		return ProcessOutcome{}, errors.New("rahasher binary required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	waitDelay := r.WaitDelay
	if waitDelay <= 0 {
		waitDelay = defaultWaitDelay
	}

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return ProcessOutcome{}, fmt.Errorf("stdout pipe: %w", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdoutR, stdoutW)
		return ProcessOutcome{}, fmt.Errorf("stderr pipe: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, req.Args()...) //nolint:gosec
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW
	cmd.WaitDelay = waitDelay
	configureProcessGroup(cmd)

	startErr := cmd.Start()
	closeAll(stdoutW, stderrW)
	if startErr != nil {
		closeAll(stdoutR, stderrR)
		return ProcessOutcome{}, fmt.Errorf("start %s: %w", binary, startErr)
	}
	stdout := startCapture(stdoutR)
	stderr := startCapture(stderrR)

	waitErr := cmd.Wait()

	expired := make(chan struct{})
	timer := time.AfterFunc(waitDelay, func() { close(expired) })
	outcome := ProcessOutcome{}
	outcome.Stdout, outcome.StdoutCaptured = stdout.finish(expired)
	outcome.Stderr, outcome.StderrCaptured = stderr.finish(expired)
	if !timer.Stop() {
		// A descendant kept a pipe open; it is not allowed to outlive the call.
		killProcessGroup(cmd)
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ProcessOutcome{}, ctxErr
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil:
		outcome.ExitCode = cmd.ProcessState.ExitCode()
	case errors.As(waitErr, &exitErr):
		outcome.ExitCode = exitErr.ExitCode()
	default:
		return ProcessOutcome{}, fmt.Errorf("wait %s: %w", binary, waitErr)
	}
	return outcome, nil
}

// capture drains one output pipe in the background.
type capture struct {
	r    *os.File
	buf  bytes.Buffer
	err  error
	done chan struct{}
}

func startCapture(r *os.File) *capture {
	c := &capture{r: r, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		_, c.err = io.Copy(&c.buf, r)
	}()
	return c
}

// finish waits for EOF or expiry. Output is only trusted when the pipe reached
// EOF without a read error.
func (c *capture) finish(expired <-chan struct{}) ([]byte, bool) {
	select {
	case <-c.done:
	case <-expired:
		_ = c.r.Close()
		<-c.done
		return nil, false
	}
	_ = c.r.Close()
	if c.err != nil {
		return nil, false
	}
	return append([]byte{}, c.buf.Bytes()...), true
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
