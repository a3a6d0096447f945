package rahasher

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"romhash/internal/config"
	"romhash/internal/logging"
	"romhash/internal/platform"
	"romhash/internal/services"
)

// Hasher computes RetroAchievements hashes. It is satisfied by *Client and
// lets batch code substitute fakes.
type Hasher interface {
	CalculateHash(ctx context.Context, slug, path string) (string, error)
}

// Option configures the client.
type Option func(*Client)

// WithRunner injects a custom process runner (primarily for tests).
func WithRunner(runner Runner) Option {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// WithTimeout bounds each invocation. A zero or negative value disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client wraps RAHasher CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	runner  Runner
	logger  *slog.Logger
}

// New constructs a RAHasher client for the given executable name or path.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("rahasher binary required")
	}
	client := &Client{
		binary: binary,
		runner: &CommandRunner{Binary: binary},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "rahasher")
	return client, nil
}

// NewFromConfig constructs a client using the configured binary and timeout.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("rahasher requires config")
	}
	base := []Option{WithTimeout(time.Duration(cfg.RAHasher.TimeoutSeconds) * time.Second)}
	return New(cfg.RAHasherBinary(), append(base, opts...)...)
}

// Binary returns the configured RAHasher executable.
func (c *Client) Binary() string {
	return c.binary
}

// CalculateHash returns the RetroAchievements hash of the file at path for the
// platform identified by slug. Unsupported platforms fail before any process
// is launched.
func (c *Client) CalculateHash(ctx context.Context, slug, path string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithContext(ctx, c.logger)

	code, err := platform.Resolve(slug)
	if err != nil {
		hashErr := &Error{Kind: KindUnsupportedPlatform, Slug: slug, Path: path, ExitCode: -1, Err: err}
		logFailure(logger, hashErr)
		return "", hashErr
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := Request{Code: code, Path: path}
	logger.Debug("running rahasher",
		logging.String("binary", c.binary),
		logging.Any("args", req.Args()),
		logging.Int("platform_code", int(code)),
	)

	start := time.Now()
	outcome, err := c.runner.Run(runCtx, req)
	if err != nil {
		hashErr := &Error{Kind: KindToolExecution, Slug: slug, Code: code, Path: path, ExitCode: -1, Err: err}
		logFailure(logger, hashErr)
		return "", hashErr
	}

	hash, err := Validate(outcome, code, path)
	if err != nil {
		var hashErr *Error
		if errors.As(err, &hashErr) {
			hashErr.Slug = slug
		}
		logFailure(logger, err)
		return "", err
	}

	logger.Debug("rahasher hash computed",
		logging.String(logging.FieldEventType, "hash_computed"),
		logging.String(logging.FieldHash, hash),
		logging.Duration("hash_duration", time.Since(start)),
	)
	return hash, nil
}

func logFailure(logger *slog.Logger, err error) {
	attrs := []logging.Attr{logging.Error(err)}
	var hashErr *Error
	if errors.As(err, &hashErr) {
		attrs = append(attrs,
			logging.String(logging.FieldErrorKind, hashErr.ErrorKind()),
			logging.Int(logging.FieldExitCode, hashErr.ExitCode),
		)
		if hashErr.Stderr != nil {
			attrs = append(attrs, logging.String(logging.FieldStderr, *hashErr.Stderr))
		}
	}
	if errors.Is(err, services.ErrConfiguration) {
		attrs = append(attrs, logging.String(logging.FieldErrorHint, "run `romhash platforms` to list supported slugs"))
	}
	logger.Debug("rahasher hash failed", logging.Args(attrs...)...)
}
