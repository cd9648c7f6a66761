package mdbtools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner executes an external utility, streaming its stdout into w.
type Runner interface {
	Run(ctx context.Context, w io.Writer, name string, args ...string) error
}

// ExecRunner runs utilities as child processes.
type ExecRunner struct {
	Logger logrus.FieldLogger
}

func (r ExecRunner) Run(ctx context.Context, w io.Writer, name string, args ...string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = w
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	if r.Logger != nil {
		r.Logger.WithFields(logrus.Fields{
			"cmd":     name,
			"args":    strings.Join(args, " "),
			"elapsed": time.Since(start),
		}).Debug("ran external utility")
	}

	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s failed: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}
