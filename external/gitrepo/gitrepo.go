package gitrepo

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	logPrefix     = "gitrepo"
	defaultRemote = "origin"
)

var (
	ErrRefresh = fmt.Errorf("refresh data repository")
)

// Refresher - brings a local copy of the data-set up to date
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Runner runs a command inside dir and returns its combined output.
type Runner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

type git struct {
	dir    string
	remote string
	run    Runner
}

func (g git) Refresh(ctx context.Context) error {
	info, err := os.Stat(g.dir)
	if nil != err {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRefresh, g.dir)
	}

	steps := [][]string{
		{"fetch", g.remote},
		{"pull", g.remote},
	}
	for _, args := range steps {
		output, err := g.run(ctx, g.dir, "git", args...)
		if nil != err {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"dir":    g.dir,
				"args":   args,
				"output": string(output),
			}).Error("git command")
			return fmt.Errorf("%w: git %s: %w: %s", ErrRefresh, args[0], err, strings.TrimSpace(string(output)))
		}

		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"dir":    g.dir,
			"args":   args,
		}).Debug("git command")
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"dir":    g.dir,
		"remote": g.remote,
	}).Info("data repository refreshed")

	return nil
}

func execRunner(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()

	// a killed process reports its signal, keep the context cause
	if nil != err && nil != ctx.Err() {
		err = fmt.Errorf("%w: %w", ctx.Err(), err)
	}
	return output, err
}

// New - new git refresher of a local checkout, a nil runner executes git
func New(dir, remote string, run Runner) Refresher {
	r := defaultRemote
	if remote != "" {
		r = remote
	}

	if run == nil {
		run = execRunner
	}

	return &git{
		dir:    dir,
		remote: r,
		run:    run,
	}
}

type disabled struct{}

func (disabled) Refresh(context.Context) error {
	log.WithField("prefix", logPrefix).Info("data refresh disabled")
	return nil
}

// NewDisabled - refresher which keeps the local copy as is
func NewDisabled() Refresher {
	return disabled{}
}
