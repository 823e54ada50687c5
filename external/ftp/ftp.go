package ftp

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	goftp "github.com/jlaffaye/ftp"
	log "github.com/sirupsen/logrus"
)

const (
	logPrefix      = "ftp"
	DefaultPort    = 21
	DefaultDir     = "htdocs"
	defaultTimeout = 30 * time.Second
)

var (
	ErrUpload    = fmt.Errorf("upload")
	ErrEmptyHost = fmt.Errorf("empty ftp host")
)

// Publisher - transfers local files to a remote directory
type Publisher interface {
	Publish(ctx context.Context, paths ...string) error
}

// Conn - the part of an ftp session used to store files
type Conn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	Stor(path string, r io.Reader) error
	Quit() error
}

// Dialer opens a session to addr.
type Dialer func(ctx context.Context, addr string, timeout time.Duration) (Conn, error)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Dir      string
	Timeout  time.Duration
}

type publisher struct {
	config Config
	dial   Dialer
}

func (p publisher) Publish(ctx context.Context, paths ...string) error {
	if p.config.Host == "" {
		return fmt.Errorf("%w: %w", ErrUpload, ErrEmptyHost)
	}

	addr := net.JoinHostPort(p.config.Host, strconv.Itoa(p.config.Port))
	conn, err := p.dial(ctx, addr, p.config.Timeout)
	if nil != err {
		return fmt.Errorf("%w: dial %s: %w", ErrUpload, addr, err)
	}
	defer func() {
		if err := conn.Quit(); nil != err {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"error":  err,
			}).Warn("quit ftp session")
		}
	}()

	if err := conn.Login(p.config.Username, p.config.Password); nil != err {
		return fmt.Errorf("%w: login %s: %w", ErrUpload, p.config.Username, err)
	}

	if p.config.Dir != "" {
		if err := conn.ChangeDir(p.config.Dir); nil != err {
			return fmt.Errorf("%w: change dir %s: %w", ErrUpload, p.config.Dir, err)
		}
	}

	for _, path := range paths {
		if err := ctx.Err(); nil != err {
			return fmt.Errorf("%w: %w", ErrUpload, err)
		}

		if err := store(conn, path); nil != err {
			return fmt.Errorf("%w: %s: %w", ErrUpload, path, err)
		}

		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"host":   p.config.Host,
			"dir":    p.config.Dir,
			"file":   filepath.Base(path),
		}).Info("uploaded")
	}

	return nil
}

func store(conn Conn, path string) error {
	f, err := os.Open(path)
	if nil != err {
		return err
	}
	defer f.Close()

	return conn.Stor(filepath.Base(path), f)
}

func dial(ctx context.Context, addr string, timeout time.Duration) (Conn, error) {
	c, err := goftp.Dial(
		addr,
		goftp.DialWithTimeout(timeout),
		goftp.DialWithContext(ctx),
	)
	if nil != err {
		return nil, err
	}
	return c, nil
}

// New - new ftp publisher, a nil dialer connects over the network
func New(config Config, d Dialer) Publisher {
	if config.Port == 0 {
		config.Port = DefaultPort
	}

	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	if d == nil {
		d = dial
	}

	return &publisher{
		config: config,
		dial:   d,
	}
}
