package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var (
	ErrCredentials = fmt.Errorf("malformed credentials file")
)

// credentials file lines, the data directory is optional
const (
	lineHost = iota
	lineUsername
	linePassword
	lineDataDir
)

// applyCredentials overrides ftp and data settings with a line oriented
// file: ftp host, username, password and an optional data directory.
func (c *Config) applyCredentials(path string) error {
	f, err := os.Open(path)
	if nil != err {
		return fmt.Errorf("%w: %s", ErrCredentials, err)
	}
	defer f.Close()

	lines := make([]string, 0, lineDataDir+1)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(lines) <= lineDataDir {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); nil != err {
		return fmt.Errorf("%w: %s", ErrCredentials, err)
	}

	if len(lines) <= linePassword {
		return fmt.Errorf("%w: %s has %d lines, expect at least 3", ErrCredentials, path, len(lines))
	}

	host := strings.TrimSpace(lines[lineHost])
	if host == "" {
		return fmt.Errorf("%w: %s has an empty host", ErrCredentials, path)
	}

	c.FTP.Host = host
	c.FTP.Username = strings.TrimSpace(lines[lineUsername])
	c.FTP.Password = lines[linePassword]

	if len(lines) > lineDataDir {
		if dir := strings.TrimSpace(lines[lineDataDir]); dir != "" {
			c.Data.Dir = dir
		}
	}

	return nil
}
