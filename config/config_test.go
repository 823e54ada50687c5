package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/covid-monitor/config"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const configYAML = `
data:
  dir: /data/COVID-19
  refresh: false
ftp:
  host: ftp.example.com
  username: andy
  password: from-file
  timeout: 5s
output:
  html: out/covid.html
  snapshot: out/covid.png
dashboard:
  start: "2020-03-01"
  language: zh-TW
log:
  level: warn
`

func TestLoad(t *testing.T) {
	c, err := config.Load(writeFile(t, "config.yaml", configYAML))
	require.NoError(t, err)

	assert.Equal(t, "/data/COVID-19", c.Data.Dir)
	assert.False(t, c.Data.Refresh)
	assert.Equal(t, "origin", c.Data.Remote)

	assert.True(t, c.FTP.Upload)
	assert.Equal(t, "ftp.example.com", c.FTP.Host)
	assert.Equal(t, 21, c.FTP.Port)
	assert.Equal(t, "andy", c.FTP.Username)
	assert.Equal(t, "from-file", c.FTP.Password)
	assert.Equal(t, "htdocs", c.FTP.Dir)
	assert.Equal(t, 5*time.Second, c.FTP.Timeout)

	assert.Equal(t, "out/covid.html", c.Output.HTML)
	assert.Equal(t, "out/covid.png", c.Output.Snapshot)
	assert.Equal(t, "", c.Output.Workbook)

	assert.Equal(t, time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC), c.Dashboard.Start)
	assert.Equal(t, 45, c.Dashboard.Days)
	assert.Equal(t, "zh-TW", c.Dashboard.Language.String())

	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, 10*time.Minute, c.RunTimeout)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("COVIDMONITOR_FTP_PASSWORD", "from-env")
	t.Setenv("COVIDMONITOR_DASHBOARD_DAYS", "60")

	c, err := config.Load(writeFile(t, "config.yaml", configYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.FTP.Password)
	assert.Equal(t, 60, c.Dashboard.Days)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ".", c.Data.Dir)
	assert.True(t, c.Data.Refresh)
	assert.Equal(t, "ftp.plus.net", c.FTP.Host)
	assert.Equal(t, "covid-19_monitoring.html", c.Output.HTML)
	assert.Equal(t, time.Date(2020, time.March, 8, 0, 0, 0, 0, time.UTC), c.Dashboard.Start)
	assert.Equal(t, "en", c.Dashboard.Language.String())
}

func TestLoadCredentials(t *testing.T) {
	credentials := writeFile(t, "web_settings", "ftp.plus.net\nandy\ns3cret \n/Users/andy/COVID-19\n")
	t.Setenv("COVIDMONITOR_FTP_CREDENTIALS", credentials)

	c, err := config.Load(writeFile(t, "config.yaml", configYAML))
	require.NoError(t, err)
	assert.Equal(t, "ftp.plus.net", c.FTP.Host)
	assert.Equal(t, "andy", c.FTP.Username)
	assert.Equal(t, "s3cret ", c.FTP.Password, "password kept verbatim")
	assert.Equal(t, "/Users/andy/COVID-19", c.Data.Dir)
}

func TestLoadCredentialsWithoutDataDir(t *testing.T) {
	credentials := writeFile(t, "web_settings", "ftp.plus.net\r\nandy\r\nsecret\r\n")
	t.Setenv("COVIDMONITOR_FTP_CREDENTIALS", credentials)

	c, err := config.Load(writeFile(t, "config.yaml", configYAML))
	require.NoError(t, err)
	assert.Equal(t, "secret", c.FTP.Password)
	assert.Equal(t, "/data/COVID-19", c.Data.Dir)
}

func TestLoadCredentialsMalformed(t *testing.T) {
	cases := map[string]string{
		"short":      "ftp.plus.net\nandy\n",
		"empty host": "\nandy\nsecret\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("COVIDMONITOR_FTP_CREDENTIALS", writeFile(t, "web_settings", content))
			_, err := config.Load(writeFile(t, "config.yaml", configYAML))
			assert.ErrorIs(t, err, config.ErrCredentials)
		})
	}

	t.Setenv("COVIDMONITOR_FTP_CREDENTIALS", filepath.Join(t.TempDir(), "missing"))
	_, err := config.Load(writeFile(t, "config.yaml", configYAML))
	assert.ErrorIs(t, err, config.ErrCredentials)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"start":    "dashboard:\n  start: 8/3/20\n",
		"language": "dashboard:\n  language: \"!!\"\n",
		"days":     "dashboard:\n  days: 0\n",
		"html":     "output:\n  html: \"\"\n",
		"ftp port": "ftp:\n  port: 70000\n",
		"ftp host": "ftp:\n  host: \"\"\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, "config.yaml", content))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoadNoUpload(t *testing.T) {
	c, err := config.Load(writeFile(t, "config.yaml", "ftp:\n  upload: false\n  host: \"\"\n"))
	require.NoError(t, err)
	assert.False(t, c.FTP.Upload)
}
