package config

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/bitmark-inc/covid-monitor/external/ftp"
	"github.com/bitmark-inc/covid-monitor/schema"
)

const (
	logPrefix  = "config"
	envPrefix  = "covidmonitor"
	configName = "config"
)

var (
	ErrInvalidConfig = fmt.Errorf("invalid config")
)

type Data struct {
	Dir     string
	Remote  string
	Refresh bool
}

type FTP struct {
	Upload      bool
	Host        string
	Port        int
	Username    string
	Password    string
	Dir         string
	Timeout     time.Duration
	Credentials string
}

type Output struct {
	HTML     string
	Snapshot string
	Workbook string
}

type Dashboard struct {
	Start    time.Time
	Days     int
	Language language.Tag
}

type Sentry struct {
	DSN         string
	Environment string
}

// Config - settings of a single run, read once at start up
type Config struct {
	Data       Data
	FTP        FTP
	Output     Output
	Dashboard  Dashboard
	I18NDir    string
	LogLevel   string
	Sentry     Sentry
	RunTimeout time.Duration
}

var defaults = map[string]interface{}{
	"data.dir":           ".",
	"data.remote":        "origin",
	"data.refresh":       true,
	"ftp.upload":         true,
	"ftp.host":           "ftp.plus.net",
	"ftp.port":           ftp.DefaultPort,
	"ftp.username":       "",
	"ftp.password":       "",
	"ftp.dir":            ftp.DefaultDir,
	"ftp.timeout":        "30s",
	"ftp.credentials":    "",
	"output.html":        "covid-19_monitoring.html",
	"output.snapshot":    "",
	"output.workbook":    "",
	"dashboard.start":    "2020-03-08",
	"dashboard.days":     45,
	"dashboard.language": "en",
	"i18n.dir":           "",
	"log.level":          "info",
	"sentry.dsn":         "",
	"sentry.environment": "",
	"run.timeout":        "10m",
}

// Load reads config.yaml from file, or from /.config/ and the working
// directory when file is empty. Environment variables prefixed with
// COVIDMONITOR_ override the file, the credentials file overrides both.
func Load(file string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Config from file
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath("/.config/")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Info("no config file, read config from env")
		v.AllowEmptyEnv(false)
	}

	// Config from env if possible
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	start, err := time.Parse(schema.DateLayout, v.GetString("dashboard.start"))
	if nil != err {
		return nil, fmt.Errorf("%w: dashboard.start: %s", ErrInvalidConfig, err)
	}

	tag, err := language.Parse(v.GetString("dashboard.language"))
	if nil != err {
		return nil, fmt.Errorf("%w: dashboard.language: %s", ErrInvalidConfig, err)
	}

	c := &Config{
		Data: Data{
			Dir:     v.GetString("data.dir"),
			Remote:  v.GetString("data.remote"),
			Refresh: v.GetBool("data.refresh"),
		},
		FTP: FTP{
			Upload:      v.GetBool("ftp.upload"),
			Host:        v.GetString("ftp.host"),
			Port:        v.GetInt("ftp.port"),
			Username:    v.GetString("ftp.username"),
			Password:    v.GetString("ftp.password"),
			Dir:         v.GetString("ftp.dir"),
			Timeout:     v.GetDuration("ftp.timeout"),
			Credentials: v.GetString("ftp.credentials"),
		},
		Output: Output{
			HTML:     v.GetString("output.html"),
			Snapshot: v.GetString("output.snapshot"),
			Workbook: v.GetString("output.workbook"),
		},
		Dashboard: Dashboard{
			Start:    start,
			Days:     v.GetInt("dashboard.days"),
			Language: tag,
		},
		I18NDir:  v.GetString("i18n.dir"),
		LogLevel: v.GetString("log.level"),
		Sentry: Sentry{
			DSN:         v.GetString("sentry.dsn"),
			Environment: v.GetString("sentry.environment"),
		},
		RunTimeout: v.GetDuration("run.timeout"),
	}

	if c.FTP.Credentials != "" {
		if err := c.applyCredentials(c.FTP.Credentials); nil != err {
			return nil, err
		}
	}

	if err := c.validate(); nil != err {
		return nil, err
	}

	return c, nil
}

func (c *Config) validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("%w: empty data.dir", ErrInvalidConfig)
	}

	if c.Output.HTML == "" {
		return fmt.Errorf("%w: empty output.html", ErrInvalidConfig)
	}

	if c.Dashboard.Days <= 0 {
		return fmt.Errorf("%w: dashboard.days %d not positive", ErrInvalidConfig, c.Dashboard.Days)
	}

	if c.RunTimeout <= 0 {
		return fmt.Errorf("%w: run.timeout %s not positive", ErrInvalidConfig, c.RunTimeout)
	}

	if c.FTP.Upload {
		if c.FTP.Host == "" {
			return fmt.Errorf("%w: empty ftp.host", ErrInvalidConfig)
		}
		if c.FTP.Port <= 0 || c.FTP.Port > 65535 {
			return fmt.Errorf("%w: ftp.port %d out of range", ErrInvalidConfig, c.FTP.Port)
		}
	}

	return nil
}
