package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/covid-monitor/config"
	"github.com/bitmark-inc/covid-monitor/consts"
	"github.com/bitmark-inc/covid-monitor/external/csse"
	"github.com/bitmark-inc/covid-monitor/external/ftp"
	"github.com/bitmark-inc/covid-monitor/external/gitrepo"
	"github.com/bitmark-inc/covid-monitor/metrics"
	"github.com/bitmark-inc/covid-monitor/monitor"
	"github.com/bitmark-inc/covid-monitor/schema"
	"github.com/bitmark-inc/covid-monitor/utils"
)

const (
	logPrefix     = "init"
	sentryFlush   = 5 * time.Second
	deathsMinimum = 5
	casesMinimum  = 50
)

// countries drawn on every chart, in color order
var countries = []string{
	"China",
	"United Kingdom",
	"Italy",
	"Spain",
	"US",
	"Iran",
	"Korea, South",
	"Australia",
	"Thailand",
	"Russia",
	"France",
	"India",
	"Belgium",
	consts.RestOfWorld,
}

var monitored = []schema.Metric{
	{Kind: schema.Deaths, Threshold: deathsMinimum},
	{Kind: schema.Cases, Threshold: casesMinimum},
}

func initLog(level string) {
	logLevel, err := log.ParseLevel(level)
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load("")
	if nil != err {
		fmt.Println("load config with error:", err)
		return monitor.ExitOther
	}

	initLog(cfg.LogLevel)

	runID := uuid.New().String()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		AttachStacktrace: true,
		Environment:      cfg.Sentry.Environment,
	}); err != nil {
		log.Error(err)
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("run", runID)
	})
	defer sentry.Flush(sentryFlush)
	log.WithField("prefix", logPrefix).Info("Initialized sentry")

	if err := utils.InitI18NBundle(cfg.I18NDir); nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("load i18n messages")
		return monitor.ExitOther
	}

	var refresher gitrepo.Refresher
	if cfg.Data.Refresh {
		refresher = gitrepo.New(cfg.Data.Dir, cfg.Data.Remote, nil)
	} else {
		refresher = gitrepo.NewDisabled()
	}

	publisher := ftp.New(ftp.Config{
		Host:     cfg.FTP.Host,
		Port:     cfg.FTP.Port,
		Username: cfg.FTP.Username,
		Password: cfg.FTP.Password,
		Dir:      cfg.FTP.Dir,
		Timeout:  cfg.FTP.Timeout,
	}, nil)

	m := monitor.New(
		monitor.Options{
			Countries: countries,
			Metrics:   monitored,
			Start:     cfg.Dashboard.Start,
			Days:      cfg.Dashboard.Days,
			Language:  cfg.Dashboard.Language,
			Output: monitor.Output{
				HTML:     cfg.Output.HTML,
				Snapshot: cfg.Output.Snapshot,
				Workbook: cfg.Output.Workbook,
			},
			Upload: cfg.FTP.Upload,
		},
		refresher,
		csse.NewTimeSeries(cfg.Data.Dir),
		publisher,
		metrics.New(runID),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RunTimeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"run":    runID,
		"data":   cfg.Data.Dir,
	}).Info("start run")

	err = m.Run(ctx)
	code := monitor.ExitCode(err)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"run":    runID,
			"code":   code,
			"error":  err,
		}).Error("run failed")
		sentry.CaptureException(err)
		return code
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"run":    runID,
	}).Info("run finished")

	return code
}
