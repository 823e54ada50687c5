package monitor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/bitmark-inc/covid-monitor/external/csse"
	"github.com/bitmark-inc/covid-monitor/external/ftp"
	"github.com/bitmark-inc/covid-monitor/external/gitrepo"
	"github.com/bitmark-inc/covid-monitor/metrics"
	"github.com/bitmark-inc/covid-monitor/render"
	"github.com/bitmark-inc/covid-monitor/schema"
	"github.com/bitmark-inc/covid-monitor/series"
	"github.com/bitmark-inc/covid-monitor/utils"
)

const (
	logPrefix = "monitor"
)

// Output - local paths of the artifacts, empty snapshot or workbook paths
// are skipped
type Output struct {
	HTML     string
	Snapshot string
	Workbook string
}

// Options - what a run loads, draws and publishes
type Options struct {
	Countries []string
	Metrics   []schema.Metric
	Start     time.Time
	Days      int
	Language  language.Tag
	Output    Output
	Upload    bool
}

// Monitor - one pass of refresh, load, reshape, draw and publish
type Monitor struct {
	options   Options
	refresher gitrepo.Refresher
	loader    csse.Loader
	publisher ftp.Publisher
	recorder  *metrics.Recorder
	localizer *i18n.Localizer
	now       func() time.Time
}

// New - new monitor, collaborators are created by the caller from config
func New(
	options Options,
	refresher gitrepo.Refresher,
	loader csse.Loader,
	publisher ftp.Publisher,
	recorder *metrics.Recorder,
) *Monitor {
	return &Monitor{
		options:   options,
		refresher: refresher,
		loader:    loader,
		publisher: publisher,
		recorder:  recorder,
		localizer: utils.NewLocalizer(options.Language.String()),
		now:       time.Now,
	}
}

// Run executes the pipeline once. The returned error matches one of
// ErrRefresh, ErrInput, ErrRender or ErrUpload with errors.Is.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.recorder.Log()

	if err := m.refresh(ctx); nil != err {
		return err
	}

	frames := make(map[schema.MetricKind]*schema.Frame, len(m.options.Metrics))
	tables := make(map[schema.MetricKind]*schema.Table, len(m.options.Metrics))
	for _, metric := range m.options.Metrics {
		frame, err := m.load(ctx, metric)
		if nil != err {
			return err
		}
		frames[metric.Kind] = frame
		tables[metric.Kind] = series.Pivot(frame)
	}

	files, err := m.render(frames, tables)
	if nil != err {
		return err
	}

	return m.publish(ctx, files)
}

func (m *Monitor) refresh(ctx context.Context) error {
	sw := m.recorder.Stage("refresh")
	defer sw.Stop()

	if err := m.refresher.Refresh(ctx); nil != err {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

func (m *Monitor) load(ctx context.Context, metric schema.Metric) (*schema.Frame, error) {
	sw := m.recorder.Stage("load")
	defer sw.Stop()

	observations, err := m.loader.Load(ctx, metric)
	if nil != err {
		return nil, fmt.Errorf("%w: %s: %w", ErrInput, metric.Kind, err)
	}
	m.recorder.Count("observations", len(observations))

	frame, err := series.Reshape(observations, metric, m.options.Countries)
	if nil != err {
		return nil, fmt.Errorf("%w: %s: %w", ErrInput, metric.Kind, err)
	}
	if len(frame.Countries) == 0 {
		return nil, fmt.Errorf("%w: %s: none of the requested countries in data", ErrInput, metric.Kind)
	}
	m.recorder.Count("countries", len(frame.Countries))

	m.summary(frame)

	return frame, nil
}

// summary logs the latest value of every country
func (m *Monitor) summary(frame *schema.Frame) {
	fields := log.Fields{
		"prefix": logPrefix,
		"metric": frame.Metric.Kind,
	}
	for _, c := range frame.Countries {
		records := frame.CountryRecords(c)
		if len(records) == 0 {
			continue
		}
		latest := records[len(records)-1]
		fields[c] = utils.FormatCount(m.options.Language, latest.Value)
	}
	log.WithFields(fields).Info("latest values")
}

func (m *Monitor) render(frames map[schema.MetricKind]*schema.Frame, tables map[schema.MetricKind]*schema.Table) ([]string, error) {
	sw := m.recorder.Stage("render")
	defer sw.Stop()

	d, err := m.dashboard(frames, tables)
	if nil != err {
		return nil, fmt.Errorf("%w: %w", ErrRender, err)
	}
	m.recorder.Count("panels", d.Panels())

	files := make([]string, 0, 3)

	if err := writeHTML(m.options.Output.HTML, d); nil != err {
		return nil, fmt.Errorf("%w: html: %w", ErrRender, err)
	}
	files = append(files, m.options.Output.HTML)

	if path := m.options.Output.Snapshot; path != "" {
		if err := mkdir(path); nil != err {
			return nil, fmt.Errorf("%w: snapshot: %w", ErrRender, err)
		}
		if err := render.WriteSnapshot(path, d); nil != err {
			return nil, fmt.Errorf("%w: snapshot: %w", ErrRender, err)
		}
		files = append(files, path)
	}

	if path := m.options.Output.Workbook; path != "" {
		sheets := make([]*schema.Table, 0, len(tables))
		for _, metric := range m.options.Metrics {
			sheets = append(sheets, tables[metric.Kind])
		}
		if err := mkdir(path); nil != err {
			return nil, fmt.Errorf("%w: workbook: %w", ErrRender, err)
		}
		if err := render.WriteWorkbook(path, sheets); nil != err {
			return nil, fmt.Errorf("%w: workbook: %w", ErrRender, err)
		}
		files = append(files, path)
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"files":  files,
	}).Info("dashboard written")

	return files, nil
}

func (m *Monitor) publish(ctx context.Context, files []string) error {
	if !m.options.Upload {
		log.WithField("prefix", logPrefix).Info("upload disabled")
		return nil
	}

	sw := m.recorder.Stage("upload")
	defer sw.Stop()

	if err := m.publisher.Publish(ctx, files...); nil != err {
		return fmt.Errorf("%w: %w", ErrUpload, err)
	}
	m.recorder.Count("uploads", len(files))

	return nil
}

func writeHTML(path string, d render.Dashboard) error {
	if err := mkdir(path); nil != err {
		return err
	}

	f, err := os.Create(path)
	if nil != err {
		return err
	}

	if err := render.WriteHTML(f, d); nil != err {
		f.Close()
		return err
	}

	return f.Close()
}

func mkdir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
