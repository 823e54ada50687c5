package utils

import (
	"embed"
	"path"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

const (
	localeDir = "locales"
)

//go:embed locales/*.yaml
var locales embed.FS

var bundle *i18n.Bundle

// InitI18NBundle loads the built-in message files, then every yaml file of
// dir when dir is not empty. Files of dir override built-in messages.
func InitI18NBundle(dir string) error {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := locales.ReadDir(localeDir)
	if nil != err {
		return err
	}
	for _, e := range entries {
		data, err := locales.ReadFile(path.Join(localeDir, e.Name()))
		if nil != err {
			return err
		}
		if _, err := b.ParseMessageFileBytes(data, e.Name()); nil != err {
			return err
		}
	}

	if dir != "" {
		files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if nil != err {
			return err
		}
		for _, f := range files {
			if _, err := b.LoadMessageFile(f); nil != err {
				return err
			}
		}
	}

	bundle = b
	return nil
}

func NewLocalizer(lang ...string) *i18n.Localizer {
	if bundle == nil {
		if err := InitI18NBundle(""); nil != err {
			log.WithField("prefix", "i18n").Error(err)
		}
	}
	return i18n.NewLocalizer(bundle, lang...)
}

// Translate returns the localized message, or the message id when the
// message does not exist in any language.
func Translate(loc *i18n.Localizer, id string, data map[string]interface{}) string {
	msg, err := loc.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": "i18n",
			"id":     id,
			"error":  err,
		}).Warn("localize message")
		return id
	}
	return msg
}
