package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, dashboard()))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<html lang="en">`)
	assert.Contains(t, html, "<title>COVID-19 monitoring</title>")
	assert.Contains(t, html, "cdn.jsdelivr.net/npm/vega-embed@6")
	assert.Contains(t, html, `id="panel-0-0"`)
	assert.Contains(t, html, `id="panel-0-1"`)
	assert.Contains(t, html, `id="panel-1-0"`)
	assert.Equal(t, 3, strings.Count(html, "vegaEmbed("))
	assert.Contains(t, html, "2020-03-11 06:30 UTC")
	assert.Contains(t, html, "Data: JHU CSSE")
}

func TestWriteHTMLEscapesTitle(t *testing.T) {
	d := dashboard()
	d.Title = "<b>deaths</b>"

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, d))
	assert.NotContains(t, buf.String(), "<b>deaths</b>")
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteHTML(&buf, Dashboard{Title: "empty"}), ErrEmptyDashboard)
	assert.Equal(t, 0, buf.Len())
}
