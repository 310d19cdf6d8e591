package consent

import (
	"context"
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/furniturestore/lib/mylog"
	"github.com/MarcGrol/furniturestore/lib/mytime"
)

var allScripts = ScriptConfig{
	AnalyticsID:         "G-TEST123",
	TagManagerID:        "GTM-TEST",
	MarketingPixelID:    "123456789",
	MarketingPublicKey:  "PubKey1",
	MonitoringScriptURL: "https://monitoring.example.com/agent.js",
}

func decided(statistics bool, marketing bool) State {
	return State{
		Decided: true,
		Consent: Consent{Necessary: true, Statistics: statistics, Marketing: marketing, Timestamp: mytime.ExampleTime},
	}
}

func TestScriptInjector(t *testing.T) {
	sut := NewScriptInjector(allScripts)

	t.Run("No decision only loads monitoring", func(t *testing.T) {
		html := string(sut.Render(context.TODO(), State{}))

		assert.Contains(t, html, `id="monitoring"`)
		assert.NotContains(t, html, scriptAnalytics)
		assert.NotContains(t, html, scriptTagManager)
		assert.NotContains(t, html, scriptMarketingPixel)
		assert.NotContains(t, html, scriptMarketingOnsite)
	})

	t.Run("Everything refused", func(t *testing.T) {
		html := string(sut.Render(context.TODO(), decided(false, false)))

		assert.NotContains(t, html, "googletagmanager")
		assert.NotContains(t, html, "fbevents")
		assert.NotContains(t, html, "klaviyo")
		assert.Equal(t, []string{scriptMonitoring}, sut.ScriptIDs(decided(false, false)))
	})

	t.Run("Statistics only", func(t *testing.T) {
		html := string(sut.Render(context.TODO(), decided(true, false)))

		assert.Contains(t, html, `id="google-analytics"`)
		assert.Contains(t, html, `id="google-tag-manager"`)
		assert.Contains(t, html, "G-TEST123")
		assert.NotContains(t, html, "klaviyo")
	})

	t.Run("Marketing script is loaded exactly once per page", func(t *testing.T) {
		for page := 0; page < 3; page++ {
			html := string(sut.Render(context.TODO(), decided(false, true)))

			assert.Equal(t, 1, strings.Count(html, `id="klaviyo-onsite"`))
			assert.Equal(t, 1, strings.Count(html, `id="meta-pixel"`))
			assert.NotContains(t, html, "googletagmanager")
		}
	})

	t.Run("Unconfigured scripts are skipped", func(t *testing.T) {
		html := string(NewScriptInjector(ScriptConfig{}).Render(context.TODO(), decided(true, true)))

		assert.Empty(t, strings.TrimSpace(html))
	})

	t.Run("Configured values are escaped", func(t *testing.T) {
		html := string(NewScriptInjector(ScriptConfig{MarketingPublicKey: `"><script>alert(1)</script>`}).Render(context.TODO(), decided(false, true)))

		assert.NotContains(t, html, "<script>alert(1)</script>")
	})
}

func TestScriptInjectorSkipsBrokenScript(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// given
	logger := mylog.NewMockLogger(ctrl)
	sut := NewScriptInjector(allScripts)
	sut.logger = logger
	sut.templates = template.Must(template.New("scripts").Parse(`
{{- define "monitoring"}}<script id="monitoring" src="{{.Missing}}"></script>{{end -}}
{{- define "google-analytics"}}<script id="google-analytics" data-id="{{.}}"></script>{{end -}}
`))
	logger.EXPECT().Log(gomock.Any(), scriptMonitoring, mylog.SeverityWarn, gomock.Any(), gomock.Any()).Times(1)
	logger.EXPECT().Log(gomock.Any(), scriptTagManager, mylog.SeverityWarn, gomock.Any(), gomock.Any()).Times(1)

	// when
	html := string(sut.Render(context.TODO(), decided(true, false)))

	// then
	assert.NotContains(t, html, `id="monitoring"`)
	assert.Equal(t, 1, strings.Count(html, `id="google-analytics"`))
}
