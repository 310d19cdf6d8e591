package consent

import (
	"bytes"
	"context"
	"html/template"

	"github.com/MarcGrol/furniturestore/lib/mylog"
)

type ScriptConfig struct {
	AnalyticsID         string
	TagManagerID        string
	MarketingPixelID    string
	MarketingPublicKey  string
	MonitoringScriptURL string
}

const (
	scriptMonitoring      = "monitoring"
	scriptAnalytics       = "google-analytics"
	scriptTagManager      = "google-tag-manager"
	scriptMarketingPixel  = "meta-pixel"
	scriptMarketingOnsite = "klaviyo-onsite"
)

var scriptTemplates = template.Must(template.New("scripts").Parse(`
{{- define "monitoring"}}<script id="monitoring" src="{{.}}" defer></script>{{end -}}
{{- define "google-analytics"}}<script id="google-analytics" async src="https://www.googletagmanager.com/gtag/js?id={{.}}"></script>
<script id="google-analytics-config">window.dataLayer = window.dataLayer || [];function gtag(){dataLayer.push(arguments);}gtag('js', new Date());gtag('config', {{.}});</script>{{end -}}
{{- define "google-tag-manager"}}<script id="google-tag-manager">(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':new Date().getTime(),event:'gtm.js'});var f=d.getElementsByTagName(s)[0],j=d.createElement(s),dl=l!='dataLayer'?'&l='+l:'';j.async=true;j.src='https://www.googletagmanager.com/gtm.js?id='+i+dl;f.parentNode.insertBefore(j,f);})(window,document,'script','dataLayer',{{.}});</script>{{end -}}
{{- define "meta-pixel"}}<script id="meta-pixel">!function(f,b,e,v,n,t,s){if(f.fbq)return;n=f.fbq=function(){n.callMethod?n.callMethod.apply(n,arguments):n.queue.push(arguments)};if(!f._fbq)f._fbq=n;n.push=n;n.loaded=!0;n.version='2.0';n.queue=[];t=b.createElement(e);t.async=!0;t.src=v;s=b.getElementsByTagName(e)[0];s.parentNode.insertBefore(t,s)}(window,document,'script','https://connect.facebook.net/en_US/fbevents.js');fbq('init', {{.}});fbq('track', 'PageView');</script>{{end -}}
{{- define "klaviyo-onsite"}}<script id="klaviyo-onsite" async src="https://static.klaviyo.com/onsite/js/klaviyo.js?company_id={{.}}"></script>{{end -}}
`))

// ScriptInjector decides which third party scripts a page may load.
type ScriptInjector struct {
	config    ScriptConfig
	templates *template.Template
	logger    mylog.Logger
}

func NewScriptInjector(config ScriptConfig) *ScriptInjector {
	return &ScriptInjector{
		config:    config,
		templates: scriptTemplates,
		logger:    mylog.New("consent"),
	}
}

type scriptTag struct {
	id    string
	value string
}

func (si *ScriptInjector) allowedScripts(state State) []scriptTag {
	tags := []scriptTag{}
	if si.config.MonitoringScriptURL != "" {
		tags = append(tags, scriptTag{id: scriptMonitoring, value: si.config.MonitoringScriptURL})
	}
	if state.AllowsStatistics() {
		if si.config.AnalyticsID != "" {
			tags = append(tags, scriptTag{id: scriptAnalytics, value: si.config.AnalyticsID})
		}
		if si.config.TagManagerID != "" {
			tags = append(tags, scriptTag{id: scriptTagManager, value: si.config.TagManagerID})
		}
	}
	if state.AllowsMarketing() {
		if si.config.MarketingPixelID != "" {
			tags = append(tags, scriptTag{id: scriptMarketingPixel, value: si.config.MarketingPixelID})
		}
		if si.config.MarketingPublicKey != "" {
			tags = append(tags, scriptTag{id: scriptMarketingOnsite, value: si.config.MarketingPublicKey})
		}
	}
	return tags
}

// ScriptIDs lists the ids of the scripts Render would emit.
func (si *ScriptInjector) ScriptIDs(state State) []string {
	ids := []string{}
	for _, tag := range si.allowedScripts(state) {
		ids = append(ids, tag.id)
	}
	return ids
}

// Render returns the script tags allowed by the consent. A script is emitted at most once.
func (si *ScriptInjector) Render(c context.Context, state State) template.HTML {
	buf := bytes.Buffer{}
	seen := map[string]bool{}
	for _, tag := range si.allowedScripts(state) {
		if seen[tag.id] {
			continue
		}
		seen[tag.id] = true

		script := bytes.Buffer{}
		err := si.templates.ExecuteTemplate(&script, tag.id, tag.value)
		if err != nil {
			si.logger.Log(c, tag.id, mylog.SeverityWarn, "Error rendering script %s, skipping it: %s", tag.id, err)
			continue
		}
		buf.Write(script.Bytes())
		buf.WriteString("\n")
	}
	return template.HTML(buf.String())
}
