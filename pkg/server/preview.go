package server

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>spritetower</title></head>
<body>
<h1>Configurations</h1>
<ul>
{{- range .}}
  <li><a href="/{{.}}/">{{.}}</a></li>
{{- end}}
</ul>
</body>
</html>
`))

var previewTemplate = template.Must(template.New("preview").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}} - spritetower</title>
<link rel="stylesheet" href="/{{.Name}}/sprite.css">
<style>
body { font-family: sans-serif; }
figure { display: inline-block; margin: 8px; text-align: center; }
figcaption { font-size: 12px; color: #666; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p>{{.Icons}} icons, {{.Width}}&times;{{.Height}}, <a href="{{.URL}}">{{.Asset}}</a>{{if .CacheHit}} (cached){{end}}</p>
{{- range .Classes}}
<figure>{{if $.Base}}<i class="{{$.Base}} {{.}}"></i>{{end}}<figcaption>{{.}}</figcaption></figure>
{{- end}}
</body>
</html>
`))

// previewData feeds previewTemplate.
type previewData struct {
	Name          string
	Icons         int
	Width, Height float64
	URL, Asset    string
	CacheHit      bool
	Base          string
	Classes       []string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, s.names); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	res, ok := s.generateFor(w, r)
	if !ok {
		return
	}
	cfg := s.configs[chi.URLParam(r, "config")]

	data := previewData{
		Name:     cfg.Name,
		Icons:    res.Stats.Icons,
		Width:    res.Stats.Width,
		Height:   res.Stats.Height,
		URL:      res.Artifacts.URL,
		Asset:    res.Artifacts.AssetName,
		CacheHit: res.CacheHit,
		Base:     previewClass(cfg),
		Classes:  res.Artifacts.Classes,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if err := previewTemplate.Execute(w, data); err != nil {
		s.logger.Error("render preview", "config", cfg.Name, "error", err)
	}
}
