package site

import (
	"html/template"

	"github.com/starford/castellan/internal/narrative"
)

var funcs = template.FuncMap{
	"legendLine": narrative.LegendLine,
	"battleLine": narrative.BattleLine,
	"rulerLine":  narrative.RulerLine,
}

var indexTmpl = template.Must(template.New("index").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.BaseURL}}style.css?v={{.StyleVer}}">
</head>
<body>
<header><h1>{{.Title}}</h1><p>{{len .Castles}} castles catalogued</p></header>
<main>
<ul class="castle-list">
{{- range .Castles}}
<li>
<a href="{{$.BaseURL}}castles/{{.ID}}.html">{{.CastleName}}</a>
<span class="country">{{.Country}}</span>
{{- if .Metadata}}<span class="score">completeness {{.Metadata.CompletenessScore}}</span>{{end}}
</li>
{{- end}}
</ul>
</main>
<footer><p>Generated by Castellan.</p></footer>
</body>
</html>
`))

var castleTmpl = template.Must(template.New("castle").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Castle.CastleName}} — {{.Title}}</title>
<link rel="stylesheet" href="{{.BaseURL}}style.css?v={{.StyleVer}}">
</head>
<body>
<header>
<p><a href="{{.BaseURL}}index.html">&larr; All castles</a></p>
<h1>{{.Castle.CastleName}}</h1>
<p class="subtitle">{{.Castle.Country}}{{if .Castle.Location}} — {{.Castle.Location}}{{end}}</p>
</header>
<main>
{{- with .Castle}}
{{- if .ShortDescription}}<p class="lead">{{.ShortDescription}}</p>{{end}}
{{- if .DetailedDescription}}<p>{{.DetailedDescription}}</p>{{end}}

<dl class="facts">
{{- if .ArchitecturalStyle}}<dt>Architectural style</dt><dd>{{.ArchitecturalStyle}}</dd>{{end}}
{{- if .YearBuilt}}<dt>Built</dt><dd>{{.YearBuilt}}</dd>{{end}}
{{- if .HistoricalPeriods}}<dt>Historical periods</dt><dd>{{range $i, $p := .HistoricalPeriods}}{{if $i}}, {{end}}{{$p}}{{end}}</dd>{{end}}
{{- if .Unesco}}{{if .Unesco.Listed}}<dt>UNESCO</dt><dd>World Heritage Site {{.Unesco.Reference}} ({{.Unesco.Year}})</dd>{{end}}{{end}}
</dl>

{{- if .CulturalSignificance}}
<section><h2>Cultural significance</h2><p>{{.CulturalSignificance}}</p></section>
{{- end}}

{{- if .Legends}}
<section><h2>Legends</h2>
<ul>{{range .Legends}}<li>{{legendLine .}}</li>{{end}}</ul>
</section>
{{- end}}

{{- if .NotableBattles}}
<section><h2>Notable battles</h2>
<ul>{{range .NotableBattles}}<li>{{battleLine .}}</li>{{end}}</ul>
</section>
{{- end}}

{{- if .RulerBiographies}}
<section><h2>Rulers</h2>
<ul>{{range .RulerBiographies}}<li>{{rulerLine .}}</li>{{end}}</ul>
</section>
{{- end}}

{{- if .VisitorInfo}}
<section><h2>Visiting</h2>
<dl class="facts">
{{- if .VisitorInfo.OpeningHours}}{{if .VisitorInfo.OpeningHours.Seasonal}}<dt>Opening hours</dt><dd>{{.VisitorInfo.OpeningHours.Seasonal}}</dd>{{end}}{{end}}
{{- if .VisitorInfo.AdmissionFee}}<dt>Admission</dt><dd>{{.VisitorInfo.AdmissionFee}}</dd>{{end}}
{{- if .VisitorInfo.Accessibility}}<dt>Accessibility</dt><dd>{{.VisitorInfo.Accessibility}}</dd>{{end}}
{{- if .VisitorInfo.GuidedTours}}<dt>Guided tours</dt><dd>{{.VisitorInfo.GuidedTours}}</dd>{{end}}
</dl>
</section>
{{- end}}

{{- if .PreservationEfforts}}
<section><h2>Preservation</h2>
<p>{{.PreservationEfforts.Status}}{{if .PreservationEfforts.Organization}} ({{.PreservationEfforts.Organization}}){{end}}</p>
{{- if .PreservationEfforts.RecentWork}}<ul>{{range .PreservationEfforts.RecentWork}}<li>{{.}}</li>{{end}}</ul>{{end}}
</section>
{{- end}}

{{- if .ModernTrends}}
<section><h2>Outlook</h2>
<dl class="facts">
<dt>PPP eligible</dt><dd>{{if .ModernTrends.PPPEligible}}yes{{else}}no{{end}}</dd>
{{- if .ModernTrends.BudgetEstimate}}<dt>Budget estimate</dt><dd>{{.ModernTrends.BudgetEstimate}}</dd>{{end}}
{{- if .ModernTrends.SustainabilityFocus}}<dt>Sustainability focus</dt><dd>{{.ModernTrends.SustainabilityFocus}}</dd>{{end}}
</dl>
</section>
{{- end}}
{{- end}}
</main>
</body>
</html>
`))

const styleCSS = `:root {
  --ink: #1f2428;
  --paper: #faf8f2;
  --accent: #7a5c2e;
}
* { box-sizing: border-box; }
body {
  margin: 0 auto;
  max-width: 52rem;
  padding: 1.5rem;
  font-family: Georgia, 'Times New Roman', serif;
  color: var(--ink);
  background: var(--paper);
  line-height: 1.6;
}
header h1 { margin-bottom: 0.25rem; }
.subtitle { color: #555; margin-top: 0; }
.lead { font-size: 1.1rem; }
a { color: var(--accent); }
.castle-list { list-style: none; padding: 0; }
.castle-list li {
  display: flex;
  gap: 0.75rem;
  align-items: baseline;
  padding: 0.4rem 0;
  border-bottom: 1px solid #e4ddcc;
}
.castle-list .country { color: #666; }
.castle-list .score { margin-left: auto; font-size: 0.85rem; color: #888; }
.facts dt { font-weight: bold; }
.facts dd { margin: 0 0 0.5rem 0; }
section { margin-top: 1.5rem; }
footer { margin-top: 3rem; font-size: 0.85rem; color: #888; }
`
