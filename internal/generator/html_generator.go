package generator

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/Zachdehooge/temperature-heatmap/internal/heatmap"
)

const chartTemplate = `{{define "chart"}}<svg id="chart" xmlns="http://www.w3.org/2000/svg" width="{{num .Width}}" height="{{num .Height}}" font-family="sans-serif" font-size="10">
<g id="y-axis" transform="translate({{num .Padding}}, 0)" text-anchor="end">
<path class="domain" stroke="currentColor" fill="none" d="M-6,{{num .Padding}}H0V{{num .PlotBottom}}H-6"></path>
{{- range .YTicks}}
<g class="tick" transform="translate(0,{{num .Pos}})"><line stroke="currentColor" x2="-6"></line><text fill="currentColor" x="-9" dy="0.32em">{{.Label}}</text></g>
{{- end}}
</g>
<g id="x-axis" transform="translate(0, {{num .AxisY}})" text-anchor="middle">
<path class="domain" stroke="currentColor" fill="none" d="M{{num .Padding}},6V0H{{num .PlotRight}}V6"></path>
{{- range .XTicks}}
<g class="tick" transform="translate({{num .Pos}},0)"><line stroke="currentColor" y2="6"></line><text fill="currentColor" y="9" dy="0.71em">{{.Label}}</text></g>
{{- end}}
</g>
{{- range .Cells}}
<rect class="cell" x="{{num .X}}" y="{{num .Y}}" width="{{num .Width}}" height="{{num .Height}}" fill="{{.Band.Color}}" data-year="{{.Year}}" data-month="{{.MonthIndex}}" data-temp="{{num .Temp}}" data-variance="{{num .Variance}}">
{{- if $.Standalone}}<title>{{join .TooltipLines "\n"}}</title>{{end -}}
</rect>
{{- end}}
<g id="legend" stroke="black">
{{- range .Legend}}
<rect x="{{num .X}}" y="{{num .Y}}" width="{{num .Width}}" height="{{num .Height}}" fill="{{.Band.Color}}"></rect>
<text x="{{num .X}}" y="{{num .LabelY}}" stroke="none">{{.Label}}</text>
{{- end}}
</g>
</svg>{{end}}`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
   <meta charset="UTF-8"/>
   <title>Global Land-Surface Temperature</title>
   <style>
      body {
         font-family: Arial, sans-serif;
         margin: 0 auto;
         padding: 20px;
         display: flex;
         justify-content: center;
      }
      #app {
         text-align: center;
      }
      #title {
         padding: 0;
         text-decoration: underline;
      }
      #description {
         padding: 0;
      }
      .cell:hover {
         stroke: black;
         stroke-width: 1px;
      }
      #tooltip {
         position: absolute;
         padding: 6px 8px;
         font-size: 12px;
         text-align: center;
         background: #fff8dc;
         border: 1px solid #333;
         border-radius: 4px;
         pointer-events: none;
      }
      .generated {
         font-size: 0.8em;
         color: #888;
      }
   </style>
</head>
<body>
   <div id="app">
      <h3 id="title">Heat Map of Global Land-Surface Temperature</h3>
      <p id="description">{{.Description}}</p>
      {{template "chart" .}}
      <p class="generated">Generated {{.Generated}}</p>
   </div>
   <div id="tooltip" style="opacity: 0"></div>
   <script>
      (function () {
         const months = {{toJSON .MonthNames}};
         const tooltip = document.getElementById('tooltip');
         document.querySelectorAll('#chart rect.cell').forEach(function (cell) {
            cell.addEventListener('mouseover', function (event) {
               const d = cell.dataset;
               tooltip.style.opacity = 0.9;
               tooltip.style.left = (event.pageX + 10) + 'px';
               tooltip.style.top = (event.pageY - 28) + 'px';
               tooltip.setAttribute('data-year', d.year);
               tooltip.innerHTML = months[+d.month] + ', ' + d.year +
                  ' <br> <span class="tipTemp">' + d.temp + '&#8451;</span>' +
                  ' <br> <span class="tipVar">' + d.variance + '&#8451;</span>';
            });
            cell.addEventListener('mouseout', function () {
               tooltip.style.opacity = 0;
            });
         });
      })();
   </script>
</body>
</html>
`

var (
	chartTmpl = template.Must(template.New("svg").Funcs(funcs).Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(chartTemplate + `{{template "chart" .}}`))

	pageTmpl = template.Must(template.Must(chartTmpl.Clone()).New("page").Parse(pageTemplate))
)

// pageData adds the page-only fields to the chart.
type pageData struct {
	chartData
	Generated  string
	MonthNames [12]string
}

// renderHTML wraps the chart in the page along with the script that drives
// the hover tooltip.
func (g *Generator) renderHTML(l *heatmap.Layout) ([]byte, error) {
	data := pageData{
		chartData:  chartData{Layout: l},
		Generated:  g.clock.Now().UTC().Format("Jan 2, 2006 at 15:04 UTC"),
		MonthNames: heatmap.MonthNames,
	}

	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderSVG emits the chart on its own. Without the page script, each cell
// carries its tooltip as a native <title>.
func renderSVG(l *heatmap.Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := chartTmpl.ExecuteTemplate(&buf, "svg", chartData{Layout: l, Standalone: true}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
