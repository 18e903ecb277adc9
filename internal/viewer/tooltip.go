package viewer

import (
	"html/template"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gridsight/hexviz/internal/dataset"
)

// tooltipTmpl renders the hover card for one cell: locality, city, value to
// three decimals, POI code and the raw index.
var tooltipTmpl = template.Must(template.New("tooltip").Parse(strings.TrimSpace(`
<div class="hexviz-tooltip">
<b>{{.Locality}}</b><br/>
{{.City}}<br/>
Value: {{printf "%.3f" .Value}}<br/>
POI: {{.POICode}}<br/>
Cell: {{.CellID}}
</div>
`)))

// TooltipHTML renders the tooltip fragment for a record. Field values are
// HTML-escaped by the template.
func TooltipHTML(rec dataset.CellRecord) (string, error) {
	var sb strings.Builder
	if err := tooltipTmpl.Execute(&sb, rec); err != nil {
		return "", eris.Wrap(err, "execute tooltip template")
	}
	return sb.String(), nil
}
