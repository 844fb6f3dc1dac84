package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	pm "pfeifer.dev/polyproj/math"
)

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'g', precision, 64)
}

func formatPoint(p pm.Point, precision int) string {
	return fmt.Sprintf("(%s, %s, %s)",
		formatFloat(p.X, precision),
		formatFloat(p.Y, precision),
		formatFloat(p.Z, precision),
	)
}

// Render lists every projection of a result, one per line.
func Render(r pm.Result, precision int) string {
	sb := strings.Builder{}
	sb.WriteString(headerStyle.Render(fmt.Sprintf("number of solutions: %d", r.Count())))
	sb.WriteString("\n")
	for _, p := range r.Projections {
		sb.WriteString(fmt.Sprintf("segment number: %d, projection parameter: %s, point of projection: %s\n",
			p.Edge,
			formatFloat(p.Param, precision),
			formatPoint(p.Point, precision),
		))
	}
	return sb.String()
}

func RenderInfo(p *pm.Polyline, precision int) string {
	b := p.Bounds()
	return fmt.Sprintf(
		"%s\nvertices: %d\nedges: %d\nclosed: %t\nlength: %s\nbounds: %s - %s\nsize: %s\n",
		headerStyle.Render("polyline"),
		p.Len(),
		p.Edges(),
		p.Closed(),
		formatFloat(p.Length(), precision),
		formatPoint(b.Min, precision),
		formatPoint(b.Max, precision),
		formatPoint(b.Size(), precision),
	)
}

func RenderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("error: %v", err)) + "\n"
}
