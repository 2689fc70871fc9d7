package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"github.com/kraitsura/mindgrove/pkg/layout"
)

const (
	svgMargin    = 40.0
	svgNodeFill  = "#282A36"
	svgNodeLine  = "#BD93F9"
	svgLinkLine  = "#6272A4"
	svgTextColor = "#F8F8F2"
	svgFontSize  = 14.0
)

// SVG draws the layout result as a standalone SVG document.
func SVG(w io.Writer, res *layout.Result) error {
	width, height, offX, offY := contentBounds(res)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#1E1F29")

	linkStyle := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", svgLinkLine)
	for _, link := range res.Links {
		canvas.Path(pathData(link.Path, offX, offY), linkStyle)
	}

	nodeStyle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", svgNodeFill, svgNodeLine)
	textStyle := fmt.Sprintf("fill:%s;font-family:monospace;font-size:%.0fpx", svgTextColor, svgFontSize)
	for _, n := range res.Nodes {
		b := n.Bounds()
		canvas.Roundrect(b.X+offX, b.Y+offY, b.W, b.H, 6, 6, nodeStyle)
		lines := strings.Split(n.Node.Text, "\n")
		for i, line := range lines {
			tx := b.X + offX + 12
			ty := b.Y + offY + b.H/2 + svgFontSize/2 + float64(i-len(lines)/2)*svgFontSize
			canvas.Text(tx, ty, line, textStyle)
		}
	}
	canvas.End()
	return nil
}

// WriteSVG writes the drawing to path.
func WriteSVG(res *layout.Result, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create svg: %w", err)
	}
	defer f.Close()
	if err := SVG(f, res); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}

// contentBounds returns the canvas size plus the offset that shifts all
// layout coordinates into positive space with a margin.
func contentBounds(res *layout.Result) (width, height, offX, offY float64) {
	if len(res.Nodes) == 0 {
		return 2 * svgMargin, 2 * svgMargin, svgMargin, svgMargin
	}
	minX, minY := res.Nodes[0].Bounds().X, res.Nodes[0].Bounds().Y
	maxX, maxY := minX, minY
	for _, n := range res.Nodes {
		b := n.Bounds()
		if b.X < minX {
			minX = b.X
		}
		if b.Y < minY {
			minY = b.Y
		}
		if b.X+b.W > maxX {
			maxX = b.X + b.W
		}
		if b.Y+b.H > maxY {
			maxY = b.Y + b.H
		}
	}
	return maxX - minX + 2*svgMargin, maxY - minY + 2*svgMargin,
		svgMargin - minX, svgMargin - minY
}

// pathData converts path segments to SVG path commands.
func pathData(path []layout.Segment, offX, offY float64) string {
	var b strings.Builder
	for _, seg := range path {
		switch seg.Op {
		case layout.MoveTo:
			fmt.Fprintf(&b, "M%.1f,%.1f ", seg.To.X+offX, seg.To.Y+offY)
		case layout.LineTo:
			fmt.Fprintf(&b, "L%.1f,%.1f ", seg.To.X+offX, seg.To.Y+offY)
		case layout.CubicTo:
			fmt.Fprintf(&b, "C%.1f,%.1f %.1f,%.1f %.1f,%.1f ",
				seg.C1.X+offX, seg.C1.Y+offY,
				seg.C2.X+offX, seg.C2.Y+offY,
				seg.To.X+offX, seg.To.Y+offY)
		}
	}
	return strings.TrimSpace(b.String())
}
