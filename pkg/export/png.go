package export

import (
	"fmt"
	"math"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/kraitsura/mindgrove/pkg/layout"
)

// WritePNG rasterizes the layout result to a PNG file. The drawing
// mirrors the SVG export: dark canvas, rounded node boxes, curved or
// orthogonal links.
func WritePNG(res *layout.Result, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	width, height, offX, offY := contentBounds(res)

	dc := gg.NewContext(int(math.Ceil(width)), int(math.Ceil(height)))
	dc.SetHexColor("#1E1F29")
	dc.Clear()

	dc.SetHexColor("#6272A4")
	dc.SetLineWidth(1.5)
	for _, link := range res.Links {
		drawPath(dc, link.Path, offX, offY)
		dc.Stroke()
	}

	face := basicfont.Face7x13
	dc.SetFontFace(face)
	for _, n := range res.Nodes {
		b := n.Bounds()
		dc.DrawRoundedRectangle(b.X+offX, b.Y+offY, b.W, b.H, 6)
		dc.SetHexColor("#282A36")
		dc.FillPreserve()
		dc.SetHexColor("#BD93F9")
		dc.Stroke()

		dc.SetHexColor("#F8F8F2")
		lines := strings.Split(n.Node.Text, "\n")
		lineHeight := float64(face.Height)
		startY := b.Y + offY + b.H/2 - lineHeight*float64(len(lines)-1)/2
		for i, line := range lines {
			dc.DrawStringAnchored(line, b.X+offX+12, startY+float64(i)*lineHeight, 0, 0.35)
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func drawPath(dc *gg.Context, path []layout.Segment, offX, offY float64) {
	for _, seg := range path {
		switch seg.Op {
		case layout.MoveTo:
			dc.MoveTo(seg.To.X+offX, seg.To.Y+offY)
		case layout.LineTo:
			dc.LineTo(seg.To.X+offX, seg.To.Y+offY)
		case layout.CubicTo:
			dc.CubicTo(seg.C1.X+offX, seg.C1.Y+offY,
				seg.C2.X+offX, seg.C2.Y+offY,
				seg.To.X+offX, seg.To.Y+offY)
		}
	}
}
