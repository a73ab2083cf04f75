//-------------------------------------------------------------------------
//
// pgEdge Retail Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPNG, FormatSVG:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", s)
	}
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options controls the rendered image.
type Options struct {
	Format Format
	Width  int
	Height int
}

// DefaultOptions returns a 1024x600 PNG.
func DefaultOptions() Options {
	return Options{Format: FormatPNG, Width: 1024, Height: 600}
}

const (
	titlePadding = 50
	annotateGap  = 5
	labelFont    = 10.0
)

// Render draws spec to w.
func Render(w io.Writer, spec Spec, opts Options) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if opts.Width < 1 || opts.Height < 1 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	var err error
	switch spec.Kind {
	case KindBar:
		err = renderBar(w, spec, opts)
	case KindGroupedBar:
		err = renderGroupedBar(w, spec, opts)
	case KindHorizontalBar:
		err = renderHorizontalBar(w, spec, opts)
	case KindLine:
		err = renderLine(w, spec, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to render chart %s: %w", spec.Name, err)
	}
	return nil
}

func seriesColor(i int) drawing.Color {
	return chart.GetDefaultColor(i)
}

// peak returns the largest value across all series, or 0.
func peak(series []Series) float64 {
	maxValue := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			maxValue = math.Max(maxValue, v)
		}
	}
	return maxValue
}

// axisMax returns the top of a zero-based value axis with a little
// headroom above the tallest value.
func axisMax(series []Series) float64 {
	if p := peak(series); p > 0 {
		return p * 1.1
	}
	return 1
}

// barGeometry splits the plot width into n slots, two thirds bar and
// one third gap.
func barGeometry(width, n int) (barWidth, spacing int) {
	slot := (width - 140) / n
	if slot < 3 {
		slot = 3
	}
	barWidth = slot * 2 / 3
	spacing = slot - barWidth
	return barWidth, spacing
}

// barSlots mirrors the bar chart's own scaling of bar width and spacing
// when n bars do not fit the canvas.
func barSlots(canvas chart.Box, n, barWidth, spacing int) (int, int) {
	w := canvas.Width()
	if n*(barWidth+spacing) > w {
		less := w - n*barWidth
		if less > 0 {
			spacing = int(math.Ceil(float64(less) / float64(n)))
		} else {
			spacing = 0
		}
	}
	if n*(barWidth+spacing) > w {
		less := w - n*spacing
		if less > 0 {
			barWidth = int(math.Ceil(float64(less) / float64(n)))
		} else {
			barWidth = 0
		}
	}
	return barWidth, spacing
}

// barCenter returns the x coordinate of the middle of bar i.
func barCenter(canvas chart.Box, i, barWidth, spacing int) int {
	return canvas.Left + i*(barWidth+spacing) + spacing>>1 + barWidth>>1
}

func textStyle(defaults chart.Style) chart.Style {
	return chart.Style{
		Font:      defaults.Font,
		FontSize:  labelFont,
		FontColor: chart.DefaultTextColor,
	}
}

func renderBar(w io.Writer, spec Spec, opts Options) error {
	values := spec.Series[0].Values
	n := len(values)
	barWidth, spacing := barGeometry(opts.Width, n)
	yRange := &chart.ContinuousRange{Min: 0, Max: axisMax(spec.Series)}

	bars := make([]chart.Value, n)
	for i, v := range values {
		bars[i] = chart.Value{
			Label: spec.Categories[i],
			Value: v,
			Style: chart.Style{
				FillColor:   seriesColor(i),
				StrokeColor: seriesColor(i),
				StrokeWidth: 1,
			},
		}
	}

	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: titlePadding}},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			Range:          yRange,
			ValueFormatter: axisFormatter(spec.Thousands),
		},
		Bars: bars,
	}

	if spec.Labels != nil {
		bc.Elements = append(bc.Elements, func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
			bw, sp := barSlots(canvas, n, barWidth, spacing)
			style := textStyle(defaults)
			for i, v := range values {
				tb := chart.Draw.MeasureText(r, spec.Labels[i], style)
				x := barCenter(canvas, i, bw, sp) - tb.Width()>>1
				y := canvas.Bottom - yRange.Translate(v) - annotateGap
				chart.Draw.Text(r, spec.Labels[i], x, y, style)
			}
		})
	}

	return bc.Render(opts.Format.provider(), w)
}

func renderGroupedBar(w io.Writer, spec Spec, opts Options) error {
	groups := len(spec.Categories)
	perGroup := len(spec.Series)
	// Each group is followed by a blank bar, except the last.
	n := groups*(perGroup+1) - 1
	barWidth, spacing := barGeometry(opts.Width, n)
	yRange := &chart.ContinuousRange{Min: 0, Max: axisMax(spec.Series)}

	blank := chart.Style{
		FillColor:   chart.ColorTransparent,
		StrokeColor: chart.ColorTransparent,
	}

	bars := make([]chart.Value, 0, n)
	for g := range spec.Categories {
		if g > 0 {
			bars = append(bars, chart.Value{Style: blank})
		}
		for s, series := range spec.Series {
			bars = append(bars, chart.Value{
				Value: series.Values[g],
				Style: chart.Style{
					FillColor:   seriesColor(s),
					StrokeColor: seriesColor(s),
					StrokeWidth: 1,
				},
			})
		}
	}

	bc := chart.BarChart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: titlePadding}},
		XAxis:      chart.Style{Hidden: true},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			Range:          yRange,
			ValueFormatter: axisFormatter(spec.Thousands),
		},
		Bars: bars,
	}

	bc.Elements = []chart.Renderable{
		func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
			bw, sp := barSlots(canvas, n, barWidth, spacing)

			axis := chart.Style{StrokeColor: chart.DefaultAxisColor, StrokeWidth: chart.DefaultAxisLineWidth}
			axis.WriteToRenderer(r)
			r.MoveTo(canvas.Left, canvas.Bottom)
			r.LineTo(canvas.Right, canvas.Bottom)
			r.Stroke()
			r.ResetStyle()

			style := textStyle(defaults)
			style.TextHorizontalAlign = chart.TextHorizontalAlignCenter
			style.TextWrap = chart.TextWrapWord
			for g, name := range spec.Categories {
				first := g * (perGroup + 1)
				last := first + perGroup - 1
				left := barCenter(canvas, first, bw, sp) - bw>>1
				right := barCenter(canvas, last, bw, sp) + bw>>1 + sp
				box := chart.Box{
					Top:    canvas.Bottom + chart.DefaultXAxisMargin,
					Left:   left - sp>>1,
					Right:  right,
					Bottom: canvas.Bottom + 4*chart.DefaultXAxisMargin,
				}
				chart.Draw.TextWithin(r, name, box, style)
			}
		},
		seriesLegend(spec.Series),
	}

	return bc.Render(opts.Format.provider(), w)
}

// seriesLegend draws a colour key in the top right corner of the canvas.
func seriesLegend(series []Series) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, defaults chart.Style) {
		style := textStyle(defaults)
		style.FontSize = 8

		const swatch, lineHeight, pad = 8, 14, 6
		textWidth := 0
		for _, s := range series {
			tb := chart.Draw.MeasureText(r, s.Name, style)
			textWidth = max(textWidth, tb.Width())
		}

		frame := chart.Box{
			Top:    canvas.Top + pad,
			Right:  canvas.Right - pad,
			Left:   canvas.Right - pad - (2*pad + swatch + pad + textWidth),
			Bottom: canvas.Top + pad + pad + len(series)*lineHeight,
		}
		chart.Draw.Box(r, frame, chart.Style{
			FillColor:   chart.ColorWhite,
			StrokeColor: chart.DefaultAxisColor,
			StrokeWidth: chart.DefaultAxisLineWidth,
		})

		for i, s := range series {
			top := frame.Top + pad + i*lineHeight
			chart.Draw.Box(r, chart.Box{
				Top:    top,
				Left:   frame.Left + pad,
				Right:  frame.Left + pad + swatch,
				Bottom: top + swatch,
			}, chart.Style{FillColor: seriesColor(i), StrokeColor: seriesColor(i), StrokeWidth: 1})
			chart.Draw.Text(r, s.Name, frame.Left+2*pad+swatch, top+swatch, style)
		}
	}
}

func renderHorizontalBar(w io.Writer, spec Spec, opts Options) error {
	values := spec.Series[0].Values
	n := len(values)

	top := peak(spec.Series)
	if top <= 0 {
		top = 1
	}

	slot := (opts.Height - titlePadding - 50) / n
	if slot < 4 {
		slot = 4
	}
	barWidth := slot * 3 / 4
	spacing := max(slot-barWidth, 1)

	// Bars fill from the right edge, so a transparent filler placed first
	// pushes each value against the axis.
	bars := make([]chart.StackedBar, n)
	for i, v := range values {
		label := Thousands(v)
		if spec.Labels != nil {
			label = spec.Labels[i]
		}
		bars[i] = chart.StackedBar{
			Name:  spec.Categories[i],
			Width: barWidth,
			Values: []chart.Value{
				{
					Value: top - v,
					Style: chart.Style{
						FillColor:   chart.ColorTransparent,
						StrokeColor: chart.ColorTransparent,
					},
				},
				{
					Value: v,
					Label: label,
					Style: chart.Style{
						FillColor:   seriesColor(0),
						StrokeColor: seriesColor(0),
						StrokeWidth: 1,
					},
				},
			},
		}
	}

	sbc := chart.StackedBarChart{
		Title:        spec.Title,
		Width:        opts.Width,
		Height:       opts.Height,
		IsHorizontal: true,
		BarSpacing:   spacing,
		Background:   chart.Style{Padding: chart.Box{Top: titlePadding, Left: 200}},
		XAxis:        chart.Style{Hidden: true},
		Bars:         bars,
	}

	return sbc.Render(opts.Format.provider(), w)
}

func renderLine(w io.Writer, spec Spec, opts Options) error {
	n := len(spec.Categories)

	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	xs := make([]float64, n)
	for i, c := range spec.Categories {
		xs[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: c})
	}
	ticks = append(ticks, chart.Tick{Value: float64(n) - 0.5})

	series := make([]chart.Series, len(spec.Series))
	for i, s := range spec.Series {
		series[i] = chart.ContinuousSeries{
			Name: s.Name,
			Style: chart.Style{
				StrokeColor: seriesColor(i),
				StrokeWidth: 2,
				DotColor:    seriesColor(i),
				DotWidth:    4,
			},
			XValues: xs,
			YValues: s.Values,
		}
	}

	c := chart.Chart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: titlePadding, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  spec.XLabel,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           spec.YLabel,
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(spec.Series)},
			ValueFormatter: axisFormatter(spec.Thousands),
		},
		Series: series,
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	return c.Render(opts.Format.provider(), w)
}
