package handlers

import (
	"math"

	"boutique/internal/domain"
)

const (
	chartWidth     = 640.0
	chartHeight    = 280.0
	chartPadTop    = 24.0
	chartPadBottom = 44.0
	chartPadX      = 16.0
)

// chartSeries are the two bars drawn per category.
var chartSeries = []string{"Revenu", "Profit"}

type Bar struct {
	X, Y, W, H float64
	Series     int
	Value      string
}

type BarGroup struct {
	Label  string
	LabelX float64
	Bars   []Bar
}

// BarChart is an SVG-ready grouped bar chart. Coordinates are in user units
// of a Width x Height viewBox; ZeroY is the baseline, negative values hang below it.
type BarChart struct {
	Width, Height float64
	ZeroY         float64
	LabelY        float64
	Series        []string
	Groups        []BarGroup
}

// BuildBarChart lays out revenue and profit bars for each category.
func BuildBarChart(rows []domain.CategoryRevenue) BarChart {
	ch := BarChart{
		Width:  chartWidth,
		Height: chartHeight,
		LabelY: chartHeight - chartPadBottom/2,
		Series: chartSeries,
	}
	plotH := chartHeight - chartPadTop - chartPadBottom

	var maxPos, maxNeg float64
	for _, r := range rows {
		for _, v := range []float64{r.Revenue.InexactFloat64(), r.Profit.InexactFloat64()} {
			maxPos = math.Max(maxPos, v)
			maxNeg = math.Max(maxNeg, -v)
		}
	}
	span := maxPos + maxNeg
	if span == 0 {
		span = 1
	}
	ch.ZeroY = chartPadTop + plotH*maxPos/span
	if len(rows) == 0 {
		return ch
	}

	groupW := (chartWidth - 2*chartPadX) / float64(len(rows))
	barW := groupW * 0.35
	for i, r := range rows {
		gx := chartPadX + groupW*float64(i)
		g := BarGroup{Label: string(r.Category), LabelX: gx + groupW/2}
		for j, v := range []struct {
			f   float64
			txt string
		}{
			{r.Revenue.InexactFloat64(), r.Revenue.StringFixed(2)},
			{r.Profit.InexactFloat64(), r.Profit.StringFixed(2)},
		} {
			h := plotH * math.Abs(v.f) / span
			y := ch.ZeroY
			if v.f > 0 {
				y -= h
			}
			g.Bars = append(g.Bars, Bar{
				X:      gx + groupW*0.15 + barW*float64(j),
				Y:      y,
				W:      barW,
				H:      h,
				Series: j,
				Value:  v.txt,
			})
		}
		ch.Groups = append(ch.Groups, g)
	}
	return ch
}
