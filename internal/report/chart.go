package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"kairos/internal/indicator"
	"kairos/internal/market"
)

// Input bundles everything an indicator report page needs.
type Input struct {
	Symbol  string
	Samples []market.PriceSample
	Set     indicator.Set
}

// RenderHTML writes a diagnostic chart page: close price with Bollinger
// bands on top, volume ratio context below. Meant for eyeballing what the
// calculator saw, not for trading decisions.
func RenderHTML(w io.Writer, in Input) error {
	if len(in.Samples) == 0 {
		return fmt.Errorf("no samples to render")
	}
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("kairos %s indicators", in.Symbol)

	page.AddCharts(priceChart(in), volumeChart(in))
	return page.Render(w)
}

func priceChart(in Input) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s close / Bollinger(20,2)", in.Symbol),
			Subtitle: fmt.Sprintf("RSI=%.1f (%s)  MACD=%s", in.Set.RSI.Value, in.Set.RSI.Signal, in.Set.MACD.Trend),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	axis := make([]string, len(in.Samples))
	closes := make([]opts.LineData, len(in.Samples))
	for i, s := range in.Samples {
		axis[i] = s.Timestamp.Format(time.DateTime)
		closes[i] = opts.LineData{Value: s.Price}
	}
	line.SetXAxis(axis).
		AddSeries("close", closes).
		AddSeries("bb_upper", constSeries(in.Set.Bollinger.Upper, len(in.Samples))).
		AddSeries("bb_mid", constSeries(in.Set.Bollinger.Middle, len(in.Samples))).
		AddSeries("bb_lower", constSeries(in.Set.Bollinger.Lower, len(in.Samples)))
	return line
}

func volumeChart(in Input) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("volume (ratio=%.2f %s)", in.Set.Volume.Ratio, in.Set.Volume.Signal),
		}),
	)
	axis := make([]string, len(in.Samples))
	vols := make([]opts.BarData, len(in.Samples))
	for i, s := range in.Samples {
		axis[i] = s.Timestamp.Format(time.DateTime)
		vols[i] = opts.BarData{Value: s.Volume}
	}
	bar.SetXAxis(axis).AddSeries("volume", vols)
	return bar
}

func constSeries(v float64, n int) []opts.LineData {
	out := make([]opts.LineData, n)
	for i := range out {
		out[i] = opts.LineData{Value: v}
	}
	return out
}
