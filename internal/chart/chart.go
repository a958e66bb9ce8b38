// Package chart renders the cost breakdown donut as inline SVG.
package chart

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	defaultSize = 240
	cutout      = 0.6
	fullCircle  = 0.99995

	// exactDigits fractional digits tell any double apart from a rounding tie.
	exactDigits = 30
)

// Slice is one labeled magnitude of a series.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Series is the ordered data fed to the renderer.
type Series []Slice

// Total sums every value in the series, negative values included.
func (s Series) Total() float64 {
	total := 0.0
	for _, slice := range s {
		total += slice.Value
	}
	return total
}

// MoneyFunc formats a monetary value for tooltips.
type MoneyFunc func(float64) string

// DefaultMoney formats as "$12.34".
func DefaultMoney(v float64) string {
	return "$" + FixedString(v, 2)
}

// FixedString formats v with exactly places decimals, rounding the exact binary
// value with ties away from zero. NaN and infinities keep their textual form.
func FixedString(v float64, places int32) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	// The shortest repr can land on a tie the binary value does not: 68.174999999999997 prints as 68.175.
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', exactDigits, 64)).StringFixed(places)
}

// Share returns the percentage of the series total held by slice i, as text with
// one decimal. A zero total yields "NaN" or "Infinity" like the division does.
func (s Series) Share(i int) string {
	return FixedString(s[i].Value/s.Total()*100, 1)
}

// Tooltip returns "label: $value (pct%)" for slice i.
func (s Series) Tooltip(i int, money MoneyFunc) string {
	if money == nil {
		money = DefaultMoney
	}
	return fmt.Sprintf("%s: %s (%s%%)", s[i].Label, money(s[i].Value), s.Share(i))
}

// LegendEntry is one row of the legend under the donut.
type LegendEntry struct {
	Label   string
	Color   string
	Tooltip string
}

// Donut is one rendering of a series. It renders nothing once released.
type Donut struct {
	mu       sync.Mutex
	svg      template.HTML
	legend   []LegendEntry
	released bool
}

// HTML returns the SVG markup, or an empty string after Release.
func (d *Donut) HTML() template.HTML {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return ""
	}
	return d.svg
}

// Legend returns the legend rows, or nil after Release.
func (d *Donut) Legend() []LegendEntry {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil
	}
	return append([]LegendEntry(nil), d.legend...)
}

// Released reports whether the donut has been disposed.
func (d *Donut) Released() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.released
}

// Release drops the rendered markup. Calling it twice is a no-op.
func (d *Donut) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.released = true
	d.svg = ""
	d.legend = nil
}

// Render draws series as a donut. Non-positive slices get no arc but stay in the legend.
func Render(series Series, money MoneyFunc) *Donut {
	if money == nil {
		money = DefaultMoney
	}

	positive := 0.0
	for _, slice := range series {
		if slice.Value > 0 {
			positive += slice.Value
		}
	}

	const c = defaultSize / 2.0
	outer := c - 2
	inner := outer * cutout

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="donut" viewBox="0 0 %d %d" width="%d" height="%d" role="img" aria-label="Cost breakdown">`,
		defaultSize, defaultSize, defaultSize, defaultSize)

	legend := make([]LegendEntry, 0, len(series))
	angle := -math.Pi / 2
	for i, slice := range series {
		tooltip := series.Tooltip(i, money)
		legend = append(legend, LegendEntry{Label: slice.Label, Color: slice.Color, Tooltip: tooltip})

		if !(slice.Value > 0) || !(positive > 0) || math.IsInf(positive, 0) {
			continue
		}

		fraction := slice.Value / positive
		title := template.HTMLEscapeString(tooltip)
		color := template.HTMLEscapeString(slice.Color)

		if fraction >= fullCircle {
			fmt.Fprintf(&b, `<circle cx="%.3f" cy="%.3f" r="%.3f" fill="none" stroke="%s" stroke-width="%.3f"><title>%s</title></circle>`,
				c, c, (outer+inner)/2, color, outer-inner, title)
			continue
		}

		end := angle + fraction*2*math.Pi
		large := 0
		if fraction > 0.5 {
			large = 1
		}
		fmt.Fprintf(&b, `<path d="M %.3f %.3f A %.3f %.3f 0 %d 1 %.3f %.3f L %.3f %.3f A %.3f %.3f 0 %d 0 %.3f %.3f Z" fill="%s" stroke="#ffffff" stroke-width="2"><title>%s</title></path>`,
			c+outer*math.Cos(angle), c+outer*math.Sin(angle),
			outer, outer, large,
			c+outer*math.Cos(end), c+outer*math.Sin(end),
			c+inner*math.Cos(end), c+inner*math.Sin(end),
			inner, inner, large,
			c+inner*math.Cos(angle), c+inner*math.Sin(angle),
			color, title)
		angle = end
	}
	b.WriteString(`</svg>`)

	//nolint:gosec // every interpolated string is escaped above
	return &Donut{svg: template.HTML(b.String()), legend: legend}
}

// Canvas owns at most one live Donut. Drawing disposes of the previous rendering first.
type Canvas struct {
	mu      sync.Mutex
	money   MoneyFunc
	current *Donut
}

// NewCanvas acquires an empty canvas. Callers Release it when done.
func NewCanvas(money MoneyFunc) *Canvas {
	return &Canvas{money: money}
}

// Draw releases the current donut, if any, and renders series in its place.
func (c *Canvas) Draw(series Series) *Donut {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.Release()
	}
	c.current = Render(series, c.money)
	return c.current
}

// Current returns the live donut, or nil.
func (c *Canvas) Current() *Donut {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Release disposes the live donut and empties the canvas.
func (c *Canvas) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.Release()
		c.current = nil
	}
}
