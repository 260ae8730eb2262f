// Package chart renders the 24-hour "yard wheel": a clock dial with the
// yard as the hub, inbound trains drawn as arrows pointing in and outbound
// departures as arrows pointing out, each at the angle of its scheduled
// time. The wheel is a pure visualization consumer of the same records the
// analyzer reads; it carries no algorithmic content.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/yardtools/yardcap/core/model"
)

const (
	inboundColor  = "#c0392b"
	outboundColor = "#27ae60"
)

// Wheel renders the dial. The zero value renders at the default size.
type Wheel struct {
	// Size is the width and height of the square SVG canvas in pixels.
	Size int
	// Title is drawn above the dial, typically the alternative label.
	Title string
}

// point maps a time of day and radius to canvas coordinates. Hour 0 sits
// at the top and time advances clockwise.
func (w Wheel) point(t model.ClockTime, radius float64) (float64, float64) {
	angle := 2 * math.Pi * t.DayFraction()
	c := float64(w.Size) / 2
	return c + radius*math.Sin(angle), c - radius*math.Cos(angle)
}

// Render writes the SVG document to out.
func (w Wheel) Render(out io.Writer, inbound []model.InboundRecord, departures []model.DepartureRecord) error {
	if w.Size <= 0 {
		w.Size = 800
	}
	c := float64(w.Size) / 2
	dial := c * 0.78  // rim of the clock dial
	hub := c * 0.22   // the yard itself
	label := c * 0.92 // train labels outside the rim

	var err error
	p := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(out, format, args...)
	}

	p("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		w.Size, w.Size, w.Size, w.Size)
	p("<rect width=\"100%%\" height=\"100%%\" fill=\"white\"/>\n")
	if w.Title != "" {
		p("<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-size=\"%.1f\" font-family=\"sans-serif\">%s</text>\n",
			c, c*0.08, c*0.06, w.Title)
	}
	p("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"#555\"/>\n", c, c, dial)
	p("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"#eee\" stroke=\"#555\"/>\n", c, c, hub)
	p("<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-size=\"%.1f\" font-family=\"sans-serif\">yard</text>\n",
		c, c+hub*0.1, hub*0.3)

	for h := 0; h < model.HoursPerDay; h++ {
		slot := model.ClockTime{Hour: h}
		x1, y1 := w.point(slot, dial)
		x2, y2 := w.point(slot, dial*0.97)
		p("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"#555\"/>\n", x1, y1, x2, y2)
		tx, ty := w.point(slot, dial*1.06)
		p("<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" dominant-baseline=\"middle\" font-size=\"%.1f\" font-family=\"sans-serif\" fill=\"#777\">%d</text>\n",
			tx, ty, c*0.035, h)
	}

	for _, in := range inbound {
		x1, y1 := w.point(in.Arrival, dial)
		x2, y2 := w.point(in.Arrival, hub*1.25)
		p("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"2\" marker-end=\"url(#in)\"/>\n",
			x1, y1, x2, y2, inboundColor)
		tx, ty := w.point(in.Arrival, label)
		p("<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-size=\"%.1f\" font-family=\"sans-serif\" fill=\"%s\">%s</text>\n",
			tx, ty, c*0.04, inboundColor, in.TrainID)
	}
	for _, dep := range departures {
		x1, y1 := w.point(dep.Departure, hub*1.25)
		x2, y2 := w.point(dep.Departure, dial)
		p("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"2\" marker-end=\"url(#out)\"/>\n",
			x1, y1, x2, y2, outboundColor)
		tx, ty := w.point(dep.Departure, label)
		p("<text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-size=\"%.1f\" font-family=\"sans-serif\" fill=\"%s\">%s</text>\n",
			tx, ty, c*0.04, outboundColor, dep.TrainID)
	}

	p("<defs>\n")
	p("<marker id=\"in\" markerWidth=\"8\" markerHeight=\"8\" refX=\"6\" refY=\"3\" orient=\"auto\"><path d=\"M0,0 L6,3 L0,6 z\" fill=\"%s\"/></marker>\n", inboundColor)
	p("<marker id=\"out\" markerWidth=\"8\" markerHeight=\"8\" refX=\"6\" refY=\"3\" orient=\"auto\"><path d=\"M0,0 L6,3 L0,6 z\" fill=\"%s\"/></marker>\n", outboundColor)
	p("</defs>\n")
	p("</svg>\n")
	return err
}

// WriteFile renders the wheel into the given file path.
func (w Wheel) WriteFile(path string, inbound []model.InboundRecord, departures []model.DepartureRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}
	defer f.Close()
	if err := w.Render(f, inbound, departures); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
