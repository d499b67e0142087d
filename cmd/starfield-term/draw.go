package main

import (
	"fmt"

	"starfield-server/internal/space"
	"starfield-server/internal/viewport"

	"github.com/gdamore/tcell/v2"
)

const panelGap = 2

var (
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hoverStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

func colorOf(c space.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// glyph picks a character for a star by its diameter.
func glyph(diameter float64) rune {
	switch {
	case diameter < 18:
		return '.'
	case diameter < 26:
		return '+'
	case diameter < 34:
		return '*'
	default:
		return '@'
	}
}

// draw renders the viewport grid and, right of it, the status panel.
func draw(screen tcell.Screen, state *viewport.State, gridWidth int) {
	screen.Clear()

	for _, star := range state.Galaxy.Stars {
		x, y := int(star.Position.X), int(star.Position.Y)
		style := tcell.StyleDefault.Foreground(colorOf(star.Color))
		if state.Selected != nil && state.Selected.Cell == star.Cell {
			style = style.Reverse(true)
		}
		screen.SetContent(x, y, glyph(star.Diameter), nil, style)
	}

	left := gridWidth + panelGap
	if w, _ := screen.Size(); left >= w {
		left = 0
	}

	row := 0
	row = drawText(screen, left, row, textStyle, fmt.Sprintf("pan %.2f, %.2f", state.Pan.X, state.Pan.Y))
	row = drawText(screen, left, row, dimStyle, "wasd/arrows pan, click select, q quit")
	row++

	if hovered := state.Hovered(); hovered != nil {
		row = drawText(screen, left, row, hoverStyle, fmt.Sprintf("%s (%d,%d)", hovered.Name, hovered.Cell.X, hovered.Cell.Y))
		row++
	}

	if state.Selected != nil {
		drawSystem(screen, left, row, state.Selected)
	}

	screen.Show()
}

func drawSystem(screen tcell.Screen, left, row int, star *space.Star) {
	style := tcell.StyleDefault.Foreground(colorOf(star.Color))
	row = drawText(screen, left, row, style, star.Name)
	row = drawText(screen, left, row, textStyle, fmt.Sprintf("cell %d,%d  diameter %.1f", star.Cell.X, star.Cell.Y, star.Diameter))

	planets := star.Planets()
	if len(planets) == 0 {
		drawText(screen, left, row, dimStyle, "no planets")
		return
	}

	for _, p := range planets {
		line := fmt.Sprintf(" %-14s %-11s r=%.0f d=%.1f", p.Name, p.PlanetType, p.OrbitRadius, p.Diameter)
		row = drawText(screen, left, row, tcell.StyleDefault.Foreground(colorOf(p.Color)), line)
		for _, m := range p.Children {
			row = drawText(screen, left, row, dimStyle, fmt.Sprintf("   %-12s r=%.0f d=%.1f", m.Name, m.OrbitRadius, m.Diameter))
		}
	}
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) int {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
	return y + 1
}
