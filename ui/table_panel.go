package ui

import (
	"fmt"

	"github.com/pthm-cable/cardpile/systems"
	"github.com/pthm-cable/cardpile/telemetry"
)

// TablePanelData is the live table state shown in debug mode.
type TablePanelData struct {
	Counts telemetry.Counts
	Drag   systems.DragParams
}

// TablePanel renders pile stats, drag tuning and overlay states.
type TablePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
	sections []SectionDescriptor
}

// NewTablePanel creates a hidden table panel. Overlay rows follow the
// registry's order.
func NewTablePanel(x, y, width int32, overlays *OverlayRegistry) *TablePanel {
	return &TablePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: TableSections(overlays),
	}
}

// SetVisible shows or hides the panel.
func (p *TablePanel) SetVisible(visible bool) {
	p.visible = visible
}

// IsVisible returns whether the panel is shown.
func (p *TablePanel) IsVisible() bool {
	return p.visible
}

// Draw renders the panel and returns the Y below it.
func (p *TablePanel) Draw(data TablePanelData) int32 {
	if !p.visible {
		return p.y
	}

	r := p.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range p.sections {
		height += sectionHeight(r.Theme, sd, data)
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	y := p.y + padding
	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, data, p.width-padding*2)
	}
	return y
}

func tableData(data any) TablePanelData {
	return data.(TablePanelData)
}

// OverlayStatus formats one overlay row, e.g. "on [V]".
func OverlayStatus(desc OverlayDescriptor, enabled bool) string {
	state := "off"
	if enabled {
		state = "on"
	}
	if desc.KeyLabel == "" {
		return state
	}
	return fmt.Sprintf("%s [%s]", state, desc.KeyLabel)
}

// TableSections describes the table panel layout.
func TableSections(overlays *OverlayRegistry) []SectionDescriptor {
	sections := []SectionDescriptor{
		{
			ID:    "piles",
			Title: "Piles",
			Fields: []FieldDescriptor{
				{ID: "occupied", Label: "Occupied", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(tableData(d).Counts.Piles)
				}},
				{ID: "stacked", Label: "Stacked", Widget: WidgetBar, Visible: func(d any) bool {
					return tableData(d).Counts.Piles > 0
				}, Getter: func(d any) float32 {
					c := tableData(d).Counts
					return float32(c.Stacked) / float32(c.Piles)
				}, Range: DefaultRange()},
				{ID: "tallest", Label: "Tallest", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(tableData(d).Counts.MaxOccupancy)
				}},
			},
		},
		{
			ID:    "drag",
			Title: "Drag",
			Fields: []FieldDescriptor{
				{ID: "cell", Label: "Cell", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return tableData(d).Drag.CellSize
				}},
				{ID: "step", Label: "Step", Widget: WidgetText, Format: "%.1f", Getter: func(d any) float32 {
					return tableData(d).Drag.StackStep
				}},
				{ID: "base_rate", Label: "Follow", Widget: WidgetBar, Getter: func(d any) float32 {
					return tableData(d).Drag.BaseRate
				}, Range: DefaultRange()},
				{ID: "release_rate", Label: "Release", Widget: WidgetBar, Getter: func(d any) float32 {
					return tableData(d).Drag.ReleaseRate
				}, Range: DefaultRange()},
			},
		},
	}

	if overlays == nil {
		return sections
	}
	for _, category := range overlays.Categories() {
		sd := SectionDescriptor{ID: "overlays_" + category, Title: categoryTitle(category) + " overlays"}
		for _, desc := range overlays.ByCategory(category) {
			desc := desc
			sd.Fields = append(sd.Fields, FieldDescriptor{
				ID:     string(desc.ID),
				Label:  desc.Name,
				Widget: WidgetText,
				TextGetter: func(any) string {
					return OverlayStatus(desc, overlays.IsEnabled(desc.ID))
				},
			})
		}
		sections = append(sections, sd)
	}
	return sections
}

func categoryTitle(cat string) string {
	switch cat {
	case "table":
		return "Table"
	case "debug":
		return "Debug"
	}
	return cat
}
