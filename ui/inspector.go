package ui

import (
	"fmt"

	"github.com/pthm-cable/cardpile/components"
	"github.com/pthm-cable/cardpile/sim"
)

// InspectorData is the card under inspection.
type InspectorData struct {
	Info        sim.CardInfo
	VariantName string
	Occupancy   int // cards in the same pile, 0 when not piled
}

// Inspector renders the card inspection panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: CardSections(),
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel and returns the Y below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range ins.sections {
		height += sectionHeight(r.Theme, sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, data, ins.width-padding*2)
	}
	return y
}

// sectionHeight predicts the drawn height of a section.
func sectionHeight(t Theme, sd SectionDescriptor, data any) int32 {
	if sd.Visible != nil && !sd.Visible(data) {
		return 0
	}
	h := int32(4)
	if sd.Title != "" {
		h += t.LineHeight
	}
	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible(data) {
			continue
		}
		switch fd.Widget {
		case WidgetBar:
			h += t.LineHeight + 2
		case WidgetSpacer:
			h += 6
		default:
			h += t.LineHeight
		}
	}
	return h
}

func inspected(data any) InspectorData {
	return data.(InspectorData)
}

// CardSections describes the inspector layout for a card.
func CardSections() []SectionDescriptor {
	return []SectionDescriptor{
		{
			ID:    "card",
			Title: "Card",
			Fields: []FieldDescriptor{
				{ID: "variant", Label: "Variant", Widget: WidgetText, TextGetter: func(d any) string {
					in := inspected(d)
					return fmt.Sprintf("%s (%d)", in.VariantName, in.Info.Variant)
				}},
				{ID: "selection", Label: "Selection", Widget: WidgetText, TextGetter: func(d any) string {
					return inspected(d).Info.Card.Selection.String()
				}},
				{ID: "motion", Label: "Motion", Widget: WidgetText, TextGetter: func(d any) string {
					return inspected(d).Info.Card.Motion.State.String()
				}},
				{ID: "spawned", Label: "Spawned", Widget: WidgetText, TextGetter: func(d any) string {
					return fmt.Sprintf("#%d", inspected(d).Info.Card.Spawned)
				}},
			},
		},
		{
			ID:    "transform",
			Title: "Transform",
			Fields: []FieldDescriptor{
				{ID: "position", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
					p := inspected(d).Info.Position
					return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
				}},
				{ID: "depth", Label: "Depth", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
					return inspected(d).Info.Z
				}},
				{ID: "scale", Label: "Scale", Widget: WidgetBar, Getter: func(d any) float32 {
					return inspected(d).Info.Scale.X
				}, Range: FieldRange{Min: 0, Max: 2}},
				{ID: "bounds", Label: "Bounds", Widget: WidgetText, TextGetter: func(d any) string {
					b := inspected(d).Info.Bounds
					if !b.Valid {
						return "pending"
					}
					return fmt.Sprintf("%.0fx%.0f", b.Rect.Size.X, b.Rect.Size.Y)
				}},
			},
		},
		{
			ID:    "motion",
			Title: "Motion",
			Visible: func(d any) bool {
				return inspected(d).Info.Card.Motion.State == components.Dragging
			},
			Fields: []FieldDescriptor{
				{ID: "target", Label: "Target", Widget: WidgetText, TextGetter: func(d any) string {
					t := inspected(d).Info.Card.Motion.Target
					return fmt.Sprintf("(%.1f, %.1f)", t.X, t.Y)
				}},
				{ID: "frames", Label: "Frames", Widget: WidgetText, Format: "%.0f", Visible: func(d any) bool {
					return !inspected(d).Info.Card.IsSelected()
				}, Getter: func(d any) float32 {
					return float32(inspected(d).Info.Card.Motion.Frames)
				}},
			},
		},
		{
			ID:    "pile",
			Title: "Pile",
			Visible: func(d any) bool {
				return inspected(d).Info.Card.HasPile
			},
			Fields: []FieldDescriptor{
				{ID: "slot", Label: "Slot", Widget: WidgetText, TextGetter: func(d any) string {
					p := inspected(d).Info.Card.Pile
					return fmt.Sprintf("[%d, %d]", p.X, p.Y)
				}},
				{ID: "occupancy", Label: "Cards", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
					return float32(inspected(d).Occupancy)
				}},
			},
		},
	}
}
