package script

import (
	"strings"

	"github.com/menta2k/box-annotator/pkg/input"
)

// Labeler is implemented by handlers that accept label changes
type Labeler interface {
	SetLabel(string)
}

// Player is an input.Source that emits the events of a script
type Player struct {
	script *Script
	bus    *input.Bus
	labels []Labeler
}

// NewPlayer prepares s for playback
func NewPlayer(s *Script) *Player {
	return &Player{script: s, bus: input.NewBus()}
}

// Subscribe registers h for playback events. Handlers that implement
// Labeler also receive label steps.
func (p *Player) Subscribe(h input.Handler) func() {
	unsub := p.bus.Subscribe(h)
	l, ok := h.(Labeler)
	if ok {
		p.labels = append(p.labels, l)
	}
	return func() {
		unsub()
		if ok {
			for i, v := range p.labels {
				if v == l {
					p.labels = append(p.labels[:i], p.labels[i+1:]...)
					break
				}
			}
		}
	}
}

// Subscribers returns the number of attached handlers
func (p *Player) Subscribers() int {
	return p.bus.Len()
}

// Play emits every step in order and returns the number of events
// delivered. The script label, if set, is applied first.
func (p *Player) Play() int {
	if p.script.Label != "" {
		p.setLabel(p.script.Label)
	}
	n := 0
	for _, st := range p.script.Events {
		button, _ := parseButton(st.Button)
		switch strings.ToLower(st.Type) {
		case StepDown:
			p.bus.Pointer(input.PointerEvent{Kind: input.PointerDown, X: st.X, Y: st.Y, Button: button})
		case StepMove:
			p.bus.Pointer(input.PointerEvent{Kind: input.PointerMove, X: st.X, Y: st.Y})
		case StepUp:
			p.bus.Pointer(input.PointerEvent{Kind: input.PointerUp, X: st.X, Y: st.Y, Button: button})
		case StepKey:
			p.bus.Key(input.KeyEvent{Key: st.Key})
		case StepLabel:
			p.setLabel(st.Label)
		default:
			continue
		}
		n++
	}
	return n
}

func (p *Player) setLabel(label string) {
	for _, l := range p.labels {
		l.SetLabel(label)
	}
}
