package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/box-annotator/pkg/input"
)

const session = `
label: cat
events:
  - {type: down, x: 10, y: 10}
  - {type: move, x: 60, y: 40}
  - {type: up, x: 60, y: 40}
  - {type: label, label: dog}
  - {type: key, key: Backspace}
  - {type: down, x: 5, y: 5, button: right}
`

type recorder struct {
	events []string
	label  string
}

func (r *recorder) HandlePointer(e input.PointerEvent) {
	r.events = append(r.events, e.Kind.String())
}
func (r *recorder) HandleKey(e input.KeyEvent) { r.events = append(r.events, "key:"+e.Key) }
func (r *recorder) SetLabel(l string)          { r.label = l; r.events = append(r.events, "label:"+l) }

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader(session))
	require.NoError(t, err)
	assert.Equal(t, "cat", s.Label)
	assert.Len(t, s.Events, 6)
	assert.Equal(t, 4, s.Pointers())
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown type":    "events: [{type: jump}]",
		"unknown button":  "events: [{type: down, button: thumb}]",
		"key without key": "events: [{type: key}]",
		"unknown field":   "events: [{type: down, z: 3}]",
	} {
		_, err := Parse(strings.NewReader(doc))
		assert.Error(t, err, name)
	}
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, s.Events)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(session), 0o644))
	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, s.Events, 6)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPlay(t *testing.T) {
	s, err := Parse(strings.NewReader(session))
	require.NoError(t, err)

	p := NewPlayer(s)
	r := &recorder{}
	unsub := p.Subscribe(r)
	assert.Equal(t, 1, p.Subscribers())

	n := p.Play()
	assert.Equal(t, 6, n)
	assert.Equal(t, []string{"label:cat", "down", "move", "up", "label:dog", "key:Backspace", "down"}, r.events)
	assert.Equal(t, "dog", r.label)

	unsub()
	assert.Equal(t, 0, p.Subscribers())
	r.events = nil
	p.Play()
	assert.Empty(t, r.events)
}
