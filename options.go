package boxannotator

import (
	"context"
	"log/slog"

	"github.com/menta2k/box-annotator/pkg/input"
	"github.com/menta2k/box-annotator/pkg/loader"
	"github.com/menta2k/box-annotator/pkg/types"
)

// Option configures an Annotator
type Option func(*options)

type options struct {
	config  Config
	input   input.Source
	logger  *slog.Logger
	ctx     context.Context
	onError func(error)
	onLoad  func(loader.ImageInfo)
}

func defaultOptions() options {
	return options{
		config: DefaultConfig(),
		logger: slog.New(slog.DiscardHandler),
		ctx:    context.Background(),
	}
}

// WithConfig replaces the whole configuration
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithLabel sets the initial label for new boxes
func WithLabel(label string) Option {
	return func(o *options) { o.config.Label = label }
}

// WithStyles overrides the styles of the given states
func WithStyles(styles types.StyleSet) Option {
	return func(o *options) {
		merged := o.config.Styles.Clone()
		for state, st := range styles {
			merged[state] = st.Clone()
		}
		o.config.Styles = merged
	}
}

// WithInput subscribes the annotator to src once the image has loaded
func WithInput(src input.Source) Option {
	return func(o *options) { o.input = src }
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithContext bounds the image load
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithErrorHandler is called once if loading or configuration fails
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// WithLoadHandler is called once after the image has loaded
func WithLoadHandler(fn func(loader.ImageInfo)) Option {
	return func(o *options) { o.onLoad = fn }
}
