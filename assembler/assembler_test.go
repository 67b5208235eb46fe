package assembler

import (
	"errors"
	"sync"
	"testing"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/builder"
	"github.com/erraggy/asynctools/schema"
	"github.com/erraggy/asynctools/schemacache"
	"github.com/erraggy/asynctools/spec"
	"github.com/erraggy/asynctools/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Event struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

func eventFragments() []builder.Fragment {
	return []builder.Fragment{
		builder.Info(spec.Info{Title: "Events", Version: "1.0.0"}),
		builder.Channel("events", spec.Channel{Address: "events"}),
		builder.ChannelMessage("events", "Event", spec.Inline(builder.MessageFor[Event]())),
		builder.Operation("sendEvent", spec.Operation{
			Action:   spec.ActionSend,
			Channel:  spec.ChannelRef{Name: "events"},
			Messages: []spec.MessageRef{{Channel: "events", Name: "Event"}},
		}),
	}
}

func newAssembler(t *testing.T, opts ...Option) *Assembler {
	t.Helper()
	cache, err := schemacache.New()
	require.NoError(t, err)
	a, err := New(append([]Option{WithCache(cache)}, opts...)...)
	require.NoError(t, err)
	return a
}

func TestTryAssembleValid(t *testing.T) {
	a := newAssembler(t)

	doc, err := a.TryAssemble(eventFragments()...)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Events", doc.Info.Title)
	assert.Contains(t, doc.Channels, "events")
	assert.Contains(t, doc.Operations, "sendEvent")
}

func TestTryAssembleStructuralError(t *testing.T) {
	a := newAssembler(t)

	doc, result, err := a.Run(
		builder.Message("Shared", spec.Message{Name: "first"}),
		builder.Message("Shared", spec.Message{Name: "second"}),
	)
	assert.Nil(t, doc)
	assert.Nil(t, result, "validation must not run after a structural error")

	var structErr *asyncerrors.StructuralError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "Shared", structErr.Name)
}

func TestTryAssembleReport(t *testing.T) {
	a := newAssembler(t)

	fragments := append(eventFragments(),
		builder.Operation("receiveMissing", spec.Operation{
			Action:   spec.ActionReceive,
			Channel:  spec.ChannelRef{Name: "missing"},
			Messages: []spec.MessageRef{{Name: "Event"}},
		}),
		builder.Operation("sendUnknown", spec.Operation{
			Action:   spec.ActionSend,
			Channel:  spec.ChannelRef{Name: "events"},
			Messages: []spec.MessageRef{{Channel: "events", Name: "Unknown"}},
		}),
	)

	doc, err := a.TryAssemble(fragments...)
	assert.Nil(t, doc)
	require.Error(t, err)

	var report *validator.ReportError
	require.ErrorAs(t, err, &report)
	assert.Len(t, report.Issues, 2)
	assert.ErrorIs(t, err, asyncerrors.ErrReference)
	assert.ErrorIs(t, err, asyncerrors.ErrIntegrity)
	assert.Contains(t, err.Error(), "validation failed with 2 error(s):")
	assert.Contains(t, err.Error(), `channels "missing"`)
	assert.Contains(t, err.Error(), `("Unknown")`)
}

func TestAssemblePanicsWithTryAssembleError(t *testing.T) {
	a := newAssembler(t)
	fragments := []builder.Fragment{
		builder.Operation("publish", spec.Operation{
			Action:   spec.ActionSend,
			Channel:  spec.ChannelRef{Name: "missing"},
			Messages: []spec.MessageRef{{Name: "Event"}},
		}),
	}

	_, tryErr := a.TryAssemble(fragments...)
	require.Error(t, tryErr)

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		a.Assemble(fragments...)
	}()

	panicErr, ok := recovered.(error)
	require.True(t, ok, "Assemble must panic with an error, got %T", recovered)
	assert.Equal(t, tryErr.Error(), panicErr.Error())
	assert.True(t, errors.Is(panicErr, asyncerrors.ErrReference))
}

func TestAssembleValid(t *testing.T) {
	a := newAssembler(t)
	assert.NotPanics(t, func() {
		doc := a.Assemble(eventFragments()...)
		assert.Len(t, doc.Operations, 1)
	})
}

func TestRunReturnsWarningsOnSuccess(t *testing.T) {
	a := newAssembler(t)

	fragments := append(eventFragments(),
		builder.Server("broker", spec.Server{
			Host:     "{host}:9092",
			Protocol: "kafka",
			Variables: map[string]spec.ServerVariable{
				"host":   {Default: "localhost"},
				"unused": {Default: "x"},
			},
		}),
	)

	doc, result, err := a.Run(fragments...)
	require.NoError(t, err)
	require.NotNil(t, doc)
	require.NotNil(t, result)
	assert.True(t, result.Valid)
	assert.NotZero(t, result.WarningCount)

	var paths []string
	for _, w := range result.Warnings {
		paths = append(paths, w.Path)
	}
	assert.Contains(t, paths, "servers.broker.variables.unused")
}

func TestValidatorOptionsForwarded(t *testing.T) {
	fragments := append(eventFragments(),
		builder.MessageBindings("kafka", spec.Bindings{"kafka": map[string]any{"key": "id"}}),
		builder.Message("Event", builder.MessageFor[Event]()),
		builder.Channel("audit", spec.Channel{
			Address:  "audit",
			Messages: map[string]spec.OrRef[spec.Message]{"Event": spec.RefTo[spec.Message](spec.KindMessages, "Event")},
			Bindings: ptr(spec.RefTo[spec.Bindings](spec.KindMessageBindings, "kafka")),
		}),
	)

	t.Run("mismatch is fatal by default", func(t *testing.T) {
		_, err := newAssembler(t).TryAssemble(fragments...)
		assert.ErrorIs(t, err, asyncerrors.ErrKindMismatch)
	})

	t.Run("lint mode downgrades the mismatch", func(t *testing.T) {
		a := newAssembler(t, WithValidatorOptions(validator.WithKindMismatchAsWarning(true)))
		doc, result, err := a.Run(fragments...)
		require.NoError(t, err)
		require.NotNil(t, doc)

		var mismatches int
		for _, w := range result.Warnings {
			if errors.Is(w, asyncerrors.ErrKindMismatch) {
				mismatches++
				assert.Equal(t, "channels.audit.bindings", w.Path)
			}
		}
		assert.Equal(t, 1, mismatches)
	})
}

func TestWithBuilderOptions(t *testing.T) {
	a := newAssembler(t, WithBuilderOptions(builder.WithID("urn:events"), builder.WithDefaultContentType("application/json")))

	doc, err := a.TryAssemble(eventFragments()...)
	require.NoError(t, err)
	assert.Equal(t, "urn:events", doc.ID)
	assert.Equal(t, "application/json", doc.DefaultContentType)
}

func TestNewOptions(t *testing.T) {
	_, err := New(WithCache(nil))
	assert.ErrorIs(t, err, asyncerrors.ErrConfig)

	_, err = New(WithValidatorOptions(validator.WithCache(nil)))
	assert.ErrorIs(t, err, asyncerrors.ErrConfig)

	a, err := New(nil, WithLogger(nil))
	require.NoError(t, err)
	assert.NotNil(t, a)
}

func TestConcurrentAssembly(t *testing.T) {
	a := newAssembler(t)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.TryAssemble(eventFragments()...)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func sharedChannelFragments() ([]builder.Fragment, map[string]spec.OrRef[spec.Message]) {
	messages := map[string]spec.OrRef[spec.Message]{
		"A": spec.Inline(spec.Message{Payload: spec.InlineSchema(schema.MustNew(map[string]any{"type": "string"}))}),
	}
	return []builder.Fragment{
		builder.Info(spec.Info{Title: "Events", Version: "1.0.0"}),
		builder.Channel("events", spec.Channel{Address: "events", Messages: messages}),
		builder.ChannelMessage("events", "B", spec.Inline(spec.Message{
			Payload: spec.InlineSchema(schema.MustNew(map[string]any{"type": "string"})),
		})),
		builder.Operation("sendEvent", spec.Operation{
			Action:   spec.ActionSend,
			Channel:  spec.ChannelRef{Name: "events"},
			Messages: []spec.MessageRef{{Channel: "events", Name: "A"}, {Channel: "events", Name: "B"}},
		}),
	}, messages
}

func TestReusedFragmentsAssembleRepeatedly(t *testing.T) {
	a := newAssembler(t)
	fragments, messages := sharedChannelFragments()

	for range 2 {
		doc, err := a.TryAssemble(fragments...)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, doc.Channels["events"].MessageNames())
	}
	assert.Len(t, messages, 1, "caller's message map must not be written to")
}

func TestReusedFragmentsAssembleConcurrently(t *testing.T) {
	a := newAssembler(t)
	fragments, messages := sharedChannelFragments()

	var wg sync.WaitGroup
	docs := make([]*spec.Document, 8)
	errs := make([]error, len(docs))
	for i := range docs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			docs[i], errs[i] = a.TryAssemble(fragments...)
		}(i)
	}
	wg.Wait()

	for i := range docs {
		require.NoError(t, errs[i])
		assert.Len(t, docs[i].Channels["events"].Messages, 2)
	}
	assert.Len(t, messages, 1)
}

func TestPackageFunctions(t *testing.T) {
	doc, err := TryAssemble(eventFragments()...)
	require.NoError(t, err)
	assert.NotNil(t, doc)

	assert.Panics(t, func() {
		Assemble(builder.Channel("events", spec.Channel{}))
	})
}

func ptr[T any](v T) *T { return &v }
