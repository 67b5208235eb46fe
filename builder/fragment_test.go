package builder

import (
	"errors"
	"testing"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/erraggy/asynctools/schema"
	"github.com/erraggy/asynctools/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	b := New()
	err := b.Apply(
		Info(spec.Info{Title: "Events", Version: "1.0.0"}),
		DocumentID("urn:events"),
		DefaultContentType("application/json"),
		Tag(spec.Tag{Name: "events"}),
		Server("prod", spec.Server{Host: "broker:9092", Protocol: "kafka"}),
		Channel("events", spec.Channel{Address: "events"}),
		ChannelMessage("events", "Event", spec.Inline(spec.Message{})),
		Operation("sendEvent", spec.Operation{Action: spec.ActionSend, Channel: spec.ChannelRef{Name: "events"}}),
		Message("Shared", spec.Message{}),
		Schema("Payload", schema.MustNew(map[string]any{"type": "object"})),
		Parameter("region", spec.Parameter{Enum: []string{"eu"}}),
		ChannelBindings("kafka", spec.Bindings{"kafka": map[string]any{}}),
		MessageBindings("kafka", spec.Bindings{"kafka": map[string]any{}}),
		ServerBindings("kafka", spec.Bindings{"kafka": map[string]any{}}),
		OperationTrait("traced", spec.OperationTrait{}),
		MessageTrait("common", spec.MessageTrait{}),
		SecurityScheme("mtls", spec.MutualTLS{}),
		nil,
	)
	require.NoError(t, err)

	doc := b.Build()
	assert.Equal(t, "Events", doc.Info.Title)
	assert.Equal(t, "urn:events", doc.ID)
	assert.Equal(t, "application/json", doc.DefaultContentType)
	assert.Len(t, doc.Tags, 1)
	assert.Equal(t, []string{"prod"}, doc.ServerNames())
	assert.True(t, doc.Channels["events"].HasMessage("Event"))
	assert.Equal(t, 9, doc.Components.Len())
}

func TestApplyStopsAtFirstError(t *testing.T) {
	applied := false
	b := New()
	err := b.Apply(
		Message("Shared", spec.Message{}),
		Message("Shared", spec.Message{}),
		FragmentFunc(func(*Builder) error {
			applied = true
			return nil
		}),
	)
	require.ErrorIs(t, err, asyncerrors.ErrStructural)
	assert.False(t, applied)
}

func TestFragmentFuncError(t *testing.T) {
	boom := errors.New("boom")
	err := New().Apply(FragmentFunc(func(*Builder) error { return boom }))
	assert.ErrorIs(t, err, boom)
}

func TestFromDocumentRoundTrip(t *testing.T) {
	src := New(WithInfo(spec.Info{Title: "Events", Version: "1.0.0"}), WithID("urn:events"))
	require.NoError(t, src.Apply(
		Tag(spec.Tag{Name: "b"}),
		Tag(spec.Tag{Name: "a"}),
		Server("prod", spec.Server{Host: "broker:9092", Protocol: "kafka"}),
		Channel("events", spec.Channel{Address: "events"}),
		ChannelMessage("events", "Event", spec.RefTo[spec.Message](spec.KindMessages, "Event")),
		Operation("sendEvent", spec.Operation{
			Action:   spec.ActionSend,
			Channel:  spec.ChannelRef{Name: "events"},
			Messages: []spec.MessageRef{{Channel: "events", Name: "Event"}},
		}),
		Message("Event", spec.Message{Summary: "event"}),
		SecurityScheme("basic", spec.UserPassword{}),
	))
	original := src.Build()

	fragments := FromDocument(original)
	dst := New()
	require.NoError(t, dst.Apply(fragments...))
	rebuilt := dst.Build()

	assert.Equal(t, original, rebuilt)
	assert.Nil(t, FromDocument(nil))
}

func TestFromDocumentDuplicateDetection(t *testing.T) {
	doc := spec.NewDocument(spec.Info{Title: "t", Version: "1"})
	doc.Tags = []spec.Tag{{Name: "dup"}, {Name: "dup"}}

	err := New().Apply(FromDocument(doc)...)
	require.ErrorIs(t, err, asyncerrors.ErrStructural)
}
