package subtitle

import (
	"bytes"
	"testing"
	"time"

	"github.com/asticode/go-astisub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer(t *testing.T, opts Options) Composer {
	t.Helper()
	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestPeriodSpaceSegmenter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"two sentences", "Hello world. This is a test.", []string{"Hello world", "This is a test."}},
		{"single", "One sentence only", []string{"One sentence only"}},
		{"blank", "   ", nil},
		{"empty clauses dropped", "One. . Two", []string{"One", "Two"}},
		{"no space after period", "v1.2 is out", []string{"v1.2 is out"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodSpaceSegmenter{}.Split(tt.text))
		})
	}
}

func TestCompose(t *testing.T) {
	c := newTestComposer(t, Options{})

	t.Run("two sentences", func(t *testing.T) {
		track, err := c.Compose("Hello world. This is a test.")
		require.NoError(t, err)
		assert.Equal(t, Track{
			{Index: 1, Start: 0, End: 2 * time.Second, Content: "Hello world"},
			{Index: 2, Start: 2 * time.Second, End: 4 * time.Second, Content: "This is a test."},
		}, track)
	})

	t.Run("single clause", func(t *testing.T) {
		track, err := c.Compose("One sentence only")
		require.NoError(t, err)
		require.Len(t, track, 1)
		assert.Equal(t, Cue{Index: 1, Start: 0, End: 2 * time.Second, Content: "One sentence only"}, track[0])
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := c.Compose(" ")
		assert.ErrorIs(t, err, ErrEmptyTrack)
		assert.ErrorIs(t, err, ErrComposition)
	})
}

func TestComposeInvariants(t *testing.T) {
	c := newTestComposer(t, Options{Window: 3 * time.Second})
	text := "First. Second. Third. Fourth. Fifth."

	track, err := c.Compose(text)
	require.NoError(t, err)
	require.Len(t, track, 5)

	for i, cue := range track {
		assert.Equal(t, i+1, cue.Index)
		assert.Equal(t, time.Duration(i)*3*time.Second, cue.Start)
		assert.Equal(t, time.Duration(i+1)*3*time.Second, cue.End)
		assert.Less(t, cue.Start, cue.End)
		if i > 0 {
			assert.Equal(t, track[i-1].End, cue.Start)
		}
	}

	again, err := c.Compose(text)
	require.NoError(t, err)
	assert.Equal(t, track, again)
}

func TestEncodeSRTRoundTrip(t *testing.T) {
	c := newTestComposer(t, Options{})
	track, err := c.Compose("Hello world. This is a test.")
	require.NoError(t, err)

	data, err := c.Encode(track)
	require.NoError(t, err)
	assert.Equal(t, "srt", c.Ext())
	assert.Contains(t, string(data), "00:00:00,000 --> 00:00:02,000")
	assert.Contains(t, string(data), "00:00:02,000 --> 00:00:04,000")

	subs, err := astisub.ReadFromSRT(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, subs.Items, 2)
	assert.Equal(t, "Hello world", subs.Items[0].String())
	assert.Equal(t, 2*time.Second, subs.Items[0].EndAt)
	assert.Equal(t, "This is a test.", subs.Items[1].String())
	assert.Equal(t, 4*time.Second, subs.Items[1].EndAt)

	again, err := c.Encode(track)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestComposeFlattensParagraphBreaks(t *testing.T) {
	c := newTestComposer(t, Options{})
	track, err := c.Compose("Hello world.\n\nSecond paragraph here. Third one.")
	require.NoError(t, err)
	require.Len(t, track, 2)
	assert.Equal(t, "Hello world. Second paragraph here", track[0].Content)
	assert.Equal(t, "Third one.", track[1].Content)

	data, err := c.Encode(track)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, utf8BOM))
	assert.NotContains(t, string(data), "here\n\n")

	subs, err := astisub.ReadFromSRT(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, subs.Items, 2)
	assert.Equal(t, "Hello world. Second paragraph here", subs.Items[0].String())
	assert.Equal(t, "Third one.", subs.Items[1].String())
}

func TestEncodeFlattensHandBuiltCues(t *testing.T) {
	c := newTestComposer(t, Options{})
	data, err := c.Encode(Track{{Index: 1, End: 2 * time.Second, Content: "line one\n\n  line two"}})
	require.NoError(t, err)

	subs, err := astisub.ReadFromSRT(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, subs.Items, 1)
	assert.Equal(t, "line one line two", subs.Items[0].String())
}

func TestEncodeSRTHasNoBOM(t *testing.T) {
	c := newTestComposer(t, Options{})
	track, err := c.Compose("Hello world.")
	require.NoError(t, err)

	data, err := c.Encode(track)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("1\n")), "got %q", data[:min(len(data), 8)])
}

func TestEncodeWebVTT(t *testing.T) {
	c := newTestComposer(t, Options{Format: FormatVTT})
	track, err := c.Compose("One sentence only")
	require.NoError(t, err)

	data, err := c.Encode(track)
	require.NoError(t, err)
	assert.Equal(t, "vtt", c.Ext())
	assert.Contains(t, string(data), "WEBVTT")
	assert.Contains(t, string(data), "00:00:00.000 --> 00:00:02.000")
	assert.Contains(t, string(data), "One sentence only")
}

func TestEncodeEmpty(t *testing.T) {
	c := newTestComposer(t, Options{})
	_, err := c.Encode(nil)
	assert.ErrorIs(t, err, ErrEmptyTrack)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Format: "ass"})
	assert.Error(t, err)
	_, err = New(Options{Window: -time.Second})
	assert.Error(t, err)
}

type wordSegmenter struct{}

func (wordSegmenter) Split(text string) []string { return []string{"a", "b", "c"} }

func TestCustomSegmenter(t *testing.T) {
	c := newTestComposer(t, Options{Segmenter: wordSegmenter{}})
	track, err := c.Compose("ignored")
	require.NoError(t, err)
	assert.Len(t, track, 3)
}

type blankSegmenter struct{}

func (blankSegmenter) Split(text string) []string { return []string{" \n ", "\t"} }

func TestComposeDropsBlankClauses(t *testing.T) {
	c := newTestComposer(t, Options{Segmenter: blankSegmenter{}})
	_, err := c.Compose("anything")
	assert.ErrorIs(t, err, ErrEmptyTrack)
}
