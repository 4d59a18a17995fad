package subtitle

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Compose assigns clause i the window [i*window, (i+1)*window). Each clause is
// flattened to a single line; a blank line would end the cue early in SRT.
func (c *implComposer) Compose(text string) (Track, error) {
	var track Track
	for _, clause := range c.segmenter.Split(text) {
		clause = flatten(clause)
		if clause == "" {
			continue
		}
		i := len(track)
		track = append(track, Cue{
			Index:   i + 1,
			Start:   time.Duration(i) * c.window,
			End:     time.Duration(i+1) * c.window,
			Content: clause,
		})
	}
	if len(track) == 0 {
		return nil, ErrEmptyTrack
	}
	return track, nil
}

// flatten collapses every whitespace run, newlines included, to one space.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (c *implComposer) Encode(track Track) ([]byte, error) {
	if len(track) == 0 {
		return nil, ErrEmptyTrack
	}

	subs := astisub.NewSubtitles()
	for _, cue := range track {
		subs.Items = append(subs.Items, &astisub.Item{
			Index:   cue.Index,
			StartAt: cue.Start,
			EndAt:   cue.End,
			Lines:   []astisub.Line{{Items: []astisub.LineItem{{Text: flatten(cue.Content)}}}},
		})
	}

	var buf bytes.Buffer
	var err error
	switch c.format {
	case FormatVTT:
		err = subs.WriteToWebVTT(&buf)
	default:
		err = subs.WriteToSRT(&buf)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", ErrComposition, c.format, err)
	}
	// astisub prefixes SRT output with a byte order mark
	return bytes.TrimPrefix(buf.Bytes(), utf8BOM), nil
}

func (c *implComposer) Ext() string { return c.format }
