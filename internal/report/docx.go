package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

func (w *implDocx) Write(ctx context.Context, r Report, path string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), r.Title, true, 16)
	if !r.CreatedAt.IsZero() {
		addStyledRun(doc.AddParagraph(""), r.CreatedAt.Format("2006-01-02 15:04"), false, 11)
	}

	addStyledRun(doc.AddParagraph(""), "Summary", true, 14)
	addStyledRun(doc.AddParagraph(""), strings.TrimSpace(r.Summary), false, fontSize)

	addStyledRun(doc.AddParagraph(""), "Transcript", true, 14)
	for _, para := range paragraphs(r.Transcript, w.sentencesPerParagraph) {
		addStyledRun(doc.AddParagraph(""), para, false, fontSize)
	}

	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("save docx: %w", err)
	}

	w.logger.Info(ctx, "Report written: %s", path)
	return nil
}

// paragraphs groups sentences of text into blocks of n.
func paragraphs(text string, n int) []string {
	sentences := strings.Split(strings.TrimSpace(text), ". ")
	var out []string
	var cur []string
	for i, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if i < len(sentences)-1 {
			s += "."
		}
		cur = append(cur, s)
		if len(cur) == n {
			out = append(out, strings.Join(cur, " "))
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
