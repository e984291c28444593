package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

type blockKind int

const (
	blockText blockKind = iota
	blockHeading
	blockBullet
	blockNumbered
)

type block struct {
	kind  blockKind
	level int
	text  string
}

// WriteDocx renders summary into a .docx at outputPath. Markdown headings,
// bullets, numbered items and **bold** spans are kept as formatting.
func WriteDocx(title, source, summary, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("new document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	if source != "" {
		addStyledRun(doc.AddParagraph(""), "Source: "+source, false, fontSize)
	}
	addStyledRun(doc.AddParagraph(""), "Generated: "+time.Now().Format("2006-01-02 15:04"), false, fontSize)
	doc.AddParagraph("")

	for _, b := range parseBlocks(summary) {
		p := doc.AddParagraph("")
		switch b.kind {
		case blockHeading:
			addStyledRun(p, b.text, true, headingSize(b.level))
		case blockBullet:
			addRichText(p, "• "+b.text)
		default:
			addRichText(p, b.text)
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// parseBlocks splits summary text into one block per non-empty line.
func parseBlocks(text string) []block {
	var blocks []block
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		switch {
		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockHeading, level: len(m[1]), text: m[2]})
		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			blocks = append(blocks, block{kind: blockBullet, text: m[1]})
		case reNumbered.MatchString(trimmed):
			blocks = append(blocks, block{kind: blockNumbered, text: trimmed})
		default:
			blocks = append(blocks, block{kind: blockText, text: trimmed})
		}
	}
	return blocks
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// addRichText writes text as alternating plain and bold runs.
func addRichText(p *docx.Paragraph, text string) {
	for _, s := range splitBold(text) {
		run := p.AddText(cleanMarkdownInline(s.text)).Font(fontName).Size(fontSize).Color("000000")
		if s.bold {
			run.Bold(true)
		}
	}
}

type span struct {
	text string
	bold bool
}

func splitBold(text string) []span {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	var spans []span
	for i, part := range parts {
		if part != "" {
			spans = append(spans, span{text: part})
		}
		if i < len(matches) {
			spans = append(spans, span{text: matches[i][1], bold: true})
		}
	}
	return spans
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
