package corpus

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxChunkChars bounds chunk content so retrieval units stay semantically
// coherent and within model context budgets.
const MaxChunkChars = 1600

// TextChunk is one retrieval unit produced from a source document
type TextChunk struct {
	Content      string
	PageRef      string // Empty when the source format has no pages
	SectionLabel string // Most recent section heading seen, if any
}

// sectionHeadingPattern recognises numbered manual headings like
// "7.2 Minimum Rest" or "ORO.FTL.235 Rest periods".
var sectionHeadingPattern = regexp.MustCompile(`^(?:\d+(?:\.\d+)+|[A-Z]{2,4}\.[A-Z]{2,4}\.\d+)\s+\S`)

// ChunkPages splits extracted pages into paragraph-respecting chunks bounded
// by maxChars. Paragraphs are kept whole where possible; a paragraph that
// alone exceeds the bound is split at the character boundary as a last
// resort. Each chunk records the page it starts on and the section heading
// in effect at that point.
func ChunkPages(pages []Page, maxChars int) []TextChunk {
	if maxChars <= 0 {
		maxChars = MaxChunkChars
	}

	var chunks []TextChunk
	var buffer []string
	bufferLen := 0
	currentPage := 0
	currentSection := ""
	bufferPage := 0
	bufferSection := ""

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		content := strings.TrimSpace(strings.Join(buffer, "\n\n"))
		if content != "" {
			chunk := TextChunk{
				Content:      content,
				SectionLabel: bufferSection,
			}
			if bufferPage > 0 {
				chunk.PageRef = strconv.Itoa(bufferPage)
			}
			chunks = append(chunks, chunk)
		}
		buffer = nil
		bufferLen = 0
	}

	for _, page := range pages {
		currentPage = page.Number

		for _, para := range splitParagraphs(page.Text) {
			if heading := firstLine(para); sectionHeadingPattern.MatchString(heading) {
				currentSection = heading
			}

			// Oversized paragraph: flush what we have, then hard-split it
			if len(para) > maxChars {
				flush()
				for _, piece := range splitAt(para, maxChars) {
					chunk := TextChunk{Content: piece, SectionLabel: currentSection}
					if currentPage > 0 {
						chunk.PageRef = strconv.Itoa(currentPage)
					}
					chunks = append(chunks, chunk)
				}
				continue
			}

			if bufferLen+len(para) > maxChars {
				flush()
			}
			if len(buffer) == 0 {
				bufferPage = currentPage
				bufferSection = currentSection
			}
			buffer = append(buffer, para)
			bufferLen += len(para) + 2
		}
	}
	flush()

	return chunks
}

// splitParagraphs breaks text on blank lines, trimming each paragraph
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	raw := strings.Split(text, "\n\n")

	var paragraphs []string
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}

// splitAt cuts a string into pieces of at most maxChars characters
func splitAt(s string, maxChars int) []string {
	var pieces []string
	for len(s) > maxChars {
		pieces = append(pieces, strings.TrimSpace(s[:maxChars]))
		s = s[maxChars:]
	}
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		pieces = append(pieces, trimmed)
	}
	return pieces
}

// firstLine returns the first non-empty line of a paragraph
func firstLine(para string) string {
	for _, line := range strings.Split(para, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// BuildEmbeddingInput prefixes chunk content with its source metadata so the
// document embedding carries provenance context, mirroring how query
// embeddings are framed.
func BuildEmbeddingInput(sourceDocument string, chunk TextChunk) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[SOURCE: %s]\n", sourceDocument))
	if chunk.SectionLabel != "" {
		b.WriteString(fmt.Sprintf("[SECTION: %s]\n", chunk.SectionLabel))
	}
	if chunk.PageRef != "" {
		b.WriteString(fmt.Sprintf("[PAGE: %s]\n", chunk.PageRef))
	}
	b.WriteString("\n")
	b.WriteString(chunk.Content)

	return b.String()
}
