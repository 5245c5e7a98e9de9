package documents

import "strings"

// defaultPageChars is the per-page character budget for the reader view.
const defaultPageChars = 1500

// SplitPages renders extracted text as reader pages using naive paragraph
// splitting: paragraphs (blank-line separated) are packed into pages of
// roughly pageChars characters, never splitting a paragraph across pages.
func SplitPages(content string, pageChars int) []string {
	if pageChars <= 0 {
		pageChars = defaultPageChars
	}

	var paragraphs []string
	for _, p := range strings.Split(content, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	if len(paragraphs) == 0 {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			paragraphs = []string{trimmed}
		} else {
			return nil
		}
	}

	var pages []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			pages = append(pages, current.String())
			current.Reset()
		}
	}
	for _, para := range paragraphs {
		// A paragraph longer than a whole page gets hard-chunked on its own.
		if len(para) > pageChars {
			flush()
			for _, chunk := range chunkString(para, pageChars) {
				pages = append(pages, chunk)
			}
			continue
		}
		if current.Len() > 0 && current.Len()+len(para) > pageChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()
	return pages
}

func chunkString(s string, size int) []string {
	var chunks []string
	runes := []rune(s)
	for len(runes) > 0 {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
