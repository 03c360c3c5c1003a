package service

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText flattens a generated email body: table cells are tab separated
// and block elements end a line.
func PlainText(body string) string {
	z := html.NewTokenizer(strings.NewReader(body))

	var (
		b    strings.Builder
		line []string
		cell strings.Builder
	)
	flushCell := func(keepEmpty bool) {
		if s := strings.TrimSpace(cell.String()); s != "" || keepEmpty {
			line = append(line, s)
		}
		cell.Reset()
	}
	flushLine := func() {
		flushCell(false)
		if len(line) > 0 {
			b.WriteString(strings.Join(line, "\t"))
			b.WriteByte('\n')
		}
		line = line[:0]
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			flushLine()
			return strings.TrimRight(b.String(), "\n")
		case html.TextToken:
			cell.Write(z.Text())
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "th", "td":
				flushCell(true)
			case "tr", "p", "h2", "div":
				flushLine()
			}
		case html.SelfClosingTagToken, html.StartTagToken:
			name, _ := z.TagName()
			if string(name) == "br" {
				flushLine()
			}
		}
	}
}
