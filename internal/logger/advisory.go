package logger

import (
	"io"
	"log"
	"strings"
	"sync"
)

// Advisory payload dump channel, separate from the main log stream so that
// full prompts/responses can be captured to a dedicated file without
// flooding regular logs.

var (
	advMu       sync.Mutex
	advLog      *log.Logger
	advDumpBody bool
)

func SetAdvisoryWriter(w io.Writer) {
	advMu.Lock()
	defer advMu.Unlock()
	if w == nil {
		advLog = nil
		return
	}
	advLog = log.New(w, "", log.LstdFlags)
}

func EnableAdvisoryPayloadDump(enabled bool) {
	advMu.Lock()
	advDumpBody = enabled
	advMu.Unlock()
}

type advisorySection struct {
	Title string
	Body  string
}

func logAdvisory(kind, provider string, sections []advisorySection) {
	advMu.Lock()
	l := advLog
	advMu.Unlock()
	if l == nil {
		return
	}
	var b strings.Builder
	b.WriteString("[ADVISORY][")
	b.WriteString(kind)
	b.WriteString("]")
	if provider != "" {
		b.WriteString("[")
		b.WriteString(provider)
		b.WriteString("]")
	}
	b.WriteString("\n")
	for _, sec := range sections {
		title := strings.TrimSpace(sec.Title)
		if title == "" {
			title = "CONTENT"
		}
		b.WriteString("--- ")
		b.WriteString(title)
		b.WriteString(" ---\n")
		b.WriteString(sec.Body)
		if !strings.HasSuffix(sec.Body, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("=====\n")
	l.Print(b.String())
}

func AdvisoryRequest(provider, systemPrompt, userPrompt, payload string) {
	sections := []advisorySection{
		{Title: "SYSTEM", Body: systemPrompt},
		{Title: "USER", Body: userPrompt},
	}
	advMu.Lock()
	dump := advDumpBody
	advMu.Unlock()
	if dump && strings.TrimSpace(payload) != "" {
		sections = append(sections, advisorySection{Title: "PAYLOAD", Body: payload})
	}
	logAdvisory("request", provider, sections)
}

func AdvisoryResponse(provider, raw string) {
	logAdvisory("response", provider, []advisorySection{{Title: "RAW", Body: raw}})
}
