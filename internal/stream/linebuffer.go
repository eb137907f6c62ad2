package stream

import "strings"

// lineBuffer reassembles complete lines from fragments that arrive at
// arbitrary boundaries. The segment after the last terminator is retained
// until a later fragment completes it; a line is never yielded before its
// terminator has been seen.
type lineBuffer struct {
	rest strings.Builder
}

func (b *lineBuffer) feed(fragment string) []string {
	b.rest.WriteString(fragment)
	data := b.rest.String()
	if !strings.Contains(data, "\n") {
		return nil
	}
	b.rest.Reset()

	parts := strings.Split(data, "\n")
	b.rest.WriteString(parts[len(parts)-1])
	return parts[:len(parts)-1]
}

func (b *lineBuffer) reset() {
	b.rest.Reset()
}
