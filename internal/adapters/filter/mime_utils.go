package filter

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/jhillyerd/enmime"
)

// FlattenMessage decodes an RFC 5322 message with enmime and renders it in the
// form the scanner expects: a From line, a Subject line, then the text part
// and the HTML part. HTML is kept as markup so input fields stay visible.
func FlattenMessage(raw []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to parse message: %w", err)
	}

	var b strings.Builder
	if from := env.GetHeader("From"); from != "" {
		fmt.Fprintf(&b, "From: %s\n", from)
	}
	if subject := env.GetHeader("Subject"); subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", subject)
	}
	b.WriteString("\n")

	if text := strings.TrimSpace(env.Text); text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
	if html := strings.TrimSpace(env.HTML); html != "" {
		b.WriteString(html)
		b.WriteString("\n")
	}

	return b.String(), nil
}

// LooksLikeMIME reports whether raw starts with a header block that declares
// MIME structure. Pasted text never does, so it is scanned as is.
func LooksLikeMIME(raw []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			return false
		}
		// folded header continuation
		if line[0] == ' ' || line[0] == '\t' {
			if first {
				return false
			}
			continue
		}
		name, _, ok := strings.Cut(line, ":")
		if !ok || name == "" || strings.ContainsAny(name, " \t") {
			return false
		}
		first = false
		switch strings.ToLower(name) {
		case "mime-version", "content-type", "content-transfer-encoding":
			return true
		}
	}
	return false
}

// PrepareText flattens MIME input and passes everything else through
// unchanged. Messages enmime cannot parse are scanned raw.
func PrepareText(raw []byte) string {
	if !LooksLikeMIME(raw) {
		return string(raw)
	}
	flat, err := FlattenMessage(raw)
	if err != nil {
		return string(raw)
	}
	return flat
}

// splitHeader returns the header block and body of a raw message. The
// separator is included in head.
func splitHeader(raw []byte) (head, body []byte) {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return raw[:i+4], raw[i+4:]
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return raw[:i+2], raw[i+2:]
	}
	return raw, nil
}
