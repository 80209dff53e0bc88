package mailsync

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/emersion/go-message/mail"
)

// parseBody extracts the text/plain and text/html parts from a raw
// RFC 5322 message. Attachments are ignored; only inline parts feed
// the log row.
func parseBody(raw []byte) (text, html string, err error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		// Not MIME, treat the whole payload as plain text
		return string(raw), "", nil
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", "", err
		}

		switch header := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, err := header.ContentType()
			if err != nil {
				continue
			}
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", "", err
			}
			switch {
			case strings.HasPrefix(contentType, "text/html"):
				if html == "" {
					html = string(body)
				}
			case strings.HasPrefix(contentType, "text/plain"):
				if text == "" {
					text = string(body)
				}
			}
		case *mail.AttachmentHeader:
			// drained implicitly by NextPart
			_ = header
		}
	}

	return text, html, nil
}
