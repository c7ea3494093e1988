package notify

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
)

var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.+)$`)

// ParseDataURL splits a base64 data: URL into its MIME type and payload.
func ParseDataURL(s string) (string, []byte, error) {
	m := dataURLPattern.FindStringSubmatch(s)
	if m == nil {
		return "", nil, fmt.Errorf("not a base64 data url")
	}

	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", nil, fmt.Errorf("decode data url: %w", err)
	}
	return m[1], data, nil
}

// InspirationImage is one customer-supplied picture, ready for the admin mail.
type InspirationImage struct {
	Filename string
	DataURL  template.URL
}

// ImageAttachments decodes the data URLs the quote form sends. Entries that
// do not parse are skipped and counted.
func ImageAttachments(images []string) ([]mailer.Attachment, []InspirationImage, int) {
	var (
		attachments []mailer.Attachment
		inline      []InspirationImage
		skipped     int
	)

	for i, img := range images {
		mime, data, err := ParseDataURL(img)
		if err != nil {
			skipped++
			continue
		}

		ext := "jpg"
		if _, sub, ok := strings.Cut(mime, "/"); ok && sub != "" {
			ext = sub
		}
		name := fmt.Sprintf("inspiration-%d.%s", i+1, ext)

		attachments = append(attachments, mailer.Attachment{
			Filename:    name,
			ContentType: mime,
			Content:     data,
		})
		inline = append(inline, InspirationImage{Filename: name, DataURL: template.URL(img)})
	}

	return attachments, inline, skipped
}
