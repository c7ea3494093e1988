package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest_KeepsAttachmentContentType(t *testing.T) {
	req := buildRequest("Tamam Timber Magic <noreply@timbermagic.com>", Message{
		To:      []string{"tamam@timbermagic.com"},
		Cc:      []string{"office@timbermagic.com"},
		Subject: "New Quote Request from Dana (1 images)",
		HTML:    "<p>hi</p>",
		Attachments: []Attachment{
			{Filename: "inspiration-1.png", ContentType: "image/png", Content: []byte{0x89, 'P', 'N', 'G'}},
		},
	})

	assert.Equal(t, "Tamam Timber Magic <noreply@timbermagic.com>", req.From)
	assert.Equal(t, []string{"office@timbermagic.com"}, req.Cc)
	require.Len(t, req.Attachments, 1)
	assert.Equal(t, "inspiration-1.png", req.Attachments[0].Filename)
	assert.Equal(t, "image/png", req.Attachments[0].ContentType)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, req.Attachments[0].Content)
}

func TestResendMailer_RequiresRecipients(t *testing.T) {
	err := NewResendMailer("re_test", "a@b.c").Send(context.Background(), Message{Subject: "x"})
	assert.Error(t, err)
}

func TestNew_NoopWithoutKey(t *testing.T) {
	m := New("", "a@b.c")
	assert.ErrorIs(t, m.Send(context.Background(), Message{To: []string{"x@y.z"}}), ErrDisabled)
}
