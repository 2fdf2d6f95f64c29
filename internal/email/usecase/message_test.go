package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umailer-backend/internal/email/domain"
)

func TestParseMessageHeaders(t *testing.T) {
	parsed, err := parseMessage(invoiceMessage("Mon, 15 Jan 2024 10:30:00 +0500", "report.pdf"))
	require.NoError(t, err)

	// Display name is discarded, only the address survives.
	assert.Equal(t, "billing@example.com", parsed.from)
	assert.Equal(t, "January invoice", parsed.subject)
	assert.Equal(t, 15, parsed.date.Day())

	_, offset := parsed.date.Zone()
	assert.Equal(t, 5*60*60, offset)
}

func TestInlineDispositionStillQualifies(t *testing.T) {
	// An inline non-image part that carries a Content-Disposition header is
	// extracted just like an attachment-disposition one.
	raw := crlf(
		"From: mailer@example.com",
		"Subject: daily export",
		"Date: Mon, 15 Jan 2024 08:00:00 +0500",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="b"`,
		"",
		"--b",
		`Content-Type: text/csv; name="export.csv"`,
		`Content-Disposition: inline; filename="export.csv"`,
		"",
		"a;b;c",
		"--b--",
		"",
	)
	session := &fakeSession{
		uids:     []uint32{3},
		messages: []domain.FetchedMessage{{UID: 3, Body: raw}},
	}
	uc, dir := newTestUsecase(t, &fakeProvider{session: session})

	response, err := uc.DownloadEmails(context.Background(), DownloadOptions{
		IsReadonly: true,
		DateFrom:   "2024-01-01",
		DateTo:     "2024-01-31",
	})
	require.NoError(t, err)
	require.Len(t, response.Emails, 1)
	require.Len(t, response.Emails[0].Attachments, 1)

	files := attachmentFiles(t, dir, "mailer@example.com")
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "export.csv"))
}

func TestFilenameFallsBackToContentTypeName(t *testing.T) {
	raw := crlf(
		"From: mailer@example.com",
		"Subject: report",
		"Date: Mon, 15 Jan 2024 08:00:00 +0500",
		"MIME-Version: 1.0",
		`Content-Type: multipart/mixed; boundary="b"`,
		"",
		"--b",
		`Content-Type: application/octet-stream; name="data.bin"`,
		"Content-Disposition: attachment",
		"Content-Transfer-Encoding: base64",
		"",
		"AAEC",
		"--b--",
		"",
	)
	session := &fakeSession{
		uids:     []uint32{4},
		messages: []domain.FetchedMessage{{UID: 4, Body: raw}},
	}
	uc, dir := newTestUsecase(t, &fakeProvider{session: session})

	_, err := uc.DownloadEmails(context.Background(), DownloadOptions{
		IsReadonly: true,
		DateFrom:   "2024-01-01",
		DateTo:     "2024-01-31",
	})
	require.NoError(t, err)

	files := attachmentFiles(t, dir, "mailer@example.com")
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0], "data.bin"))
	assert.Contains(t, filepath.Base(files[0]), "_INBOX_4_")
}

func TestSinglePartMessageWithoutAttachments(t *testing.T) {
	raw := crlf(
		"From: someone@example.com",
		"Subject: hello",
		"Date: Mon, 15 Jan 2024 08:00:00 +0500",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"Just a plain body, nothing to extract.",
		"",
	)
	session := &fakeSession{
		uids:     []uint32{8},
		messages: []domain.FetchedMessage{{UID: 8, Body: raw}},
	}
	uc, dir := newTestUsecase(t, &fakeProvider{session: session})

	response, err := uc.DownloadEmails(context.Background(), DownloadOptions{
		IsReadonly: true,
		DateFrom:   "2024-01-01",
		DateTo:     "2024-01-31",
	})
	require.NoError(t, err)

	require.Len(t, response.Emails, 1)
	assert.Empty(t, response.Emails[0].Attachments)
	assert.Empty(t, attachmentFiles(t, dir, "someone@example.com"))
}
