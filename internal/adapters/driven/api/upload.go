package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

// UploadFile attaches a file to a contact via a multipart request.
// onProgress (may be nil) receives the transfer percentage, computed as
// round(sent * 100 / total) over the encoded request body, so it is
// non-decreasing and ends at 100.
func (c *Client) UploadFile(ctx context.Context, creds *domain.Credentials, contactID, name string, r io.Reader, size int64, onProgress driven.ProgressFunc) (domain.Attachment, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("credentials", creds.Payload()); err != nil {
		return domain.Attachment{}, err
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return domain.Attachment{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return domain.Attachment{}, err
	}
	if err := writer.Close(); err != nil {
		return domain.Attachment{}, err
	}

	total := int64(buf.Len())
	body := &progressReader{r: &buf, total: total, onProgress: onProgress}

	endpoint := c.endpoint("/contacts/" + url.PathEscape(contactID) + "/files")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return domain.Attachment{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = total

	respBody, err := c.do(req)
	if err != nil {
		return domain.Attachment{}, err
	}

	logger.Debug("Uploaded %s (%s) to contact %s", name, domain.FormatFileSize(size), contactID)

	var att domain.Attachment
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &att); err != nil {
			return domain.Attachment{}, errUnexpected
		}
	}
	if att.Name == "" {
		att.Name = name
	}
	if att.Size == 0 {
		att.Size = size
	}
	return att, nil
}

// progressReader reports transfer progress as the request body drains.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	onProgress driven.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.onProgress != nil && p.total > 0 {
			p.onProgress(int(math.Round(float64(p.sent) * 100 / float64(p.total))))
		}
	}
	return n, err
}
