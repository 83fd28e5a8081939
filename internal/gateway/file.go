package gateway

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/file"

	"github.com/creatorhub/paygate/internal/domain"
)

// File is the processor's file descriptor tagged with the caller's logical
// document type. The tag is local; the processor only knows the purpose.
type File struct {
	*stripe.File
	DocumentType string `json:"document_type"`
}

// UploadVerificationDocument fetches a document by URL and streams it to the
// processor's upload endpoint under the given purpose.
func (g *Gateway) UploadVerificationDocument(ctx context.Context, sourceURL, purpose, docType string) (*File, error) {
	if sourceURL == "" {
		return nil, domain.MissingField("source url")
	}
	if purpose == "" {
		return nil, domain.MissingField("purpose")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid document url: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch document: status %d", resp.StatusCode)
	}

	ctx, done := g.startOp(ctx, "file_upload")
	params := &stripe.FileParams{
		FileReader: resp.Body,
		Filename:   stripe.String(path.Base(req.URL.Path)),
		Purpose:    stripe.String(purpose),
	}
	params.Context = ctx

	fc := &file.Client{BUploads: g.uploads, Key: g.key()}
	f, err := fc.New(params)
	done(err)
	if err != nil {
		return nil, fmt.Errorf("stripe file upload: %w", err)
	}

	return &File{File: f, DocumentType: docType}, nil
}
