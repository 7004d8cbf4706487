package acquire

import (
	"bytes"
	"cardstats/internal/manifest"
	"cardstats/internal/period"
	"cardstats/internal/workbook"
	"cardstats/lib/fsutil"
	"cardstats/lib/htmlutil"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Document is a downloadable file linked from the listing page.
type Document struct {
	Name string
	URL  string
}

// documentName is the unescaped last path segment of the url.
func documentName(link *url.URL) string {
	name := path.Base(link.Path)
	unescaped, err := url.PathUnescape(name)
	if err == nil {
		name = unescaped
	}
	return name
}

// ListDocuments fetches the listing page and returns the linked documents
// whose file name matches the link pattern, deduplicated and sorted by url.
func (c *Client) ListDocuments(ctx context.Context) ([]Document, error) {
	ctx, span := tracer.Start(ctx, "ListDocuments")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(c.listing.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch listing")
		c.tel.ReportBroken(ctx, report_list_documents, "url", c.listing.String(), "err", err)
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: %s", c.listing, res.Status())
		span.SetStatus(codes.Error, res.Status())
		c.tel.ReportBroken(ctx, report_list_documents, "url", c.listing.String(), "err", err)
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse listing")
		return nil, err
	}

	seen := map[string]bool{}
	var documents []Document
	for _, anchor := range htmlutil.GetAnchors(ctx, c.listing, doc.Selection) {
		link, err := url.Parse(anchor.Href)
		if err != nil {
			continue
		}
		link.Fragment = ""
		name := documentName(link)
		if !c.pattern.MatchString(name) || seen[link.String()] {
			continue
		}
		seen[link.String()] = true
		documents = append(documents, Document{Name: name, URL: link.String()})
	}
	slices.SortFunc(documents, func(a, b Document) int {
		return strings.Compare(a.URL, b.URL)
	})

	span.SetAttributes(attribute.Int("documents", len(documents)))
	if len(documents) == 0 {
		slog.WarnContext(ctx, "no documents found on the listing page, it may be blocked or have changed", "url", c.listing.String())
	}
	return documents, nil
}

// LocalName is the file name a document is saved as, its extension is
// lowercased.
func LocalName(doc Document) string {
	ext := filepath.Ext(doc.Name)
	return strings.TrimSuffix(doc.Name, ext) + strings.ToLower(ext)
}

// Download saves the document into `dir` and returns the written path.
func (c *Client) Download(ctx context.Context, doc Document, dir string) (string, error) {
	ctx, span := tracer.Start(ctx, "Download")
	defer span.End()
	span.SetAttributes(attribute.String("url", doc.URL))

	res, err := c.http.R().
		SetContext(ctx).
		Get(doc.URL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch document")
		return "", err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return "", fmt.Errorf("fetch %s: %s", doc.URL, res.Status())
	}

	body := res.Body()
	if workbook.DetectFormat(body) == workbook.FormatUnknown {
		c.tel.ReportWarning(ctx, report_not_spreadsheet, "url", doc.URL, "content_type", res.Header().Get("content-type"))
	}

	dest := filepath.Join(dir, LocalName(doc))
	err = fsutil.WriteFileAtomic(dest, body, 0644)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write document")
		return "", err
	}
	return dest, nil
}

type Result struct {
	Entries []manifest.Entry
	Failed  []Document
}

// Acquire downloads every listed document into `dir` and replaces the
// manifest at `manifestPath` with the downloaded ones. A failed download is
// reported and left out of the manifest.
func (c *Client) Acquire(ctx context.Context, dir, manifestPath string) (Result, error) {
	ctx, span := tracer.Start(ctx, "Acquire")
	defer span.End()

	documents, err := c.ListDocuments(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, doc := range documents {
		err := ctx.Err()
		if err != nil {
			return result, err
		}

		slog.InfoContext(ctx, "downloading", "name", doc.Name)
		dest, err := c.Download(ctx, doc, dir)
		if err != nil {
			c.tel.ReportBroken(ctx, report_download, "url", doc.URL, "err", err)
			result.Failed = append(result.Failed, doc)
			continue
		}

		entry := manifest.Entry{Path: dest, SourceURL: doc.URL}
		p, err := period.FromFilename(filepath.Base(dest))
		if err == nil {
			entry.Year = &p.Year
			entry.Month = &p.Month
		}
		result.Entries = append(result.Entries, entry)
	}

	err = manifest.Write(manifestPath, result.Entries)
	if err != nil {
		return result, err
	}
	span.SetAttributes(
		attribute.Int("downloaded", len(result.Entries)),
		attribute.Int("failed", len(result.Failed)),
	)
	slog.InfoContext(ctx, "saved manifest", "path", manifestPath, "entries", len(result.Entries))
	return result, nil
}
