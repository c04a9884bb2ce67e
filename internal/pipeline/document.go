package pipeline

import (
	"errors"
	"fmt"
	"html"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrDocumentParse indicates the rendered HTML could not be parsed.
var ErrDocumentParse = errors.New("failed to parse rendered HTML")

// PrepareDocument returns a copy of htmlContent ready for a PDF engine:
// cssContent is appended to <head> as a <style> block, and when baseDir is
// set and the document has no <base> yet, one is inserted so that relative
// image and font references resolve against baseDir.
func PrepareDocument(htmlContent, cssContent, baseDir string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}

	head := doc.Find("head").First()
	if head.Length() == 0 {
		doc.Find("html").First().PrependHtml("<head></head>")
		head = doc.Find("head").First()
	}

	if baseDir != "" && doc.Find("base[href]").Length() == 0 {
		href, err := dirURL(baseDir)
		if err != nil {
			return "", err
		}
		head.PrependHtml(`<base href="` + html.EscapeString(href) + `">`)
	}

	if cssContent != "" {
		head.AppendHtml("<style>" + sanitizeCSS(cssContent) + "</style>")
	}

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentParse, err)
	}
	return out, nil
}

// sanitizeCSS escapes </ sequences so the stylesheet cannot close the
// surrounding style element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// dirURL converts a directory to an absolute file:// URL ending in a slash.
func dirURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory: %w", err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letters
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}
