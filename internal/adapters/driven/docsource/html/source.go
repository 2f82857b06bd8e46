// Package html loads review bundles exported as a single HTML file.
//
// The bundle format is the similarity checker's export: one
// <section data-page="N"> per page, <mark> elements for highlighted
// spans, and an <aside class="match-card"> manifest describing each
// detected source.
package html

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fsnotify/fsnotify"

	"github.com/redline-labs/redline-cli/internal/core/domain"
	"github.com/redline-labs/redline-cli/internal/core/ports/driven"
	"github.com/redline-labs/redline-cli/internal/logger"
)

// Source reads a review bundle from an HTML file on disk.
type Source struct {
	path string
}

// Compile-time check that Source satisfies the port.
var _ driven.DocumentSource = (*Source)(nil)

// NewSource creates a document source for the bundle at path.
func NewSource(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("bundle path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bundle path: %w", err)
	}
	return &Source{path: abs}, nil
}

// Path returns the absolute path of the bundle file.
func (s *Source) Path() string {
	return s.path
}

// Load reads and parses the bundle file.
func (s *Source) Load(ctx context.Context) (*domain.ReviewBundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bundle: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBundleInvalid, err)
	}

	return parseBundle(doc)
}

// Watch reloads on file changes until ctx is cancelled. The checker
// injects highlights asynchronously after the initial export, so the
// bundle file is rewritten in place; fn fires on every write.
func (s *Source) Watch(ctx context.Context, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors and
	// exporters replace files via rename, which drops file-level
	// watches.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to watch bundle directory: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Bundle changed on disk: %s", event.Op)
			fn()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Bundle watcher error: %v", err)
		}
	}
}

func parseBundle(doc *goquery.Document) (*domain.ReviewBundle, error) {
	bundle := &domain.ReviewBundle{}

	root := doc.Find("article[data-document-id]").First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("%w: missing document root", domain.ErrBundleInvalid)
	}
	bundle.Document.ID = root.AttrOr("data-document-id", "")
	bundle.Document.Title = strings.TrimSpace(root.Find("header h1").First().Text())
	bundle.Document.Author = strings.TrimSpace(root.Find("header [data-author]").First().Text())

	var parseErr error
	root.Find("section[data-page]").EachWithBreak(func(_ int, sec *goquery.Selection) bool {
		number, err := strconv.Atoi(sec.AttrOr("data-page", ""))
		if err != nil || number < 1 {
			parseErr = fmt.Errorf("%w: bad page number %q", domain.ErrBundleInvalid, sec.AttrOr("data-page", ""))
			return false
		}

		content := sec.Text()
		bundle.Document.Pages = append(bundle.Document.Pages, domain.Page{
			Number:  number,
			Content: content,
		})

		highlights, err := parseHighlights(sec, number)
		if err != nil {
			parseErr = err
			return false
		}
		bundle.Highlights = append(bundle.Highlights, highlights...)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(bundle.Document.Pages) == 0 {
		return nil, fmt.Errorf("%w: no pages", domain.ErrBundleInvalid)
	}

	cards, err := parseMatchCards(doc)
	if err != nil {
		return nil, err
	}
	bundle.MatchCards = cards

	logger.Debug("Parsed bundle: %d pages, %d highlights, %d match cards",
		len(bundle.Document.Pages), len(bundle.Highlights), len(bundle.MatchCards))
	return bundle, nil
}

// parseHighlights extracts <mark> spans from one page section. Offsets
// are measured in runes over the page's plain text, which matches the
// coordinate space the layout oracle measures against.
func parseHighlights(sec *goquery.Selection, page int) ([]domain.Highlight, error) {
	var (
		highlights []domain.Highlight
		offset     int
		parseErr   error
	)

	sec.Contents().EachWithBreak(func(_ int, node *goquery.Selection) bool {
		text := node.Text()
		if goquery.NodeName(node) != "mark" {
			offset += len([]rune(text))
			return true
		}

		id := node.AttrOr("data-highlight-id", "")
		if id == "" {
			parseErr = fmt.Errorf("%w: mark without data-highlight-id on page %d", domain.ErrBundleInvalid, page)
			return false
		}

		runeLen := len([]rune(text))
		highlights = append(highlights, domain.Highlight{
			ID:          id,
			Page:        page,
			StartOffset: offset,
			EndOffset:   offset + runeLen,
			Text:        text,
			SourceID:    node.AttrOr("data-source-id", ""),
			CommentID:   node.AttrOr("data-comment-id", ""),
		})
		offset += runeLen
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return highlights, nil
}

func parseMatchCards(doc *goquery.Document) ([]domain.MatchCard, error) {
	var (
		cards    []domain.MatchCard
		parseErr error
	)

	doc.Find("aside.match-card").EachWithBreak(func(_ int, aside *goquery.Selection) bool {
		id := aside.AttrOr("data-source-id", "")
		if id == "" {
			parseErr = fmt.Errorf("%w: match card without data-source-id", domain.ErrBundleInvalid)
			return false
		}

		percent, err := strconv.ParseFloat(aside.AttrOr("data-similarity", ""), 64)
		if err != nil || percent < 0 || percent > 100 {
			parseErr = fmt.Errorf("%w: bad similarity on card %s", domain.ErrBundleInvalid, id)
			return false
		}

		card := domain.MatchCard{
			ID:                     id,
			SourceName:             strings.TrimSpace(aside.Find(".source-name").First().Text()),
			SimilarityPercent:      percent,
			IsCited:                aside.AttrOr("data-cited", "") == "true",
			AcademicIntegrityIssue: aside.AttrOr("data-integrity-issue", "") == "true",
		}

		aside.Find("[data-match-highlight]").Each(func(_ int, li *goquery.Selection) {
			card.Matches = append(card.Matches, domain.Match{
				HighlightID: li.AttrOr("data-match-highlight", ""),
			})
		})

		cards = append(cards, card)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return cards, nil
}
