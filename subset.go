package code2pdf

import (
	"slices"
	"sync"

	"github.com/alnah/go-code2pdf/internal/pdfdoc"
)

// taggedPage is a finished page and the walk ordinal of its source file.
type taggedPage struct {
	page    pdfdoc.Page
	ordinal int
}

// documentSubset collects pages and images from concurrent builders.
// The lock is held only for a single append or registration.
type documentSubset struct {
	mu     sync.Mutex
	pages  []taggedPage
	images []pdfdoc.Image
}

func newDocumentSubset() *documentSubset {
	return &documentSubset{}
}

// addPage records a page produced for the file at ordinal.
func (s *documentSubset) addPage(p pdfdoc.Page, ordinal int) {
	s.mu.Lock()
	s.pages = append(s.pages, taggedPage{page: p, ordinal: ordinal})
	s.mu.Unlock()
}

// addImage registers an image and returns its id.
func (s *documentSubset) addImage(img pdfdoc.Image) pdfdoc.ImageID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, img)
	return pdfdoc.ImageID(len(s.images) - 1)
}

// discard drops the pages recorded for the file at ordinal.
func (s *documentSubset) discard(ordinal int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = slices.DeleteFunc(s.pages, func(tp taggedPage) bool {
		return tp.ordinal == ordinal
	})
}

// pageCount returns the number of pages recorded so far.
func (s *documentSubset) pageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// document orders pages by ordinal and moves pages and images into a
// Document. Pages of one file keep the order they were produced in. The
// subset is empty afterwards.
func (s *documentSubset) document(title string) *pdfdoc.Document {
	s.mu.Lock()
	pages, images := s.pages, s.images
	s.pages, s.images = nil, nil
	s.mu.Unlock()

	slices.SortStableFunc(pages, func(a, b taggedPage) int {
		return a.ordinal - b.ordinal
	})

	doc := &pdfdoc.Document{
		Title:  title,
		Pages:  make([]pdfdoc.Page, len(pages)),
		Images: images,
	}
	for i, tp := range pages {
		doc.Pages[i] = tp.page
	}
	return doc
}
