package feed

import "github.com/vmunix/homefeed/pkg/imageref"

// Section is one row of the home feed. The set of implementations is closed:
// LibraryList, CuratedSection and ViewSection.
type Section interface {
	ID() string
	Name() string
	Items() []imageref.MediaItem
	section()
}

// Well-known section ids.
const (
	LibrariesID        = "libraries"
	ContinueWatchingID = "continue-watching"
	NextUpID           = "next-up"
	DownloadsID        = "downloads"
)

// LibraryList is the row of the user's libraries.
type LibraryList struct {
	Title     string
	Libraries []imageref.MediaItem
}

func (s LibraryList) ID() string {
	return LibrariesID
}

func (s LibraryList) Name() string {
	return s.Title
}

func (s LibraryList) Items() []imageref.MediaItem {
	return s.Libraries
}

func (LibraryList) section() {}

// CuratedSection is a server-curated row such as Continue Watching.
type CuratedSection struct {
	Key   string
	Title string
	Media []imageref.MediaItem
}

func (s CuratedSection) ID() string {
	return s.Key
}

func (s CuratedSection) Name() string {
	return s.Title
}

func (s CuratedSection) Items() []imageref.MediaItem {
	return s.Media
}

func (CuratedSection) section() {}

// ViewSection is the latest items of one library.
type ViewSection struct {
	ViewID string
	Title  string
	Media  []imageref.MediaItem
}

func (s ViewSection) ID() string {
	return s.ViewID
}

func (s ViewSection) Name() string {
	return s.Title
}

func (s ViewSection) Items() []imageref.MediaItem {
	return s.Media
}

func (ViewSection) section() {}

// State is the provider's current home feed. The set of implementations is
// closed: Loading, Ready and Failed.
type State interface {
	state()
}

// Loading means a load is in progress and nothing has been published yet.
type Loading struct{}

// Ready carries the aggregated sections in display order.
type Ready struct {
	Sections []Section
}

// Failed carries the load error.
type Failed struct {
	Err error
}

func (Loading) state() {}

func (Ready) state() {}

func (Failed) state() {}
