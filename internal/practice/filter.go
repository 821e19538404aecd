package practice

// SelectionFilter narrows which items fetch-next-item may return. The
// type filter travels as a request parameter; the playlist override is
// server-side state, so PlaylistIDs only mirrors what was last applied
// for display. Changing the filter never reloads the current item —
// callers invoke loadNext explicitly afterward.
type SelectionFilter struct {
	Type        string
	PlaylistIDs []string
}

// SetType selects a type filter; empty means all types.
func (f *SelectionFilter) SetType(t string) {
	f.Type = t
}

// ClearType removes the type filter.
func (f *SelectionFilter) ClearType() {
	f.Type = ""
}

// SetPlaylist records the ids applied server-side.
func (f *SelectionFilter) SetPlaylist(ids []string) {
	f.PlaylistIDs = append([]string(nil), ids...)
}

// ClearPlaylist forgets the applied playlist.
func (f *SelectionFilter) ClearPlaylist() {
	f.PlaylistIDs = nil
}

// HasPlaylist reports whether a playlist override is applied.
func (f *SelectionFilter) HasPlaylist() bool {
	return len(f.PlaylistIDs) > 0
}
