package model

import "strconv"

// MinPadWidth is the smallest zero-pad width used for track numbers.
const MinPadWidth = 2

// PadWidth returns the zero-pad width for the track numbers of album.
//
// The width is the number of digits needed to write the count of tracks in
// the batch that belong to album, with a floor of MinPadWidth:
//
//	7 tracks   -> 2
//	12 tracks  -> 2
//	150 tracks -> 3
//
// Albums are compared by their current resolved value, so the result must be
// recomputed whenever album names are edited.
func PadWidth(tracks []*Track, album string) int {
	count := 0
	for _, t := range tracks {
		if t != nil && t.Album() == album {
			count++
		}
	}
	return padWidthFor(count)
}

// padWidthFor returns max(MinPadWidth, digitCount(n)).
func padWidthFor(n int) int {
	width := len(strconv.Itoa(n))
	if width < MinPadWidth {
		width = MinPadWidth
	}
	return width
}

// AlbumGroups returns the distinct album names of tracks in first-seen order
// together with the tracks of each album.
func AlbumGroups(tracks []*Track) ([]string, map[string][]*Track) {
	var order []string
	groups := make(map[string][]*Track)
	for _, t := range tracks {
		album := t.Album()
		if _, ok := groups[album]; !ok {
			order = append(order, album)
		}
		groups[album] = append(groups[album], t)
	}
	return order, groups
}
