// Package model defines the core data structures used throughout
// the mp3tagger application.
//
// # Fields
//
// Field is one of the six taggable attributes of a track: title, artist,
// album, year, genre and tracknum. Each field has a template marker:
//
//	model.FieldArtist.Marker() // "[artist]"
//
// # Track
//
// Track is the resolved metadata of one discovered file. Every value carries
// an Origin telling which source decided it (filename, common tags, previous
// pass, default or user input):
//
//	track := model.NewTrack(model.Source{Path: "04 - Solitude.mp3", Position: 4})
//	track.Set(model.FieldTitle, "Solitude", model.OriginFilename)
//
// # Output Filenames
//
// PadWidth computes the zero-pad width of an album's track numbers and
// BuildFileName joins the padded number and title:
//
//	width := model.PadWidth(tracks, track.Album())
//	name, err := model.BuildFileName(track, width) // "04-Solitude.mp3"
package model
