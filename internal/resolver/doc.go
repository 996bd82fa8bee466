// Package resolver derives the metadata of each file of a batch.
//
// Values come from three sources: text extracted from the filename by a
// compiled filename format, the Common Tags entered once for the batch, and
// the values resolved on an earlier pass. Extraction always wins when the
// field's marker is in the format.
//
//	p, _ := pattern.Compile("[tracknum] - [title]")
//	common := model.CommonTags{model.FieldArtist: "Duke Ellington"}
//	track, err := resolver.Resolve(p, model.Source{Path: "04 - Solitude.mp3", Position: 4}, common, nil)
//	// track.Get(model.FieldTitle)  == "Solitude"
//	// track.Get(model.FieldArtist) == "Duke Ellington"
package resolver
