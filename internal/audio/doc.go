// Package audio provides MP3 tag writing, tag read-back and playlist
// generation.
//
// # ID3 Tagging
//
// Use the Tagger to write a resolved track to an MP3 file:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.SaveTags(path, track, artworkBytes)
//
// The tagger writes an ID3v2.4 tag with:
//   - Artist (TPE1), Album (TALB)
//   - Year (TDRC), Genre (TCON)
//   - Title (TIT2), Track Number (TRCK)
//   - Cover Art (APIC, optional)
//
// With the default configuration every earlier ID3v2 frame is dropped and
// an ID3v1 trailer is removed, so only the written values remain.
//
// # Verification
//
// A Verifier reads the tag back with an independent decoder and reports
// every field that differs from the written track:
//
//	err := audio.NewVerifier(cfg).Verify(path, track)
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true) // extended M3U
//	content := creator.CreatePlaylist(album, entries)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
//   - ZPL (Zune Media Player)
package audio
