package models

// Track is an entry in the built-in playlist
type Track struct {
	Name string
	URL  string
}

// DefaultTracks is played when no custom audio is set
var DefaultTracks = []Track{
	{Name: "Love Me Like You Do", URL: "https://youtube.com/shorts/AuUo7vXhFYQ"},
	{Name: "Ordinary", URL: "https://youtube.com/shorts/w4i9Ln86O7w"},
	{Name: "All Of Me", URL: "https://youtube.com/shorts/HY-vI9W9cpc"},
	{Name: "A Thousand Years", URL: "https://youtube.com/shorts/okiYaQ6ZGsc"},
	{Name: "Perfect", URL: "https://youtube.com/shorts/7BspO6r4Eog"},
	{Name: "Until I Found You", URL: "https://youtube.com/shorts/_oTL065WEB0"},
}

// CurrentTrack resolves what should play for the record. The external
// link takes precedence over an uploaded payload.
func CurrentTrack(r ProgressRecord) Track {
	switch {
	case r.ExternalAudioLink != "":
		return Track{Name: "Linked track", URL: r.ExternalAudioLink}
	case r.CustomAudioPayload != "":
		return Track{Name: "Your romantic track", URL: r.CustomAudioPayload}
	}
	idx := r.CurrentTrackIndex
	if idx < 0 || idx >= len(DefaultTracks) {
		idx = 0
	}
	return DefaultTracks[idx]
}
