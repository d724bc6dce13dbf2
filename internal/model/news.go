package model

// NewsItem is a single post scraped from a public channel. Items live only
// for the duration of one digest request and are never persisted.
type NewsItem struct {
	Channel string
	Text    string
}
