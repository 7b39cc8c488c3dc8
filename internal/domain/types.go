package domain

import "time"

// Game is a catalog entry as served by the remote store. The catalog core never
// creates or mutates games; they are administered elsewhere.
type Game struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Developer   string   `json:"developer"`
	Genre       []string `json:"genre"`
	Platforms   []string `json:"platforms"`
	ReleaseYear int      `json:"releaseYear"`
	Rating      float64  `json:"rating"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage"`
}

// PrimaryGenre returns the first genre entry, or "" if none is set.
func (g Game) PrimaryGenre() string {
	if len(g.Genre) == 0 {
		return ""
	}
	return g.Genre[0]
}

// Review links to a game by exact title match only; there is no foreign key.
type Review struct {
	ID          string    `json:"_id"`
	GameTitle   string    `json:"gameTitle"`
	GameCover   string    `json:"gameCover"`
	Genre       string    `json:"genre"`
	Rating      float64   `json:"rating"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	UserEmail   string    `json:"userEmail"`
	UserName    string    `json:"userName"`
	UserPhoto   string    `json:"userPhoto"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WatchlistItem is a denormalized snapshot taken at add-time. The store enforces
// at most one item per (userEmail, gameTitle) pair.
type WatchlistItem struct {
	ID          string    `json:"_id"`
	UserEmail   string    `json:"userEmail"`
	UserName    string    `json:"userName"`
	ReviewID    string    `json:"reviewId,omitempty"`
	GameTitle   string    `json:"gameTitle"`
	GameCover   string    `json:"gameCover"`
	Rating      float64   `json:"rating"`
	Genre       string    `json:"genre"`
	Price       float64   `json:"price"`
	ReleaseYear int       `json:"releaseYear"`
	Platforms   []string  `json:"platforms"`
	AddedAt     time.Time `json:"addedAt"`
}

// User identifies the caller as supplied by the session provider.
type User struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// Name returns the display name, falling back to the email address.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}
