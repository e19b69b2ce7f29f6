package library

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyOwned signals the game is already in the user's library.
	ErrAlreadyOwned = errors.New("game already in the library")
	// ErrNotOwned indicates the user does not own the game.
	ErrNotOwned = errors.New("game not found in the library")
)

// Entry links a user to a game they own.
type Entry struct {
	UserID    int64     `json:"userId"`
	GameID    int64     `json:"gameId"`
	UserName  string    `json:"userName,omitempty"`
	GameName  string    `json:"gameName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
