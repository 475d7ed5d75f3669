// Package models defines the wire-level data structures mirrored from the
// Structura backend. Records are server-owned; the client only holds copies.
//
// The backend is inconsistent about identifier fields: some endpoints return
// "id", others "_id". Every record here normalizes both into the single ID
// field during decoding, so the rest of the client never has to care.
package models

import (
	"encoding/json"
	"time"
)

// User represents an authenticated identity or a platform member.
// Token is only populated on the user returned by sign-in/sign-up/OAuth;
// it is what makes a session "authenticated".
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	IsAdmin        bool      `json:"isAdmin"`
	Token          string    `json:"token,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Post is a community post summary.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Image     string    `json:"image,omitempty"`
	Likes     int       `json:"likes"`
	Shares    int       `json:"shares"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Course is a taught course with optional attached media.
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Instructor  string    `json:"instructor"`
	Image       string    `json:"image,omitempty"`
	PDF         string    `json:"pdf,omitempty"`
	Video       string    `json:"video,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Learn is a self-study lesson.
type Learn struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Event is a scheduled community event.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review is a 1..5 star platform review.
type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment belongs to a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// altID captures the "_id" spelling some endpoints use.
type altID struct {
	ID string `json:"_id"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	type alias User
	aux := struct {
		*alias
		altID
	}{alias: (*alias)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.altID.ID
	}
	return nil
}

func (p *Post) UnmarshalJSON(b []byte) error {
	type alias Post
	aux := struct {
		*alias
		altID
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.altID.ID
	}
	return nil
}

func (c *Course) UnmarshalJSON(b []byte) error {
	type alias Course
	aux := struct {
		*alias
		altID
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.altID.ID
	}
	return nil
}

func (l *Learn) UnmarshalJSON(b []byte) error {
	type alias Learn
	aux := struct {
		*alias
		altID
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = aux.altID.ID
	}
	return nil
}

func (e *Event) UnmarshalJSON(b []byte) error {
	type alias Event
	aux := struct {
		*alias
		altID
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = aux.altID.ID
	}
	return nil
}

func (r *Review) UnmarshalJSON(b []byte) error {
	type alias Review
	aux := struct {
		*alias
		altID
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = aux.altID.ID
	}
	return nil
}

func (c *Comment) UnmarshalJSON(b []byte) error {
	type alias Comment
	aux := struct {
		*alias
		altID
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.altID.ID
	}
	return nil
}
