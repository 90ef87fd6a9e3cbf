package models

import (
	"errors"
	"strings"
	"time"
)

type Course struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CoverURL    string    `json:"cover_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("title required")
	}
	return nil
}

type CourseModule struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type Lesson struct {
	ID              string `json:"id"`
	ModuleID        string `json:"module_id"`
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds"`
	Position        int    `json:"position"`
}

// CourseContent is the nested read model for a course page.
type CourseContent struct {
	Course  Course          `json:"course"`
	Modules []ModuleContent `json:"modules"`
}

type ModuleContent struct {
	Module  CourseModule `json:"module"`
	Lessons []Lesson     `json:"lessons"`
}
