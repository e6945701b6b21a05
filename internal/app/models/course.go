package models

import "time"

// Content categories used by the courseware tree.
const (
	CategoryCourse     = "course"
	CategoryChapter    = "chapter"
	CategorySequential = "sequential"
	CategoryVertical   = "vertical"
	CategoryVideo      = "video"
	CategoryAbout      = "about"
	CategoryCourseInfo = "course_info"
	CategoryStaticTab  = "static_tab"
)

// Course represents the root record of a courseware tree
type Course struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Number string     `json:"number"`
	Org    string     `json:"org"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// CourseContent represents a single node of the courseware tree.
// Rows are authored by external tooling; the API only reads them.
type CourseContent struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"course_id"`
	ParentID    *string    `json:"parent_id,omitempty"`
	Category    string     `json:"category"`
	DisplayName string     `json:"name"`
	Position    int        `json:"-"`
	Due         *time.Time `json:"due"`
	Graded      bool       `json:"-"`
	Format      string     `json:"-"`
	Body        string     `json:"-"`
}
