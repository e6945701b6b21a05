package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/pkg/auth"
)

const demoCourseID = "demo/CS101/2026_T1"

// contentRow is one seeded node of the demo course tree
type contentRow struct {
	id       string
	parentID string
	category string
	name     string
	position int
	graded   bool
	body     string
}

var demoContent = []contentRow{
	{id: demoCourseID, category: models.CategoryCourse, name: "Introduction to Computer Science", position: 1},
	{id: "i4x://demo/CS101/chapter/week1", parentID: demoCourseID, category: models.CategoryChapter, name: "Week 1", position: 1},
	{id: "i4x://demo/CS101/chapter/week2", parentID: demoCourseID, category: models.CategoryChapter, name: "Week 2", position: 2},
	{id: "i4x://demo/CS101/sequential/lesson1", parentID: "i4x://demo/CS101/chapter/week1", category: models.CategorySequential, name: "Lesson 1", position: 1},
	{id: "i4x://demo/CS101/sequential/lesson2", parentID: "i4x://demo/CS101/chapter/week1", category: models.CategorySequential, name: "Lesson 2", position: 2},
	{id: "i4x://demo/CS101/vertical/unit1", parentID: "i4x://demo/CS101/sequential/lesson1", category: models.CategoryVertical, name: "Getting Started", position: 1, graded: true},
	{id: "i4x://demo/CS101/video/intro", parentID: "i4x://demo/CS101/vertical/unit1", category: models.CategoryVideo, name: "Course Introduction", position: 1},
	{id: "i4x://demo/CS101/sequential/lesson3", parentID: "i4x://demo/CS101/chapter/week2", category: models.CategorySequential, name: "Lesson 3", position: 1, graded: true},
	{
		id: "i4x://demo/CS101/about/overview", parentID: demoCourseID, category: models.CategoryAbout,
		name: "Course Overview", position: 90,
		body: `<section class="about"><h2>About this course</h2><p>A first course in computing.</p></section>` +
			`<section class="teachers"><article class="teacher"><h3>Ada Lovelace</h3>` +
			`<img src="/images/ada.jpg" /><p>Pioneer of computing.</p></article></section>`,
	},
	{
		id: "i4x://demo/CS101/course_info/updates", parentID: demoCourseID, category: models.CategoryCourseInfo,
		name: "Course Updates", position: 91,
		body: `<article><h2>January 5, 2026</h2>Welcome to the course!</article>` +
			`<article><h2>January 12, 2026</h2>Week 2 materials are live.</article>`,
	},
	{
		id: "i4x://demo/CS101/static_tab/syllabus", parentID: demoCourseID, category: models.CategoryStaticTab,
		name: "Syllabus", position: 92, body: `<p>Weekly readings and problem sets.</p>`,
	},
}

type seedUser struct {
	username string
	email    string
	name     [2]string
}

var demoUsers = []seedUser{
	{username: "alice", email: "alice@example.com", name: [2]string{"Alice", "Doe"}},
	{username: "bob", email: "bob@example.com", name: [2]string{"Bob", "Smith"}},
	{username: "carol", email: "carol@example.com", name: [2]string{"Carol", "Jones"}},
	{username: "dana", email: "dana@example.com", name: [2]string{"Dana", "Lee"}},
}

// CreateDefaultData seeds a demo course, accounts, and activity so a
// fresh install has something to serve. Every statement is idempotent.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (demo course)...")
	var finalErr error

	_, err := dbPool.Exec(ctx, `
		INSERT INTO courses (id, name, number, org, start_date)
		VALUES ($1, $2, $3, $4, '2026-01-05T00:00:00Z')
		ON CONFLICT (id) DO NOTHING`,
		demoCourseID, "Introduction to Computer Science", "CS101", "demo")
	if err != nil {
		lgr.Error().Err(err).Msg("Error seeding demo course")
		return errors.Join(finalErr, err)
	}

	for _, row := range demoContent {
		var parent interface{}
		if row.parentID != "" {
			parent = row.parentID
		}
		_, err := dbPool.Exec(ctx, `
			INSERT INTO course_content (id, course_id, parent_id, category, display_name, position, graded, body)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO NOTHING`,
			row.id, demoCourseID, parent, row.category, row.name, row.position, row.graded, row.body)
		if err != nil {
			lgr.Error().Err(err).Str("content_id", row.id).Msg("Error seeding demo content")
			finalErr = errors.Join(finalErr, err)
		}
	}

	hashed, err := auth.HashPassword("Learner-2026!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing demo password")
		return errors.Join(finalErr, err)
	}

	userIDs := make(map[string]int64, len(demoUsers))
	for _, u := range demoUsers {
		var id int64
		err := dbPool.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash, first_name, last_name, is_active)
			VALUES ($1, $2, $3, $4, $5, TRUE)
			ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
			RETURNING id`,
			u.username, u.email, hashed, u.name[0], u.name[1]).Scan(&id)
		if err != nil {
			lgr.Error().Err(err).Str("username", u.username).Msg("Error seeding demo user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		userIDs[u.username] = id
	}

	for _, username := range []string{"alice", "bob", "carol", "dana"} {
		id, ok := userIDs[username]
		if !ok {
			continue
		}
		_, err := dbPool.Exec(ctx, `
			INSERT INTO course_enrollments (course_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (course_id, user_id) DO NOTHING`,
			demoCourseID, id)
		if err != nil {
			lgr.Error().Err(err).Str("username", username).Msg("Error seeding demo enrollment")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Dana watches the course without showing up in social metrics
	if danaID, ok := userIDs["dana"]; ok {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO course_roles (course_id, user_id, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (course_id, user_id, role) DO NOTHING`,
			demoCourseID, danaID, string(models.RoleObserver))
		if err != nil {
			lgr.Error().Err(err).Msg("Error seeding demo observer role")
			finalErr = errors.Join(finalErr, err)
		}
	}

	grades := []struct {
		username string
		grade    float64
	}{
		{"alice", 0.9},
		{"bob", 0.6},
		{"carol", 0.8},
	}
	for _, g := range grades {
		id, ok := userIDs[g.username]
		if !ok {
			continue
		}
		_, err := dbPool.Exec(ctx, `
			INSERT INTO student_grades (user_id, course_id, content_id, grade, max_grade)
			VALUES ($1, $2, $3, $4, 1.0)
			ON CONFLICT (user_id, course_id, content_id) DO NOTHING`,
			id, demoCourseID, "i4x://demo/CS101/vertical/unit1", g.grade)
		if err != nil {
			lgr.Error().Err(err).Str("username", g.username).Msg("Error seeding demo grade")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
