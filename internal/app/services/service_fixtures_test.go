package services

import (
	"context"
	"time"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

// fakeCourseStore serves courses and content rows from memory
type fakeCourseStore struct {
	courses map[string]*models.Course
	rows    map[string][]*models.CourseContent
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses: make(map[string]*models.Course),
		rows:    make(map[string][]*models.CourseContent),
	}
}

func (f *fakeCourseStore) GetByID(_ context.Context, id string) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeCourseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	out := make([]*models.Course, 0, len(f.courses))
	for _, course := range f.courses {
		out = append(out, course)
	}
	return out, nil
}

func (f *fakeCourseStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.courses[id]
	return ok, nil
}

func (f *fakeCourseStore) GetContentRows(_ context.Context, courseID string) ([]*models.CourseContent, error) {
	return f.rows[courseID], nil
}

// fakeUserStore serves accounts from memory and doubles as every
// user-facing store slice the services declare
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: make(map[int64]*models.User)}
	for _, user := range users {
		f.users[user.ID] = user
		if user.ID >= f.nextID {
			f.nextID = user.ID
		}
	}
	return f
}

func (f *fakeUserStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
		if existing.Username == user.Username {
			return apperrors.ErrUsernameExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return nil
}

func contentRow(id, courseID, parentID, category, name string, position int) *models.CourseContent {
	row := &models.CourseContent{
		ID:          id,
		CourseID:    courseID,
		Category:    category,
		DisplayName: name,
		Position:    position,
	}
	if parentID != "" {
		row.ParentID = &parentID
	}
	return row
}

// fixtureCourse seeds a small courseware tree:
//
//	course
//	├── chapter-1
//	│   ├── seq-1
//	│   │   └── vert-1
//	│   └── seq-2
//	├── chapter-2
//	├── about page
//	├── course_info page
//	└── two static tabs
func fixtureCourse(store *fakeCourseStore, courseID string) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	store.courses[courseID] = &models.Course{
		ID:     courseID,
		Name:   "Test Course",
		Number: "T101",
		Org:    "test",
		Start:  &start,
	}

	about := contentRow(courseID+"/about", courseID, courseID, models.CategoryAbout, "About", 90)
	about.Body = `<section class="about"><p>Welcome</p></section>` +
		`<section class="teachers"><article class="teacher"><h3>Grace Hopper</h3><img src="/g.jpg" /><p>Compilers.</p></article></section>`

	updates := contentRow(courseID+"/info", courseID, courseID, models.CategoryCourseInfo, "Updates", 91)
	updates.Body = `<article><h2>March 3, 2026</h2>Midterm moved.</article>` +
		`<article><h2>March 10, 2026</h2>Grades posted.</article>`

	tab1 := contentRow(courseID+"/tab1", courseID, courseID, models.CategoryStaticTab, "Course Syllabus", 92)
	tab1.Body = "<p>syllabus body</p>"
	tab2 := contentRow(courseID+"/tab2", courseID, courseID, models.CategoryStaticTab, "Readings", 93)
	tab2.Body = "<p>readings body</p>"

	store.rows[courseID] = []*models.CourseContent{
		contentRow(courseID, courseID, "", models.CategoryCourse, "Test Course", 1),
		contentRow("chapter-1", courseID, courseID, models.CategoryChapter, "Chapter 1", 1),
		contentRow("chapter-2", courseID, courseID, models.CategoryChapter, "Chapter 2", 2),
		contentRow("seq-1", courseID, "chapter-1", models.CategorySequential, "Sequence 1", 1),
		contentRow("seq-2", courseID, "chapter-1", models.CategorySequential, "Sequence 2", 2),
		contentRow("vert-1", courseID, "seq-1", models.CategoryVertical, "Unit 1", 1),
		about,
		updates,
		tab1,
		tab2,
	}
}
