package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/oguzk/courseapi/internal/app/content"
	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
	"github.com/oguzk/courseapi/internal/pkg/htmlparse"
)

// courseStore is the slice of the course repository this package needs
type courseStore interface {
	GetByID(ctx context.Context, id string) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Exists(ctx context.Context, id string) (bool, error)
	GetContentRows(ctx context.Context, courseID string) ([]*models.CourseContent, error)
}

// CourseService resolves course trees and serializes them with
// depth-limited child expansion
type CourseService interface {
	ListCourses(ctx context.Context, base string) ([]dto.CourseDetailResponse, error)
	GetCourse(ctx context.Context, base, courseID string, depth int) (*dto.CourseDetailResponse, error)
	GetContent(ctx context.Context, base, courseID, contentID string, depth int) (*dto.ContentNode, error)
	ListChildren(ctx context.Context, base, courseID, contentID, category string) ([]dto.ContentNode, error)
	GetOverview(ctx context.Context, courseID string, parse bool) (*dto.CourseOverviewResponse, error)
	GetUpdates(ctx context.Context, courseID string, parse bool) (*dto.CourseUpdatesResponse, error)
	ListStaticTabs(ctx context.Context, courseID string, detail bool) (*dto.StaticTabsResponse, error)
	GetStaticTab(ctx context.Context, courseID, tabID string) (*dto.StaticTab, error)
}

type courseService struct {
	courses courseStore
}

// NewCourseService creates a new course service
func NewCourseService(courses courseStore) CourseService {
	return &courseService{
		courses: courses,
	}
}

// loadTree fetches the content rows of a course and assembles them.
// The caller is expected to have checked that the course exists.
func loadTree(ctx context.Context, courses courseStore, courseID string) (*content.Tree, error) {
	rows, err := courses.GetContentRows(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error loading course content: %w", err)
	}

	tree, err := content.BuildTree(courseID, rows)
	if err != nil {
		return nil, fmt.Errorf("error assembling course tree: %w", err)
	}

	return tree, nil
}

// resolveNode finds a content node inside a course, mapping an unknown
// course to ErrCourseNotFound and an unknown node to ErrContentNotFound.
// A node from another course is indistinguishable from a missing one.
func resolveNode(ctx context.Context, courses courseStore, courseID, contentID string) (*content.Tree, *content.Node, error) {
	exists, err := courses.Exists(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, apperrors.ErrCourseNotFound
	}

	tree, err := loadTree(ctx, courses, courseID)
	if err != nil {
		return nil, nil, err
	}

	node, ok := tree.Node(contentID)
	if !ok {
		return nil, nil, apperrors.ErrContentNotFound
	}

	return tree, node, nil
}

// serializeNode renders a node with depth-limited child expansion.
// Nodes inside the horizon always carry a children array, possibly
// empty; nodes at the horizon omit the key so clients know to fetch
// explicitly for more.
func serializeNode(base, courseID string, node *content.Node, depth int) dto.ContentNode {
	out := dto.ContentNode{
		ID:       node.ID(),
		Name:     node.Record.DisplayName,
		Category: node.Category(),
		Due:      node.Record.Due,
	}

	if node.IsRoot() {
		out.URI = helpers.CourseURI(base, courseID)
	} else {
		out.URI = helpers.ContentURI(base, courseID, node.ID())
	}

	if depth > 0 {
		children := make([]dto.ContentNode, 0, len(node.Children))
		for _, child := range node.Children {
			children = append(children, serializeNode(base, courseID, child, depth-1))
		}
		out.Children = &children
	}

	return out
}

func serializeCourse(base string, course *models.Course, tree *content.Tree, depth int) *dto.CourseDetailResponse {
	out := &dto.CourseDetailResponse{
		ID:       course.ID,
		Name:     course.Name,
		Category: models.CategoryCourse,
		Number:   course.Number,
		Org:      course.Org,
		Start:    course.Start,
		End:      course.End,
		URI:      helpers.CourseURI(base, course.ID),
	}

	if depth > 0 && tree != nil {
		children := make([]dto.ContentNode, 0, len(tree.Root().Children))
		for _, child := range tree.Root().Children {
			children = append(children, serializeNode(base, course.ID, child, depth-1))
		}
		// The course root names its expansion "content", not "children".
		out.Content = &children
	}

	courseURI := out.URI
	out.Resources = []dto.ResourceLink{
		{URI: courseURI + "/content/"},
		{URI: courseURI + "/groups/"},
		{URI: courseURI + "/overview/"},
		{URI: courseURI + "/updates/"},
		{URI: courseURI + "/static_tabs/"},
		{URI: courseURI + "/users/"},
	}

	return out
}

// ListCourses retrieves all courses without content expansion
func (s *courseService) ListCourses(ctx context.Context, base string) ([]dto.CourseDetailResponse, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}

	out := make([]dto.CourseDetailResponse, 0, len(courses))
	for _, course := range courses {
		out = append(out, *serializeCourse(base, course, nil, 0))
	}

	return out, nil
}

// GetCourse retrieves one course, expanding depth levels of content
// under the "content" key. Depth 0 returns the course document alone.
func (s *courseService) GetCourse(ctx context.Context, base, courseID string, depth int) (*dto.CourseDetailResponse, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var tree *content.Tree
	if depth > 0 {
		tree, err = loadTree(ctx, s.courses, courseID)
		if err != nil {
			return nil, err
		}
	}

	return serializeCourse(base, course, tree, depth), nil
}

// GetContent retrieves one content node, expanding depth levels of
// children under the "children" key
func (s *courseService) GetContent(ctx context.Context, base, courseID, contentID string, depth int) (*dto.ContentNode, error) {
	_, node, err := resolveNode(ctx, s.courses, courseID, contentID)
	if err != nil {
		return nil, err
	}

	out := serializeNode(base, courseID, node, depth)
	// Only the detail view advertises the node's sub-resources; child
	// expansion stays bare.
	out.Resources = []dto.ResourceLink{
		{URI: out.URI + "/groups/"},
		{URI: out.URI + "/users/"},
	}
	return &out, nil
}

// ListChildren returns the immediate children of a node as a flat
// listing. An empty contentID addresses the course root. The category
// filter applies to flat listings only, never to depth expansion.
func (s *courseService) ListChildren(ctx context.Context, base, courseID, contentID, category string) ([]dto.ContentNode, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	tree, err := loadTree(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}

	parentID := contentID
	if parentID == "" {
		parentID = tree.Root().ID()
	}

	children, ok := tree.Children(parentID, category)
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}

	out := make([]dto.ContentNode, 0, len(children))
	for _, child := range children {
		out = append(out, serializeNode(base, courseID, child, 0))
	}

	return out, nil
}

// findByCategory returns the first node of the given category in
// structural order
func findByCategory(tree *content.Tree, category string) (*content.Node, bool) {
	descendants, _ := tree.Descendants(tree.Root().ID())
	for _, node := range descendants {
		if node.Category() == category {
			return node, true
		}
	}
	return nil, false
}

// GetOverview returns the course about page, decomposed into sections
// when parse is set
func (s *courseService) GetOverview(ctx context.Context, courseID string, parse bool) (*dto.CourseOverviewResponse, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	tree, err := loadTree(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}

	node, ok := findByCategory(tree, models.CategoryAbout)
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}

	if !parse {
		return &dto.CourseOverviewResponse{OverviewHTML: node.Record.Body}, nil
	}

	parsed, err := htmlparse.ParseOverview(node.Record.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing overview: %w", err)
	}

	out := &dto.CourseOverviewResponse{}
	for _, section := range parsed {
		converted := dto.OverviewSection{
			Class:      section.Class,
			Attributes: section.Attributes,
			Body:       section.Body,
		}
		for _, article := range section.Articles {
			converted.Articles = append(converted.Articles, dto.OverviewArticle{
				Name:  article.Name,
				Image: article.Image,
				Bio:   article.Bio,
			})
		}
		out.Sections = append(out.Sections, converted)
	}

	return out, nil
}

// GetUpdates returns the course info page, decomposed into dated
// postings when parse is set
func (s *courseService) GetUpdates(ctx context.Context, courseID string, parse bool) (*dto.CourseUpdatesResponse, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	tree, err := loadTree(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}

	node, ok := findByCategory(tree, models.CategoryCourseInfo)
	if !ok {
		return nil, apperrors.ErrContentNotFound
	}

	if !parse {
		return &dto.CourseUpdatesResponse{Content: node.Record.Body}, nil
	}

	postings, err := htmlparse.ParseUpdates(node.Record.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing updates: %w", err)
	}

	out := &dto.CourseUpdatesResponse{}
	for _, posting := range postings {
		out.Postings = append(out.Postings, dto.CourseUpdate{
			Date:    posting.Date,
			Content: posting.Content,
		})
	}

	return out, nil
}

// slugifyTab derives the stable tab identifier from its display name
func slugifyTab(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	return strings.Trim(slug, "_")
}

func (s *courseService) staticTabs(ctx context.Context, courseID string) ([]*content.Node, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	tree, err := loadTree(ctx, s.courses, courseID)
	if err != nil {
		return nil, err
	}

	descendants, _ := tree.Descendants(tree.Root().ID())
	var tabs []*content.Node
	for _, node := range descendants {
		if node.Category() == models.CategoryStaticTab {
			tabs = append(tabs, node)
		}
	}

	return tabs, nil
}

// ListStaticTabs lists the static tabs of a course; detail includes
// each tab's body
func (s *courseService) ListStaticTabs(ctx context.Context, courseID string, detail bool) (*dto.StaticTabsResponse, error) {
	nodes, err := s.staticTabs(ctx, courseID)
	if err != nil {
		return nil, err
	}

	out := &dto.StaticTabsResponse{Tabs: make([]dto.StaticTab, 0, len(nodes))}
	for _, node := range nodes {
		tab := dto.StaticTab{
			ID:   slugifyTab(node.Record.DisplayName),
			Name: node.Record.DisplayName,
		}
		if detail {
			tab.Content = node.Record.Body
		}
		out.Tabs = append(out.Tabs, tab)
	}

	return out, nil
}

// GetStaticTab retrieves one static tab by slug, body included
func (s *courseService) GetStaticTab(ctx context.Context, courseID, tabID string) (*dto.StaticTab, error) {
	nodes, err := s.staticTabs(ctx, courseID)
	if err != nil {
		return nil, err
	}

	for _, node := range nodes {
		if slugifyTab(node.Record.DisplayName) == tabID {
			return &dto.StaticTab{
				ID:      tabID,
				Name:    node.Record.DisplayName,
				Content: node.Record.Body,
			}, nil
		}
	}

	return nil, apperrors.ErrContentNotFound
}
