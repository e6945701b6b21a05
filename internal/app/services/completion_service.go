package services

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// completionStore is the slice of the completion repository this
// package needs
type completionStore interface {
	Create(ctx context.Context, completion *models.Completion) error
	Count(ctx context.Context, courseID string, userIDs []int64, contentID string, stage *string) (int64, error)
	List(ctx context.Context, courseID string, userIDs []int64, contentID string, stage *string, offset uint64, limit int) ([]*models.Completion, error)
}

// completionUserStore checks that the completing user exists
type completionUserStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CompletionService records and lists content completions
type CompletionService interface {
	RecordCompletion(ctx context.Context, courseID string, req *dto.CreateCompletionRequest) (*models.Completion, error)
	ListCompletions(ctx context.Context, base, courseID string, filter *dto.CompletionFilter) (*dto.PaginatedResponse, error)
}

type completionService struct {
	completions completionStore
	courses     courseStore
	users       completionUserStore
}

// NewCompletionService creates a new completion service
func NewCompletionService(completions completionStore, courses courseStore, users completionUserStore) CompletionService {
	return &completionService{
		completions: completions,
		courses:     courses,
		users:       users,
	}
}

// RecordCompletion marks a content node completed for a user. Payload
// problems report 400 even when the referenced content does not exist;
// only the course segment of the URL maps to 404.
func (s *completionService) RecordCompletion(ctx context.Context, courseID string, req *dto.CreateCompletionRequest) (*models.Completion, error) {
	if req.ContentID == "" {
		return nil, apperrors.NewBadRequestError("content_id is missing")
	}
	if req.UserID == 0 {
		return nil, apperrors.NewBadRequestError("user_id is missing")
	}

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
	if _, ok := tree.Node(req.ContentID); !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("content_id %s is invalid", req.ContentID))
	}

	exists, err = s.users.Exists(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("user_id %d is invalid", req.UserID))
	}

	completion := &models.Completion{
		UserID:    req.UserID,
		CourseID:  courseID,
		ContentID: req.ContentID,
		Stage:     req.Stage,
	}

	if err := s.completions.Create(ctx, completion); err != nil {
		return nil, err
	}

	return completion, nil
}

// completionPageURL rebuilds the listing URL for a given page,
// carrying the active filters
func completionPageURL(base, courseID string, filter *dto.CompletionFilter, page int) string {
	values := url.Values{}
	if len(filter.UserIDs) > 0 {
		ids := make([]string, 0, len(filter.UserIDs))
		for _, id := range filter.UserIDs {
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		values.Set("user_id", strings.Join(ids, ","))
	}
	if filter.ContentID != "" {
		values.Set("content_id", filter.ContentID)
	}
	if filter.Stage != nil {
		values.Set("stage", *filter.Stage)
	}
	values.Set("page", strconv.Itoa(page))
	if filter.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(filter.PageSize))
	}

	return fmt.Sprintf("%s/api/courses/%s/completions?%s", base, courseID, values.Encode())
}

// ListCompletions returns a page of completions for a course. Unlike
// the recorder, a bad content_id filter is a lookup and reports 404.
func (s *completionService) ListCompletions(ctx context.Context, base, courseID string, filter *dto.CompletionFilter) (*dto.PaginatedResponse, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	if filter.ContentID != "" {
		tree, err := loadTree(ctx, s.courses, courseID)
		if err != nil {
			return nil, err
		}
		if _, ok := tree.Node(filter.ContentID); !ok {
			return nil, apperrors.ErrContentNotFound
		}
	}

	count, err := s.completions.Count(ctx, courseID, filter.UserIDs, filter.ContentID, filter.Stage)
	if err != nil {
		return nil, fmt.Errorf("error counting completions: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	completions, err := s.completions.List(ctx, courseID, filter.UserIDs, filter.ContentID, filter.Stage, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving completions: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = helpers.DefaultPage
	}

	numPages := 0
	if count > 0 {
		numPages = int(math.Ceil(float64(count) / float64(limit)))
	}

	out := &dto.PaginatedResponse{
		Count:    count,
		NumPages: numPages,
		Results:  completions,
	}
	if page > 1 {
		prev := completionPageURL(base, courseID, filter, page-1)
		out.Previous = &prev
	}
	if page < numPages {
		next := completionPageURL(base, courseID, filter, page+1)
		out.Next = &next
	}

	return out, nil
}
