package services

import (
	"context"
	"fmt"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
	"github.com/oguzk/courseapi/internal/pkg/helpers"
)

// groupStore is the slice of the group repository this package needs
type groupStore interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetAll(ctx context.Context, groupType string) ([]*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	AddMember(ctx context.Context, groupID, userID int64) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
	GetMembers(ctx context.Context, groupID int64) ([]*models.User, error)
	BindToCourse(ctx context.Context, courseID string, groupID int64) error
	UnbindFromCourse(ctx context.Context, courseID string, groupID int64) error
	IsBoundToCourse(ctx context.Context, courseID string, groupID int64) (bool, error)
	GetCourseGroups(ctx context.Context, courseID, groupType string) ([]*models.Group, error)
	BindToContent(ctx context.Context, courseID, contentID string, groupID int64) error
	UnbindFromContent(ctx context.Context, courseID, contentID string, groupID int64) error
	IsBoundToContent(ctx context.Context, courseID, contentID string, groupID int64) (bool, error)
	GetContentGroups(ctx context.Context, courseID, contentID, groupType string) ([]*models.Group, error)
	GetContentUsers(ctx context.Context, courseID, contentID string, groupID int64, groupType string, enrolled bool) ([]*models.User, error)
}

// groupUserStore checks that a prospective member exists
type groupUserStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// GroupService manages groups, their members, and their bindings to
// courses and content nodes
type GroupService interface {
	CreateGroup(ctx context.Context, base string, req *dto.CreateGroupRequest) (*dto.GroupResponse, error)
	GetGroup(ctx context.Context, base string, groupID int64) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, base, groupType string) ([]dto.GroupResponse, error)
	UpdateGroup(ctx context.Context, base string, groupID int64, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error)
	DeleteGroup(ctx context.Context, groupID int64) error
	AddMember(ctx context.Context, base string, groupID, userID int64) (*dto.GroupMemberResponse, error)
	RemoveMember(ctx context.Context, groupID, userID int64) error
	ListMembers(ctx context.Context, base string, groupID int64) ([]dto.GroupMemberResponse, error)
	BindCourse(ctx context.Context, base, courseID string, groupID int64) (*dto.GroupBindingResponse, error)
	UnbindCourse(ctx context.Context, courseID string, groupID int64) error
	GetCourseBinding(ctx context.Context, base, courseID string, groupID int64) (*dto.GroupBindingResponse, error)
	ListCourseGroups(ctx context.Context, base, courseID, groupType string) ([]dto.GroupResponse, error)
	BindContent(ctx context.Context, base, courseID, contentID string, groupID int64) (*dto.GroupBindingResponse, error)
	UnbindContent(ctx context.Context, courseID, contentID string, groupID int64) error
	GetContentBinding(ctx context.Context, base, courseID, contentID string, groupID int64) (*dto.GroupBindingResponse, error)
	ListContentGroups(ctx context.Context, base, courseID, contentID, groupType string) ([]dto.GroupResponse, error)
	ListContentUsers(ctx context.Context, base, courseID, contentID string, groupID int64, groupType string, enrolled bool) ([]dto.ContentUser, error)
}

type groupService struct {
	groups  groupStore
	courses courseStore
	users   groupUserStore
}

// NewGroupService creates a new group service
func NewGroupService(groups groupStore, courses courseStore, users groupUserStore) GroupService {
	return &groupService{
		groups:  groups,
		courses: courses,
		users:   users,
	}
}

func serializeGroup(base string, group *models.Group) dto.GroupResponse {
	return dto.GroupResponse{
		ID:   group.ID,
		Name: group.Name,
		Type: group.GroupType,
		Data: group.Data,
		URI:  helpers.GroupURI(base, group.ID),
	}
}

// CreateGroup creates a new group
func (s *groupService) CreateGroup(ctx context.Context, base string, req *dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	group := &models.Group{
		Name:      req.Name,
		GroupType: req.Type,
		Data:      req.Data,
	}

	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("error creating group: %w", err)
	}

	out := serializeGroup(base, group)
	return &out, nil
}

// GetGroup retrieves one group
func (s *groupService) GetGroup(ctx context.Context, base string, groupID int64) (*dto.GroupResponse, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	out := serializeGroup(base, group)
	return &out, nil
}

// ListGroups lists groups, optionally narrowed by type
func (s *groupService) ListGroups(ctx context.Context, base, groupType string) ([]dto.GroupResponse, error) {
	groups, err := s.groups.GetAll(ctx, groupType)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}

	out := make([]dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, serializeGroup(base, group))
	}

	return out, nil
}

// UpdateGroup applies a partial update to a group's profile
func (s *groupService) UpdateGroup(ctx context.Context, base string, groupID int64, req *dto.UpdateGroupRequest) (*dto.GroupResponse, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if req.Type != "" {
		group.GroupType = req.Type
	}
	if req.Data != "" {
		group.Data = req.Data
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("error updating group: %w", err)
	}

	out := serializeGroup(base, group)
	return &out, nil
}

// DeleteGroup removes a group and, via cascade, its memberships and
// bindings
func (s *groupService) DeleteGroup(ctx context.Context, groupID int64) error {
	return s.groups.Delete(ctx, groupID)
}

// AddMember adds an existing user to a group
func (s *groupService) AddMember(ctx context.Context, base string, groupID, userID int64) (*dto.GroupMemberResponse, error) {
	exists, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrGroupNotFound
	}

	exists, err = s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrUserNotFound
	}

	if err := s.groups.AddMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	return &dto.GroupMemberResponse{
		GroupID: groupID,
		UserID:  userID,
		URI:     helpers.UserURI(base, userID),
	}, nil
}

// RemoveMember removes a user from a group; removing an absent member
// succeeds
func (s *groupService) RemoveMember(ctx context.Context, groupID, userID int64) error {
	exists, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrGroupNotFound
	}

	return s.groups.RemoveMember(ctx, groupID, userID)
}

// ListMembers lists the users belonging to a group
func (s *groupService) ListMembers(ctx context.Context, base string, groupID int64) ([]dto.GroupMemberResponse, error) {
	exists, err := s.groups.Exists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrGroupNotFound
	}

	members, err := s.groups.GetMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving group members: %w", err)
	}

	out := make([]dto.GroupMemberResponse, 0, len(members))
	for _, member := range members {
		out = append(out, dto.GroupMemberResponse{
			GroupID:  groupID,
			UserID:   member.ID,
			Username: member.Username,
			Email:    member.Email,
			URI:      helpers.UserURI(base, member.ID),
		})
	}

	return out, nil
}

// checkBindingTargets validates the course, the optional content node,
// and the group, in that order, so each missing piece reports its own
// not-found error
func (s *groupService) checkBindingTargets(ctx context.Context, courseID, contentID string, groupID int64) error {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	if contentID != "" {
		tree, err := loadTree(ctx, s.courses, courseID)
		if err != nil {
			return err
		}
		if _, ok := tree.Node(contentID); !ok {
			return apperrors.ErrContentNotFound
		}
	}

	exists, err = s.groups.Exists(ctx, groupID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// BindCourse attaches a group to a course; a second attempt conflicts
func (s *groupService) BindCourse(ctx context.Context, base, courseID string, groupID int64) (*dto.GroupBindingResponse, error) {
	if err := s.checkBindingTargets(ctx, courseID, "", groupID); err != nil {
		return nil, err
	}

	if err := s.groups.BindToCourse(ctx, courseID, groupID); err != nil {
		return nil, err
	}

	return &dto.GroupBindingResponse{
		CourseID: courseID,
		GroupID:  groupID,
		URI:      helpers.GroupURI(base, groupID),
	}, nil
}

// UnbindCourse detaches a group from a course; detaching an absent
// binding succeeds
func (s *groupService) UnbindCourse(ctx context.Context, courseID string, groupID int64) error {
	if err := s.checkBindingTargets(ctx, courseID, "", groupID); err != nil {
		return err
	}

	return s.groups.UnbindFromCourse(ctx, courseID, groupID)
}

// GetCourseBinding retrieves one course-group binding; an absent
// binding between existing resources is its own kind of not found
func (s *groupService) GetCourseBinding(ctx context.Context, base, courseID string, groupID int64) (*dto.GroupBindingResponse, error) {
	if err := s.checkBindingTargets(ctx, courseID, "", groupID); err != nil {
		return nil, err
	}

	bound, err := s.groups.IsBoundToCourse(ctx, courseID, groupID)
	if err != nil {
		return nil, err
	}
	if !bound {
		return nil, apperrors.ErrRelationshipNotFound
	}

	return &dto.GroupBindingResponse{
		CourseID: courseID,
		GroupID:  groupID,
		URI:      helpers.GroupURI(base, groupID),
	}, nil
}

// ListCourseGroups lists the groups attached to a course in binding
// order, optionally narrowed by type
func (s *groupService) ListCourseGroups(ctx context.Context, base, courseID, groupType string) ([]dto.GroupResponse, error) {
	exists, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	groups, err := s.groups.GetCourseGroups(ctx, courseID, groupType)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course groups: %w", err)
	}

	out := make([]dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, serializeGroup(base, group))
	}

	return out, nil
}

// BindContent attaches a group to a content node inside a course
func (s *groupService) BindContent(ctx context.Context, base, courseID, contentID string, groupID int64) (*dto.GroupBindingResponse, error) {
	if err := s.checkBindingTargets(ctx, courseID, contentID, groupID); err != nil {
		return nil, err
	}

	if err := s.groups.BindToContent(ctx, courseID, contentID, groupID); err != nil {
		return nil, err
	}

	return &dto.GroupBindingResponse{
		CourseID:  courseID,
		ContentID: contentID,
		GroupID:   groupID,
		URI:       helpers.GroupURI(base, groupID),
	}, nil
}

// UnbindContent detaches a group from a content node; detaching an
// absent binding succeeds
func (s *groupService) UnbindContent(ctx context.Context, courseID, contentID string, groupID int64) error {
	if err := s.checkBindingTargets(ctx, courseID, contentID, groupID); err != nil {
		return err
	}

	return s.groups.UnbindFromContent(ctx, courseID, contentID, groupID)
}

// GetContentBinding retrieves one content-group binding
func (s *groupService) GetContentBinding(ctx context.Context, base, courseID, contentID string, groupID int64) (*dto.GroupBindingResponse, error) {
	if err := s.checkBindingTargets(ctx, courseID, contentID, groupID); err != nil {
		return nil, err
	}

	bound, err := s.groups.IsBoundToContent(ctx, courseID, contentID, groupID)
	if err != nil {
		return nil, err
	}
	if !bound {
		return nil, apperrors.ErrRelationshipNotFound
	}

	return &dto.GroupBindingResponse{
		CourseID:  courseID,
		ContentID: contentID,
		GroupID:   groupID,
		URI:       helpers.GroupURI(base, groupID),
	}, nil
}

// ListContentGroups lists the groups attached to a content node
func (s *groupService) ListContentGroups(ctx context.Context, base, courseID, contentID, groupType string) ([]dto.GroupResponse, error) {
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
	if _, ok := tree.Node(contentID); !ok {
		return nil, apperrors.ErrContentNotFound
	}

	groups, err := s.groups.GetContentGroups(ctx, courseID, contentID, groupType)
	if err != nil {
		return nil, fmt.Errorf("error retrieving content groups: %w", err)
	}

	out := make([]dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, serializeGroup(base, group))
	}

	return out, nil
}

// ListContentUsers lists the users reachable through groups attached to
// a content node, split by course-enrollment status and optionally
// narrowed to one group or one group type
func (s *groupService) ListContentUsers(ctx context.Context, base, courseID, contentID string, groupID int64, groupType string, enrolled bool) ([]dto.ContentUser, error) {
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
	if _, ok := tree.Node(contentID); !ok {
		return nil, apperrors.ErrContentNotFound
	}

	users, err := s.groups.GetContentUsers(ctx, courseID, contentID, groupID, groupType, enrolled)
	if err != nil {
		return nil, fmt.Errorf("error retrieving content users: %w", err)
	}

	out := make([]dto.ContentUser, 0, len(users))
	for _, user := range users {
		out = append(out, dto.ContentUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			URI:      helpers.UserURI(base, user.ID),
		})
	}

	return out, nil
}
