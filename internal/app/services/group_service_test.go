package services

import (
	"context"
	"errors"
	"testing"

	"github.com/oguzk/courseapi/internal/app/models"
	"github.com/oguzk/courseapi/internal/app/models/dto"
	"github.com/oguzk/courseapi/internal/pkg/apperrors"
)

type contentBinding struct {
	courseID  string
	contentID string
	groupID   int64
}

// fakeGroupStore keeps groups, members, and bindings in memory
type fakeGroupStore struct {
	groups          map[int64]*models.Group
	members         map[int64][]int64
	memberUsers     map[int64]*models.User
	courseBindings  map[string][]int64
	contentBindings []contentBinding
	enrolled        map[string]map[int64]bool
	nextID          int64
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{
		groups:         make(map[int64]*models.Group),
		members:        make(map[int64][]int64),
		memberUsers:    make(map[int64]*models.User),
		courseBindings: make(map[string][]int64),
		enrolled:       make(map[string]map[int64]bool),
	}
}

func (f *fakeGroupStore) enroll(courseID string, userID int64) {
	if f.enrolled[courseID] == nil {
		f.enrolled[courseID] = make(map[int64]bool)
	}
	f.enrolled[courseID][userID] = true
}

func (f *fakeGroupStore) Create(_ context.Context, group *models.Group) error {
	f.nextID++
	group.ID = f.nextID
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroupStore) GetByID(_ context.Context, id int64) (*models.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return group, nil
}

func (f *fakeGroupStore) GetAll(_ context.Context, groupType string) ([]*models.Group, error) {
	var out []*models.Group
	for _, group := range f.groups {
		if groupType == "" || group.GroupType == groupType {
			out = append(out, group)
		}
	}
	return out, nil
}

func (f *fakeGroupStore) Update(_ context.Context, group *models.Group) error {
	if _, ok := f.groups[group.ID]; !ok {
		return apperrors.ErrGroupNotFound
	}
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroupStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.groups[id]; !ok {
		return apperrors.ErrGroupNotFound
	}
	delete(f.groups, id)
	return nil
}

func (f *fakeGroupStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.groups[id]
	return ok, nil
}

func (f *fakeGroupStore) AddMember(_ context.Context, groupID, userID int64) error {
	for _, member := range f.members[groupID] {
		if member == userID {
			return apperrors.ErrGroupMemberExists
		}
	}
	f.members[groupID] = append(f.members[groupID], userID)
	return nil
}

func (f *fakeGroupStore) RemoveMember(_ context.Context, groupID, userID int64) error {
	kept := f.members[groupID][:0]
	for _, member := range f.members[groupID] {
		if member != userID {
			kept = append(kept, member)
		}
	}
	f.members[groupID] = kept
	return nil
}

func (f *fakeGroupStore) GetMembers(_ context.Context, groupID int64) ([]*models.User, error) {
	var out []*models.User
	for _, id := range f.members[groupID] {
		if user, ok := f.memberUsers[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeGroupStore) BindToCourse(_ context.Context, courseID string, groupID int64) error {
	for _, bound := range f.courseBindings[courseID] {
		if bound == groupID {
			return apperrors.ErrRelationshipExists
		}
	}
	f.courseBindings[courseID] = append(f.courseBindings[courseID], groupID)
	return nil
}

func (f *fakeGroupStore) UnbindFromCourse(_ context.Context, courseID string, groupID int64) error {
	kept := f.courseBindings[courseID][:0]
	for _, bound := range f.courseBindings[courseID] {
		if bound != groupID {
			kept = append(kept, bound)
		}
	}
	f.courseBindings[courseID] = kept
	return nil
}

func (f *fakeGroupStore) IsBoundToCourse(_ context.Context, courseID string, groupID int64) (bool, error) {
	for _, bound := range f.courseBindings[courseID] {
		if bound == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroupStore) GetCourseGroups(_ context.Context, courseID, groupType string) ([]*models.Group, error) {
	var out []*models.Group
	for _, id := range f.courseBindings[courseID] {
		group := f.groups[id]
		if group != nil && (groupType == "" || group.GroupType == groupType) {
			out = append(out, group)
		}
	}
	return out, nil
}

func (f *fakeGroupStore) BindToContent(_ context.Context, courseID, contentID string, groupID int64) error {
	for _, binding := range f.contentBindings {
		if binding.courseID == courseID && binding.contentID == contentID && binding.groupID == groupID {
			return apperrors.ErrRelationshipExists
		}
	}
	f.contentBindings = append(f.contentBindings, contentBinding{courseID, contentID, groupID})
	return nil
}

func (f *fakeGroupStore) UnbindFromContent(_ context.Context, courseID, contentID string, groupID int64) error {
	kept := f.contentBindings[:0]
	for _, binding := range f.contentBindings {
		if binding.courseID != courseID || binding.contentID != contentID || binding.groupID != groupID {
			kept = append(kept, binding)
		}
	}
	f.contentBindings = kept
	return nil
}

func (f *fakeGroupStore) IsBoundToContent(_ context.Context, courseID, contentID string, groupID int64) (bool, error) {
	for _, binding := range f.contentBindings {
		if binding.courseID == courseID && binding.contentID == contentID && binding.groupID == groupID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroupStore) GetContentGroups(_ context.Context, courseID, contentID, groupType string) ([]*models.Group, error) {
	var out []*models.Group
	for _, binding := range f.contentBindings {
		if binding.courseID != courseID || binding.contentID != contentID {
			continue
		}
		group := f.groups[binding.groupID]
		if group != nil && (groupType == "" || group.GroupType == groupType) {
			out = append(out, group)
		}
	}
	return out, nil
}

func (f *fakeGroupStore) GetContentUsers(_ context.Context, courseID, contentID string, groupID int64, groupType string, enrolled bool) ([]*models.User, error) {
	seen := make(map[int64]bool)
	var out []*models.User
	for _, binding := range f.contentBindings {
		if binding.courseID != courseID || binding.contentID != contentID {
			continue
		}
		if groupID != 0 && binding.groupID != groupID {
			continue
		}
		group := f.groups[binding.groupID]
		if group == nil || (groupType != "" && group.GroupType != groupType) {
			continue
		}
		for _, id := range f.members[binding.groupID] {
			if seen[id] || f.enrolled[courseID][id] != enrolled {
				continue
			}
			if user, ok := f.memberUsers[id]; ok {
				seen[id] = true
				out = append(out, user)
			}
		}
	}
	return out, nil
}

func newGroupServiceFixture() (GroupService, *fakeGroupStore) {
	courses := newFakeCourseStore()
	fixtureCourse(courses, "c1")
	store := newFakeGroupStore()
	users := newFakeUserStore(&models.User{ID: 7, Username: "alice", Email: "alice@example.com"})
	store.memberUsers[7] = &models.User{ID: 7, Username: "alice", Email: "alice@example.com"}
	return NewGroupService(store, courses, users), store
}

func TestGroupLifecycle(t *testing.T) {
	svc, _ := newGroupServiceFixture()
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}
	if created.ID == 0 || created.URI != testBase+"/api/groups/1" {
		t.Fatalf("unexpected created group %+v", created)
	}

	updated, err := svc.UpdateGroup(ctx, testBase, created.ID, &dto.UpdateGroupRequest{Name: "Cohort B"})
	if err != nil {
		t.Fatalf("UpdateGroup returned error: %v", err)
	}
	if updated.Name != "Cohort B" || updated.Type != "cohort" {
		t.Fatalf("partial update lost fields: %+v", updated)
	}

	if err := svc.DeleteGroup(ctx, created.ID); err != nil {
		t.Fatalf("DeleteGroup returned error: %v", err)
	}
	if _, err := svc.GetGroup(ctx, testBase, created.ID); !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound after delete, got %v", err)
	}
}

func TestGroupMembers(t *testing.T) {
	svc, _ := newGroupServiceFixture()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	member, err := svc.AddMember(ctx, testBase, group.ID, 7)
	if err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}
	if member.URI != testBase+"/api/users/7" {
		t.Fatalf("unexpected member URI %s", member.URI)
	}

	if _, err := svc.AddMember(ctx, testBase, group.ID, 7); !errors.Is(err, apperrors.ErrGroupMemberExists) {
		t.Fatalf("expected ErrGroupMemberExists, got %v", err)
	}
	if _, err := svc.AddMember(ctx, testBase, group.ID, 99); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.AddMember(ctx, testBase, 99, 7); !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	members, err := svc.ListMembers(ctx, testBase, group.ID)
	if err != nil {
		t.Fatalf("ListMembers returned error: %v", err)
	}
	if len(members) != 1 || members[0].Username != "alice" {
		t.Fatalf("unexpected members %+v", members)
	}

	// Removing an absent member is idempotent.
	if err := svc.RemoveMember(ctx, group.ID, 7); err != nil {
		t.Fatalf("RemoveMember returned error: %v", err)
	}
	if err := svc.RemoveMember(ctx, group.ID, 7); err != nil {
		t.Fatalf("second RemoveMember returned error: %v", err)
	}
}

func TestBindCourseValidatesTargetsInOrder(t *testing.T) {
	svc, _ := newGroupServiceFixture()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	if _, err := svc.BindCourse(ctx, testBase, "missing", group.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if _, err := svc.BindCourse(ctx, testBase, "c1", 99); !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	binding, err := svc.BindCourse(ctx, testBase, "c1", group.ID)
	if err != nil {
		t.Fatalf("BindCourse returned error: %v", err)
	}
	if binding.CourseID != "c1" || binding.GroupID != group.ID {
		t.Fatalf("unexpected binding %+v", binding)
	}

	// A second binding is a conflict, not an upsert.
	if _, err := svc.BindCourse(ctx, testBase, "c1", group.ID); !errors.Is(err, apperrors.ErrRelationshipExists) {
		t.Fatalf("expected ErrRelationshipExists, got %v", err)
	}

	groups, err := svc.ListCourseGroups(ctx, testBase, "c1", "")
	if err != nil {
		t.Fatalf("ListCourseGroups returned error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected 1 bound group, got %d", len(groups))
	}

	// Unbinding twice succeeds both times.
	if err := svc.UnbindCourse(ctx, "c1", group.ID); err != nil {
		t.Fatalf("UnbindCourse returned error: %v", err)
	}
	if err := svc.UnbindCourse(ctx, "c1", group.ID); err != nil {
		t.Fatalf("second UnbindCourse returned error: %v", err)
	}
	// But the targets are still validated.
	if err := svc.UnbindCourse(ctx, "missing", group.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestBindContentChecksTreeMembership(t *testing.T) {
	svc, _ := newGroupServiceFixture()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	if _, err := svc.BindContent(ctx, testBase, "c1", "bogus", group.ID); !errors.Is(err, apperrors.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}

	binding, err := svc.BindContent(ctx, testBase, "c1", "vert-1", group.ID)
	if err != nil {
		t.Fatalf("BindContent returned error: %v", err)
	}
	if binding.ContentID != "vert-1" {
		t.Fatalf("unexpected binding %+v", binding)
	}

	if _, err := svc.BindContent(ctx, testBase, "c1", "vert-1", group.ID); !errors.Is(err, apperrors.ErrRelationshipExists) {
		t.Fatalf("expected ErrRelationshipExists, got %v", err)
	}

	groups, err := svc.ListContentGroups(ctx, testBase, "c1", "vert-1", "")
	if err != nil {
		t.Fatalf("ListContentGroups returned error: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Fatalf("unexpected content groups %+v", groups)
	}

	if err := svc.UnbindContent(ctx, "c1", "vert-1", group.ID); err != nil {
		t.Fatalf("UnbindContent returned error: %v", err)
	}
	if err := svc.UnbindContent(ctx, "c1", "vert-1", group.ID); err != nil {
		t.Fatalf("second UnbindContent returned error: %v", err)
	}
}

func TestCourseBindingDetail(t *testing.T) {
	svc, _ := newGroupServiceFixture()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	// Existing course and group, but no binding between them.
	if _, err := svc.GetCourseBinding(ctx, testBase, "c1", group.ID); !errors.Is(err, apperrors.ErrRelationshipNotFound) {
		t.Fatalf("expected ErrRelationshipNotFound, got %v", err)
	}
	if _, err := svc.GetCourseBinding(ctx, testBase, "missing", group.ID); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
	if _, err := svc.GetCourseBinding(ctx, testBase, "c1", 99); !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	if _, err := svc.BindCourse(ctx, testBase, "c1", group.ID); err != nil {
		t.Fatalf("BindCourse returned error: %v", err)
	}

	binding, err := svc.GetCourseBinding(ctx, testBase, "c1", group.ID)
	if err != nil {
		t.Fatalf("GetCourseBinding returned error: %v", err)
	}
	if binding.CourseID != "c1" || binding.GroupID != group.ID || binding.ContentID != "" {
		t.Fatalf("unexpected binding %+v", binding)
	}
}

func TestContentBindingDetail(t *testing.T) {
	svc, _ := newGroupServiceFixture()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	if _, err := svc.GetContentBinding(ctx, testBase, "c1", "bogus", group.ID); !errors.Is(err, apperrors.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
	if _, err := svc.GetContentBinding(ctx, testBase, "c1", "vert-1", group.ID); !errors.Is(err, apperrors.ErrRelationshipNotFound) {
		t.Fatalf("expected ErrRelationshipNotFound, got %v", err)
	}

	if _, err := svc.BindContent(ctx, testBase, "c1", "vert-1", group.ID); err != nil {
		t.Fatalf("BindContent returned error: %v", err)
	}

	binding, err := svc.GetContentBinding(ctx, testBase, "c1", "vert-1", group.ID)
	if err != nil {
		t.Fatalf("GetContentBinding returned error: %v", err)
	}
	if binding.CourseID != "c1" || binding.ContentID != "vert-1" || binding.GroupID != group.ID {
		t.Fatalf("unexpected binding %+v", binding)
	}
}

func TestListContentUsers(t *testing.T) {
	svc, store := newGroupServiceFixture()
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}
	if _, err := svc.BindContent(ctx, testBase, "c1", "vert-1", group.ID); err != nil {
		t.Fatalf("BindContent returned error: %v", err)
	}

	// alice is enrolled in the course, bob is not.
	store.memberUsers[8] = &models.User{ID: 8, Username: "bob", Email: "bob@example.com"}
	store.members[group.ID] = []int64{7, 8}
	store.enroll("c1", 7)

	enrolled, err := svc.ListContentUsers(ctx, testBase, "c1", "vert-1", 0, "", true)
	if err != nil {
		t.Fatalf("ListContentUsers returned error: %v", err)
	}
	if len(enrolled) != 1 || enrolled[0].Username != "alice" {
		t.Fatalf("unexpected enrolled users %+v", enrolled)
	}
	if enrolled[0].URI != testBase+"/api/users/7" {
		t.Fatalf("unexpected user URI %s", enrolled[0].URI)
	}

	unenrolled, err := svc.ListContentUsers(ctx, testBase, "c1", "vert-1", 0, "", false)
	if err != nil {
		t.Fatalf("ListContentUsers returned error: %v", err)
	}
	if len(unenrolled) != 1 || unenrolled[0].Username != "bob" {
		t.Fatalf("unexpected unenrolled users %+v", unenrolled)
	}

	// Narrowing to a different group or type leaves nothing.
	if users, err := svc.ListContentUsers(ctx, testBase, "c1", "vert-1", group.ID+1, "", true); err != nil || len(users) != 0 {
		t.Fatalf("expected no users for other group, got %v %+v", err, users)
	}
	if users, err := svc.ListContentUsers(ctx, testBase, "c1", "vert-1", 0, "project", true); err != nil || len(users) != 0 {
		t.Fatalf("expected no users for other type, got %v %+v", err, users)
	}

	if _, err := svc.ListContentUsers(ctx, testBase, "c1", "bogus", 0, "", true); !errors.Is(err, apperrors.ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
	if _, err := svc.ListContentUsers(ctx, testBase, "missing", "vert-1", 0, "", true); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestListGroupsTypeFilter(t *testing.T) {
	svc, _ := newGroupServiceFixture()
	ctx := context.Background()

	if _, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Cohort A", Type: "cohort"}); err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}
	if _, err := svc.CreateGroup(ctx, testBase, &dto.CreateGroupRequest{Name: "Project X", Type: "project"}); err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	all, err := svc.ListGroups(ctx, testBase, "")
	if err != nil {
		t.Fatalf("ListGroups returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(all))
	}

	cohorts, err := svc.ListGroups(ctx, testBase, "cohort")
	if err != nil {
		t.Fatalf("ListGroups returned error: %v", err)
	}
	if len(cohorts) != 1 || cohorts[0].Name != "Cohort A" {
		t.Fatalf("unexpected filtered groups %+v", cohorts)
	}
}
