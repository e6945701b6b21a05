package helpers

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// RequestBaseURL reconstructs "{scheme}://{host}" from the incoming
// request so serialized URIs round-trip into later lookups.
func RequestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}

// CourseURI returns the canonical URI of a course
func CourseURI(base, courseID string) string {
	return fmt.Sprintf("%s/api/courses/%s", base, courseID)
}

// ContentURI returns the canonical URI of a content node
func ContentURI(base, courseID, contentID string) string {
	return fmt.Sprintf("%s/api/courses/%s/content/%s", base, courseID, contentID)
}

// GroupURI returns the canonical URI of a group
func GroupURI(base string, groupID int64) string {
	return fmt.Sprintf("%s/api/groups/%d", base, groupID)
}

// UserURI returns the canonical URI of a user
func UserURI(base string, userID int64) string {
	return fmt.Sprintf("%s/api/users/%d", base, userID)
}
