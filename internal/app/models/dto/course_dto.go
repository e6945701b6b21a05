package dto

import "time"

// ContentNode is a serialized course content node. Children is nil when
// the node sits at the requested depth horizon, so the key is omitted;
// inside the horizon it always points at a slice, possibly empty.
type ContentNode struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Due       *time.Time     `json:"due"`
	URI       string         `json:"uri"`
	Children  *[]ContentNode `json:"children,omitempty"`
	Resources []ResourceLink `json:"resources,omitempty"`
}

// ResourceLink points at a related collection of a course or content node
type ResourceLink struct {
	URI string `json:"uri"`
}

// CourseDetailResponse is the serialized course root. Content carries
// the depth-expanded tree under the key "content"; absent for depth 0.
type CourseDetailResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Category  string         `json:"category"`
	Number    string         `json:"number"`
	Org       string         `json:"org"`
	Due       *time.Time     `json:"due"`
	Start     *time.Time     `json:"start"`
	End       *time.Time     `json:"end"`
	URI       string         `json:"uri"`
	Content   *[]ContentNode `json:"content,omitempty"`
	Resources []ResourceLink `json:"resources,omitempty"`
}

// CourseMetricsResponse carries aggregate counters for a course
type CourseMetricsResponse struct {
	UsersEnrolled int64 `json:"users_enrolled"`
}

// OverviewArticle is one teacher biography block of a course overview
type OverviewArticle struct {
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

// OverviewSection is one parsed section of the course about page
type OverviewSection struct {
	Class      string            `json:"class"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Body       string            `json:"body,omitempty"`
	Articles   []OverviewArticle `json:"articles,omitempty"`
}

// CourseOverviewResponse is the course about page, raw or parsed
type CourseOverviewResponse struct {
	OverviewHTML string            `json:"overview_html,omitempty"`
	Sections     []OverviewSection `json:"sections,omitempty"`
}

// CourseUpdate is a single dated posting from the course info page
type CourseUpdate struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

// CourseUpdatesResponse is the course info page, raw or parsed
type CourseUpdatesResponse struct {
	Content  string         `json:"content,omitempty"`
	Postings []CourseUpdate `json:"postings,omitempty"`
}

// StaticTab is a serialized static tab of a course
type StaticTab struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

// StaticTabsResponse wraps the static tab collection of a course
type StaticTabsResponse struct {
	Tabs []StaticTab `json:"tabs"`
}
