package viewer

import (
	"fmt"
	"net/url"
)

// resourceTemplate is the location of a page document relative to the
// viewer page: ../../data/{pid}/{pid}_{page}.xml
const resourceTemplate = "../../data/%[1]s/%[1]s_%[2]s.xml"

// PageIdentity names the page to show
type PageIdentity struct {
	PID  string // Document identifier, query parameter "pid"
	Page string // Page identifier, query parameter "page"
}

// IdentityFromQuery reads pid and page from a query string.
// Absent values stay empty; they are not validated.
func IdentityFromQuery(query url.Values) PageIdentity {
	return PageIdentity{
		PID:  query.Get("pid"),
		Page: query.Get("page"),
	}
}

// ResourcePath returns the relative path of the page document
func (id PageIdentity) ResourcePath() string {
	return fmt.Sprintf(resourceTemplate, id.PID, id.Page)
}

// Label is the display string for the page
func (id PageIdentity) Label() string {
	return fmt.Sprintf("%s - page %s", id.PID, id.Page)
}
