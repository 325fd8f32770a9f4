package cogniz

import (
	"strings"

	"github.com/papercomputeco/cogniz/pkg/connection"
)

const restRoot = "/wp-json"

// BuildEndpoint joins baseURL and path under the WordPress REST root,
// adding "/wp-json" unless baseURL already ends with it.
func BuildEndpoint(baseURL, path string) string {
	base := connection.NormalizeBaseURL(baseURL)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasSuffix(base, restRoot) {
		return base + path
	}
	return base + restRoot + path
}
