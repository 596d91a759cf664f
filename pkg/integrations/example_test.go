package integrations_test

import (
	"fmt"

	"github.com/matzehuels/stackforge/pkg/integrations"
)

func ExampleURLEncode() {
	// Solr queries sent to Maven Central are URL-encoded
	fmt.Println(integrations.URLEncode(`g:"org.projectlombok" AND a:"lombok"`))
	// Output:
	// g%3A%22org.projectlombok%22+AND+a%3A%22lombok%22
}
