// internal/testutil/fixtures.go
package testutil

// FixtureDomains are valid root domains.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"shop.example.org",
}

// FixtureInvalidDomains are rejected by target validation.
var FixtureInvalidDomains = []string{
	"",
	"not a domain",
	"-invalid.com",
	"invalid-.com",
	"example..com",
}

// FixtureCrawledURLs mirrors a typical merged crawl: duplicates, URLs
// without a query string and several URLs sharing a first parameter.
var FixtureCrawledURLs = []string{
	"https://shop.example.com/item?id=1",
	"https://shop.example.com/item?id=2",
	"https://shop.example.com/",
	"https://shop.example.com/search?q=shoes&page=2",
	"https://api.example.com/v1/users?sort=asc",
	"https://shop.example.com/item?id=1",
	"https://blog.example.com/post?category=news",
	"https://blog.example.com/about",
}

// FixtureInterestingURLs is FixtureCrawledURLs after merge, query filter
// and first-key dedupe.
var FixtureInterestingURLs = []string{
	"https://api.example.com/v1/users?sort=asc",
	"https://blog.example.com/post?category=news",
	"https://shop.example.com/item?id=1",
	"https://shop.example.com/search?q=shoes&page=2",
}
