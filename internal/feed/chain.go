package feed

// feedChainPage is the page the successor table and pin injection apply to.
// Other deployments paginate each feed independently.
const feedChainPage uint = 1

// minMergedResults is the smallest acceptable first-response size before the
// engine eagerly folds the successor feed into the same response.
const minMergedResults = 7

// feedSuccessors maps an exhausted feed to the feed pagination hands off to.
var feedSuccessors = map[uint]uint{
	1:  8,
	2:  9,
	18: 14,
	17: 24,
}

// successorFeed returns the feed that continues pagination once feedID is
// exhausted, if one is designated.
func successorFeed(pageID, feedID uint) (uint, bool) {
	if pageID != feedChainPage {
		return 0, false
	}
	next, ok := feedSuccessors[feedID]
	return next, ok
}

// pinnedFeeds designates the feeds that receive pinned posts on first-page
// requests.
var pinnedFeeds = map[uint]bool{1: true, 2: true, 5: true, 6: true}

// pinnedFeed reports whether pin injection applies to the given feed.
func pinnedFeed(pageID, feedID uint) bool {
	return pageID == feedChainPage && pinnedFeeds[feedID]
}

// pinnedPostType returns the post type whose pinned posts feedID surfaces.
func pinnedPostType(feedID uint) uint {
	if feedID == 5 {
		return 5
	}
	return 1
}
