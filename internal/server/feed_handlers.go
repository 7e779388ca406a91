package server

import (
	"feedc/internal/feed"

	"github.com/gofiber/fiber/v2"
)

// resolveFeedRequest is the feed resolution request body. All fields are
// optional; an empty body resolves the feed's first page.
type resolveFeedRequest struct {
	DynamicParams map[string]string `json:"dynamicParams"`
	IncludeOwner  bool              `json:"includeOwner"`
	PageToken     string            `json:"pageToken"`
}

// ResolveFeed handles POST /api/v4/pages/:pageId/feed/:feedId
func (s *Server) ResolveFeed(c *fiber.Ctx) error {
	pageID, err := s.parseID(c, "pageId", "page ID")
	if err != nil {
		return nil
	}
	feedID, err := s.parseID(c, "feedId", "feed ID")
	if err != nil {
		return nil
	}

	var req resolveFeedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return handleServiceError(c, err)
		}
	}

	resp, err := s.feedService.Resolve(c.UserContext(), feed.ResolveRequest{
		PageID:        pageID,
		FeedID:        feedID,
		DynamicParams: req.DynamicParams,
		IncludeOwner:  req.IncludeOwner,
		PageToken:     req.PageToken,
		AuthToken:     bearerToken(c),
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
