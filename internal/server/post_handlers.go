package server

import (
	"feedc/internal/feed"
	"feedc/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /api/v4/pages/:pageId/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	pageID, err := s.parseID(c, "pageId", "page ID")
	if err != nil {
		return nil
	}

	resp, err := s.feedService.ListPosts(c.UserContext(), feed.ListRequest{
		PageID:    pageID,
		PageToken: c.Query("pageToken"),
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// PinPost handles POST /api/v4/pages/:pageId/posts/:uniqueId/pin
func (s *Server) PinPost(c *fiber.Ctx) error {
	return s.setPinned(c, true)
}

// UnpinPost handles POST /api/v4/pages/:pageId/posts/:uniqueId/unpin
func (s *Server) UnpinPost(c *fiber.Ctx) error {
	return s.setPinned(c, false)
}

// HidePost handles POST /api/v4/pages/:pageId/posts/:uniqueId/hide
func (s *Server) HidePost(c *fiber.Ctx) error {
	return s.setHidden(c, true)
}

// UnhidePost handles POST /api/v4/pages/:pageId/posts/:uniqueId/unhide
func (s *Server) UnhidePost(c *fiber.Ctx) error {
	return s.setHidden(c, false)
}

func (s *Server) setPinned(c *fiber.Ctx, pinned bool) error {
	pageID, uniqueID, err := s.curationParams(c)
	if err != nil {
		return nil
	}

	post, err := s.feedService.SetPinned(c.UserContext(), pageID, uniqueID, pinned)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (s *Server) setHidden(c *fiber.Ctx, hidden bool) error {
	pageID, uniqueID, err := s.curationParams(c)
	if err != nil {
		return nil
	}

	post, err := s.feedService.SetHidden(c.UserContext(), pageID, uniqueID, hidden)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(post)
}

func (s *Server) curationParams(c *fiber.Ctx) (uint, string, error) {
	pageID, err := s.parseID(c, "pageId", "page ID")
	if err != nil {
		return 0, "", errResponseWritten
	}
	uniqueID := c.Params("uniqueId")
	if uniqueID == "" {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid unique ID"))
		return 0, "", errResponseWritten
	}
	return pageID, uniqueID, nil
}
