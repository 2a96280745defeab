package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-chat-booking/internal/chat"
)

// ChatHandler answers free-text chat messages with the intent router.
type ChatHandler struct {
	Router *chat.Router
}

func NewChatHandler(r *chat.Router) *ChatHandler {
	return &ChatHandler{Router: r}
}

type chatReq struct {
	Message string `json:"message"`
}

// Post handles POST /chat.  Only an absent or empty message is rejected;
// blank text gets the general reply like any other unmatched message.
func (h *ChatHandler) Post(c echo.Context) error {
	var req chatReq
	if err := c.Bind(&req); err != nil || req.Message == "" {
		return message(c, http.StatusBadRequest, "Message is required")
	}
	resp, err := h.Router.Route(req.Message)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
