package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veeplay/veeplay-api/internal/util"
)

// RegisterAbout serves the API self-description route.
func RegisterAbout(e *echo.Echo) {
	e.GET("/about", func(c echo.Context) error {
		return c.JSON(http.StatusOK, util.Envelope{
			"status":  "success",
			"message": "Welcome to VeePlay - Your OTT Streaming Backend API",
			"routes": []string{
				"POST   /register                            - Register a new user",
				"POST   /login                               - Login and get a session token",
				"GET    /account                             - Get current user's account details",
				"PUT    /account/{email}                     - Edit user account by email",
				"POST   /forgot-password                     - Send password reset link",
				"POST   /reset-password/{token}              - Reset password using token",
				"GET    /shows                               - List all shows",
				"GET    /movies                              - List all movies",
				"GET    /shows/{show_name}                   - Get details of a specific show",
				"GET    /movies/{movie_name}                 - Get details of a specific movie",
				"GET    /movies/{movie_name}/video           - Get video for a movie (requires auth)",
				"GET    /shows/{show}/{season}/{episode}     - Get a specific episode (requires auth)",
				"GET    /continue-watching                   - Get user's continue watching list (requires auth)",
				"POST   /watch_history                       - Update watch history (requires auth)",
				"GET    /search?q=query                      - Search content by name",
				"GET    /filter?genre=genre                  - Filter content by genre",
				"GET    /home                                - Homepage with all content",
				"GET    /about                               - About this API and route listing",
			},
		})
	})
}
