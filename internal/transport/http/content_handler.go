package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/veeplay/veeplay-api/internal/service"
	"github.com/veeplay/veeplay-api/internal/util"
)

type ContentHandler struct {
	contents *service.ContentService
}

func RegisterContent(e *echo.Echo, auth *service.AuthService, contents *service.ContentService) {
	handler := &ContentHandler{contents: contents}

	e.GET("/", handler.home)
	e.GET("/home", handler.home)
	e.GET("/shows", handler.listShows)
	e.GET("/movies", handler.listMovies)
	e.GET("/shows/:show_name", handler.showDetails)
	e.GET("/movies/:movie_name", handler.movieDetails)
	e.GET("/search", handler.search)
	e.GET("/filter", handler.filterByGenre)

	protected := e.Group("", RequireAuth(auth))
	protected.GET("/movies/:movie_name/video", handler.movieVideo)
	protected.GET("/shows/:show_name/:season_number/:episode_number", handler.episode)
}

func (h *ContentHandler) home(c echo.Context) error {
	contents, err := h.contents.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load catalog"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"status": "success", "contents": contents})
}

func (h *ContentHandler) listShows(c echo.Context) error {
	shows, err := h.contents.ListShows(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load shows"))
	}
	return c.JSON(http.StatusOK, shows)
}

func (h *ContentHandler) listMovies(c echo.Context) error {
	movies, err := h.contents.ListMovies(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load movies"))
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *ContentHandler) showDetails(c echo.Context) error {
	detail, err := h.contents.ShowDetails(c.Request().Context(), c.Param("show_name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			return c.JSON(http.StatusNotFound, util.Error("show not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load show"))
		}
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ContentHandler) movieDetails(c echo.Context) error {
	detail, err := h.contents.MovieDetails(c.Request().Context(), c.Param("movie_name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			return c.JSON(http.StatusNotFound, util.Error("movie not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load movie"))
		}
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *ContentHandler) movieVideo(c echo.Context) error {
	video, err := h.contents.MovieVideo(c.Request().Context(), c.Param("movie_name"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			return c.JSON(http.StatusNotFound, util.Error("video not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load video"))
		}
	}
	return c.JSON(http.StatusOK, video)
}

func (h *ContentHandler) episode(c echo.Context) error {
	seasonNumber, err := strconv.Atoi(c.Param("season_number"))
	if err != nil || seasonNumber < 1 {
		return c.JSON(http.StatusBadRequest, util.Error("season number must be a positive integer"))
	}
	episodeNumber, err := strconv.Atoi(c.Param("episode_number"))
	if err != nil || episodeNumber < 1 {
		return c.JSON(http.StatusBadRequest, util.Error("episode number must be a positive integer"))
	}

	episode, err := h.contents.Episode(c.Request().Context(), c.Param("show_name"), seasonNumber, episodeNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentNotFound):
			return c.JSON(http.StatusNotFound, util.Error("episode not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("unable to load episode"))
		}
	}
	return c.JSON(http.StatusOK, episode)
}

func (h *ContentHandler) search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, util.Error(`query parameter "q" is required`))
	}

	result, err := h.contents.Search(c.Request().Context(), query)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to search catalog"))
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ContentHandler) filterByGenre(c echo.Context) error {
	genre := strings.ToLower(strings.TrimSpace(c.QueryParam("genre")))
	if genre == "" {
		return c.JSON(http.StatusBadRequest, util.Error("genre parameter is required"))
	}

	result, err := h.contents.FilterByGenre(c.Request().Context(), genre)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to filter catalog"))
	}
	return c.JSON(http.StatusOK, result)
}
