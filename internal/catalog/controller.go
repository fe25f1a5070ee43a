package catalog

import (
	"net/http"

	"cinebook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) GetAllMovies(ctx *gin.Context) {
	status := ctx.Query("status")

	movies, err := c.service.GetAllMovies(ctx.Request.Context(), status)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve movies", nil, nil)
		return
	}

	resps := make([]MovieResponse, 0, len(movies))
	for i := range movies {
		resps = append(resps, toMovieResponse(&movies[i]))
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Movies retrieved successfully", resps, nil)
}

func (c *Controller) GetMovie(ctx *gin.Context) {
	movie, err := c.service.GetMovie(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		return
	}

	resp := toMovieResponse(movie)
	response.RespondJSON(ctx, "success", http.StatusOK, "Movie retrieved successfully", resp, nil)
}

func (c *Controller) CreateMovie(ctx *gin.Context) {
	var req CreateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	movie, err := c.service.CreateMovie(ctx.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create movie", nil, nil)
		return
	}

	resp := toMovieResponse(movie)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Movie created successfully", resp, nil)
}

func (c *Controller) UpdateMovie(ctx *gin.Context) {
	var req UpdateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	movie, err := c.service.UpdateMovie(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		switch err {
		case ErrMovieNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update movie", nil, nil)
		}
		return
	}

	resp := toMovieResponse(movie)
	response.RespondJSON(ctx, "success", http.StatusOK, "Movie updated successfully", resp, nil)
}

func (c *Controller) DeleteMovie(ctx *gin.Context) {
	if err := c.service.DeleteMovie(ctx.Request.Context(), ctx.Param("id")); err != nil {
		switch err {
		case ErrMovieNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete movie", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie deleted successfully", nil, nil)
}

func (c *Controller) GetShowtime(ctx *gin.Context) {
	showtime, err := c.service.GetShowtime(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		return
	}

	resp := toShowtimeResponse(showtime)
	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime retrieved successfully", resp, nil)
}

func (c *Controller) GetShowtimesByMovie(ctx *gin.Context) {
	showtimes, err := c.service.GetShowtimesByMovie(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to retrieve showtimes", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtimes retrieved successfully", toShowtimeResponses(showtimes), nil)
}

func (c *Controller) CreateShowtime(ctx *gin.Context) {
	var req CreateShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	showtime, err := c.service.CreateShowtime(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrMovieNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Movie not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create showtime", nil, nil)
		}
		return
	}

	resp := toShowtimeResponse(showtime)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Showtime created successfully", resp, nil)
}

func (c *Controller) UpdateShowtime(ctx *gin.Context) {
	var req UpdateShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondBindingError(ctx, err)
		return
	}

	showtime, err := c.service.UpdateShowtime(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		switch err {
		case ErrShowtimeNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update showtime", nil, nil)
		}
		return
	}

	resp := toShowtimeResponse(showtime)
	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime updated successfully", resp, nil)
}
