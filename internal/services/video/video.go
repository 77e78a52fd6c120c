package video

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/apperror"
	"github.com/JonasLeetTheWay/clashon-go/internal/metrics"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/services"
)

const notFound = "Video not found"

type Service struct {
	videos repository.VideoRepository
}

func NewService(videos repository.VideoRepository) *Service {
	return &Service{videos: videos}
}

func (s *Service) SetupRoutes(api, admin *gin.RouterGroup) {
	api.POST("/videos", s.CreateVideo)
	api.GET("/videos", s.ListPublicVideos)
	api.PUT("/videos/:id/like", s.increment(repository.CounterLikes))
	api.PUT("/videos/:id/view", s.increment(repository.CounterViews))

	admin.GET("/videos", s.ListVideos)
	admin.GET("/videos/:id", s.GetVideo)
	admin.POST("/videos", s.CreateVideo)
	admin.PUT("/videos/:id", s.UpdateVideo)
	admin.DELETE("/videos/:id", s.DeleteVideo)
}

func (s *Service) CreateVideo(c *gin.Context) {
	var req models.VideoCreate
	if !services.BindJSON(c, &req) {
		return
	}

	video := req.Video()
	if err := s.videos.Create(c.Request.Context(), &video); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, video)
}

// ListPublicVideos serves the feed: public videos, newest first.
func (s *Service) ListPublicVideos(c *gin.Context) {
	videos, err := s.videos.List(c.Request.Context(), repository.VideoFilter{
		IsPublic: repository.BoolPtr(true),
		Limit:    services.PublicListLimit,
	})
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (s *Service) ListVideos(c *gin.Context) {
	isFeatured, err := services.QueryBool(c, "is_featured")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	videos, err := s.videos.List(c.Request.Context(), repository.VideoFilter{
		UserID:     c.Query("user_id"),
		Sport:      c.Query("sport"),
		IsFeatured: isFeatured,
		Limit:      services.AdminListLimit,
	})
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (s *Service) GetVideo(c *gin.Context) {
	video, err := s.videos.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (s *Service) increment(counter repository.Counter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.videos.Increment(c.Request.Context(), c.Param("id"), counter); err != nil {
			services.Fail(c, err, notFound)
			return
		}
		metrics.RecordVideoInteraction(string(counter))
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (s *Service) UpdateVideo(c *gin.Context) {
	var patch models.VideoUpdate
	if !services.BindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		apperror.Respond(c, apperror.Validation("No fields to update"))
		return
	}

	video, err := s.videos.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (s *Service) DeleteVideo(c *gin.Context) {
	if err := s.videos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	services.Deleted(c, "Video deleted")
}
