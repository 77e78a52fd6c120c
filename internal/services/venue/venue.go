package venue

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JonasLeetTheWay/clashon-go/internal/apperror"
	"github.com/JonasLeetTheWay/clashon-go/internal/models"
	"github.com/JonasLeetTheWay/clashon-go/internal/repository"
	"github.com/JonasLeetTheWay/clashon-go/internal/services"
)

const notFound = "Venue not found"

type Service struct {
	venues repository.VenueRepository
}

func NewService(venues repository.VenueRepository) *Service {
	return &Service{venues: venues}
}

func (s *Service) SetupRoutes(api, admin *gin.RouterGroup) {
	api.POST("/venues", s.CreateVenue)
	api.GET("/venues", s.ListActiveVenues)
	api.GET("/venues/:id", s.GetVenue)

	admin.GET("/venues", s.ListVenues)
	admin.GET("/venues/:id", s.GetVenue)
	admin.POST("/venues", s.CreateVenue)
	admin.PUT("/venues/:id", s.UpdateVenue)
	admin.DELETE("/venues/:id", s.DeleteVenue)
}

func (s *Service) GetVenue(c *gin.Context) {
	venue, err := s.venues.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, venue)
}

// CreateVenue stores an active venue with its 16 hourly slots priced at
// base_price.
func (s *Service) CreateVenue(c *gin.Context) {
	var req models.VenueCreate
	if !services.BindJSON(c, &req) {
		return
	}

	venue := req.Venue()
	if err := s.venues.Create(c.Request.Context(), &venue); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, venue)
}

func (s *Service) ListActiveVenues(c *gin.Context) {
	venues, err := s.venues.List(c.Request.Context(), repository.VenueFilter{
		IsActive: repository.BoolPtr(true),
		Sport:    c.Query("sport"),
		Limit:    services.PublicListLimit,
	})
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, venues)
}

func (s *Service) ListVenues(c *gin.Context) {
	isActive, err := services.QueryBool(c, "is_active")
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	venues, err := s.venues.List(c.Request.Context(), repository.VenueFilter{
		IsActive: isActive,
		Sport:    c.Query("sport"),
		Limit:    services.AdminListLimit,
	})
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, venues)
}

// UpdateVenue applies a partial update. A new base_price is copied onto
// every slot; availability is untouched.
func (s *Service) UpdateVenue(c *gin.Context) {
	var patch models.VenueUpdate
	if !services.BindJSON(c, &patch) {
		return
	}
	if patch.IsEmpty() {
		apperror.Respond(c, apperror.Validation("No fields to update"))
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")

	if patch.BasePrice != nil {
		existing, err := s.venues.ByID(ctx, id)
		if err != nil {
			services.Fail(c, err, notFound)
			return
		}
		if len(existing.Slots) > 0 {
			patch.Slots = models.RepriceSlots(existing.Slots, *patch.BasePrice)
		}
	}

	venue, err := s.venues.Update(ctx, id, patch)
	if err != nil {
		services.Fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, venue)
}

func (s *Service) DeleteVenue(c *gin.Context) {
	if err := s.venues.Delete(c.Request.Context(), c.Param("id")); err != nil {
		services.Fail(c, err, notFound)
		return
	}
	services.Deleted(c, "Venue deleted")
}
