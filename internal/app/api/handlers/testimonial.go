package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/internal/app/service/testimonial"
)

// @Summary      List testimonials
// @Description  Returns published testimonials, newest first. data.kind is "empty" when there are none.
// @Tags         Testimonials
// @Produce      json
// @Param        limit query int false "Maximum number of items (1-100, default 20)"
// @Success      200  {object}  handlers.RespTestimonials
// @Router       /api/v1/testimonials [get]
func ApiListTestimonials(svc *testimonial.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		replyResult(c, log, svc.ListPublished(c.Request.Context(), limit))
	}
}

// @Summary      Submit a testimonial
// @Description  Stores a review for moderation. It is listed once an admin publishes it.
// @Tags         Testimonials
// @Accept       json
// @Produce      json
// @Param        request body testimonial.SubmitRequest true "Review"
// @Success      200  {object}  handlers.RespTestimonial
// @Router       /api/v1/testimonials [post]
func ApiSubmitTestimonial(svc *testimonial.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req testimonial.SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			replyBadRequest(c, err)
			return
		}
		item, err := svc.Submit(c.Request.Context(), &req)
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyOK(c, item)
	}
}

func RegisterTestimonialRoutes(r gin.IRouter, svc *testimonial.Service, log *zap.SugaredLogger) {
	r.GET("/testimonials", ApiListTestimonials(svc, log))
	r.POST("/testimonials", ApiSubmitTestimonial(svc, log))
}
