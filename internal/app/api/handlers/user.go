package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/pkg/types"
)

type MeResponse struct {
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email,omitempty"`
	Role        types.Role `json:"role"`
}

// RoleReader is satisfied by *role.Service.
type RoleReader interface {
	GetRole(ctx context.Context, userID string) (types.Role, error)
}

// @Summary      Current user
// @Description  Returns the authenticated caller and their role; the dashboard greets the user by display_name.
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  handlers.RespMe
// @Router       /api/v1/me [get]
func ApiMe(roles RoleReader, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		role, err := roles.GetRole(c.Request.Context(), p.UserID)
		if err != nil {
			replyError(c, log, err)
			return
		}
		replyOK(c, &MeResponse{UserID: p.UserID, DisplayName: p.DisplayName, Email: p.Email, Role: role})
	}
}

func RegisterUserRoutes(r gin.IRouter, roles RoleReader, log *zap.SugaredLogger) {
	r.GET("/me", ApiMe(roles, log))
}
