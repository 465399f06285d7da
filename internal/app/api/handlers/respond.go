package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	mw "github.com/natashawa225/sea-catering/internal/app/api/middleware"
	"github.com/natashawa225/sea-catering/pkg/logctx"
	"github.com/natashawa225/sea-catering/pkg/response"
	"github.com/natashawa225/sea-catering/pkg/types"
)

// Every endpoint answers HTTP 200; the envelope code carries the outcome.
func reply[T any](c *gin.Context, resp *response.APIResponse[T]) {
	c.Set(mw.KeyResponseCode, resp.Code)
	c.JSON(http.StatusOK, resp)
}

func replyOK[T any](c *gin.Context, data T) {
	reply(c, response.OKT(data))
}

func replyBadRequest(c *gin.Context, err error) {
	reply(c, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
}

func replyError(c *gin.Context, log *zap.SugaredLogger, err error) {
	resp := response.FromError(err)
	if resp.Code == response.APIResponseCodeError {
		logctx.FromGin(c, log).Errorw("request failed", "err", err)
	}
	reply(c, resp)
}

// replyResult keeps "empty" and "unavailable" apart: the first is a successful envelope with
// kind "empty", the second an unavailable envelope.
func replyResult[T any](c *gin.Context, log *zap.SugaredLogger, res types.Result[T]) {
	if !res.Available() {
		replyError(c, log, res.Err)
		return
	}
	replyOK(c, res)
}
