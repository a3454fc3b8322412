package response

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/pkg/util"
	"DigitalOrganisms/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
		Data:    nil,
	})
}

// Unavailable 存活探测失败时使用真实的 503 状态码
func Unavailable(c *gin.Context, data interface{}) {
	c.JSON(http.StatusServiceUnavailable, dto.Response{
		Code:    ServiceUnavailable,
		Message: "unhealthy",
		Data:    data,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var fe *util.FieldError
	if errors.As(err, &fe) {
		Fail(c, BadRequest, fe.Error())
		return
	}

	if isJSONError(err) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	if code, ok := lookupCode(err); ok {
		Fail(c, code, err.Error())
		return
	}

	log.ErrorContext(c.Request.Context(), "Error", "err", err)
	Fail(c, InternalServerError, service.UnExpectedError.Error())
}

func lookupCode(err error) (int, bool) {
	if code, ok := service.ErrorMap[err]; ok {
		return code, true
	}
	for target, code := range service.ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}

// isJSONError gin 绑定走标准库，其余路径走 go-json
func isJSONError(err error) bool {
	var unmarshalTypeError *json.UnmarshalTypeError
	var stdTypeError *stdjson.UnmarshalTypeError
	var stdSyntaxError *stdjson.SyntaxError
	return errors.As(err, &unmarshalTypeError) ||
		errors.As(err, &stdTypeError) ||
		errors.As(err, &stdSyntaxError) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
