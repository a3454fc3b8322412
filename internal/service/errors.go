package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrMemberNotFound          = errors.New("成员不存在")
	ErrMemberInactive          = errors.New("成员已停用")
	ErrMemberExist             = errors.New("用户名或邮箱已存在")
	ErrPasswordIncorrect       = errors.New("用户名或密码错误")
	ErrIntegrationNotFound     = errors.New("集成不存在")
	ErrResearchArticleNotFound = errors.New("研究文章不存在")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrMemberNotFound:          NotFound,
	ErrMemberInactive:          Unauthorized,
	ErrMemberExist:             BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrIntegrationNotFound:     NotFound,
	ErrResearchArticleNotFound: NotFound,
	UnauthorizedError:          Forbidden,
	UnExpectedError:            InternalServerError,
}
