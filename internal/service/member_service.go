package service

import (
	"DigitalOrganisms/internal/api/dto"
	"DigitalOrganisms/internal/model"
	"DigitalOrganisms/internal/pkg/consts"
	"DigitalOrganisms/internal/pkg/database"
	"DigitalOrganisms/internal/pkg/redis"
	"DigitalOrganisms/internal/pkg/security"
	"DigitalOrganisms/internal/repository"
	"context"
	"strings"

	"github.com/jinzhu/copier"
)

type MemberService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.MemberDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
}

type memberServiceImpl struct {
	memberRepo repository.MemberRepo
}

func NewMemberService(memberRepo repository.MemberRepo) MemberService {
	return &memberServiceImpl{memberRepo: memberRepo}
}

func (s *memberServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.MemberDTO, error) {
	existing, err := s.memberRepo.GetMemberByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberExist
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	member := &model.Member{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         consts.RoleUser,
		IsActive:     true,
	}
	if err = s.memberRepo.CreateMember(ctx, member); err != nil {
		// 邮箱唯一索引冲突
		if database.IsDuplicateKey(err) {
			return nil, ErrMemberExist
		}
		return nil, err
	}
	return toMemberDTO(member)
}

// Login 校验密码并刷新 last_login，活跃成员统计依赖该字段
func (s *memberServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	member, err := s.memberRepo.GetMemberByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	if err = security.CheckPasswordHash(req.Password, member.PasswordHash); err != nil {
		return nil, ErrPasswordIncorrect
	}
	if !member.IsActive {
		return nil, ErrMemberInactive
	}

	now := nowFunc()
	if err = s.memberRepo.UpdateLastLogin(ctx, member.ID, now); err != nil {
		return nil, err
	}
	member.LastLogin = &now

	token, err := security.GenerateToken(member.ID, []string{strings.ToUpper(member.Role)})
	if err != nil {
		return nil, err
	}
	memberDTO, err := toMemberDTO(member)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, Member: memberDTO}, nil
}

// Logout 签名拉黑至 token 自然过期
func (s *memberServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, security.TokenTTL())
}

func toMemberDTO(member *model.Member) (*dto.MemberDTO, error) {
	result := &dto.MemberDTO{}
	if err := copier.Copy(result, member); err != nil {
		return nil, err
	}
	return result, nil
}
