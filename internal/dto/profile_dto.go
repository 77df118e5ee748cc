package dto

import (
	"io"

	"vitacoin.app/rewardsplatform/internal/model"
)

type UpdateProfileInput struct {
	Name     *string `form:"name"`
	Password *string `form:"password"`
}

type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

type ProfileResponse struct {
	User *model.User `json:"user"`
	Rank int         `json:"rank,omitempty"`
}
