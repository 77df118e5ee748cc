package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vitacoin.app/rewardsplatform/internal/dto"
	"vitacoin.app/rewardsplatform/internal/model"
	"vitacoin.app/rewardsplatform/internal/repository"
	"vitacoin.app/rewardsplatform/internal/service"
	"vitacoin.app/rewardsplatform/pkg/response"
	"vitacoin.app/rewardsplatform/pkg/validator"
)

type ProfileHandler struct {
	profileService service.ProfileService
	activity       repository.ActivityRepository
}

func NewProfileHandler(profileService service.ProfileService, activity repository.ActivityRepository) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		activity:       activity,
	}
}

func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	user, err := h.profileService.GetCurrentProfile(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	recordActivity(c.Request.Context(), h.activity, userID, model.ActionProfileViewed)

	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	var avatar *dto.AvatarFile
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar"})
			return
		}
		defer file.Close()

		avatar = &dto.AvatarFile{
			Reader:   file,
			FileName: fileHeader.Filename,
		}
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID.String(), input, avatar)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
