package controller

import (
	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth  *service.AuthService
	users *service.UserService
}

func NewAuthController(auth *service.AuthService, users *service.UserService) *AuthController {
	return &AuthController{auth: auth, users: users}
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterInput true "registration data"
// @Success 201 {object} util.Response
// @Router /api/auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.auth.Register(&input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, user)
}

// Login godoc
// @Summary Log in with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.LoginInput true "credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.auth.Login(&input)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, result)
}

// Me returns the caller's own account.
func (ctl *AuthController) Me(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, err := ctl.users.Get(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, user)
}

func (ctl *AuthController) ChangePassword(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var input service.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.auth.ChangePassword(claims.UserID, &input); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword godoc
// @Summary Request a password reset mail
// @Tags auth
// @Accept json
// @Produce json
// @Param body body forgotPasswordRequest true "account email"
// @Success 200 {object} util.Response
// @Router /api/auth/forgot-password [post]
func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var input forgotPasswordRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.auth.ForgotPassword(input.Email); err != nil {
		respondError(c, err)
		return
	}
	// Same reply whether or not the address is registered.
	util.Success(c, gin.H{"message": "if the address is registered, a reset mail has been sent"})
}

func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var input service.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.auth.ResetPassword(&input); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, nil)
}
