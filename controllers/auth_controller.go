package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/threadbbs/middleware"
	"github.com/cppla/threadbbs/services"
	"github.com/cppla/threadbbs/utils"
)

// AuthController handles registration, login and session endpoints.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles user registration.
func (a *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Abort(ctx, utils.ValidationError(40001, err))
		return
	}

	res, err := a.auth.Register(ctx.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Created(ctx, res)
}

// Login authenticates a user and returns a JWT token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Abort(ctx, utils.ValidationError(40002, err))
		return
	}

	res, err := a.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Success(ctx, res)
}

// Me returns the current user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := middleware.RequireUserID(ctx)
	if !ok {
		return
	}
	user, err := a.auth.Me(ctx.Request.Context(), userID)
	if err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Success(ctx, user)
}

// Logout revokes the presented token.
func (a *AuthController) Logout(ctx *gin.Context) {
	if _, ok := middleware.RequireUserID(ctx); !ok {
		return
	}
	token := ctx.GetString(middleware.ContextTokenKey)
	expiresAt := ctx.GetTime(middleware.ContextTokenExpiryKey)
	if err := a.auth.Logout(ctx.Request.Context(), token, expiresAt); err != nil {
		utils.Abort(ctx, err)
		return
	}
	utils.Success(ctx, utils.MessageResponse{Message: "logged out"})
}
