package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/krishivsaini/BookBazaar/internal/application/user"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/dto"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// AuthHandler 用户认证HTTP处理器
type AuthHandler struct {
	register *appuser.RegisterUseCase
	login    *appuser.LoginUseCase
	logout   *appuser.LogoutUseCase
	profile  *appuser.ProfileUseCase
}

func NewAuthHandler(
	register *appuser.RegisterUseCase,
	login *appuser.LoginUseCase,
	logout *appuser.LogoutUseCase,
	profile *appuser.ProfileUseCase,
) *AuthHandler {
	return &AuthHandler{register: register, login: login, logout: logout, profile: profile}
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册成功直接返回Token
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} dto.AuthResponse
// @Failure      400 {object} response.ErrorBody "参数错误/邮箱已存在"
// @Failure      429 {object} response.ErrorBody
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.register.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewAuthResponse(result))
}

// Login 用户登录
// @Summary      用户登录
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} dto.AuthResponse
// @Failure      401 {object} response.ErrorBody "邮箱或密码错误"
// @Failure      429 {object} response.ErrorBody
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.login.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewAuthResponse(result))
}

// Logout 登出，当前Access Token加入黑名单
// @Summary      登出
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.MessageBody
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.logout.Execute(c.Request.Context(), middleware.MustGetUserID(c), middleware.GetAccessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Logged out")
}

// Profile 当前用户信息
// @Summary      个人信息
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserResponse
// @Failure      401 {object} response.ErrorBody
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.profile.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(u))
}
