package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devnandu/festserver/internal/models"
	"github.com/devnandu/festserver/internal/services"
)

type adminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DepartmentLogin issues a department-scoped admin token from the static
// credential table.
func DepartmentLogin(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		token, department, err := as.LoginDepartment(req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"token":      token,
			"department": department,
		}, "login successful"))
	}
}

// MainLogin issues a fest-wide admin token.
func MainLogin(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err))
			return
		}

		token, err := as.LoginMain(req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"token": token,
		}, "login successful"))
	}
}
