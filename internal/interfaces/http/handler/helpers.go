package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lensflow/backend/internal/infrastructure/auth"
	"github.com/lensflow/backend/internal/interfaces/http/middleware"
)

// scopeBranchFilter pins branch-level callers to their own branch.
// Company admins and above may filter across branches freely.
func scopeBranchFilter(c *gin.Context, branchID *string) {
	if middleware.HasRole(c, auth.RoleCompanyAdmin) {
		return
	}
	if own := getBranchID(c); own != nil {
		*branchID = own.String()
	}
}
