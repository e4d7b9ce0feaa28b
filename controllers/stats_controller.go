package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/utils"
)

// StatsController provides board-wide counts.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the board.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount, postCount, commentCount int64
	db := s.db.WithContext(ctx.Request.Context())

	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		utils.Abort(ctx, utils.Internal(50050, "failed to count users", err))
		return
	}
	if err := db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		utils.Abort(ctx, utils.Internal(50051, "failed to count posts", err))
		return
	}
	if err := db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		utils.Abort(ctx, utils.Internal(50052, "failed to count comments", err))
		return
	}

	utils.Success(ctx, gin.H{
		"userCount":    userCount,
		"postCount":    postCount,
		"commentCount": commentCount,
	})
}
