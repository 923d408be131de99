package ioc

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nomassess/internal/assess"
	"nomassess/internal/nomination"
	"nomassess/internal/router"
)

// InitAssessHandler 构建评估 HTTP 处理器。
func InitAssessHandler(assessor *assess.Assessor, fetcher *nomination.Fetcher, logger *zap.Logger) *router.AssessHandler {
	return router.NewAssessHandler(assessor, fetcher, logger)
}

// InitGinEngine 构建 gin 引擎。
func InitGinEngine(assessHandler *router.AssessHandler) *gin.Engine {
	return router.NewEngine(assessHandler)
}
