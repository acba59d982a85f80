package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/api/handlers"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/api/middleware"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/config"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/repository"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/service"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/metrics"
)

// SetupRoutes 设置所有路由
func SetupRoutes(router *gin.Engine, db *gorm.DB, system *algorithm.System, cfg *config.Config, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	cooldown, err := cfg.AlarmCooldown()
	if err != nil {
		return err
	}

	// 初始化仓储层
	operatorRepo := repository.NewOperatorRepository(db)
	nodeRepo := repository.NewNodeRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	alarmRepo := repository.NewAlarmRepository(db)
	runRepo := repository.NewRunRepository(db)

	// 初始化服务层
	operatorService := service.NewOperatorService(operatorRepo)
	networkService := service.NewNetworkService(nodeRepo, linkRepo)
	alarmService := service.NewAlarmService(alarmRepo)
	simulationService := service.NewSimulationService(system, networkService, alarmService, runRepo, cfg.Simulation, cooldown, logger)
	overviewService := service.NewOverviewService(networkService, simulationService, alarmService)
	monitorService := service.NewMonitorService(system)

	// 初始化处理器
	authHandler := handlers.NewAuthHandler(operatorService)
	operatorHandler := handlers.NewOperatorHandler(operatorService)
	networkHandler := handlers.NewNetworkHandler(networkService, simulationService.DefaultNodeConfig())
	simulationHandler := handlers.NewSimulationHandler(simulationService, alarmService)
	alarmHandler := handlers.NewAlarmHandler(alarmService)
	overviewHandler := handlers.NewOverviewHandler(overviewService, monitorService)
	healthHandler := handlers.NewHealthHandler(system.IsRunning)

	router.Use(middleware.LoggingMiddleware(logger))

	// Prometheus 指标
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 公开路由组
	public := router.Group("/api/v1")
	{
		// 健康检查路由
		public.GET("/health", healthHandler.CheckHealth)

		// 认证相关路由（登录和刷新令牌无需认证）
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
		}
	}

	// 需要认证的路由组
	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware())
	{
		// 系统概览
		protected.GET("/overview", overviewHandler.GetOverview)
		protected.GET("/system/metrics", overviewHandler.GetSystemMetrics)

		// 认证相关路由
		protected.GET("/auth/me", authHandler.GetCurrentOperator)

		protected.GET("/operators/:id", operatorHandler.GetOperator)

		// 网络管理路由（只读）
		network := protected.Group("/network")
		{
			network.GET("/nodes", networkHandler.ListNodes)
			network.GET("/nodes/:id", networkHandler.GetNode)
			network.GET("/links", networkHandler.ListLinks)
			network.GET("/links/:id", networkHandler.GetLink)
			network.GET("/topology", networkHandler.GetTopology)
			network.GET("/topology/info", networkHandler.GetTopologyInfo)
		}

		// 仿真路由（只读）
		simulation := protected.Group("/simulation")
		{
			simulation.GET("/info", simulationHandler.GetSimulationInfo)
			simulation.GET("/history", simulationHandler.GetSimulationHistory)
			simulation.GET("/runs", simulationHandler.ListRuns)
			simulation.GET("/runs/:id", simulationHandler.GetRun)
			simulation.GET("/runs/:id/stats", simulationHandler.GetRunStats)
			simulation.GET("/runs/:id/alarms", simulationHandler.GetRunAlarms)
		}

		// 告警路由
		alarms := protected.Group("/alarms")
		{
			alarms.GET("", alarmHandler.GetAlarms)
			alarms.GET("/stats", alarmHandler.GetAlarmStats)
			alarms.GET("/recent", alarmHandler.GetRecentAlarms)
			alarms.GET("/:id", alarmHandler.GetAlarm)
			alarms.POST("/:id/resolve", alarmHandler.ResolveAlarm)
			alarms.POST("/:id/reactivate", alarmHandler.ReactivateAlarm)
			alarms.POST("/batch/resolve", alarmHandler.BatchResolveAlarms)
		}

		// 管理员专用路由
		admin := protected.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/admin/operators", operatorHandler.ListOperators)
			admin.POST("/admin/operators", operatorHandler.CreateOperator)

			// 节点管理
			admin.POST("/network/nodes", networkHandler.CreateNode)
			admin.PUT("/network/nodes/:id", networkHandler.UpdateNode)
			admin.DELETE("/network/nodes/:id", networkHandler.DeleteNode)
			admin.PATCH("/network/nodes/batch-position", networkHandler.BatchUpdateNodesPosition) // 批量更新节点位置

			// 链路管理
			admin.POST("/network/links", networkHandler.CreateLink)
			admin.PUT("/network/links/:id", networkHandler.UpdateLink)
			admin.DELETE("/network/links/:id", networkHandler.DeleteLink)

			// 仿真控制
			admin.POST("/simulation/start", simulationHandler.StartSimulation)
			admin.POST("/simulation/stop", simulationHandler.StopSimulation)
			admin.POST("/simulation/clear", simulationHandler.ClearSimulation)
			admin.DELETE("/simulation/runs/:id", simulationHandler.DeleteRun)

			admin.DELETE("/alarms/:id", alarmHandler.DeleteAlarm)
			admin.POST("/alarms/batch/delete", alarmHandler.BatchDeleteAlarms)
		}
	}

	return nil
}
