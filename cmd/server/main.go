package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/wanghhhaoo/Multi-hop-Offloading/docs" // 导入生成的swagger文档
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/api"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/config"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/repository"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/service"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/database"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

// @title           UAV 多跳任务卸载仿真 API
// @version         1.0
// @description     UAV 网络多跳任务卸载仿真后端API文档

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description 请在此输入 'Bearer {token}' 格式的 JWT token

func main() {
	// 配置文件加载前先用生产配置记录错误
	logger, _ := zap.NewProduction()
	zap.ReplaceGlobals(logger)

	// 加载配置文件
	cfg := config.InitConfig()

	if cfg.Log.Development {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
			zap.ReplaceGlobals(logger)
		}
	}
	defer logger.Sync()

	// 初始化 JWT 密钥与有效期
	expiration, _ := cfg.JWTExpiration()
	utils.InitJWT(cfg.JWT.Secret, expiration)

	// 初始化数据库连接
	database.InitDB(cfg.Database.Path)
	db := database.GetDB()

	system := algorithm.NewSystem(logger, cfg.Simulation.HistoryLimit)

	// 使用数据库拓扑且数据库为空时写入样例拓扑
	if cfg.Simulation.Topology == config.TopologyDatabase {
		network := service.NewNetworkService(repository.NewNodeRepository(db), repository.NewLinkRepository(db))
		seeded, err := network.SeedSampleTopology(algorithm.SampleTopology())
		if err != nil {
			logger.Fatal("写入样例拓扑失败", zap.Error(err))
		}
		if seeded {
			logger.Info("数据库为空，已写入 7 节点样例拓扑")
		}
	}

	// 设置Gin模式
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// 设置路由
	if err := api.SetupRoutes(router, db, system, cfg, logger); err != nil {
		logger.Fatal("设置路由失败", zap.Error(err))
	}

	// 添加Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logger.Info("Swagger文档地址: http://localhost:" + cfg.Port + "/swagger/index.html")

	// 启动服务器
	logger.Info("启动服务器", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("无法启动服务器", zap.Error(err))
	}
}
