package main

import (
	"os"

	"github.com/billysm23/FitKitchen-BackendTST/config"
	"github.com/billysm23/FitKitchen-BackendTST/routes"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"go.uber.org/zap"
)

func main() {
	if err := config.InitLogger(); err != nil {
		panic(err)
	}
	defer config.L().Sync()

	config.InitDB()
	utils.InitS3(config.L())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	if err := r.Run(":" + port); err != nil {
		config.L().Fatal("server exited", zap.Error(err))
	}
}
