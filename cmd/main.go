package main

import (
	"os"

	"wellnessbuddy/config"
	"wellnessbuddy/routes"
	"wellnessbuddy/utils"
)

func main() {
	utils.InitLogger()
	config.InitDB()
	utils.InitS3()

	r := routes.SetupRouter(config.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.Log.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		utils.Log.WithError(err).Fatal("server exited")
	}
}
