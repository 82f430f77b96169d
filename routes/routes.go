package routes

import (
	"net/http"
	"os"
	"time"

	"wellnessbuddy/controllers"
	"wellnessbuddy/middlewares"
	"wellnessbuddy/services"
	"wellnessbuddy/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// methodAllowList declares, per endpoint, the methods advertised in CORS
// preflight responses.
var methodAllowList = middlewares.MethodAllowList{
	"/api/save-analysis":    {http.MethodPost, http.MethodOptions},
	"/api/get-analysis":     {http.MethodGet, http.MethodOptions},
	"/api/delete-analysis":  {http.MethodDelete, http.MethodOptions},
	"/api/user-stats":       {http.MethodGet, http.MethodOptions},
	"/api/send-otp":         {http.MethodPost, http.MethodOptions},
	"/api/verify-otp":       {http.MethodPost, http.MethodOptions},
	"/api/save-google-user": {http.MethodPost, http.MethodOptions},
	"/api/lookup-user-id":   {http.MethodGet, http.MethodPost, http.MethodOptions},
	"/api/service-health":   {http.MethodGet, http.MethodOptions},
	"/api/analyze-food":     {http.MethodPost, http.MethodOptions},
	"/api/upload-image":     {http.MethodPost, http.MethodOptions},
}

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	r.Use(middlewares.CORS(methodAllowList))

	hub := services.NewRealtimeHub()
	analysisSvc := services.NewAnalysisService(db, hub)
	statsSvc := services.NewStatsService(db)
	otpSvc := services.NewOTPService(db)
	userSvc := services.NewUserService(db)

	geminiClient := utils.NewAllowListClient(30*time.Second, services.GeminiHost)
	geminiSvc := services.NewGeminiService(os.Getenv("GEMINI_API_KEY"), geminiClient)

	var visionSvc *services.VisionService
	if os.Getenv("VISION_PRECHECK") == "true" {
		if vs, err := services.NewVisionService(); err == nil {
			visionSvc = vs
		} else {
			utils.Log.WithError(err).Warn("vision pre-check disabled")
		}
	}

	analysisCtl := controllers.NewAnalysisController(analysisSvc)
	statsCtl := controllers.NewStatsController(statsSvc)
	otpCtl := controllers.NewOTPController(otpSvc, userSvc)
	userCtl := controllers.NewUserController(userSvc)
	healthCtl := controllers.NewHealthController(db)
	analyzeCtl := controllers.NewAnalyzeController(geminiSvc, visionSvc)
	realtimeCtl := controllers.NewRealtimeController(hub)

	api := r.Group("/api")
	{
		api.POST("/save-analysis", analysisCtl.SaveAnalysis)
		api.GET("/get-analysis", analysisCtl.GetAnalysis)
		api.DELETE("/delete-analysis", analysisCtl.DeleteAnalysis)
		api.GET("/user-stats", statsCtl.UserStats)

		api.POST("/send-otp", otpCtl.SendOTP)
		api.POST("/verify-otp", otpCtl.VerifyOTP)
		api.POST("/save-google-user", userCtl.SaveGoogleUser)
		api.GET("/lookup-user-id", userCtl.LookupUserID)
		api.POST("/lookup-user-id", userCtl.LookupUserID)

		api.GET("/service-health", healthCtl.ServiceHealth)
		api.POST("/analyze-food", analyzeCtl.AnalyzeFood)
		api.POST("/upload-image", controllers.UploadImage)
		api.GET("/ws", realtimeCtl.AnalysesWS)
	}

	me := r.Group("/api/me")
	me.Use(middlewares.AuthMiddleware())
	{
		me.GET("", userCtl.Me)
	}

	return r
}
