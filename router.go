package main

import (
	handler "edu-hub/biz/adaptor/controller"

	"github.com/cloudwego/hertz/pkg/app/server"
)

// customizedRegister registers customize routers.
func customizedRegister(r *server.Hertz) {
	r.GET("/ping", handler.Ping)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/sign-in", handler.SignIn)
			auth.GET("/me", handler.GetUserInfo)
		}

		hubs := api.Group("/hubs")
		{
			hubs.POST("", handler.CreateHub)
			hubs.GET("", handler.GetHubs)
			hubs.POST("/join", handler.JoinHub)
			hubs.GET("/:hubId/introductory", handler.GetHubIntroductory)
			hubs.GET("/:hubId/page/:page", handler.GetHubPage)
			hubs.POST("/:hubId/messages", handler.SendMessage)
			hubs.GET("/:hubId/messages", handler.GetMessages)
		}

		api.POST("/posts", handler.CreatePost)
		api.POST("/chat-with-material/:attachmentId", handler.ChatWithMaterial)
		api.POST("/chat-with-recording/:roomId", handler.ChatWithRecording)

		quizzes := api.Group("/quizzes")
		{
			quizzes.POST("", handler.CreateQuiz)
			quizzes.GET("/:quizId", handler.GetQuiz)
		}

		recordings := api.Group("/recordings")
		{
			recordings.POST("", handler.CreateRecording)
			recordings.POST("/webhook", handler.RecordingWebhook)
		}

		assignments := api.Group("/assignments")
		{
			assignments.POST("/generate", handler.GenerateAssignment)
			assignments.POST("/modify", handler.ModifyAssignment)
			assignments.POST("/create-using-ai", handler.CreateAssignmentUsingAI)
			assignments.GET("/:assignmentId", handler.GetAssignment)
			assignments.POST("/:assignmentId/submit", handler.SubmitAssignment)
			assignments.POST("/:assignmentId/assess", handler.AssessAssignment)
		}

		api.GET("/generate-assignment/events/:sessionId", handler.GenerateAssignmentEvents)
	}
}
