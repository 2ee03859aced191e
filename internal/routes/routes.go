package routes

import (
	"github.com/14kear/online_polls/internal/handlers"
	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(rg *gin.RouterGroup, accounts *handlers.AccountsHandler, polls *handlers.PollsHandler) {
	{
		rg.GET("/", accounts.Home)

		rg.GET("/register", accounts.RegisterForm)
		rg.POST("/register", accounts.Register)
		rg.GET("/login", accounts.LoginForm)
		rg.POST("/login", accounts.Login)

		rg.GET("/polls/:id", polls.Detail)
		rg.GET("/polls/:id/results", polls.Results)
	}
}

func RegisterPrivateRoutes(rg *gin.RouterGroup, accounts *handlers.AccountsHandler, polls *handlers.PollsHandler) {
	{
		rg.GET("/logout", accounts.Logout)
		rg.POST("/logout", accounts.Logout)

		rg.GET("/polls", polls.List)
		rg.GET("/polls/mine", polls.Mine)
		rg.GET("/polls/add", polls.NewPollForm)
		rg.POST("/polls/add", polls.CreatePoll)

		rg.GET("/polls/:id/edit", polls.EditPollForm)
		rg.POST("/polls/:id/edit", polls.UpdatePoll)
		rg.POST("/polls/:id/delete", polls.DeletePoll)
		rg.POST("/polls/:id/end", polls.EndPoll)
		rg.GET("/polls/:id/logs", polls.Logs)

		// any method reaches the handler so it can answer non-POST votes itself
		rg.Any("/polls/:id/vote", polls.Vote)

		rg.GET("/polls/:id/choices/add", polls.AddChoiceForm)
		rg.POST("/polls/:id/choices/add", polls.AddChoice)
		rg.GET("/choices/:id/edit", polls.EditChoiceForm)
		rg.POST("/choices/:id/edit", polls.UpdateChoice)
		rg.POST("/choices/:id/delete", polls.DeleteChoice)
	}
}
