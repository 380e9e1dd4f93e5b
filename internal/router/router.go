package router

import (
	"time"

	"Radio_Community/internal/handler"
	"Radio_Community/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps 路由所需的全部处理器
type Deps struct {
	Guard       *middleware.Guard
	User        *handler.UserHandler
	Email       *handler.EmailHandler
	Post        *handler.PostHandler
	Comment     *handler.CommentHandler
	Contact     *handler.ContactHandler
	Admin       *handler.AdminHandler
	Health      *handler.HealthHandler
	CORSOrigins []string
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", d.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := d.Guard.RequireAuth()
	requireAdmin := d.Guard.RequireAdmin()

	// 注册登录
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/code", d.Email.SendCode)
		authGroup.POST("/register", d.User.Register)
		authGroup.POST("/login", d.User.Login)
		authGroup.POST("/refresh", d.User.TokenRefresh)
		authGroup.POST("/logout", requireAuth, d.User.Logout)
		authGroup.GET("/me", requireAuth, d.User.Me)
	}

	// 内容及其评论
	contentGroup := r.Group("/contenido")
	{
		contentGroup.GET("", d.Post.ListPosts)
		contentGroup.GET("/:id", d.Post.GetPost)
		contentGroup.POST("", requireAdmin, d.Post.CreatePost)
		contentGroup.PUT("/:id", requireAdmin, d.Post.UpdatePost)
		contentGroup.DELETE("/:id", requireAdmin, d.Post.DeletePost)

		contentGroup.GET("/:id/comentarios", d.Comment.ListForPublication)
		contentGroup.POST("/:id/comentarios", requireAuth, d.Comment.Create)
	}

	// 评论管理
	commentGroup := r.Group("/comentarios")
	commentGroup.Use(requireAdmin)
	{
		commentGroup.GET("", d.Comment.ListAll)
		commentGroup.DELETE("/:id", d.Comment.Delete)
	}

	contactGroup := r.Group("/contacto")
	{
		contactGroup.POST("/enviar", requireAuth, d.Contact.Send)
		contactGroup.GET("/mensajes", requireAdmin, d.Contact.List)
	}

	adminGroup := r.Group("/admins")
	adminGroup.Use(requireAdmin)
	{
		adminGroup.GET("", d.Admin.List)
		adminGroup.POST("/add", d.Admin.Add)
		adminGroup.POST("/remove", d.Admin.Remove)
	}

	return r
}
