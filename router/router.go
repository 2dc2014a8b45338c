package router

import (
	"time"

	"blogapp/config"
	"blogapp/controllers"
	"blogapp/global"
	"blogapp/middlewares"
	"blogapp/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(authn middlewares.Authenticator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	tmpl, err := web.Templates()
	if err != nil {
		global.Log.Fatalf("Failed to parse templates: %v", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	r.GET("/", controllers.Index)
	r.GET("/about", controllers.About)
	r.GET("/friends", controllers.Friends)
	r.GET("/travel", controllers.Travel)
	r.GET("/article/:id", controllers.ShowArticle)
	r.GET("/tags", controllers.Tags)
	r.GET("/tags/:id", controllers.TagArticles)
	r.GET("/archive", controllers.Archive)
	r.GET("/search", controllers.Search)

	api := r.Group("/api")
	api.Use(cors.New(corsConfig()))
	{
		api.GET("/articles/top", controllers.GetTopArticles)
		api.GET("/articles/:id/views", controllers.GetArticleViews)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/login", controllers.LoginPage(authn))
		admin.POST("/login", controllers.Login(authn))
		admin.GET("/logout", controllers.Logout(authn))
		admin.POST("/logout", controllers.Logout(authn))
		admin.GET("/articles_data", middlewares.AdminAPIAuth(authn), controllers.ArticlesData)
	}

	guarded := admin.Group("")
	guarded.Use(middlewares.AdminAuth(authn))
	{
		guarded.GET("", controllers.Dashboard)
		guarded.GET("/articles", controllers.ArticlesPage)
		guarded.GET("/new_article", controllers.NewArticlePage)
		guarded.POST("/new_article", controllers.CreateArticle)
		guarded.GET("/edit_article/:id", controllers.EditArticlePage)
		guarded.POST("/edit_article/:id", controllers.UpdateArticle)
		guarded.POST("/delete_article/:id", controllers.DeleteArticle)
		guarded.GET("/tags", controllers.TagsPage)
		guarded.GET("/new_tag", controllers.NewTagPage)
		guarded.POST("/new_tag", controllers.CreateTag)
		guarded.POST("/delete_tag/:id", controllers.DeleteTag)
	}

	return r
}

func corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length", middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if config.AppConfig != nil && len(config.AppConfig.Cors.AllowOrigins) > 0 {
		cfg.AllowOrigins = config.AppConfig.Cors.AllowOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
