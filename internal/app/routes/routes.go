package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lppm/research-portal/internal/app/controllers"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/middleware"
)

// Controllers holds every controller mounted by SetupRouter.
type Controllers struct {
	Auth              *controllers.AuthController
	User              *controllers.UserController
	Author            *controllers.AuthorController
	StudyProgram      *controllers.StudyProgramController
	Book              *controllers.BookController
	HKI               *controllers.HKIController
	Publication       *controllers.PublicationController
	GooglePublication *controllers.GooglePublicationController
	Research          *controllers.GrantController
	Service           *controllers.GrantController
	Category          *controllers.CategoryController
	Page              *controllers.PageController
	Post              *controllers.PostController
	Aggregate         *controllers.AggregateController
	Import            *controllers.ImportController
	Health            *controllers.HealthController
}

// crud names the five handlers of a resource.
type crud struct {
	list, get, create, update, delete gin.HandlerFunc
}

// resource mounts the CRUD routes of a resource. Reads go through read and writes
// through write; a nil guard leaves the route open to the group's middleware.
func resource(group *gin.RouterGroup, path string, read, write gin.HandlerFunc, h crud) *gin.RouterGroup {
	r := group.Group(path)
	r.GET("", chain(read, h.list)...)
	r.GET("/:id", chain(read, h.get)...)
	r.POST("", chain(write, h.create)...)
	r.PATCH("/:id", chain(write, h.update)...)
	r.DELETE("/:id", chain(write, h.delete)...)
	return r
}

func chain(guard, handler gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{guard, handler}
}

// outputEntities have public grouped and chart aggregates.
var outputEntities = []string{
	services.EntityBooks,
	services.EntityHKIs,
	services.EntityPublications,
	services.EntityGooglePublications,
	services.EntityResearch,
	services.EntityServices,
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, metricsHandler http.Handler) {
	router.GET("/metrics", gin.WrapH(metricsHandler))

	api := router.Group("/api")
	api.GET("/health", c.Health.Health)

	// --- Public routes ---
	api.POST("/users/login", c.Auth.Login)
	api.GET("/books/categories", c.Book.GetCategories)
	api.GET("/hkis/categories", c.HKI.GetCategories)
	api.GET("/dashboard/summary", c.Aggregate.DashboardSummary)
	for _, entity := range outputEntities {
		api.GET("/"+entity+"/grouped", c.Aggregate.Grouped(entity))
		api.GET("/"+entity+"/chart", c.Aggregate.Chart(entity))
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/users/logout", c.Auth.Logout)
	authenticated.GET("/users/me", c.Auth.Me)

	masterData := authMiddleware.RequirePermission(models.PermManageMasterData)
	outputs := authMiddleware.RequirePermission(models.PermManageOutputs)

	// Master data: superadmins only
	authors := resource(authenticated, "/authors", masterData, masterData, crud{
		c.Author.ListAuthors, c.Author.GetAuthorByID, c.Author.CreateAuthor, c.Author.UpdateAuthor, c.Author.DeleteAuthor,
	})
	authors.POST("/import", masterData, c.Import.Import(services.EntityAuthors))

	resource(authenticated, "/study-programs", masterData, masterData, crud{
		c.StudyProgram.ListStudyPrograms, c.StudyProgram.GetStudyProgramByID, c.StudyProgram.CreateStudyProgram,
		c.StudyProgram.UpdateStudyProgram, c.StudyProgram.DeleteStudyProgram,
	})
	resource(authenticated, "/categories", masterData, masterData, crud{
		c.Category.ListCategories, c.Category.GetCategoryByID, c.Category.CreateCategory,
		c.Category.UpdateCategory, c.Category.DeleteCategory,
	})
	resource(authenticated, "/pages", masterData, masterData, crud{
		c.Page.ListPages, c.Page.GetPageByID, c.Page.CreatePage, c.Page.UpdatePage, c.Page.DeletePage,
	})
	// Posts are readable by every signed in user
	resource(authenticated, "/posts", nil, masterData, crud{
		c.Post.ListPosts, c.Post.GetPostByID, c.Post.CreatePost, c.Post.UpdatePost, c.Post.DeletePost,
	})
	resource(authenticated, "/users", masterData, masterData, crud{
		c.User.ListUsers, c.User.GetUserByID, c.User.CreateUser, c.User.UpdateUser, c.User.DeleteUser,
	})

	// Research outputs: admins and superadmins
	books := resource(authenticated, "/books", outputs, outputs, crud{
		c.Book.ListBooks, c.Book.GetBookByID, c.Book.CreateBook, c.Book.UpdateBook, c.Book.DeleteBook,
	})
	books.POST("/import", outputs, c.Import.Import(services.EntityBooks))

	hkis := resource(authenticated, "/hkis", outputs, outputs, crud{
		c.HKI.ListHKIs, c.HKI.GetHKIByID, c.HKI.CreateHKI, c.HKI.UpdateHKI, c.HKI.DeleteHKI,
	})
	hkis.POST("/import", outputs, c.Import.Import(services.EntityHKIs))

	publications := resource(authenticated, "/publications", outputs, outputs, crud{
		c.Publication.ListPublications, c.Publication.GetPublicationByID, c.Publication.CreatePublication,
		c.Publication.UpdatePublication, c.Publication.DeletePublication,
	})
	publications.POST("/import", outputs, c.Import.Import(services.EntityPublications))

	googlePublications := resource(authenticated, "/google-publications", outputs, outputs, crud{
		c.GooglePublication.ListGooglePublications, c.GooglePublication.GetGooglePublicationByID,
		c.GooglePublication.CreateGooglePublication, c.GooglePublication.UpdateGooglePublication,
		c.GooglePublication.DeleteGooglePublication,
	})
	googlePublications.POST("/import", outputs, c.Import.Import(services.EntityGooglePublications))

	research := resource(authenticated, "/research", outputs, outputs, crud{
		c.Research.ListGrants, c.Research.GetGrantByID, c.Research.CreateGrant, c.Research.UpdateGrant, c.Research.DeleteGrant,
	})
	research.POST("/import", outputs, c.Import.Import(services.EntityResearch))

	communityServices := resource(authenticated, "/services", outputs, outputs, crud{
		c.Service.ListGrants, c.Service.GetGrantByID, c.Service.CreateGrant, c.Service.UpdateGrant, c.Service.DeleteGrant,
	})
	communityServices.POST("/import", outputs, c.Import.Import(services.EntityServices))

	router.NoRoute(middleware.NotFound())
}
